package opener

import (
	"fmt"
	"os/exec"
	"runtime"
)

// HostOpener forwards a path to the operating system's default open
// mechanism. The engine never interprets the path beyond handing it over.
type HostOpener struct{}

// NewHostOpener creates a HostOpener.
func NewHostOpener() *HostOpener {
	return &HostOpener{}
}

// Open launches the platform handler for path and returns without waiting
// for it to exit.
func (o *HostOpener) Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}
