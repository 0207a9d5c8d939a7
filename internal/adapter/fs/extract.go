package fs

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrBinaryFile marks files whose content is not valid UTF-8 text.
	ErrBinaryFile = errors.New("not valid UTF-8 text")
	// ErrSymlinkCycle marks a directory reached twice through symlinks.
	ErrSymlinkCycle = errors.New("symlink cycle")
)

func errSymlinkCycle(path string) error {
	return fmt.Errorf("%w at %s", ErrSymlinkCycle, path)
}

func errNotADirectory(path string, err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("%s is not a directory", path)
}

// ExtractText reads a file and returns its indexable text. Markup files have
// their tags stripped; everything else is treated as plain text.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".xhtml", ".html", ".htm":
		return extractMarkup(path)
	default:
		return extractPlain(path)
	}
}

func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrBinaryFile
	}
	return string(data), nil
}

// extractMarkup collects the character data of an XML-family document,
// skipping tags. The decoder runs in permissive mode so real-world HTML with
// unclosed tags and named entities still yields its text.
func extractMarkup(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	decoder := xml.NewDecoder(f)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity

	var text strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if cd, ok := tok.(xml.CharData); ok {
			text.Write(cd)
			text.WriteByte(' ')
		}
	}
	if !utf8.ValidString(text.String()) {
		return "", ErrBinaryFile
	}
	return text.String(), nil
}
