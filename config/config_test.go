package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if !cfg.Index.Stemming {
		t.Error("stemming should default to on")
	}
	if cfg.Index.Stopwords {
		t.Error("stopword filtering should default to off")
	}
	if cfg.Search.TopK != 20 {
		t.Errorf("TopK = %d, want 20", cfg.Search.TopK)
	}
	if len(cfg.Index.Includes) == 0 {
		t.Error("expected default include patterns")
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must yield defaults, got %v", err)
	}
	if cfg == nil || cfg.Search.TopK != 20 {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
roots:
  - /home/user/notes
search:
  top_k: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Roots) != 1 || cfg.Roots[0] != "/home/user/notes" {
		t.Errorf("Roots = %v", cfg.Roots)
	}
	if cfg.Search.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.Search.TopK)
	}
	// Everything the file omits keeps its default.
	if !cfg.Index.Stemming {
		t.Error("omitted stemming flag should stay at its default")
	}
	if len(cfg.Index.Includes) == 0 {
		t.Error("omitted includes should stay at their default")
	}
}

func TestLoad_LegacyThemeKeyword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ui:
  theme: light
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("legacy theme keyword must parse, got %v", err)
	}
	if cfg.UI.Theme.Name != "light" {
		t.Errorf("Theme.Name = %q, want light", cfg.UI.Theme.Name)
	}
}

func TestLoad_ExplicitThemeColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ui:
  theme:
    background: {r: 24, g: 24, b: 24}
    foreground: {r: 187, g: 187, b: 187}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	bg := cfg.UI.Theme.Background
	if bg == nil || bg.R != 24 || bg.G != 24 || bg.B != 24 {
		t.Errorf("Background = %+v", bg)
	}
}

func TestLoad_UnknownFieldsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
some_future_field: true
search:
  top_k: 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unknown fields must not fail loading, got %v", err)
	}
	if cfg.Search.TopK != 7 {
		t.Errorf("TopK = %d, want 7", cfg.Search.TopK)
	}
}

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil {
		t.Fatal("expected a config")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Search.TopK != cfg.Search.TopK {
		t.Errorf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}
