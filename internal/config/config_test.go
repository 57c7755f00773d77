package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Width != 1920 || cfg.Output.Height != 1080 {
		t.Errorf("default output %dx%d, want 1920x1080", cfg.Output.Width, cfg.Output.Height)
	}
	if cfg.Sdi.FillDevice == cfg.Sdi.KeyDevice {
		t.Error("default sdi devices collide")
	}
	if cfg.Sdi.KeyerLevel != 255 {
		t.Errorf("default keyer level %d, want 255", cfg.Sdi.KeyerLevel)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level %q", cfg.LogLevel)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
output:
  width: 1280
  height: 720
sdi:
  enabled: true
  fill_device: 2
  key_device: 3
  keyer_level: 128
log_level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Width != 1280 || cfg.Output.Height != 720 {
		t.Errorf("output %dx%d", cfg.Output.Width, cfg.Output.Height)
	}
	if !cfg.Sdi.Enabled || cfg.Sdi.FillDevice != 2 || cfg.Sdi.KeyDevice != 3 {
		t.Errorf("sdi section mangled: %+v", cfg.Sdi)
	}
	if cfg.Sdi.KeyerLevel != 128 {
		t.Errorf("keyer level %d, want 128", cfg.Sdi.KeyerLevel)
	}
	// Screen geometry defaults to the output raster.
	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 {
		t.Errorf("screen %dx%d, want output size", cfg.Screen.Width, cfg.Screen.Height)
	}
}

func TestValidateRejectsSameSdiPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
sdi:
  fill_device: 1
  key_device: 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("fill_device == key_device accepted")
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("bogus log level accepted")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Sdi.Enabled = true
	if err := Write(cfg, path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Sdi.Enabled {
		t.Error("round trip lost sdi.enabled")
	}
}
