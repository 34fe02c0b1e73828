package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/nobonobo/jeep-diorama/schema"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.Root != "web" {
		t.Errorf("expected root web, got %s", cfg.Server.Root)
	}
	if cfg.Scene != schema.DefaultManifest() {
		t.Errorf("unexpected scene %+v", cfg.Scene)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
server:
  addr: "127.0.0.1:9000"
  qrcode: true

scene:
  model: "assets/jeep.glb"
  params:
    color: "#ff8800"
    light_intensity: 120

logging:
  level: "debug"
  log_file: "diorama.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" || !cfg.Server.QRCode {
		t.Errorf("unexpected server section %+v", cfg.Server)
	}
	if cfg.Server.Root != "web" {
		t.Errorf("expected root to keep its default, got %s", cfg.Server.Root)
	}
	if cfg.Scene.Model != "assets/jeep.glb" {
		t.Errorf("expected model assets/jeep.glb, got %s", cfg.Scene.Model)
	}
	if cfg.Scene.Environment != "assets/envmap.hdr" {
		t.Errorf("expected environment to keep its default, got %s", cfg.Scene.Environment)
	}
	if cfg.Scene.Params.Color != "#ff8800" || cfg.Scene.Params.LightIntensity != 120 {
		t.Errorf("unexpected params %+v", cfg.Scene.Params)
	}
	if cfg.Scene.Params.LightColor != "#fffdd1" {
		t.Errorf("expected light color to keep its default, got %s", cfg.Scene.Params.LightColor)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "diorama.log" {
		t.Errorf("unexpected logging section %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
server:
  addr: [1, 2
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected defaults, got %+v", cfg.Server)
	}
}

func TestLoadFindsDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile(DefaultFile, []byte("server:\n  root: public\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Root != "public" {
		t.Errorf("expected root public, got %s", cfg.Server.Root)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Scene.Params.EnableRotate = false
	cfg.Server.PublicHost = "192.168.0.10"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"empty root", func(c *Config) { c.Server.Root = "" }},
		{"empty environment", func(c *Config) { c.Scene.Environment = "" }},
		{"empty model", func(c *Config) { c.Scene.Model = "" }},
		{"negative pixel ratio", func(c *Config) { c.Scene.MaxPixelRatio = -1 }},
		{"bad color", func(c *Config) { c.Scene.Params.Color = "sky" }},
		{"bad light color", func(c *Config) { c.Scene.Params.LightColor = "#12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFlagsApply(t *testing.T) {
	var flags Flags
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.Register(fs)
	if err := fs.Parse([]string{"--addr", ":9999", "--debug"}); err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	cfg := Default()
	cfg.Server.Root = "public"
	flags.Apply(cfg, fs)

	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected addr override, got %s", cfg.Server.Addr)
	}
	if cfg.Server.Root != "public" {
		t.Errorf("unset flag overrode root: %s", cfg.Server.Root)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}
