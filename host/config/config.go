// Package config handles the development server configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/nobonobo/jeep-diorama/diorama"
	"github.com/nobonobo/jeep-diorama/schema"
)

// Config holds all server settings. The Scene section is published to the
// viewer as diorama.json.
type Config struct {
	Server  ServerConfig    `yaml:"server"`
	Scene   schema.Manifest `yaml:"scene"`
	Logging LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`

	// Root is the directory with index.html, the wasm binary and assets.
	Root   string `yaml:"root"`
	QRCode bool   `yaml:"qrcode"`

	// PublicHost replaces the listen host in the printed URL, so a phone on
	// the same network can open it.
	PublicHost string `yaml:"public_host"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
			Root: "web",
		},
		Scene: schema.DefaultManifest(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the values the server and the viewer cannot recover from.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.Root == "" {
		errs = append(errs, errors.New("server.root is empty"))
	}
	if c.Scene.Environment == "" {
		errs = append(errs, errors.New("scene.environment is empty"))
	}
	if c.Scene.Model == "" {
		errs = append(errs, errors.New("scene.model is empty"))
	}
	if c.Scene.MaxPixelRatio < 0 {
		errs = append(errs, fmt.Errorf("scene.max_pixel_ratio is negative: %v", c.Scene.MaxPixelRatio))
	}
	if _, err := diorama.ParseColor(c.Scene.Params.Color); err != nil {
		errs = append(errs, fmt.Errorf("scene.params.color: %w", err))
	}
	if _, err := diorama.ParseColor(c.Scene.Params.LightColor); err != nil {
		errs = append(errs, fmt.Errorf("scene.params.light_color: %w", err))
	}
	return errors.Join(errs...)
}
