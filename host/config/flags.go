package config

import "github.com/spf13/pflag"

// Flags are the command line overrides, applied after the file.
type Flags struct {
	Path  string
	Addr  string
	Root  string
	QR    bool
	Debug bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.Path, "config", "", "path to config file")
	fs.StringVar(&f.Addr, "addr", "", "listen address")
	fs.StringVar(&f.Root, "root", "", "directory to serve")
	fs.BoolVar(&f.QR, "qr", false, "print a QR code of the page URL")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
}

// Apply writes the flags that were set on the command line to cfg.
func (f *Flags) Apply(cfg *Config, fs *pflag.FlagSet) {
	if fs.Changed("addr") {
		cfg.Server.Addr = f.Addr
	}
	if fs.Changed("root") {
		cfg.Server.Root = f.Root
	}
	if fs.Changed("qr") {
		cfg.Server.QRCode = f.QR
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
}
