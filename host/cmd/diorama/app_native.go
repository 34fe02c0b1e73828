//go:build !js

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nobonobo/jeep-diorama/host/assets"
	"github.com/nobonobo/jeep-diorama/host/config"
	"github.com/nobonobo/jeep-diorama/host/logger"
)

func runApplication(log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCommand(log).ExecuteContext(ctx)
}

func newRootCommand(log *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "diorama",
		Short:         "Development server and asset tools for the diorama viewer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCommand(log),
		newInspectCommand(),
		newInitCommand(),
	)
	return root
}

func newServeCommand(log *zap.Logger) *cobra.Command {
	var flags config.Flags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the viewer, its assets and the scene manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.Path)
			if err != nil {
				return err
			}
			flags.Apply(cfg, cmd.Flags())
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			fileCfg := logger.FileConfig{}
			if cfg.Logging.LogFile != "" {
				fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
			}
			log = logger.New(logger.Options{
				Level:   cfg.Logging.Level,
				Console: os.Stdout,
				Color:   true,
				File:    fileCfg,
			})
			defer func() { _ = log.Sync() }()

			checkAssets(cfg, log)
			return serve(cmd.Context(), cfg, cmd.OutOrStdout(), log)
		},
	}
	flags.Register(cmd.Flags())
	return cmd
}

// checkAssets logs what the viewer will find. Problems are warnings only;
// the viewer degrades on its own.
func checkAssets(cfg *config.Config, log *zap.Logger) {
	for _, name := range []string{cfg.Scene.Environment, cfg.Scene.Model} {
		path := filepath.Join(cfg.Server.Root, filepath.FromSlash(name))
		report, err := assets.Inspect(path)
		if err != nil {
			log.Warn("Asset check failed", zap.String("path", path), zap.Error(err))
			continue
		}
		log.Info("Asset", report.Fields()...)
		if report.Animations != nil && len(report.Animations) == 0 {
			log.Warn("Model has no animation clips and will not be shown", zap.String("path", path))
		}
	}
}

func serve(ctx context.Context, cfg *config.Config, out io.Writer, log *zap.Logger) error {
	listener, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	pageURL, err := assets.PageURL(listener.Addr().String(), cfg.Server.PublicHost)
	if err != nil {
		return err
	}
	log.Info("Serving",
		zap.String("url", pageURL),
		zap.String("root", cfg.Server.Root),
	)
	if cfg.Server.QRCode {
		code, err := assets.TerminalQRCode(pageURL)
		if err != nil {
			log.Warn("Cannot print QR code", zap.Error(err))
		} else {
			fmt.Fprint(out, code)
		}
	}

	server := &http.Server{
		Handler:           assets.NewHandler(cfg.Server.Root, cfg.Scene, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- server.Serve(listener)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Print details of HDR, FBX and glTF assets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				report, err := assets.Inspect(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				printReport(cmd.OutOrStdout(), report)
			}
			return errors.Join(errs...)
		},
	}
}

func printReport(w io.Writer, r assets.Report) {
	fmt.Fprintf(w, "%s\n", r.Path)
	fmt.Fprintf(w, "  format:     %s\n", r.Format)
	fmt.Fprintf(w, "  size:       %d bytes\n", r.Size)
	if r.Version != "" {
		fmt.Fprintf(w, "  version:    %s\n", r.Version)
	}
	if r.Width > 0 {
		fmt.Fprintf(w, "  dimensions: %dx%d\n", r.Width, r.Height)
		fmt.Fprintf(w, "  luminance:  mean %.3f, peak %.3f\n", r.MeanLuminance, r.PeakLuminance)
	}
	if r.Meshes > 0 || r.Nodes > 0 {
		fmt.Fprintf(w, "  meshes:     %d\n", r.Meshes)
		fmt.Fprintf(w, "  nodes:      %d\n", r.Nodes)
		fmt.Fprintf(w, "  skins:      %d\n", r.Skins)
	}
	if r.Animations != nil {
		fmt.Fprintf(w, "  animations: %s\n", strings.Join(r.Animations, ", "))
	}
}

func newInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFile
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
