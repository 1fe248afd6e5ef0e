package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/imageinfo/internal/command"
	"github.com/lumipallolabs/imageinfo/internal/config"
	"github.com/lumipallolabs/imageinfo/internal/core"
	"github.com/lumipallolabs/imageinfo/internal/logging"
	"github.com/lumipallolabs/imageinfo/internal/model"
	"github.com/lumipallolabs/imageinfo/internal/scanner"
	"github.com/lumipallolabs/imageinfo/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
)

// shownError has already been rendered for the user
type shownError struct {
	error
}

func main() {
	// Enable CPU profiling if CPUPROFILE env var is set
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", cpuProfile)
	}

	rootCmd := &cobra.Command{
		Use:   "imageinfo",
		Short: "Image Info - get information about images and more",
		Long: `Interactive tool reporting image dimensions, color breakdown and Exif
metadata, and counting images of one extension across your user directories.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				return logging.Enable("debug.log")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController()
			if err != nil {
				return err
			}
			p := tea.NewProgram(
				ui.NewApp(ctrl),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err = p.Run()
			return err
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to debug.log")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+config.DefaultPath()+")")

	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(exifCmd())
	rootCmd.AddCommand(scanCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		var shown shownError
		if !errors.As(err, &shown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newController loads configuration and builds the application controller
func newController() (*core.Controller, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Debug && !logging.Enabled() {
		if err := logging.Enable("debug.log"); err != nil {
			return nil, err
		}
	}
	logging.Logger().Debug("config loaded",
		zap.Int("workers", cfg.Scan.Workers),
		zap.Bool("skip_last_root", cfg.Scan.SkipLastRoot),
		zap.String("exif_format", cfg.Exif.Format))
	return core.NewController(cfg), nil
}

// printResult prints a task title and its rendered outcome
func printResult(cmd *cobra.Command, kind command.Kind, rendered string) {
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTask(kind.Title()))
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
}

// fail prints a rendered task error and marks it as shown
func fail(cmd *cobra.Command, kind command.Kind, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderTask(kind.Title()))
	fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderError(err))
	return shownError{err}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>",
		Short: "Show dimensions, color model, size and pixel colors of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController()
			if err != nil {
				return err
			}
			info, err := ctrl.Inspect(cmd.Context(), args[0])
			if err != nil {
				return fail(cmd, command.KindInfo, err)
			}
			printResult(cmd, command.KindInfo, ui.RenderImageInfo(info))
			return nil
		},
	}
}

func exifCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exif <path>",
		Short: "Extract Exif metadata of an image and save a summary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController()
			if err != nil {
				return err
			}
			res, err := ctrl.Exif(cmd.Context(), args[0])
			if err != nil {
				return fail(cmd, command.KindExif, err)
			}
			printResult(cmd, command.KindExif, ui.RenderExif(res))
			return nil
		},
	}
}

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <ext>",
		Short: "Count and size every file with an image extension in your user directories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController()
			if err != nil {
				return err
			}

			progress := scanner.FuncSink(func(p model.ProgressEvent) {
				path := p.Path
				if path == "" {
					path = "(not available)"
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s %s\n", p.RootsScanned+1, p.RootsTotal, p.Root.Label(), path)
			})

			res, err := ctrl.Scan(cmd.Context(), args[0], progress)
			if err != nil {
				return fail(cmd, command.KindScan, err)
			}
			printResult(cmd, command.KindScan, ui.RenderScanResult(res, 80))
			return nil
		},
	}
}
