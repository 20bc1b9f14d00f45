// Package main is the entry point for the payroll CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/janec/payroll/internal/cli"
	"github.com/janec/payroll/internal/logger"
	"github.com/janec/payroll/internal/payroll"
	"github.com/janec/payroll/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	err := rootCmd.Execute()
	closeLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "payroll",
	Short: "payroll - employee salary and tax records",
	Long: `payroll keeps employee salary records, works out tax from fixed
income brackets and stores everything in employees.txt.

Run without a subcommand to open the interactive menu.

Tax brackets (flat rate on the whole salary):
  below 10,000          0%
  10,000 to 30,000     10%
  30,000 to 50,000     20%
  above 50,000         30%`,
	Version:           Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

var (
	flagDir     string
	flagNoColor bool

	logCloser io.Closer
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", ".", "directory holding employees.txt and .payrollconfig.yaml")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("payroll version {{.Version}}\n")
}

// setup applies global flags and starts logging from the user config.
func setup(cmd *cobra.Command, args []string) error {
	if flagNoColor {
		cli.SetColorEnabled(false)
	}

	cfg, err := storage.LoadConfig(flagDir)
	if err != nil {
		return err
	}

	opts := logger.Options{Console: os.Stderr, Level: cfg.LogLevel}
	if cfg.LogFile != "" {
		opts.FilePath = cfg.LogFile
		if !filepath.IsAbs(opts.FilePath) {
			opts.FilePath = filepath.Join(flagDir, opts.FilePath)
		}
	}

	closer, err := logger.Init(opts)
	if err != nil {
		return err
	}
	logCloser = closer
	return nil
}

func closeLogger() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// openStore opens the working directory and loads its employees file.
func openStore() (*storage.Storage, *payroll.Store, error) {
	s, err := storage.Open(flagDir)
	if err != nil {
		return nil, nil, err
	}

	st := payroll.NewStore()
	n, err := s.LoadInto(st)
	if err != nil {
		return nil, nil, err
	}
	logger.Get().Debug().Int("count", n).Str("path", s.Path()).Msg("loaded employees")

	return s, st, nil
}
