package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dataspect/internal/config"
	"dataspect/internal/ui"
	"dataspect/internal/util/logx"
	"dataspect/internal/version"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dataspect [path]",
		Short: "Terminal toolbox for inspecting CSV, Parquet and JSON files",
		Long: `Dataspect is an interactive terminal inspector for data files.

Run it with no arguments to start on the home screen, with a directory
to start browsing there, or with a data file to open it directly.`,
		Version:      version.String(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logx.SetLevelFromEnv()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if err := logx.Setup(cfg.LogFile, cfg.LogLevel); err != nil {
				return err
			}
			defer logx.Close()
			if len(args) == 1 {
				cfg.StartPath = args[0]
			}

			// Cancel the TUI on SIGINT/SIGTERM so the terminal is restored.
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logx.Infof("starting dataspect %s: %s", version.String(), cfg.String())
			if err := ui.Run(ctx, cfg); err != nil {
				logx.Errorf("dataspect exited with error: %v", err)
				return err
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dataspect/config.yaml)")
	rootCmd.AddCommand(newFileCmd())
	rootCmd.AddCommand(newInspectCmd())
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}
