package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gekko3d/gridcube"
)

var (
	configFile string
	debug      bool
	logFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "gridcube",
		Short:         "interactive 3x3 grid cube: textures, picking and manipulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file")

	rootCmd.AddCommand(
		texturesCmd(),
		facesCmd(),
		pickCmd(),
		replayCmd(),
		viewCmd(),
		windowCmd(),
		configCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*gridcube.Config, error) {
	cfg := gridcube.DefaultConfig()
	if configFile != "" {
		loaded, err := gridcube.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if debug {
		cfg.Log.Debug = true
	}
	return cfg, nil
}

// newLogger writes to --log when given, otherwise to fallback. The returned
// closer must be called when the command finishes.
func newLogger(cfg *gridcube.Config, fallback io.Writer) (gridcube.Logger, func(), error) {
	if logFile == "" {
		return gridcube.NewConfigLogger(cfg.Log, fallback, fallback), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return gridcube.NewConfigLogger(cfg.Log, f, f), func() { f.Close() }, nil
}

func newSession(fallback io.Writer, opts ...gridcube.SessionOption) (*gridcube.Session, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := newLogger(cfg, fallback)
	if err != nil {
		return nil, nil, err
	}
	s, err := gridcube.NewSession(cfg, append([]gridcube.SessionOption{gridcube.WithLogger(logger)}, opts...)...)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return s, closeLog, nil
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return gridcube.Encode(cmd.OutOrStdout(), cfg)
			}
			if err := gridcube.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
			return nil
		},
	}
}
