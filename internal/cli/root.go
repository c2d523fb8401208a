package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/trialviz/axisgoat/internal/config"
	"github.com/trialviz/axisgoat/internal/logger"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	cfg = config.Default()
	log = logger.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "axisgoat",
	Short: "AxisGoat - axis options and defaults for study visualisations",
	Long: `AxisGoat resolves the axis options a study visualisation offers, picks the
default selection per axis and restores persisted selections.

Study metadata is imported into an embedded SQLite database and queried from
the command line or over HTTP ('axisgoat serve').`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DB, "database path")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (env "+config.EnvConfig+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
}

// setup layers the configuration (flag > env > file > default) and installs
// the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if !cmd.Flags().Changed("config") {
		path = os.Getenv(config.EnvConfig)
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	loaded, err = loaded.ApplyEnv(os.LookupEnv)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("db") {
		loaded.DB = dbPath
	}
	if cmd.Flags().Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	cfg = loaded

	l, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log = l
	log.Debug("configuration loaded", slog.String("db", cfg.DB), slog.Int("port", cfg.Port), slog.Int("workers", cfg.Workers))
	return nil
}
