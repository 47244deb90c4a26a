// Package cmd implements the amas command line interface.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amasdatadriven/backend/internal/config"
	"github.com/amasdatadriven/backend/internal/money"
	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagEnvFile string
	cfg         config.Config
)

var rootCmd = &cobra.Command{
	Use:           "amas",
	Short:         "Budget planning and spend tracking for strategy tasks",
	Long:          "Plan task budgets from itemized budget lines, record what was spent and compare both per task and per phase.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(flagEnvFile)
		if err != nil {
			return err
		}

		setupLogging(cfg)
		return nil
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "File to load environment variables from. Variables that are already set take precedence.")
}

// setupLogging configures gin and the global logger.
//
// gin uses debug as the default mode, we use release unless GIN_MODE says
// otherwise. Logs go to stderr so that command output can be piped.
func setupLogging(c config.Config) {
	if c.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(c.GinMode)
	}

	output := io.Writer(os.Stderr)
	if c.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// connect opens the configured database. For SQLite, the directory of
// the database file is created if it does not exist.
func connect() error {
	if cfg.DatabaseDriver == models.DriverSQLite {
		path, _, _ := strings.Cut(strings.TrimPrefix(cfg.DatabaseDSN, "file:"), "?")
		err := os.MkdirAll(filepath.Dir(path), os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not create the data directory: %w", err)
		}
	}

	return models.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
}

func formatter() (money.Formatter, error) {
	return money.NewFormatter(cfg.Currency)
}
