// Package cli provides the command-line interface for the analysis tool.
package cli

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"marketmetrics/internal/config"
	"marketmetrics/internal/fetch"
	"marketmetrics/internal/logging"
	"marketmetrics/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Provider fetch.Provider
	Store    store.DataStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Provider.APIKey != "" {
		app.Provider = fetch.NewFMPClient(fetch.FMPConfig{
			APIKey:  cfg.Provider.APIKey,
			BaseURL: cfg.Provider.BaseURL,
			Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		})
		logger.Debug().Msg("Market data provider initialized")
	}

	dbPath := filepath.Join(config.DefaultConfigDir(), "marketmetrics.db")
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize candle cache, fetches will not be cached")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("Candle cache initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "marketmetrics",
		Short: "Technical stock market analysis from the terminal",
		Long: `Market Metrics computes technical indicators over historical stock
prices: moving averages, RSI, MACD, Bollinger Bands, Fibonacci retracement
levels and golden/death cross detection, with optional PNG charts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/marketmetrics)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newChartCmd(app))
	rootCmd.AddCommand(newFetchCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("marketmetrics %s\n", Version)
		},
	}
}
