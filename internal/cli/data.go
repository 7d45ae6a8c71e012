package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"marketmetrics/internal/config"
	"marketmetrics/internal/logging"
	"marketmetrics/internal/models"
)

// loadSeries returns the price series for a symbol over the period,
// preferring the local cache and falling back to the provider. A refresh
// only fetches bars newer than the cache already holds.
func (app *App) loadSeries(ctx context.Context, symbol, period string, refresh bool) (*models.Series, error) {
	start, end, err := config.ResolveRange(period, time.Now())
	if err != nil {
		return nil, err
	}
	logger := logging.WithSymbol(app.Logger, symbol)

	var candles []models.Candle
	if app.Store != nil && !refresh {
		candles, err = app.Store.GetCandles(ctx, symbol, start, end)
		if err != nil {
			logger.Warn().Err(err).Msg("Cache lookup failed")
		}
	}

	if len(candles) == 0 {
		if app.Provider == nil {
			return nil, fmt.Errorf("no cached data for %s and no provider configured (set MARKETMETRICS_API_KEY)", symbol)
		}

		fetchFrom := start
		if app.Store != nil {
			last, err := app.Store.LastTimestamp(ctx, symbol)
			if err != nil {
				logger.Warn().Err(err).Msg("Cache freshness check failed")
			} else if last.After(fetchFrom) {
				fetchFrom = last.AddDate(0, 0, 1)
			}
		}

		began := time.Now()
		fetched, err := app.Provider.DailyHistory(ctx, symbol, fetchFrom, end)
		logging.LogFetch(app.Logger, symbol, len(fetched), time.Since(began), err)
		if err != nil {
			return nil, err
		}

		candles = fetched
		if app.Store != nil {
			if err := app.Store.SaveCandles(ctx, symbol, fetched); err != nil {
				logger.Warn().Err(err).Msg("Failed to cache candles")
			}
			// Re-read the full range so an incremental fetch is merged
			// with the bars already cached.
			if merged, err := app.Store.GetCandles(ctx, symbol, start, end); err == nil && len(merged) > 0 {
				candles = merged
			}
		}
	}

	return models.NewSeries(symbol, candles)
}

func newFetchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <symbol>",
		Short: "Fetch and cache historical prices for a symbol",
		Example: `  marketmetrics fetch DDOG
  marketmetrics fetch MSFT --period 5y`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			period, _ := cmd.Flags().GetString("period")
			if period == "" {
				period = app.Config.Analysis.Period
			}

			series, err := app.loadSeries(ctx, symbol, period, true)
			if err != nil {
				output.Error("Failed to fetch %s: %v", symbol, err)
				return err
			}

			if series.Len() == 0 {
				output.Warning("Provider returned no bars for %s over %s", symbol, period)
				return nil
			}
			if output.IsJSON() {
				return output.JSON(series)
			}
			output.Success("Fetched %d bars for %s (%s to %s)",
				series.Len(), symbol,
				series.Candles[0].Timestamp.Format("2006-01-02"),
				series.Candles[series.Len()-1].Timestamp.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().String("period", "", "history period, e.g. 5d, 6mo, 3y, ytd, max")
	return cmd
}
