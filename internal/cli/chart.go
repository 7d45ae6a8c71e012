package cli

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"marketmetrics/internal/analysis"
	"marketmetrics/internal/chart"
)

func newChartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <symbol>",
		Short: "Render analysis charts to PNG files",
		Long: `Render four PNG panels for a symbol: price with moving averages,
Bollinger Bands, Fibonacci levels and crossover markers; RSI; MACD; and
volume with its moving averages.`,
		Example: `  marketmetrics chart DDOG
  marketmetrics chart MSFT --period 1y --out ./charts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			period, params := analysisOptions(cmd, app)

			outDir, _ := cmd.Flags().GetString("out")
			if outDir == "" {
				outDir = app.Config.Chart.OutputDir
			}

			series, err := app.loadSeries(ctx, symbol, period, false)
			if err != nil {
				output.Error("Failed to load data for %s: %v", symbol, err)
				return err
			}
			if series.Len() == 0 {
				output.Warning("No bars available for %s over %s", symbol, period)
				return nil
			}

			report, err := analysis.NewAnalyzer(params, app.Logger).Analyze(ctx, series)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			renderer := chart.NewRenderer(chart.Config{
				Width:  app.Config.Chart.Width,
				Height: app.Config.Chart.Height,
			})

			panels := map[string]func() error{
				"price.png": func() error {
					return renderer.WritePNG(renderer.PriceChart(chart.PriceChartData{
						Symbol:      symbol,
						Candles:     series.Candles,
						ShortWindow: params.ShortWindow,
						LongWindow:  params.LongWindow,
						ShortMA:     report.ShortMA,
						LongMA:      report.LongMA,
						Bands:       report.Bands,
						Fib:         report.Fib,
						Crossovers:  report.MACrossovers,
					}), panelPath(outDir, symbol, "price.png"))
				},
				"rsi.png": func() error {
					return renderer.WritePNG(
						renderer.RSIChart(symbol, series.Candles, report.RSI),
						panelPath(outDir, symbol, "rsi.png"))
				},
				"macd.png": func() error {
					return renderer.WritePNG(
						renderer.MACDChart(symbol, series.Candles, report.MACD),
						panelPath(outDir, symbol, "macd.png"))
				},
				"volume.png": func() error {
					return renderer.WritePNG(
						renderer.VolumeChart(symbol, series.Candles, report.VolumeShort, report.VolumeLong),
						panelPath(outDir, symbol, "volume.png"))
				},
			}

			for name, render := range panels {
				if err := render(); err != nil {
					output.Error("Failed to render %s: %v", name, err)
					return err
				}
			}

			output.Success("Wrote charts for %s to %s", symbol, filepath.Join(outDir, strings.ToLower(symbol)))
			return nil
		},
	}

	addAnalysisFlags(cmd)
	cmd.Flags().String("out", "", "output directory for chart PNGs")
	return cmd
}

func panelPath(outDir, symbol, name string) string {
	return filepath.Join(outDir, strings.ToLower(symbol), name)
}
