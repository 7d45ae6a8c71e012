package cli

import (
	"context"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"marketmetrics/internal/analysis"
	"marketmetrics/internal/analysis/indicators"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Full technical analysis for a symbol",
		Long: `Compute the full indicator suite over a symbol's history:
- Moving averages (short/long SMA) with golden/death cross detection
- RSI with overbought/oversold reading
- MACD with signal-line crossovers
- Bollinger Bands
- Fibonacci retracement levels with buy/sell hints
- Price and volatility summary`,
		Example: `  marketmetrics analyze DDOG
  marketmetrics analyze MSFT --period 1y --short 20 --long 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			period, params := analysisOptions(cmd, app)

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

			if output.IsJSON() {
				return output.JSON(report)
			}
			printReport(output, report, params)
			return nil
		},
	}

	addAnalysisFlags(cmd)
	return cmd
}

func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().String("period", "", "history period, e.g. 5d, 6mo, 3y, ytd, max")
	cmd.Flags().Int("short", 0, "short moving average window")
	cmd.Flags().Int("long", 0, "long moving average window")
	cmd.Flags().Int("rsi-window", 0, "RSI window")
}

// analysisOptions builds analysis parameters from config defaults with
// flag overrides.
func analysisOptions(cmd *cobra.Command, app *App) (string, analysis.Params) {
	cfg := app.Config.Analysis
	params := analysis.Params{
		ShortWindow:     cfg.ShortWindow,
		LongWindow:      cfg.LongWindow,
		RSIPeriod:       cfg.RSIPeriod,
		BollingerPeriod: cfg.BollingerPeriod,
		BollingerMult:   cfg.BollingerMult,
		MACDFast:        cfg.MACDFast,
		MACDSlow:        cfg.MACDSlow,
		MACDSignal:      cfg.MACDSignal,
		VolumeShortMA:   cfg.VolumeShortMA,
		VolumeLongMA:    cfg.VolumeLongMA,
	}

	period := cfg.Period
	if v, _ := cmd.Flags().GetString("period"); v != "" {
		period = v
	}
	if v, _ := cmd.Flags().GetInt("short"); v > 0 {
		params.ShortWindow = v
	}
	if v, _ := cmd.Flags().GetInt("long"); v > 0 {
		params.LongWindow = v
	}
	if v, _ := cmd.Flags().GetInt("rsi-window"); v > 0 {
		params.RSIPeriod = v
	}
	return period, params
}

func printReport(output *Output, report *analysis.Report, params analysis.Params) {
	sum := report.Summary
	symbol := report.Series.Symbol
	lastClose := report.Series.Candles[report.Series.Len()-1].Close

	output.Bold("%s | %d bars | close %.2f", symbol, report.Series.Len(), lastClose)
	output.Println(strings.Repeat("-", 60))

	output.Printf("Max close:  %.2f\n", sum.MaxClose)
	output.Printf("Min close:  %.2f\n", sum.MinClose)
	output.Printf("Mean close: %.2f\n", sum.MeanClose)
	output.Info("Mean volume: %.0f", sum.MeanVolume)
	output.Printf("Daily volatility: %.4f\n", sum.DailyVolatility)
	if sum.AnnualVolatility.Valid {
		output.Printf("Annual volatility: %.2f%%\n", sum.AnnualVolatility.Float64*100)
	}
	output.Println()

	if last, ok := lastDefined(report.RSI); ok {
		switch {
		case last >= 70:
			output.Warning("RSI(%d): %.1f (overbought)", params.RSIPeriod, last)
		case last <= 30:
			output.Success("RSI(%d): %.1f (oversold)", params.RSIPeriod, last)
		default:
			output.Printf("RSI(%d): %.1f\n", params.RSIPeriod, last)
		}
	}
	if last, ok := lastDefined(report.MACD[indicators.MACDHistogram]); ok {
		output.Printf("MACD histogram: %+.3f\n", last)
	}
	output.Println()

	printCrossovers(output, "Moving average crossovers", report.MACrossovers)
	printCrossovers(output, "MACD crossovers", report.MACDCrossovers)

	if report.Fib != nil {
		color.Cyan("Fibonacci retracement (high %.2f, low %.2f)", report.Fib.SwingHigh, report.Fib.SwingLow)
		for _, signal := range report.FibSignals {
			line := "Fib %.1f%% @ %.2f: %s"
			if signal.Action == "buy" {
				output.Success(line, signal.Ratio*100, signal.Price, signal.Action)
			} else {
				output.Error(line, signal.Ratio*100, signal.Price, signal.Action)
			}
		}
	}
}

func printCrossovers(output *Output, title string, events []indicators.CrossoverEvent) {
	if len(events) == 0 {
		return
	}
	color.Cyan(title)
	for _, ev := range events {
		date := ev.Timestamp.Format("2006-01-02")
		if ev.Kind == indicators.GoldenCross {
			output.Success("  %s golden cross (%.2f over %.2f)", date, ev.ShortValue, ev.LongValue)
		} else {
			output.Error("  %s death cross (%.2f under %.2f)", date, ev.ShortValue, ev.LongValue)
		}
	}
	output.Println()
}

func lastDefined(values []indicators.Value) (float64, bool) {
	for i := len(values) - 1; i >= 0; i-- {
		if values[i].Valid {
			return values[i].Float64, true
		}
	}
	return 0, false
}
