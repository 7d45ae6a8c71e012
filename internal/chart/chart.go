// Package chart renders analysis results to PNG charts: a price panel with
// moving averages, Bollinger bands, Fibonacci levels and crossover markers,
// plus RSI, MACD and volume panels.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"marketmetrics/internal/analysis/indicators"
	"marketmetrics/internal/models"
)

// Config holds chart rendering configuration.
type Config struct {
	Width  int
	Height int
}

// DefaultConfig returns the default chart dimensions.
func DefaultConfig() Config {
	return Config{Width: 1280, Height: 720}
}

// Renderer builds go-chart graphs from analysis output.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a new chart renderer.
func NewRenderer(cfg Config) *Renderer {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg = DefaultConfig()
	}
	return &Renderer{cfg: cfg}
}

// PriceChartData bundles everything drawn on the price panel.
type PriceChartData struct {
	Symbol      string
	Candles     []models.Candle
	ShortWindow int
	LongWindow  int
	ShortMA     []indicators.Value
	LongMA      []indicators.Value
	Bands       map[string][]indicators.Value
	Fib         *indicators.FibonacciLevels
	Crossovers  []indicators.CrossoverEvent
}

// PriceChart renders the main price panel.
func (r *Renderer) PriceChart(d PriceChartData) *chart.Chart {
	graph := r.newGraph(fmt.Sprintf("%s | %d / %d day MA", d.Symbol, d.ShortWindow, d.LongWindow))

	addLine(graph, "Close", d.Candles, definedAll(closeValues(d.Candles)), chart.ColorAlternateGray)
	addLine(graph, fmt.Sprintf("%d day MA", d.ShortWindow), d.Candles, d.ShortMA, chart.ColorBlue)
	addLine(graph, fmt.Sprintf("%d day MA", d.LongWindow), d.Candles, d.LongMA, chart.ColorRed)

	if d.Bands != nil {
		addDashedLine(graph, "BB upper", d.Candles, d.Bands[indicators.BandUpper], chart.ColorLightGray)
		addDashedLine(graph, "BB lower", d.Candles, d.Bands[indicators.BandLower], chart.ColorLightGray)
	}

	if d.Fib != nil && len(d.Candles) > 0 {
		from := d.Candles[0].Timestamp
		to := d.Candles[len(d.Candles)-1].Timestamp
		for _, level := range d.Fib.Levels {
			addConstant(graph, fmt.Sprintf("Fib %.1f%%", level.Ratio*100), level.Price, from, to)
		}
	}

	if len(d.Crossovers) > 0 {
		var annotations []chart.Value2
		for _, ev := range d.Crossovers {
			label := "Golden"
			if ev.Kind == indicators.DeathCross {
				label = "Death"
			}
			annotations = append(annotations, chart.Value2{
				XValue: timeToFloat(ev.Timestamp),
				YValue: ev.ShortValue,
				Label:  label,
			})
		}
		graph.Series = append(graph.Series, chart.AnnotationSeries{
			Name:        "Crossovers",
			Annotations: annotations,
			Style: chart.Style{
				StrokeColor: chart.ColorGreen,
			},
		})
	}

	return graph
}

// RSIChart renders the RSI panel with overbought/oversold guides.
func (r *Renderer) RSIChart(symbol string, candles []models.Candle, rsi []indicators.Value) *chart.Chart {
	graph := r.newGraph(fmt.Sprintf("%s | RSI", symbol))
	addLine(graph, "RSI", candles, rsi, chart.ColorBlue)
	if len(candles) > 0 {
		from, to := candles[0].Timestamp, candles[len(candles)-1].Timestamp
		addConstant(graph, "Overbought (70)", 70, from, to)
		addConstant(graph, "Oversold (30)", 30, from, to)
	}
	return graph
}

// MACDChart renders the MACD panel.
func (r *Renderer) MACDChart(symbol string, candles []models.Candle, macd map[string][]indicators.Value) *chart.Chart {
	graph := r.newGraph(fmt.Sprintf("%s | MACD", symbol))
	addLine(graph, "MACD", candles, macd[indicators.MACDLine], chart.ColorBlue)
	addDashedLine(graph, "Signal", candles, macd[indicators.MACDSignal], chart.ColorRed)
	addLine(graph, "Histogram", candles, macd[indicators.MACDHistogram], chart.ColorLightGray)
	return graph
}

// VolumeChart renders the volume panel with its moving averages.
func (r *Renderer) VolumeChart(symbol string, candles []models.Candle, shortMA, longMA []indicators.Value) *chart.Chart {
	graph := r.newGraph(fmt.Sprintf("%s | Volume", symbol))
	addLine(graph, "Volume", candles, definedAll(volumeFloats(candles)), chart.ColorAlternateGray)
	addDashedLine(graph, "Volume MA (short)", candles, shortMA, chart.ColorBlue)
	addDashedLine(graph, "Volume MA (long)", candles, longMA, chart.ColorRed)
	return graph
}

// WritePNG renders the graph to a PNG file, creating parent directories as
// needed.
func (r *Renderer) WritePNG(graph *chart.Chart, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func (r *Renderer) newGraph(title string) *chart.Chart {
	graph := &chart.Chart{
		Title:  title,
		Width:  r.cfg.Width,
		Height: r.cfg.Height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(graph),
	}
	return graph
}

// seriesPoints extracts the defined points of an indicator series along
// with their timestamps.
func seriesPoints(candles []models.Candle, values []indicators.Value) ([]time.Time, []float64) {
	var xs []time.Time
	var ys []float64
	for i, v := range values {
		if i < len(candles) && v.Valid {
			xs = append(xs, candles[i].Timestamp)
			ys = append(ys, v.Float64)
		}
	}
	return xs, ys
}

func addLine(graph *chart.Chart, name string, candles []models.Candle, values []indicators.Value, color drawing.Color) {
	xs, ys := seriesPoints(candles, values)
	if len(xs) < 2 {
		return
	}
	graph.Series = append(graph.Series, chart.TimeSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 1.0,
		},
	})
}

func addDashedLine(graph *chart.Chart, name string, candles []models.Candle, values []indicators.Value, color drawing.Color) {
	xs, ys := seriesPoints(candles, values)
	if len(xs) < 2 {
		return
	}
	graph.Series = append(graph.Series, chart.TimeSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor:     color,
			StrokeWidth:     1.0,
			StrokeDashArray: []float64{4.0, 4.0},
		},
	})
}

// addConstant draws a horizontal guide line across the panel.
func addConstant(graph *chart.Chart, name string, value float64, from, to time.Time) {
	if !from.Before(to) {
		return
	}
	graph.Series = append(graph.Series, chart.TimeSeries{
		Name:    name,
		XValues: []time.Time{from, to},
		YValues: []float64{value, value},
		Style: chart.Style{
			StrokeColor:     chart.ColorLightGray,
			StrokeWidth:     1.0,
			StrokeDashArray: []float64{2.0, 4.0},
		},
	})
}

func definedAll(values []float64) []indicators.Value {
	result := make([]indicators.Value, len(values))
	for i, v := range values {
		result[i] = indicators.NewValue(v)
	}
	return result
}

func closeValues(candles []models.Candle) []float64 {
	values := make([]float64, len(candles))
	for i, c := range candles {
		values[i] = c.Close
	}
	return values
}

func volumeFloats(candles []models.Candle) []float64 {
	values := make([]float64, len(candles))
	for i, c := range candles {
		values[i] = float64(c.Volume)
	}
	return values
}

// timeToFloat matches the conversion go-chart applies to TimeSeries X
// values, so annotations line up with line series.
func timeToFloat(t time.Time) float64 {
	return float64(t.UnixNano())
}
