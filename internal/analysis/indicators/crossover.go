package indicators

import (
	"time"

	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
)

// CrossKind distinguishes the two crossover directions.
type CrossKind string

const (
	// GoldenCross fires when the short series crosses above the long one.
	GoldenCross CrossKind = "golden"
	// DeathCross fires when the short series crosses below the long one.
	DeathCross CrossKind = "death"
)

// CrossoverEvent marks the first bar where the ordering between the short
// and long series flips.
type CrossoverEvent struct {
	Timestamp  time.Time
	Kind       CrossKind
	ShortValue float64
	LongValue  float64
}

// DetectCrossovers scans two indicator series aligned to the same candles
// and returns the chronological sequence of golden/death cross events.
//
// Only points where both series are defined participate. The detector
// tracks the previous nonzero sign of short minus long: the first such sign
// establishes the baseline without firing, an exact tie postpones the
// decision to the next nonzero point, and a repeat of the previous sign
// never retriggers. Events therefore fire exactly on strict sign flips.
func DetectCrossovers(candles []models.Candle, short, long []Value) ([]CrossoverEvent, error) {
	if len(short) != len(candles) || len(long) != len(candles) {
		return nil, xerrors.ErrSeriesMismatch
	}

	var events []CrossoverEvent
	prevSign := 0
	for i := range candles {
		if !short[i].Valid || !long[i].Valid {
			continue
		}
		sign := 0
		switch diff := short[i].Float64 - long[i].Float64; {
		case diff > 0:
			sign = 1
		case diff < 0:
			sign = -1
		}
		if sign == 0 {
			continue
		}
		if prevSign != 0 && sign != prevSign {
			kind := GoldenCross
			if sign < 0 {
				kind = DeathCross
			}
			events = append(events, CrossoverEvent{
				Timestamp:  candles[i].Timestamp,
				Kind:       kind,
				ShortValue: short[i].Float64,
				LongValue:  long[i].Float64,
			})
		}
		prevSign = sign
	}

	return events, nil
}
