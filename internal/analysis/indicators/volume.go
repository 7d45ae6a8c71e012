package indicators

import (
	"fmt"

	xerrors "marketmetrics/internal/errors"
	"marketmetrics/internal/models"
)

// VolumeSMA calculates a Simple Moving Average over traded volume, used for
// the volume panel (typically a short 5-bar and a long 50-bar average).
type VolumeSMA struct {
	period int
}

// NewVolumeSMA creates a new volume moving average.
func NewVolumeSMA(period int) *VolumeSMA {
	return &VolumeSMA{period: period}
}

func (v *VolumeSMA) Name() string {
	return fmt.Sprintf("VolumeSMA_%d", v.period)
}

func (v *VolumeSMA) Period() int {
	return v.period
}

func (v *VolumeSMA) Calculate(candles []models.Candle) ([]Value, error) {
	if v.period < 1 {
		return nil, xerrors.NewParameterError("period", v.period, "must be at least 1")
	}
	if len(candles) == 0 {
		return nil, xerrors.ErrInsufficientData
	}

	result := make([]Value, len(candles))
	vols := volumeValues(candles)

	for i := v.period - 1; i < len(candles); i++ {
		result[i] = NewValue(mean(vols[i-v.period+1 : i+1]))
	}

	return result, nil
}
