package calculator

import (
	"math"

	"StockLens/internal/model"
)

// ComputeLevels derives trailing support and resistance for one stock:
// resistance is the highest high and support the lowest low over the last
// window bars. Shorter histories use every bar they have; with no bars at
// all the caller-supplied fallback high/low stand in, so a stock without
// history still gets levels instead of an error.
//
// Distances are plain subtractions against the current close and go
// negative when the close sits outside the band.
func ComputeLevels(bars []model.DailyBar, window int, current, fallbackHigh, fallbackLow float64) model.SupportResistance {
	resistance, support := fallbackHigh, fallbackLow
	if len(bars) > 0 {
		start := len(bars) - window
		if window <= 0 || start < 0 {
			start = 0
		}
		resistance = math.Inf(-1)
		support = math.Inf(1)
		for _, b := range bars[start:] {
			if b.High > resistance {
				resistance = b.High
			}
			if b.Low < support {
				support = b.Low
			}
		}
	}
	return model.SupportResistance{
		Resistance:           Round2(resistance),
		Support:              Round2(support),
		DistanceToResistance: Round2(resistance - current),
		DistanceToSupport:    Round2(current - support),
	}
}
