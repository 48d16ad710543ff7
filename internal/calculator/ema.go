package calculator

import (
	"errors"
	"math"
)

// ErrInsufficientData marks a metric whose input had fewer points than it
// needs. Callers report the metric as unavailable and keep going.
var ErrInsufficientData = errors.New("not enough data points")

// EmaState is the single-pass exponential smoothing accumulator for one
// stock and period. The first price seeds the filter, each later price
// folds in exactly once. Earlier values are never re-derived, and input
// must arrive in chronological order.
type EmaState struct {
	period int
	alpha  float64
	value  float64
	count  int
}

// NewEmaState creates a filter for the given period with alpha = 2/(period+1).
func NewEmaState(period int) *EmaState {
	return &EmaState{period: period, alpha: 2.0 / float64(period+1)}
}

// Observe folds one close price into the filter.
func (e *EmaState) Observe(price float64) {
	if e.count == 0 {
		e.value = price
	} else {
		e.value = e.alpha*price + (1-e.alpha)*e.value
	}
	e.count++
}

// Count returns how many prices the filter has consumed.
func (e *EmaState) Count() int { return e.count }

// Value reports the current EMA rounded to two decimals. ok is false until
// the filter has consumed at least period prices; an EMA over fewer points
// is not meaningful and is never reported as zero.
func (e *EmaState) Value() (float64, bool) {
	if e.count < e.period || e.count == 0 {
		return 0, false
	}
	return Round2(e.value), true
}

// CalculateEMA runs a fresh filter over the whole price sequence and
// returns the final value. Streaming the same sequence through an EmaState
// yields the identical result.
func CalculateEMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, ErrInsufficientData
	}
	state := NewEmaState(period)
	for _, p := range prices {
		state.Observe(p)
	}
	v, _ := state.Value()
	return v, nil
}

// Round2 rounds a reported figure to two decimals, the precision every
// price and percentage leaves the calculator at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
