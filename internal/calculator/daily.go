package calculator

import (
	"time"

	"StockLens/internal/model"
)

// AggregateDay reduces one stock's observations on one date to a DailyBar.
// Observations must be slot-ascending; absent cells are dropped upstream
// and never appear as zeros here. Fewer than two observations cannot
// establish a change, so the day is reported as unavailable.
//
// When several observations share the extreme price, the earliest slot is
// recorded for it.
func AggregateDay(symbol string, date time.Time, obs []model.Observation) (model.DailyBar, error) {
	if len(obs) < 2 {
		return model.DailyBar{}, ErrInsufficientData
	}

	openPrice := obs[0].Price
	closePrice := obs[len(obs)-1].Price
	high, low := obs[0].Price, obs[0].Price
	highTime, lowTime := obs[0].Slot, obs[0].Slot
	for _, o := range obs[1:] {
		if o.Price > high {
			high = o.Price
			highTime = o.Slot
		}
		if o.Price < low {
			low = o.Price
			lowTime = o.Slot
		}
	}

	bar := model.DailyBar{
		Symbol:      symbol,
		Date:        model.Day(date),
		Open:        Round2(openPrice),
		Close:       Round2(closePrice),
		High:        Round2(high),
		HighTime:    highTime,
		Low:         Round2(low),
		LowTime:     lowTime,
		Change:      Round2(closePrice - openPrice),
		GreenShadow: Round2(high - closePrice),
		RedShadow:   Round2(openPrice - low),
	}
	if openPrice > 0 {
		pct := Round2((closePrice - openPrice) / openPrice * 100)
		bar.ChangePct = &pct
	}
	return bar, nil
}
