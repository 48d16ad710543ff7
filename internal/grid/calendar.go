package grid

import (
	"time"

	"StockLens/internal/model"
)

// IsTradingDay reports whether the date is a weekday. Exchange holidays
// are not modeled; a holiday simply ends up as a date with no cells.
func IsTradingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// TradingDays lists the weekdays from one date through another, inclusive,
// normalized and ascending.
func TradingDays(from, to time.Time) []time.Time {
	from, to = model.Day(from), model.Day(to)
	var out []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsTradingDay(d) {
			out = append(out, d)
		}
	}
	return out
}

// LastTradingDays lists the n weekdays ending at the given date, ascending.
func LastTradingDays(end time.Time, n int) []time.Time {
	end = model.Day(end)
	var out []time.Time
	for d := end; len(out) < n; d = d.AddDate(0, 0, -1) {
		if IsTradingDay(d) {
			out = append(out, d)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
