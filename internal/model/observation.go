package model

import (
	"fmt"
	"time"
)

// MarketTZ is the exchange clock. IST has no DST, so a fixed zone is exact.
var MarketTZ = time.FixedZone("IST", 5*3600+30*60)

// Slot is an intraday time slot, stored as minutes since midnight.
type Slot int

// NSE trading session: 09:00 through 15:30 in 15-minute steps.
const (
	MarketOpenSlot  Slot = 9 * 60
	MarketCloseSlot Slot = 15*60 + 30
	SlotStepMinutes      = 15
)

// TradingSlots returns the fixed ordered set of intraday slots for one session.
func TradingSlots() []Slot {
	slots := make([]Slot, 0, 27)
	for s := MarketOpenSlot; s <= MarketCloseSlot; s += SlotStepMinutes {
		slots = append(slots, s)
	}
	return slots
}

// ParseSlot parses a "HH:MM" clock string into a Slot.
func ParseSlot(s string) (Slot, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%d:%d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("invalid time slot %q: %w", s, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid time slot %q", s)
	}
	return Slot(hh*60 + mm), nil
}

// SlotOf maps a wall-clock time to its session slot, matching the nearest
// slot boundary within half a step. Returns false when the time falls
// outside the session or between slot windows.
func SlotOf(t time.Time) (Slot, bool) {
	minutes := t.Hour()*60 + t.Minute()
	half := SlotStepMinutes / 2
	for s := MarketOpenSlot; s <= MarketCloseSlot; s += SlotStepMinutes {
		if minutes >= int(s)-half && minutes <= int(s)+half {
			return s, true
		}
	}
	return 0, false
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", int(s)/60, int(s)%60)
}

// Observation is one price cell in the intraday grid. Immutable once produced.
type Observation struct {
	Symbol string
	Date   time.Time
	Slot   Slot
	Price  float64
}

// Day truncates a timestamp to its calendar date in UTC. Grid dates are
// always normalized through this so map keys and comparisons line up.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
