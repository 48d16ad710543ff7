package grid

import (
	"sort"
	"sync"
	"time"

	"StockLens/internal/model"
)

// Grid is the in-memory intraday price table: one cell per
// (date, slot, symbol). A missing cell means the stock had no usable tick
// in that slot, which is distinct from a zero price; zeroes are never
// stored. Scheduler tasks touch the grid from separate goroutines, so all
// access goes through the lock.
type Grid struct {
	mu      sync.RWMutex
	symbols []string
	cells   map[cellKey]float64
	dates   map[time.Time]bool
}

type cellKey struct {
	date   time.Time
	slot   model.Slot
	symbol string
}

// New creates an empty grid with the given display-symbol columns.
func New(symbols []string) *Grid {
	g := &Grid{
		cells: make(map[cellKey]float64),
		dates: make(map[time.Time]bool),
	}
	for _, s := range symbols {
		g.addSymbolLocked(s)
	}
	return g
}

func (g *Grid) addSymbolLocked(symbol string) {
	for _, s := range g.symbols {
		if s == symbol {
			return
		}
	}
	g.symbols = append(g.symbols, symbol)
}

// AddSymbol registers a column if it is not already present.
func (g *Grid) AddSymbol(symbol string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addSymbolLocked(symbol)
}

// Symbols returns the column order.
func (g *Grid) Symbols() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.symbols))
	copy(out, g.symbols)
	return out
}

// SetPrice stores one cell. Non-positive prices are dropped, keeping the
// "absent means no data" rule intact.
func (g *Grid) SetPrice(symbol string, date time.Time, slot model.Slot, price float64) {
	if price <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addSymbolLocked(symbol)
	day := model.Day(date)
	g.cells[cellKey{date: day, slot: slot, symbol: symbol}] = price
	g.dates[day] = true
}

// Price reads one cell; ok is false when the cell is absent.
func (g *Grid) Price(symbol string, date time.Time, slot model.Slot) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.cells[cellKey{date: model.Day(date), slot: slot, symbol: symbol}]
	return p, ok
}

// Dates returns every date holding at least one cell, ascending.
func (g *Grid) Dates() []time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]time.Time, 0, len(g.dates))
	for d := range g.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// LatestDate returns the newest date holding data, or false for an empty grid.
func (g *Grid) LatestDate() (time.Time, bool) {
	dates := g.Dates()
	if len(dates) == 0 {
		return time.Time{}, false
	}
	return dates[len(dates)-1], true
}

// Observations returns one stock's cells for a date in slot order, absent
// cells dropped. This is the sequence the daily aggregator consumes.
func (g *Grid) Observations(symbol string, date time.Time) []model.Observation {
	g.mu.RLock()
	defer g.mu.RUnlock()
	day := model.Day(date)
	var out []model.Observation
	for _, slot := range model.TradingSlots() {
		if p, ok := g.cells[cellKey{date: day, slot: slot, symbol: symbol}]; ok {
			out = append(out, model.Observation{Symbol: symbol, Date: day, Slot: slot, Price: p})
		}
	}
	return out
}

// DailyCloses returns the last observed price of each date that has any
// data for the stock, chronological. Single-observation days still close.
func (g *Grid) DailyCloses(symbol string) []model.ClosePoint {
	g.mu.RLock()
	dates := make([]time.Time, 0, len(g.dates))
	for d := range g.dates {
		dates = append(dates, d)
	}
	g.mu.RUnlock()
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var out []model.ClosePoint
	for _, d := range dates {
		obs := g.Observations(symbol, d)
		if len(obs) == 0 {
			continue
		}
		out = append(out, model.ClosePoint{Date: d, Close: obs[len(obs)-1].Price})
	}
	return out
}

// HasData reports whether the stock has at least one cell on the date.
func (g *Grid) HasData(symbol string, date time.Time) bool {
	return len(g.Observations(symbol, date)) > 0
}
