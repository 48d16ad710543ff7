package fetcher

import (
	"context"
	"hash/crc32"
	"math/rand"
	"time"

	"StockLens/internal/model"
)

// MockFetcher returns deterministic synthetic prices for development and
// testing. The walk is seeded per (symbol, date), so repeated runs fill
// the grid identically.
type MockFetcher struct {
	BasePrice float64
	Fixed     map[model.Slot]float64
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIntraday(_ context.Context, symbol string, date time.Time) (map[model.Slot]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Fixed != nil {
		return m.Fixed, nil
	}

	base := m.BasePrice
	if base <= 0 {
		base = 1000
	}
	seed := int64(crc32.ChecksumIEEE([]byte(symbol))) + model.Day(date).Unix()
	rng := rand.New(rand.NewSource(seed))

	out := make(map[model.Slot]float64)
	price := base * (0.98 + 0.04*rng.Float64())
	for _, slot := range model.TradingSlots() {
		price *= 1 + (rng.Float64()-0.5)*0.004
		out[slot] = price
	}
	return out, nil
}
