package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"StockLens/internal/fetcher"
	"StockLens/internal/grid"
	"StockLens/internal/model"
	"StockLens/internal/universe"
)

func TestPopulate_FillsGrid(t *testing.T) {
	g := grid.New(nil)
	f := &fetcher.MockFetcher{Fixed: map[model.Slot]float64{
		model.Slot(9 * 60):    2840.559,
		model.Slot(9*60 + 15): 2844.2,
	}}
	p := NewPopulator(f, g, 3, zerolog.Nop())

	stocks := []universe.Stock{
		{Symbol: "RELIANCE.NS", Sector: "Energy"},
		{Symbol: "TCS.NS", Sector: "IT"},
	}
	dates := []time.Time{
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	}

	stats := p.Populate(context.Background(), stocks, dates)
	if stats.Jobs != 4 || stats.Filled != 4 || stats.Errors != 0 {
		t.Errorf("expected 4 jobs all filled, got %+v", stats)
	}
	if stats.Cells != 8 {
		t.Errorf("expected 8 cells, got %d", stats.Cells)
	}

	p1, ok := g.Price("RELIANCE", dates[0], model.Slot(9*60))
	if !ok || p1 != 2840.56 {
		t.Errorf("expected rounded 2840.56 under display symbol, got %v (ok=%v)", p1, ok)
	}
	if !g.HasData("TCS", dates[1]) {
		t.Error("expected TCS data on second date")
	}
}

func TestPopulate_FetchErrorsAreLocal(t *testing.T) {
	g := grid.New(nil)
	f := &fetcher.MockFetcher{Err: errors.New("boom")}
	p := NewPopulator(f, g, 2, zerolog.Nop())

	stocks := []universe.Stock{{Symbol: "INFY.NS", Sector: "IT"}}
	dates := []time.Time{time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)}

	stats := p.Populate(context.Background(), stocks, dates)
	if stats.Errors != 1 || stats.Filled != 0 {
		t.Errorf("expected 1 error and nothing filled, got %+v", stats)
	}
	if len(g.Dates()) != 0 {
		t.Error("expected grid untouched after failed fetches")
	}
}

func TestPopulate_CancelledContext(t *testing.T) {
	g := grid.New(nil)
	f := &fetcher.MockFetcher{BasePrice: 100}
	p := NewPopulator(f, g, 2, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stocks := []universe.Stock{{Symbol: "A.NS"}, {Symbol: "B.NS"}}
	dates := []time.Time{time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)}
	stats := p.Populate(ctx, stocks, dates)
	if stats.Filled != 0 {
		t.Errorf("expected no fills after cancellation, got %+v", stats)
	}
}
