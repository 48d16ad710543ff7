package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"StockLens/internal/calculator"
	"StockLens/internal/fetcher"
	"StockLens/internal/grid"
	"StockLens/internal/universe"
)

// Populator fills the grid from a market-data source, fanning
// (symbol, date) jobs over a bounded worker pool. Workers only ever add
// cells; a failed fetch leaves the grid as it was for that pair.
type Populator struct {
	fetcher fetcher.Fetcher
	grid    *grid.Grid
	workers int
	log     zerolog.Logger
}

// Stats summarizes one populate run.
type Stats struct {
	Jobs   int
	Filled int
	Cells  int
	Errors int
}

type job struct {
	symbol  string
	display string
	date    time.Time
}

// NewPopulator creates a Populator with the given worker count.
func NewPopulator(f fetcher.Fetcher, g *grid.Grid, workers int, log zerolog.Logger) *Populator {
	if workers <= 0 {
		workers = 1
	}
	return &Populator{fetcher: f, grid: g, workers: workers, log: log}
}

// Populate fetches every stock for every date and merges the prices into
// the grid, rounded to two decimals as all grid prices are. Per-pair
// failures are logged and counted, never fatal to the rest of the run.
func (p *Populator) Populate(ctx context.Context, stocks []universe.Stock, dates []time.Time) Stats {
	jobs := make(chan job)
	go func() {
		defer close(jobs)
		for _, d := range dates {
			for _, s := range stocks {
				j := job{symbol: s.Symbol, display: universe.DisplaySymbol(s.Symbol), date: d}
				select {
				case jobs <- j:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var (
		mu    sync.Mutex
		stats Stats
		wg    sync.WaitGroup
	)
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					continue
				}
				prices, err := p.fetcher.FetchIntraday(ctx, j.symbol, j.date)

				mu.Lock()
				stats.Jobs++
				if err != nil {
					stats.Errors++
					mu.Unlock()
					p.log.Warn().Err(err).
						Str("symbol", j.symbol).
						Str("date", j.date.Format(grid.DateLayout)).
						Msg("intraday fetch failed")
					continue
				}
				if len(prices) > 0 {
					stats.Filled++
					stats.Cells += len(prices)
				}
				mu.Unlock()

				for slot, price := range prices {
					p.grid.SetPrice(j.display, j.date, slot, calculator.Round2(price))
				}
			}
		}()
	}
	wg.Wait()

	p.log.Info().
		Int("jobs", stats.Jobs).
		Int("filled", stats.Filled).
		Int("cells", stats.Cells).
		Int("errors", stats.Errors).
		Msg("populate finished")
	return stats
}
