package fetcher

import (
	"context"
	"time"

	"StockLens/internal/model"
)

// Fetcher supplies one stock's raw intraday prices for one trading date,
// keyed by session slot. Slots with no usable tick are simply absent from
// the result; a fetch error means the source itself failed.
type Fetcher interface {
	FetchIntraday(ctx context.Context, symbol string, date time.Time) (map[model.Slot]float64, error)
	Name() string
}
