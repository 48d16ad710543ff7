package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "runs_total", Help: "Analysis runs by kind and outcome"},
		[]string{"kind", "status"},
	)
	CellsFilled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "grid_cells_filled_total", Help: "Price cells written into the grid"},
	)
	FetchErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "fetch_errors_total", Help: "Intraday fetch failures"},
	)
	StocksAnalyzed = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "stocks_analyzed", Help: "Stocks covered by the most recent run"},
	)
)

func init() {
	prometheus.MustRegister(RunsTotal, CellsFilled, FetchErrors, StocksAnalyzed)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
