package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/tidwall/pretty"
)

// Writer publishes analysis output as JSON files for the dashboard to
// pick up.
type Writer struct {
	DashboardPath string
	DetailsDir    string

	log zerolog.Logger
}

// NewWriter creates a writer rooted at the given output paths.
func NewWriter(dashboardPath, detailsDir string, log zerolog.Logger) *Writer {
	return &Writer{DashboardPath: dashboardPath, DetailsDir: detailsDir, log: log}
}

// WriteDashboard writes the dashboard payload to its configured path.
func (w *Writer) WriteDashboard(d Dashboard) error {
	if err := w.writeJSON(w.DashboardPath, d); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	w.log.Info().Str("path", w.DashboardPath).Int("stocks", len(d.AllStocks)).Msg("dashboard written")
	return nil
}

// WriteStockDetail writes one stock's detail page payload under the
// details directory, named after the stock.
func (w *Writer) WriteStockDetail(f StockDetailFile) error {
	path := filepath.Join(w.DetailsDir, f.Name+".json")
	if err := w.writeJSON(path, f); err != nil {
		return fmt.Errorf("write detail for %s: %w", f.Name, err)
	}
	return nil
}

// WriteYearlyDetail writes one stock's yearly payload next to its daily
// detail file.
func (w *Writer) WriteYearlyDetail(f YearlyDetailFile) error {
	path := filepath.Join(w.DetailsDir, f.Name+"_yearly.json")
	if err := w.writeJSON(path, f); err != nil {
		return fmt.Errorf("write yearly detail for %s: %w", f.Name, err)
	}
	return nil
}

func (w *Writer) writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	if err := os.WriteFile(path, pretty.Pretty(data), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
