package grid

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"StockLens/internal/model"
)

// DateLayout is the grid's date format, day first as the sheets always were.
const DateLayout = "02-01-2006"

// Load reads a grid CSV. Layout: Date and Time first, then optional Day
// and Sector columns (older sheets carried both), then one column per
// display symbol. Empty and unparsable cells stay absent.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("open grid: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	if len(rows) == 0 {
		return New(nil), nil
	}

	header := rows[0]
	if len(header) < 2 || header[0] != "Date" || header[1] != "Time" {
		return nil, fmt.Errorf("grid header must start with Date,Time, got %v", header)
	}
	firstSymbol := 2
	for firstSymbol < len(header) && (header[firstSymbol] == "Day" || header[firstSymbol] == "Sector") {
		firstSymbol++
	}
	symbols := header[firstSymbol:]

	g := New(symbols)
	for i, row := range rows[1:] {
		if len(row) < firstSymbol {
			continue
		}
		date, err := time.Parse(DateLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("grid row %d: bad date %q: %w", i+2, row[0], err)
		}
		slot, err := model.ParseSlot(row[1])
		if err != nil {
			return nil, fmt.Errorf("grid row %d: %w", i+2, err)
		}
		for j, symbol := range symbols {
			col := firstSymbol + j
			if col >= len(row) || row[col] == "" {
				continue
			}
			price, err := strconv.ParseFloat(row[col], 64)
			if err != nil || price <= 0 {
				continue
			}
			g.SetPrice(symbol, date, slot, price)
		}
	}
	return g, nil
}

// Save writes the grid as CSV: Date,Time,Day plus one column per symbol,
// a row per (date, slot) that exists in the session layout, absent cells
// left empty.
func Save(path string, g *Grid) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create grid dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create grid: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	symbols := g.Symbols()

	header := append([]string{"Date", "Time", "Day"}, symbols...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write grid header: %w", err)
	}

	for _, date := range g.Dates() {
		for _, slot := range model.TradingSlots() {
			row := make([]string, 0, len(header))
			row = append(row, date.Format(DateLayout), slot.String(), date.Weekday().String())
			any := false
			for _, symbol := range symbols {
				if p, ok := g.Price(symbol, date, slot); ok {
					row = append(row, strconv.FormatFloat(p, 'f', 2, 64))
					any = true
				} else {
					row = append(row, "")
				}
			}
			if !any {
				continue
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write grid row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush grid: %w", err)
	}
	return nil
}
