package universe

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// SectorUnknown is reported for symbols with no sector mapping. An
// unmapped symbol is not an error, it just aggregates under this tag.
const SectorUnknown = "Unknown"

// Manager handles universe reads and edits with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	file     *File
	filePath string
}

// NewManager creates a Manager backed by the given universe file.
func NewManager(filePath string) (*Manager, error) {
	f, err := LoadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}
	return &Manager{file: f, filePath: filePath}, nil
}

// Stocks returns a copy of the tracked stocks in file order.
func (m *Manager) Stocks() []Stock {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Stock, len(m.file.Stocks))
	copy(out, m.file.Stocks)
	return out
}

// Symbols returns the fetch symbols in file order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.file.Stocks))
	for i, s := range m.file.Stocks {
		out[i] = s.Symbol
	}
	return out
}

// DisplaySymbols returns the suffix-stripped symbols in file order.
func (m *Manager) DisplaySymbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.file.Stocks))
	for i, s := range m.file.Stocks {
		out[i] = DisplaySymbol(s.Symbol)
	}
	return out
}

// SectorOf maps a symbol (fetch or display form) to its sector tag.
func (m *Manager) SectorOf(symbol string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.file.Stocks {
		if s.Symbol == symbol || DisplaySymbol(s.Symbol) == symbol {
			if s.Sector == "" {
				return SectorUnknown
			}
			return s.Sector
		}
	}
	return SectorUnknown
}

// Sectors returns the distinct sector tags in use, sorted.
func (m *Manager) Sectors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	for _, s := range m.file.Stocks {
		sector := s.Sector
		if sector == "" {
			sector = SectorUnknown
		}
		seen[sector] = true
	}
	out := make([]string, 0, len(seen))
	for sector := range seen {
		out = append(out, sector)
	}
	sort.Strings(out)
	return out
}

// Add appends a stock and persists the universe. Duplicate symbols are
// rejected so the grid never grows two columns for one stock.
func (m *Manager) Add(symbol, sector string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.file.Stocks {
		if strings.EqualFold(s.Symbol, symbol) {
			return fmt.Errorf("%s is already tracked", s.Symbol)
		}
	}
	m.file.Stocks = append(m.file.Stocks, Stock{Symbol: symbol, Sector: strings.TrimSpace(sector)})
	return m.save()
}

// Remove drops a stock by fetch or display symbol and persists the universe.
func (m *Manager) Remove(symbol string) error {
	symbol = strings.TrimSpace(symbol)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.file.Stocks {
		if strings.EqualFold(s.Symbol, symbol) || strings.EqualFold(DisplaySymbol(s.Symbol), symbol) {
			m.file.Stocks = append(m.file.Stocks[:i], m.file.Stocks[i+1:]...)
			return m.save()
		}
	}
	return fmt.Errorf("%s is not tracked", symbol)
}

// BulkAdd appends every new symbol under one sector, skipping duplicates,
// and persists once. Returns how many were actually added.
func (m *Manager) BulkAdd(symbols []string, sector string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	added := 0
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		dup := false
		for _, s := range m.file.Stocks {
			if strings.EqualFold(s.Symbol, sym) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		m.file.Stocks = append(m.file.Stocks, Stock{Symbol: sym, Sector: strings.TrimSpace(sector)})
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, m.save()
}

func (m *Manager) save() error {
	return SaveFile(m.filePath, m.file)
}
