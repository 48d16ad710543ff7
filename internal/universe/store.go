package universe

import (
	"encoding/json"
	"os"
	"strings"
)

// Stock is one tracked symbol with its sector tag.
type Stock struct {
	Symbol string `json:"symbol"`
	Sector string `json:"sector"`
}

// File is the on-disk universe: the list of stocks the tracker follows.
type File struct {
	Stocks []Stock `json:"stocks"`
}

// LoadFile reads the universe from a JSON file. Returns an empty universe
// if the file doesn't exist.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// SaveFile writes the universe to a JSON file.
func SaveFile(path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DisplaySymbol strips the exchange suffix from a fetch symbol, giving the
// name used for grid columns and reports: "RELIANCE.NS" → "RELIANCE".
func DisplaySymbol(symbol string) string {
	s := strings.TrimSuffix(symbol, ".NS")
	return strings.TrimSuffix(s, ".BO")
}
