package data

import (
	"encoding/json"
	"fmt"
	"os"

	"battery-benchmark/internal/model"
)

// PriceScheduleFile is the JSON shape accepted for offline runs:
// a market name plus its price points.
type PriceScheduleFile struct {
	Market string              `json:"market"`
	Data   model.PriceSchedule `json:"data"`
}

func LoadPriceScheduleJSON(path string) (*PriceScheduleFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f PriceScheduleFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if _, err := model.MarketByName(f.Market); err != nil {
		return nil, fmt.Errorf("price schedule file %s: %w", path, err)
	}
	if err := f.Data.Validate(); err != nil {
		return nil, fmt.Errorf("price schedule file %s: %w", path, err)
	}
	return &f, nil
}
