// Package loader ingests historical daily bars from CSV and JSON files.
//
// This is the validation boundary: numeric fields may arrive as numbers
// or numeric strings and are normalized to float64 here; malformed or
// non-finite values and out-of-order timestamps abort the load before
// any indicator runs.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"backtest-systemv1/internal/model"
)

// FromJSON loads a JSON array of bar objects. OHLCV fields may be JSON
// numbers or numeric strings; timestamps ISO-8601 strings or Unix seconds.
func FromJSON(path string) ([]model.Bar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var bars []model.Bar
	if err := json.Unmarshal(data, &bars); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := model.ValidateSeries(bars); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	log.Printf("[loader] loaded %d bars from %s", len(bars), path)
	return bars, nil
}

// FromCSV loads bars from a CSV file with a ts,open,high,low,close,volume
// header (column order taken from the header, case-insensitive).
func FromCSV(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"ts", "open", "high", "low", "close", "volume"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, required)
		}
	}

	var bars []model.Bar
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line+1, err)
		}
		line++

		bar, err := parseRecord(record, cols)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		bars = append(bars, bar)
	}

	if err := model.ValidateSeries(bars); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	log.Printf("[loader] loaded %d bars from %s", len(bars), path)
	return bars, nil
}

func parseRecord(record []string, cols map[string]int) (model.Bar, error) {
	field := func(name string) (string, error) {
		idx := cols[name]
		if idx >= len(record) {
			return "", fmt.Errorf("missing field %q", name)
		}
		return strings.TrimSpace(record[idx]), nil
	}

	var bar model.Bar

	tsStr, err := field("ts")
	if err != nil {
		return bar, err
	}
	bar.TS, err = model.ParseBarTime(tsStr)
	if err != nil {
		return bar, err
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"open", &bar.Open},
		{"high", &bar.High},
		{"low", &bar.Low},
		{"close", &bar.Close},
		{"volume", &bar.Volume},
	} {
		s, err := field(f.name)
		if err != nil {
			return bar, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return bar, fmt.Errorf("field %s: not a number: %q", f.name, s)
		}
		*f.dst = v
	}
	return bar, nil
}
