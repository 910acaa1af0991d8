package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Bar represents a single daily OHLCV bar.
// All prices are float64; fields are validated at the ingestion boundary
// so downstream indicator code never sees NaN/Inf or ambiguous values.
type Bar struct {
	TS     time.Time `json:"ts"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Validate checks that every numeric field is finite.
// Returns a descriptive error for the first bad field found.
func (b *Bar) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
		{"volume", b.Volume},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("bar at %s: field %s is not finite", b.TS.Format(time.RFC3339), f.name)
		}
	}
	if b.TS.IsZero() {
		return fmt.Errorf("bar has zero timestamp")
	}
	return nil
}

// ValidateSeries validates every bar and enforces strictly increasing,
// unique timestamps. Any failure is fatal for the whole input — no partial
// computation on bad data.
func ValidateSeries(bars []Bar) error {
	for i := range bars {
		if err := bars[i].Validate(); err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
		if i > 0 && !bars[i].TS.After(bars[i-1].TS) {
			return fmt.Errorf("bar %d: timestamp %s not after previous %s",
				i, bars[i].TS.Format(time.RFC3339), bars[i-1].TS.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes extracts the close price sequence from a bar series.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i := range bars {
		closes[i] = bars[i].Close
	}
	return closes
}

// barJSON is the wire shape of a Bar. Upstream feeds deliver numeric fields
// either as JSON numbers or as numeric strings, and timestamps as ISO-8601
// strings or Unix seconds. Both forms are normalized here; anything else is
// a hard error.
type barJSON struct {
	TS     json.RawMessage `json:"ts"`
	Open   json.RawMessage `json:"open"`
	High   json.RawMessage `json:"high"`
	Low    json.RawMessage `json:"low"`
	Close  json.RawMessage `json:"close"`
	Volume json.RawMessage `json:"volume"`
}

// UnmarshalJSON parses a Bar from its wire shape, accepting numbers or
// numeric strings for OHLCV fields. Malformed fields are rejected, never
// coerced to zero.
func (b *Bar) UnmarshalJSON(data []byte) error {
	var raw barJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ts, err := parseTimestamp(raw.TS)
	if err != nil {
		return fmt.Errorf("bar ts: %w", err)
	}
	b.TS = ts

	for _, f := range []struct {
		name string
		raw  json.RawMessage
		dst  *float64
	}{
		{"open", raw.Open, &b.Open},
		{"high", raw.High, &b.High},
		{"low", raw.Low, &b.Low},
		{"close", raw.Close, &b.Close},
		{"volume", raw.Volume, &b.Volume},
	} {
		v, err := parseNumeric(f.raw)
		if err != nil {
			return fmt.Errorf("bar field %s: %w", f.name, err)
		}
		*f.dst = v
	}
	return nil
}

// parseNumeric accepts a JSON number or a quoted numeric string.
func parseNumeric(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var q string
		if err := json.Unmarshal(raw, &q); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(q)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// parseTimestamp accepts an ISO-8601 string ("2024-01-15" or RFC3339) or
// Unix seconds as a JSON number.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 {
		return time.Time{}, fmt.Errorf("missing value")
	}
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var q string
		if err := json.Unmarshal(raw, &q); err != nil {
			return time.Time{}, err
		}
		return ParseBarTime(q)
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a timestamp: %q", s)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// ParseBarTime parses the timestamp formats accepted at the ingestion
// boundary: RFC3339 or a plain calendar date.
func ParseBarTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
