package resample

import (
	"testing"
	"time"

	"backtest-systemv1/internal/model"
)

// dailyBar creates a daily test bar on the given date with the given close.
func dailyBar(year int, month time.Month, day int, close float64) model.Bar {
	return model.Bar{
		TS:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Open:   close - 1,
		High:   close + 2,
		Low:    close - 2,
		Close:  close,
		Volume: 1000,
	}
}

func TestToWeekly_TwoFullISOWeeks(t *testing.T) {
	// 2024-01-01 is a Monday: days 1-7 fall in 2024-W01, days 8-14 in 2024-W02.
	var bars []model.Bar
	closes := []float64{100, 102, 101, 105, 104, 103, 106, 90, 95, 92, 99, 98, 97, 96}
	for i, c := range closes {
		bars = append(bars, dailyBar(2024, time.January, 1+i, c))
	}

	weeks := ToWeekly(bars)
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weekly buckets, got %d", len(weeks))
	}

	w1 := weeks[0]
	if w1.Key != "2024-W01" {
		t.Errorf("week 1 key: expected 2024-W01, got %s", w1.Key)
	}
	if w1.Open != 100 {
		t.Errorf("week 1 open: expected 100 (first close), got %v", w1.Open)
	}
	if w1.High != 106 {
		t.Errorf("week 1 high: expected 106 (max close), got %v", w1.High)
	}
	if w1.Low != 100 {
		t.Errorf("week 1 low: expected 100 (min close), got %v", w1.Low)
	}
	if w1.Close != 106 {
		t.Errorf("week 1 close: expected 106 (last close), got %v", w1.Close)
	}

	w2 := weeks[1]
	if w2.Key != "2024-W02" {
		t.Errorf("week 2 key: expected 2024-W02, got %s", w2.Key)
	}
	if w2.High != 99 {
		t.Errorf("week 2 high: expected 99, got %v", w2.High)
	}
	if w2.Low != 90 {
		t.Errorf("week 2 low: expected 90, got %v", w2.Low)
	}
	if w2.Close != 96 {
		t.Errorf("week 2 close: expected 96, got %v", w2.Close)
	}
}

func TestToWeekly_KeysAscending(t *testing.T) {
	var bars []model.Bar
	ts := time.Date(2024, time.November, 18, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		bars = append(bars, model.Bar{TS: ts, Close: 100 + float64(i)})
		ts = ts.AddDate(0, 0, 1)
	}

	weeks := ToWeekly(bars)
	for i := 1; i < len(weeks); i++ {
		if weeks[i].Key <= weeks[i-1].Key {
			t.Errorf("week keys not ascending: %s after %s", weeks[i].Key, weeks[i-1].Key)
		}
	}
}

func TestToMonthly_Boundaries(t *testing.T) {
	bars := []model.Bar{
		dailyBar(2024, time.January, 30, 100),
		dailyBar(2024, time.January, 31, 110),
		dailyBar(2024, time.February, 1, 105),
		dailyBar(2024, time.February, 29, 95), // leap day
		dailyBar(2024, time.March, 1, 120),
	}

	months := ToMonthly(bars)
	if len(months) != 3 {
		t.Fatalf("expected 3 monthly buckets, got %d", len(months))
	}
	if months[0].Key != "2024-01" || months[1].Key != "2024-02" || months[2].Key != "2024-03" {
		t.Errorf("unexpected keys: %s, %s, %s", months[0].Key, months[1].Key, months[2].Key)
	}
	if months[1].Open != 105 {
		t.Errorf("feb open: expected 105 (first close of period), got %v", months[1].Open)
	}
	if months[1].Low != 95 || months[1].High != 105 {
		t.Errorf("feb high/low: expected 105/95, got %v/%v", months[1].High, months[1].Low)
	}
	// Partial final month is retained
	if months[2].Open != 120 || months[2].Close != 120 {
		t.Errorf("mar bucket: expected 120/120, got %v/%v", months[2].Open, months[2].Close)
	}
}

func TestByPeriod_EmptyAndSingle(t *testing.T) {
	if got := ToWeekly(nil); len(got) != 0 {
		t.Errorf("empty input: expected 0 buckets, got %d", len(got))
	}

	one := ToMonthly([]model.Bar{dailyBar(2024, time.June, 14, 250)})
	if len(one) != 1 {
		t.Fatalf("single bar: expected 1 bucket, got %d", len(one))
	}
	b := one[0]
	if b.Open != 250 || b.High != 250 || b.Low != 250 || b.Close != 250 {
		t.Errorf("single-bar bucket should be seeded from the close: %+v", b)
	}
}

func TestToWeekly_YearBoundary(t *testing.T) {
	// Dec 30-31 2024 (Mon-Tue) and Jan 1-3 2025 all share ISO week 2025-W01.
	bars := []model.Bar{
		dailyBar(2024, time.December, 30, 100),
		dailyBar(2024, time.December, 31, 101),
		dailyBar(2025, time.January, 1, 102),
		dailyBar(2025, time.January, 2, 103),
		dailyBar(2025, time.January, 3, 104),
	}

	weeks := ToWeekly(bars)
	if len(weeks) != 1 {
		t.Fatalf("expected 1 bucket across the year boundary, got %d", len(weeks))
	}
	if weeks[0].Key != "2025-W01" {
		t.Errorf("expected key 2025-W01, got %s", weeks[0].Key)
	}
	if weeks[0].Close != 104 {
		t.Errorf("expected close 104, got %v", weeks[0].Close)
	}
}
