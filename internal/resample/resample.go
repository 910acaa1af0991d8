// Package resample folds an ascending daily bar sequence into calendar
// period buckets (ISO weeks or months). A bucket closes when the period
// key changes; the final, possibly partial, bucket is always flushed.
//
// Buckets are built from daily CLOSES only: a new bucket is seeded with
// the close of the bar that opens it (open=high=low=close), and later
// bars in the same period fold high=max(high,close), low=min(low,close),
// close=close. The true intraday open is deliberately ignored — the
// backtest thresholds were calibrated against this convention.
package resample

import (
	"fmt"

	"backtest-systemv1/internal/model"
)

// ToWeekly buckets daily bars by ISO week (year + week number).
func ToWeekly(bars []model.Bar) []model.PeriodBar {
	return byPeriod(bars, weekKey)
}

// ToMonthly buckets daily bars by calendar month (year + month).
func ToMonthly(bars []model.Bar) []model.PeriodBar {
	return byPeriod(bars, monthKey)
}

func weekKey(b model.Bar) string {
	year, week := b.TS.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func monthKey(b model.Bar) string {
	return fmt.Sprintf("%04d-%02d", b.TS.Year(), int(b.TS.Month()))
}

// byPeriod walks bars in order, closing the open bucket whenever keyFn
// changes. Zero bars yield zero buckets; a single bar yields exactly one.
func byPeriod(bars []model.Bar, keyFn func(model.Bar) string) []model.PeriodBar {
	var out []model.PeriodBar
	var cur model.PeriodBar
	open := false

	for _, b := range bars {
		key := keyFn(b)
		if !open || key != cur.Key {
			if open {
				out = append(out, cur)
			}
			cur = model.PeriodBar{
				Key:   key,
				Open:  b.Close,
				High:  b.Close,
				Low:   b.Close,
				Close: b.Close,
			}
			open = true
			continue
		}

		if b.Close > cur.High {
			cur.High = b.Close
		}
		if b.Close < cur.Low {
			cur.Low = b.Close
		}
		cur.Close = b.Close
	}

	if open {
		out = append(out, cur)
	}
	return out
}

// Closes extracts the close sequence from a resampled series.
func Closes(periods []model.PeriodBar) []float64 {
	closes := make([]float64, len(periods))
	for i := range periods {
		closes[i] = periods[i].Close
	}
	return closes
}
