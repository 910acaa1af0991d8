package sqlite

import (
	"fmt"
	"time"

	"backtest-systemv1/internal/model"
)

// ReadBars returns all daily bars for symbol with ts strictly after
// the given time, in ascending timestamp order. A zero time returns
// the full history.
func (s *Store) ReadBars(symbol string, after time.Time) ([]model.Bar, error) {
	rows, err := s.db.Query(`SELECT ts, open, high, low, close, volume
		FROM bars_daily WHERE symbol = ? AND ts > ? ORDER BY ts ASC`,
		symbol, after.Unix())
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var ts int64
		var b model.Bar
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.TS = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bars: %w", err)
	}
	return bars, nil
}

// LatestRun returns the most recent backtest result summary for symbol,
// or sql.ErrNoRows via the wrapped error when none exists.
func (s *Store) LatestRun(symbol string) (*RunSummary, error) {
	var r RunSummary
	var started int64
	var marked int
	err := s.db.QueryRow(`SELECT id, started_at, total_return_pct, buy_hold_pct,
		trade_count, win_count, win_rate_pct, final_cash, marked_to_market
		FROM backtest_runs WHERE symbol = ? ORDER BY id DESC LIMIT 1`, symbol).
		Scan(&r.ID, &started, &r.TotalReturnPct, &r.BuyAndHoldPct,
			&r.TradeCount, &r.WinCount, &r.WinRatePct, &r.FinalCash, &marked)
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	r.StartedAt = time.Unix(started, 0).UTC()
	r.MarkedToMarket = marked != 0
	return &r, nil
}

// RunSummary is a stored backtest run header.
type RunSummary struct {
	ID             int64
	StartedAt      time.Time
	TotalReturnPct float64
	BuyAndHoldPct  float64
	TradeCount     int
	WinCount       int
	WinRatePct     float64
	FinalCash      float64
	MarkedToMarket bool
}
