package strategy

import (
	"fmt"

	"backtest-systemv1/internal/model"
	"backtest-systemv1/internal/resample"
)

// Analysis is the full multi-timeframe view at the latest bar: one
// snapshot per timeframe plus the composite score.
type Analysis struct {
	Monthly Snapshot    `json:"monthly"`
	Weekly  Snapshot    `json:"weekly"`
	Daily   Snapshot    `json:"daily"`
	Score   ScoreResult `json:"score"`
}

// Analyze resamples the daily series into true weekly and monthly
// sequences, snapshots each timeframe at its latest index, and scores
// the combination.
//
// Note the backtest simulator does NOT take this path: inside its loop
// it substitutes longer daily SMA windows for the higher timeframes.
func Analyze(bars []model.Bar, w Weights, p Params) (*Analysis, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("analyze: no bars")
	}

	daily := model.Closes(bars)
	weekly := resample.Closes(resample.ToWeekly(bars))
	monthly := resample.Closes(resample.ToMonthly(bars))

	a := &Analysis{
		Monthly: BuildSnapshot(monthly, p),
		Weekly:  BuildSnapshot(weekly, p),
		Daily:   BuildSnapshot(daily, p),
	}
	a.Score = Score(w, a.Monthly, a.Weekly, a.Daily)
	return a, nil
}
