// Package backtest replays a historical daily bar series bar-by-bar
// through the composite scorer and a single-position state machine,
// producing a deterministic trade log and return summary.
//
// The loop is fully synchronous and free of look-ahead: the decision at
// index i uses only series values at or before i.
package backtest

import (
	"fmt"

	"backtest-systemv1/internal/indicator"
	"backtest-systemv1/internal/model"
	"backtest-systemv1/internal/strategy"
)

// Simulator walks a daily bar sequence with a FLAT/LONG state machine.
// The position is all-or-nothing: at every step the account is either
// fully in cash or fully invested, never split.
type Simulator struct {
	params  Params
	strat   strategy.Params
	weights strategy.Weights
}

// New creates a Simulator with explicit, immutable configuration.
func New(p Params, sp strategy.Params, w strategy.Weights) *Simulator {
	return &Simulator{params: p, strat: sp, weights: w}
}

// Run simulates the full bar sequence and returns the summary. The input
// must already be validated (finite fields, ascending timestamps).
//
// Inside the loop, higher timeframes are approximated from the daily
// series itself: the slow SMA stands in for the weekly trend and the
// fast/slow crossover for the monthly trend. This proxy shortcut is kept
// deliberately in place of the resampled series that strategy.Analyze
// uses — reconciling the two changes historical results.
func (s *Simulator) Run(bars []model.Bar) (*Result, error) {
	warmUp := s.strat.SlowSMAPeriod
	if s.strat.FastSMAPeriod > warmUp {
		warmUp = s.strat.FastSMAPeriod
	}
	start := warmUp - 1 // first index where the longest SMA is defined
	if start < 0 || len(bars) <= start {
		return nil, fmt.Errorf("backtest: need more than %d bars, have %d", start, len(bars))
	}

	closes := model.Closes(bars)
	smaFast := indicator.SMA(closes, s.strat.FastSMAPeriod)
	smaSlow := indicator.SMA(closes, s.strat.SlowSMAPeriod)
	rsi := indicator.RSI(closes, s.strat.RSIPeriod)
	macd := indicator.MACD(closes)

	res := &Result{}
	cash := s.params.InitialCapital
	shares := 0.0
	entryPrice := 0.0
	entryIndex := 0

	for i := start; i < len(closes); i++ {
		score := s.scoreAt(i, closes, smaFast, smaSlow, rsi, macd)

		if shares == 0 {
			if score.Net >= s.params.EntryScore && s.rsiAllowsEntry(rsi.At(i)) {
				entryPrice = closes[i]
				entryIndex = i
				shares = cash / entryPrice
				cash = 0
				res.Signals = append(res.Signals, EntryEvent{
					Index:  i,
					TS:     bars[i].TS,
					Score:  score.Net,
					Action: "ENTER",
					Price:  entryPrice,
				})
			}
			continue
		}

		pnlPct := (closes[i] - entryPrice) / entryPrice * 100
		if score.Net <= s.params.ExitScore || pnlPct <= s.params.StopLossPct || pnlPct >= s.params.TakeProfitPct {
			cash = shares * closes[i]
			shares = 0

			outcome := OutcomeLoss
			if pnlPct > 0 {
				outcome = OutcomeWin
				res.WinCount++
			}
			res.TradeCount++
			res.Trades = append(res.Trades, Trade{
				EntryIndex: entryIndex,
				ExitIndex:  i,
				EntryPrice: entryPrice,
				ExitPrice:  closes[i],
				PnLPct:     pnlPct,
				Outcome:    outcome,
			})
			entryPrice = 0
		}
	}

	// Still LONG at the end: mark to market at the final close without
	// recording a trade event.
	if shares > 0 {
		cash = shares * closes[len(closes)-1]
		shares = 0
		res.MarkedToMarket = true
	}

	res.FinalCash = cash
	res.TotalReturnPct = (cash - s.params.InitialCapital) / s.params.InitialCapital * 100
	res.BuyAndHoldPct = (closes[len(closes)-1] - closes[start]) / closes[start] * 100
	if res.TradeCount > 0 {
		res.WinRatePct = float64(res.WinCount) / float64(res.TradeCount) * 100
	}
	return res, nil
}

// scoreAt builds the three proxy snapshots for index i and scores them
// with the same additive scheme the multi-timeframe analyzer uses.
func (s *Simulator) scoreAt(i int, closes []float64, smaFast, smaSlow, rsi indicator.Series, macd indicator.MACDResult) strategy.ScoreResult {
	stance := strategy.StanceOf(macd.Line[i], macd.Signal[i])
	rsiVal := rsi.At(i)

	daily := strategy.Snapshot{
		Trend:   strategy.TrendOf(closes[i], smaFast.At(i)),
		MACD:    stance,
		RSI:     rsiVal,
		RSIZone: strategy.ZoneOf(rsiVal, s.strat),
	}
	weekly := strategy.Snapshot{
		Trend:   strategy.TrendOf(closes[i], smaSlow.At(i)),
		MACD:    stance,
		RSIZone: strategy.RSINeutral,
	}
	monthly := strategy.Snapshot{
		Trend:   strategy.CrossOf(smaFast.At(i), smaSlow.At(i)),
		MACD:    stance,
		RSIZone: strategy.RSINeutral,
	}

	return strategy.Score(s.weights, monthly, weekly, daily)
}

// rsiAllowsEntry gates entries against an overbought daily RSI. An
// undefined RSI cannot be evaluated and therefore does not block.
func (s *Simulator) rsiAllowsEntry(rsi indicator.Value) bool {
	if !rsi.Defined {
		return true
	}
	return rsi.V < s.params.RSIEntryCap
}
