package backtest

import "time"

// Params holds the capital and risk configuration for a simulation run.
// All values are explicit — the simulator reads no process-wide tunables.
type Params struct {
	InitialCapital float64 `yaml:"initial_capital"`
	EntryScore     int     `yaml:"entry_score"`     // minimum net score to enter
	ExitScore      int     `yaml:"exit_score"`      // net score at or below which to exit
	RSIEntryCap    float64 `yaml:"rsi_entry_cap"`   // block entries when daily RSI is at or above this
	StopLossPct    float64 `yaml:"stop_loss_pct"`   // e.g. -5
	TakeProfitPct  float64 `yaml:"take_profit_pct"` // e.g. +15
}

// DefaultParams returns the production backtest configuration.
func DefaultParams() Params {
	return Params{
		InitialCapital: 100000,
		EntryScore:     4,
		ExitScore:      -2,
		RSIEntryCap:    65,
		StopLossPct:    -5,
		TakeProfitPct:  15,
	}
}

// Outcome classifies a closed trade.
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
)

// Trade records one completed round trip. PnLPct is the percentage move
// from entry to exit close.
type Trade struct {
	EntryIndex int     `json:"entry_index"`
	ExitIndex  int     `json:"exit_index"`
	EntryPrice float64 `json:"entry_price"`
	ExitPrice  float64 `json:"exit_price"`
	PnLPct     float64 `json:"pnl_pct"`
	Outcome    Outcome `json:"outcome"`
}

// EntryEvent records a FLAT→LONG transition in the signal history.
type EntryEvent struct {
	Index  int       `json:"index"`
	TS     time.Time `json:"ts"`
	Score  int       `json:"score"`
	Action string    `json:"action"` // always "ENTER"
	Price  float64   `json:"price"`
}

// Result is the deterministic summary of one simulation run. Re-running
// with identical inputs and params produces bit-identical output.
type Result struct {
	TotalReturnPct float64      `json:"total_return_pct"`
	BuyAndHoldPct  float64      `json:"buy_and_hold_pct"`
	TradeCount     int          `json:"trade_count"`
	WinCount       int          `json:"win_count"`
	WinRatePct     float64      `json:"win_rate_pct"` // 0 when no trades closed
	FinalCash      float64      `json:"final_cash"`
	MarkedToMarket bool         `json:"marked_to_market"` // position open at end, valued at last close
	Trades         []Trade      `json:"trades"`
	Signals        []EntryEvent `json:"signals"`
}
