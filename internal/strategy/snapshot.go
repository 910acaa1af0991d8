// Package strategy converts per-timeframe indicator snapshots into a
// weighted bull/bear score and a discrete trading action.
package strategy

import (
	"backtest-systemv1/internal/indicator"
)

// Trend classifies the direction of one timeframe.
type Trend string

const (
	TrendUp      Trend = "UP"
	TrendDown    Trend = "DOWN"
	TrendNeutral Trend = "NEUTRAL"
)

// MACDStance classifies the MACD line relative to its signal line.
type MACDStance string

const (
	MACDBullish MACDStance = "BULLISH"
	MACDBearish MACDStance = "BEARISH"
)

// RSIZone classifies RSI against the configured thresholds. An undefined
// RSI maps to RSINeutral: a signal that cannot be evaluated contributes
// nothing to the score.
type RSIZone string

const (
	RSIOversold   RSIZone = "OVERSOLD"
	RSIOverbought RSIZone = "OVERBOUGHT"
	RSINeutral    RSIZone = "NEUTRAL"
)

// Params holds the indicator windows and RSI thresholds used to build
// snapshots. Passed explicitly — there are no package-level tunables.
type Params struct {
	FastSMAPeriod int     `yaml:"fast_sma_period"`
	SlowSMAPeriod int     `yaml:"slow_sma_period"`
	RSIPeriod     int     `yaml:"rsi_period"`
	RSIOverbought float64 `yaml:"rsi_overbought"`
	RSIOversold   float64 `yaml:"rsi_oversold"`
}

// DefaultParams returns the standard windows: SMA 20/50, RSI 14 with
// 70/30 thresholds.
func DefaultParams() Params {
	return Params{
		FastSMAPeriod: 20,
		SlowSMAPeriod: 50,
		RSIPeriod:     14,
		RSIOverbought: 70,
		RSIOversold:   30,
	}
}

// Snapshot captures one timeframe's indicator state at its latest index.
type Snapshot struct {
	Trend   Trend           `json:"trend"`
	MACD    MACDStance      `json:"macd"`
	RSI     indicator.Value `json:"-"`
	RSIZone RSIZone         `json:"rsi_zone"`
}

// BuildSnapshot evaluates the latest index of a close sequence into a
// Snapshot using the given params.
func BuildSnapshot(closes []float64, p Params) Snapshot {
	last := len(closes) - 1
	if last < 0 {
		return Snapshot{Trend: TrendNeutral, MACD: MACDBearish, RSIZone: RSINeutral}
	}

	fast := indicator.SMA(closes, p.FastSMAPeriod).At(last)
	macd := indicator.MACD(closes)
	rsi := indicator.RSI(closes, p.RSIPeriod).At(last)

	return Snapshot{
		Trend:   TrendOf(closes[last], fast),
		MACD:    StanceOf(macd.Line[last], macd.Signal[last]),
		RSI:     rsi,
		RSIZone: ZoneOf(rsi, p),
	}
}

// TrendOf compares a close against a moving average. An undefined average
// or an exact tie is NEUTRAL — never a false UP.
func TrendOf(close float64, ma indicator.Value) Trend {
	if !ma.Defined {
		return TrendNeutral
	}
	switch {
	case close > ma.V:
		return TrendUp
	case close < ma.V:
		return TrendDown
	default:
		return TrendNeutral
	}
}

// CrossOf compares two moving averages (fast over slow reads bullish).
func CrossOf(fast, slow indicator.Value) Trend {
	if !fast.Defined || !slow.Defined {
		return TrendNeutral
	}
	switch {
	case fast.V > slow.V:
		return TrendUp
	case fast.V < slow.V:
		return TrendDown
	default:
		return TrendNeutral
	}
}

// StanceOf classifies the MACD line against its signal line.
func StanceOf(line, signal float64) MACDStance {
	if line > signal {
		return MACDBullish
	}
	return MACDBearish
}

// ZoneOf classifies an RSI value against the configured thresholds.
func ZoneOf(rsi indicator.Value, p Params) RSIZone {
	if !rsi.Defined {
		return RSINeutral
	}
	switch {
	case rsi.V < p.RSIOversold:
		return RSIOversold
	case rsi.V > p.RSIOverbought:
		return RSIOverbought
	default:
		return RSINeutral
	}
}
