package strategy

// Action is the discrete trading decision derived from the net score.
type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionHold       Action = "HOLD"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG_SELL"
)

// Confidence grades how decisive the net score is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Net score thresholds for action mapping.
const (
	strongThreshold   = 5
	moderateThreshold = 2
)

// Weights holds the additive contribution of each signal. Higher
// timeframes dominate: the monthly trend alone outweighs every daily
// signal combined.
type Weights struct {
	MonthlyTrend int `yaml:"monthly_trend"`
	WeeklyTrend  int `yaml:"weekly_trend"`
	WeeklyMACD   int `yaml:"weekly_macd"`
	DailyTrend   int `yaml:"daily_trend"`
	DailyMACD    int `yaml:"daily_macd"`
	DailyRSI     int `yaml:"daily_rsi"`
}

// DefaultWeights returns the production weighting: 3/2/1/1/1 plus the
// RSI bonus point.
func DefaultWeights() Weights {
	return Weights{
		MonthlyTrend: 3,
		WeeklyTrend:  2,
		WeeklyMACD:   1,
		DailyTrend:   1,
		DailyMACD:    1,
		DailyRSI:     1,
	}
}

// ScoreResult is the composite scoring outcome. Reasons lists a tag for
// every signal that contributed, in fixed evaluation order.
type ScoreResult struct {
	BullScore  int        `json:"bull_score"`
	BearScore  int        `json:"bear_score"`
	Net        int        `json:"net"`
	Action     Action     `json:"action"`
	Confidence Confidence `json:"confidence"`
	Reasons    []string   `json:"reasons"`
}

// Score combines one snapshot per timeframe into a weighted decision.
// Evaluation order is fixed: monthly trend, weekly trend, weekly MACD,
// daily trend, daily MACD, daily RSI.
func Score(w Weights, monthly, weekly, daily Snapshot) ScoreResult {
	var res ScoreResult

	res.scoreTrend("Monthly", monthly.Trend, w.MonthlyTrend)
	res.scoreTrend("Weekly", weekly.Trend, w.WeeklyTrend)
	res.scoreMACD("Weekly", weekly.MACD, w.WeeklyMACD)
	res.scoreTrend("Daily", daily.Trend, w.DailyTrend)
	res.scoreMACD("Daily", daily.MACD, w.DailyMACD)

	switch daily.RSIZone {
	case RSIOversold:
		res.BullScore += w.DailyRSI
		res.Reasons = append(res.Reasons, "Daily Oversold")
	case RSIOverbought:
		res.BearScore += w.DailyRSI
		res.Reasons = append(res.Reasons, "Daily Overbought")
	}

	res.Net = res.BullScore - res.BearScore
	res.Action, res.Confidence = mapAction(res.Net)
	return res
}

// scoreTrend applies a trend signal: UP counts bullish, anything else
// (DOWN or NEUTRAL) counts bearish.
func (r *ScoreResult) scoreTrend(tf string, tr Trend, weight int) {
	if tr == TrendUp {
		r.BullScore += weight
	} else {
		r.BearScore += weight
	}
	r.Reasons = append(r.Reasons, tf+" "+string(tr))
}

func (r *ScoreResult) scoreMACD(tf string, st MACDStance, weight int) {
	if st == MACDBullish {
		r.BullScore += weight
		r.Reasons = append(r.Reasons, tf+" MACD Bullish")
	} else {
		r.BearScore += weight
		r.Reasons = append(r.Reasons, tf+" MACD Bearish")
	}
}

func mapAction(net int) (Action, Confidence) {
	switch {
	case net >= strongThreshold:
		return ActionStrongBuy, ConfidenceHigh
	case net >= moderateThreshold:
		return ActionBuy, ConfidenceMedium
	case net <= -strongThreshold:
		return ActionStrongSell, ConfidenceHigh
	case net <= -moderateThreshold:
		return ActionSell, ConfidenceMedium
	default:
		return ActionHold, ConfidenceLow
	}
}
