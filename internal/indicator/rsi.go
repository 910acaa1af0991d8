package indicator

// RSI computes the Relative Strength Index series. Output[i] is undefined
// for i < period; from there on, gains and losses are fully recomputed by
// summing the positive and negative deltas over the trailing `period`
// deltas (an O(n·period) pass, not Wilder's exponential smoothing).
//
// When the trailing window has zero losses, RS is pinned to 100, which
// yields RSI ≈ 99.0099 instead of 100. Downstream thresholds were tuned
// against this value, so the approximation is kept.
func RSI(prices []float64, period int) Series {
	out := make(Series, len(prices))
	if period < 1 {
		return out
	}

	for i := period; i < len(prices); i++ {
		gains := 0.0
		losses := 0.0
		for j := i - period + 1; j <= i; j++ {
			delta := prices[j] - prices[j-1]
			if delta > 0 {
				gains += delta
			} else {
				losses += -delta
			}
		}

		rs := 100.0
		if losses != 0 {
			rs = gains / losses
		}
		out[i] = Def(100.0 - 100.0/(1.0+rs))
	}
	return out
}
