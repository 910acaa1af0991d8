package indicator

// EMA computes the Exponential Moving Average series with
// multiplier = 2/(period+1).
//
// The series is seeded with prices[0] rather than an SMA of the first
// `period` closes, so it is defined at every index with no warm-up gap.
// Early values are biased toward the first price; MACD depends on this
// seeding, so it must not be changed.
func EMA(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 {
		return out
	}
	if period < 1 {
		period = 1
	}

	multiplier := 2.0 / float64(period+1)
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = (prices[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}
