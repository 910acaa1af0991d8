package indicator

// SMA computes the Simple Moving Average series. Output[i] is undefined
// for i < period-1; from there on it is the arithmetic mean of the
// trailing `period` closes. A rolling sum keeps the pass O(n).
func SMA(prices []float64, period int) Series {
	out := make(Series, len(prices))
	if period < 1 {
		return out
	}

	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			out[i] = Def(sum / float64(period))
		}
	}
	return out
}
