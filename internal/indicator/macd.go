package indicator

// Standard MACD periods.
const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
)

// MACDResult holds the three MACD output sequences, each the same length
// as the input prices. Because EMA here is seeded from index 0, there is
// no undefined region in any of them.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes line = EMA(12) - EMA(26), signal = EMA(line, 9) and
// histogram = line - signal over the given closes.
func MACD(prices []float64) MACDResult {
	fast := EMA(prices, macdFastPeriod)
	slow := EMA(prices, macdSlowPeriod)

	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = fast[i] - slow[i]
	}

	signal := EMA(line, macdSignalPeriod)

	histogram := make([]float64, len(prices))
	for i := range prices {
		histogram[i] = line[i] - signal[i]
	}

	return MACDResult{Line: line, Signal: signal, Histogram: histogram}
}
