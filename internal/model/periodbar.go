package model

// PeriodBar is a calendar-bucketed bar resampled from daily closes.
// Key identifies the bucket ("2024-W05" for ISO weeks, "2024-03" for
// months) and sorts in calendar order. OHLC values are derived from
// daily closes only: Open is the first close seen in the period, High
// and Low track the running max/min of closes.
type PeriodBar struct {
	Key   string  `json:"key"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}
