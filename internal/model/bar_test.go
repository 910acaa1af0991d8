package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestUnmarshalBar_NumbersAndStrings(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"numbers", `{"ts":"2024-01-15","open":100,"high":101.5,"low":99,"close":100.5,"volume":1200}`},
		{"strings", `{"ts":"2024-01-15","open":"100","high":"101.5","low":"99","close":"100.5","volume":"1200"}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b Bar
			if err := json.Unmarshal([]byte(c.in), &b); err != nil {
				t.Fatal(err)
			}
			if b.Close != 100.5 || b.High != 101.5 || b.Volume != 1200 {
				t.Fatalf("parsed %+v", b)
			}
			want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
			if !b.TS.Equal(want) {
				t.Fatalf("ts = %s, want %s", b.TS, want)
			}
		})
	}
}

func TestUnmarshalBar_UnixSeconds(t *testing.T) {
	var b Bar
	in := `{"ts":1705276800,"open":1,"high":1,"low":1,"close":1,"volume":0}`
	if err := json.Unmarshal([]byte(in), &b); err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !b.TS.Equal(want) {
		t.Fatalf("ts = %s, want %s", b.TS, want)
	}
}

func TestUnmarshalBar_RejectsMalformed(t *testing.T) {
	cases := []string{
		`{"ts":"2024-01-15","open":"abc","high":1,"low":1,"close":1,"volume":0}`,
		`{"ts":"2024-01-15","high":1,"low":1,"close":1,"volume":0}`, // missing open
		`{"ts":"not a date","open":1,"high":1,"low":1,"close":1,"volume":0}`,
		`{"ts":"2024-01-15","open":1,"high":1,"low":1,"close":"","volume":0}`,
	}
	for _, in := range cases {
		var b Bar
		if err := json.Unmarshal([]byte(in), &b); err == nil {
			t.Fatalf("accepted malformed bar: %s", in)
		}
	}
}

func TestValidate_RejectsNonFinite(t *testing.T) {
	ts := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	b := Bar{TS: ts, Open: 1, High: 1, Low: 1, Close: math.NaN(), Volume: 0}
	if err := b.Validate(); err == nil {
		t.Fatal("NaN close accepted")
	}
	b = Bar{TS: ts, Open: math.Inf(1), High: 1, Low: 1, Close: 1, Volume: 0}
	if err := b.Validate(); err == nil {
		t.Fatal("Inf open accepted")
	}
	b = Bar{Open: 1, High: 1, Low: 1, Close: 1, Volume: 0}
	if err := b.Validate(); err == nil {
		t.Fatal("zero timestamp accepted")
	}
}

func TestValidateSeries_OrderingEnforced(t *testing.T) {
	day := func(d int) Bar {
		return Bar{
			TS:    time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC),
			Open:  1, High: 1, Low: 1, Close: 1,
		}
	}

	if err := ValidateSeries([]Bar{day(1), day(2), day(3)}); err != nil {
		t.Fatalf("ascending series rejected: %v", err)
	}
	if err := ValidateSeries([]Bar{day(1), day(3), day(2)}); err == nil {
		t.Fatal("out-of-order series accepted")
	}
	if err := ValidateSeries([]Bar{day(1), day(1)}); err == nil {
		t.Fatal("duplicate timestamp accepted")
	}
}

func TestParseBarTime(t *testing.T) {
	if _, err := ParseBarTime("2024-01-15"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseBarTime("2024-01-15T09:30:00Z"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseBarTime("15/01/2024"); err == nil {
		t.Fatal("accepted unsupported format")
	}
}
