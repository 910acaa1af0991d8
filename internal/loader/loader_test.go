package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromCSV_HappyPath(t *testing.T) {
	path := writeTemp(t, "bars.csv", `ts,open,high,low,close,volume
2024-01-02,100,101,99,100.5,1200
2024-01-03,100.5,102,100,101.5,1100
`)

	bars, err := FromCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 2 {
		t.Fatalf("len = %d, want 2", len(bars))
	}
	if bars[1].Close != 101.5 {
		t.Fatalf("close = %v, want 101.5", bars[1].Close)
	}
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !bars[0].TS.Equal(want) {
		t.Fatalf("ts = %s, want %s", bars[0].TS, want)
	}
}

func TestFromCSV_ShuffledHeader(t *testing.T) {
	path := writeTemp(t, "bars.csv", `Close,Volume,TS,Open,High,Low
100.5,1200,2024-01-02,100,101,99
`)

	bars, err := FromCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if bars[0].Close != 100.5 || bars[0].Low != 99 {
		t.Fatalf("parsed %+v", bars[0])
	}
}

func TestFromCSV_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad number", "ts,open,high,low,close,volume\n2024-01-02,100,101,99,abc,1200\n"},
		{"missing column", "ts,open,high,low,volume\n2024-01-02,100,101,99,1200\n"},
		{"out of order", "ts,open,high,low,close,volume\n2024-01-03,1,1,1,1,0\n2024-01-02,1,1,1,1,0\n"},
		{"bad date", "ts,open,high,low,close,volume\nyesterday,1,1,1,1,0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeTemp(t, "bars.csv", c.content)
			if _, err := FromCSV(path); err == nil {
				t.Fatal("accepted bad input")
			}
		})
	}
}

func TestFromJSON_HappyPath(t *testing.T) {
	path := writeTemp(t, "bars.json", `[
		{"ts":"2024-01-02","open":100,"high":101,"low":99,"close":"100.5","volume":1200},
		{"ts":"2024-01-03","open":100.5,"high":102,"low":100,"close":101.5,"volume":1100}
	]`)

	bars, err := FromJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 2 || bars[0].Close != 100.5 {
		t.Fatalf("parsed %+v", bars)
	}
}

func TestFromJSON_RejectsOutOfOrder(t *testing.T) {
	path := writeTemp(t, "bars.json", `[
		{"ts":"2024-01-03","open":1,"high":1,"low":1,"close":1,"volume":0},
		{"ts":"2024-01-02","open":1,"high":1,"low":1,"close":1,"volume":0}
	]`)

	if _, err := FromJSON(path); err == nil {
		t.Fatal("accepted out-of-order series")
	}
}
