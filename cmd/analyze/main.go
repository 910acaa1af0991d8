// Command analyze runs one multi-timeframe analysis over a historical
// bar series and prints the per-timeframe snapshots and the composite
// score as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"backtest-systemv1/config"
	"backtest-systemv1/internal/loader"
	"backtest-systemv1/internal/model"
	"backtest-systemv1/internal/store/sqlite"
	"backtest-systemv1/internal/strategy"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("csv", "", "load bars from a CSV file")
	jsonPath := flag.String("json", "", "load bars from a JSON file")
	symbol := flag.String("symbol", "", "symbol to analyze (overrides config)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[analyze] config: %v", err)
	}
	if *symbol != "" {
		cfg.Symbol = *symbol
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[analyze] config: %v", err)
	}

	var bars []model.Bar
	switch {
	case *csvPath != "":
		bars, err = loader.FromCSV(*csvPath)
	case *jsonPath != "":
		bars, err = loader.FromJSON(*jsonPath)
	default:
		var store *sqlite.Store
		store, err = sqlite.Open(cfg.Data.SQLitePath)
		if err != nil {
			log.Fatalf("[analyze] open store: %v", err)
		}
		defer store.Close()
		bars, err = store.ReadBars(cfg.Symbol, time.Time{})
	}
	if err != nil {
		log.Fatalf("[analyze] load: %v", err)
	}

	analysis, err := strategy.Analyze(bars, cfg.Weights, cfg.Strategy)
	if err != nil {
		log.Fatalf("[analyze] %v", err)
	}

	fmt.Printf("%s @ %s: %s (%s, net %+d)\n",
		cfg.Symbol, bars[len(bars)-1].TS.Format("2006-01-02"),
		analysis.Score.Action, analysis.Score.Confidence, analysis.Score.Net)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysis); err != nil {
		log.Fatalf("[analyze] encode: %v", err)
	}
}
