// Command backtest runs the single-position simulator over a historical
// daily bar series loaded from CSV, JSON, or the sqlite store, and
// prints a summary. With -save the run and its trade log are persisted.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"backtest-systemv1/config"
	"backtest-systemv1/internal/backtest"
	"backtest-systemv1/internal/loader"
	"backtest-systemv1/internal/model"
	"backtest-systemv1/internal/store/sqlite"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("csv", "", "load bars from a CSV file")
	jsonPath := flag.String("json", "", "load bars from a JSON file")
	dbPath := flag.String("db", "", "load bars from a sqlite database (overrides config path)")
	symbol := flag.String("symbol", "", "symbol to backtest (overrides config)")
	save := flag.Bool("save", false, "persist the run to sqlite")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[backtest] config: %v", err)
	}
	if *symbol != "" {
		cfg.Symbol = *symbol
	}
	if *dbPath != "" {
		cfg.Data.SQLitePath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[backtest] config: %v", err)
	}

	bars, store, err := loadBars(cfg, *csvPath, *jsonPath)
	if err != nil {
		log.Fatalf("[backtest] load: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	sim := backtest.New(cfg.Backtest, cfg.Strategy, cfg.Weights)
	started := time.Now()
	res, err := sim.Run(bars)
	if err != nil {
		log.Fatalf("[backtest] run: %v", err)
	}

	printSummary(cfg.Symbol, bars, res, time.Since(started))

	if *save {
		if store == nil {
			store, err = sqlite.Open(cfg.Data.SQLitePath)
			if err != nil {
				log.Fatalf("[backtest] open store: %v", err)
			}
			defer store.Close()
		}
		runID, err := store.SaveRun(cfg.Symbol, res)
		if err != nil {
			log.Fatalf("[backtest] save: %v", err)
		}
		fmt.Printf("saved as run %d\n", runID)
	}
}

// loadBars picks the bar source: explicit file flags win over sqlite.
// The returned store is non-nil only when sqlite was opened here.
func loadBars(cfg *config.Config, csvPath, jsonPath string) ([]model.Bar, *sqlite.Store, error) {
	switch {
	case csvPath != "":
		bars, err := loader.FromCSV(csvPath)
		return bars, nil, err
	case jsonPath != "":
		bars, err := loader.FromJSON(jsonPath)
		return bars, nil, err
	default:
		store, err := sqlite.Open(cfg.Data.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		bars, err := store.ReadBars(cfg.Symbol, time.Time{})
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		if len(bars) == 0 {
			store.Close()
			return nil, nil, fmt.Errorf("no bars stored for %s", cfg.Symbol)
		}
		return bars, store, nil
	}
}

func printSummary(symbol string, bars []model.Bar, res *backtest.Result, elapsed time.Duration) {
	fmt.Println("┌─────────────────────────────────────────────┐")
	fmt.Printf("│ Backtest: %-33s │\n", symbol)
	fmt.Println("├─────────────────────────────────────────────┤")
	fmt.Printf("│ Bars:            %-26d │\n", len(bars))
	fmt.Printf("│ Period:          %s → %s │\n",
		bars[0].TS.Format("2006-01-02"), bars[len(bars)-1].TS.Format("2006-01-02"))
	fmt.Printf("│ Total return:    %+25.2f%% │\n", res.TotalReturnPct)
	fmt.Printf("│ Buy & hold:      %+25.2f%% │\n", res.BuyAndHoldPct)
	fmt.Printf("│ Trades:          %-26d │\n", res.TradeCount)
	fmt.Printf("│ Wins:            %-26d │\n", res.WinCount)
	fmt.Printf("│ Win rate:        %25.1f%% │\n", res.WinRatePct)
	fmt.Printf("│ Final cash:      %-25.2f │\n", res.FinalCash)
	if res.MarkedToMarket {
		fmt.Println("│ (open position marked to market at close)   │")
	}
	fmt.Println("└─────────────────────────────────────────────┘")
	fmt.Printf("completed in %s\n", elapsed.Round(time.Millisecond))

	if len(res.Trades) > 0 {
		fmt.Println("\ntrades:")
		for i, t := range res.Trades {
			fmt.Printf("  %2d. [%d→%d] %.2f → %.2f  %+6.2f%%  %s\n",
				i+1, t.EntryIndex, t.ExitIndex, t.EntryPrice, t.ExitPrice, t.PnLPct, t.Outcome)
		}
	}
}
