package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Symbol != "SPY" {
		t.Fatalf("symbol = %q, want SPY", cfg.Symbol)
	}
	if cfg.Strategy.FastSMAPeriod != 20 || cfg.Strategy.SlowSMAPeriod != 50 {
		t.Fatalf("strategy defaults not applied: %+v", cfg.Strategy)
	}
	if cfg.Backtest.InitialCapital != 100000 {
		t.Fatalf("capital = %v, want 100000", cfg.Backtest.InitialCapital)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
symbol: QQQ
strategy:
  fast_sma_period: 10
  slow_sma_period: 30
  rsi_period: 14
  rsi_overbought: 70
  rsi_oversold: 30
backtest:
  initial_capital: 50000
  entry_score: 4
  exit_score: -2
  rsi_entry_cap: 65
  stop_loss_pct: -5
  take_profit_pct: 15
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SYMBOL", "IWM")
	t.Setenv("INITIAL_CAPITAL", "25000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Symbol != "IWM" {
		t.Fatalf("env override lost: symbol = %q", cfg.Symbol)
	}
	if cfg.Backtest.InitialCapital != 25000 {
		t.Fatalf("env override lost: capital = %v", cfg.Backtest.InitialCapital)
	}
	if cfg.Strategy.FastSMAPeriod != 10 || cfg.Strategy.SlowSMAPeriod != 30 {
		t.Fatalf("file values lost: %+v", cfg.Strategy)
	}
}

func TestValidate_CatchesBadRanges(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg
	}

	cfg := base()
	cfg.Strategy.FastSMAPeriod = 50
	cfg.Strategy.SlowSMAPeriod = 20
	if err := cfg.Validate(); err == nil {
		t.Fatal("fast >= slow accepted")
	}

	cfg = base()
	cfg.Strategy.RSIOversold = 80
	if err := cfg.Validate(); err == nil {
		t.Fatal("oversold above overbought accepted")
	}

	cfg = base()
	cfg.Backtest.StopLossPct = 5
	if err := cfg.Validate(); err == nil {
		t.Fatal("positive stop loss accepted")
	}

	cfg = base()
	cfg.Backtest.TakeProfitPct = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative take profit accepted")
	}
}
