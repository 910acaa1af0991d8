// Package config loads application configuration from a YAML file with
// environment variable overrides. All strategy and backtest tunables are
// explicit here — no package reads process-wide defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"backtest-systemv1/internal/backtest"
	"backtest-systemv1/internal/strategy"
)

// Config holds the full application configuration.
type Config struct {
	Symbol string `yaml:"symbol"`

	Data struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"data"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	MetricsAddr string `yaml:"metrics_addr"`

	Schedule struct {
		// 6-field cron spec (with seconds) for the scheduled analyzer.
		AnalyzeCron string `yaml:"analyze_cron"`
	} `yaml:"schedule"`

	Strategy strategy.Params  `yaml:"strategy"`
	Weights  strategy.Weights `yaml:"weights"`
	Backtest backtest.Params  `yaml:"backtest"`
}

// Load reads config from a YAML file (missing file is fine — defaults
// apply), then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Data.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("ANALYZE_CRON"); v != "" {
		cfg.Schedule.AnalyzeCron = v
	}
	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		if capital, err := strconv.ParseFloat(v, 64); err == nil && capital > 0 {
			cfg.Backtest.InitialCapital = capital
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Symbol == "" {
		c.Symbol = "SPY"
	}
	if c.Data.SQLitePath == "" {
		c.Data.SQLitePath = "data/bars.db"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":9090"
	}
	if c.Schedule.AnalyzeCron == "" {
		// Weekdays at 18:00
		c.Schedule.AnalyzeCron = "0 0 18 * * 1-5"
	}
	if c.Strategy == (strategy.Params{}) {
		c.Strategy = strategy.DefaultParams()
	}
	if c.Weights == (strategy.Weights{}) {
		c.Weights = strategy.DefaultWeights()
	}
	if c.Backtest == (backtest.Params{}) {
		c.Backtest = backtest.DefaultParams()
	} else if c.Backtest.InitialCapital == 0 {
		c.Backtest.InitialCapital = backtest.DefaultParams().InitialCapital
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Strategy.FastSMAPeriod <= 0 || c.Strategy.SlowSMAPeriod <= 0 {
		return fmt.Errorf("strategy: SMA periods must be positive")
	}
	if c.Strategy.FastSMAPeriod >= c.Strategy.SlowSMAPeriod {
		return fmt.Errorf("strategy: fast_sma_period must be below slow_sma_period")
	}
	if c.Strategy.RSIPeriod <= 0 {
		return fmt.Errorf("strategy: rsi_period must be positive")
	}
	if c.Strategy.RSIOversold >= c.Strategy.RSIOverbought {
		return fmt.Errorf("strategy: rsi_oversold must be below rsi_overbought")
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest: initial_capital must be positive")
	}
	if c.Backtest.StopLossPct >= 0 {
		return fmt.Errorf("backtest: stop_loss_pct must be negative")
	}
	if c.Backtest.TakeProfitPct <= 0 {
		return fmt.Errorf("backtest: take_profit_pct must be positive")
	}
	return nil
}
