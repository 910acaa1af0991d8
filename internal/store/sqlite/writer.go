// Package sqlite persists daily bars and backtest runs. A single
// serialized connection in WAL mode keeps writes simple and fast enough
// for batch workloads.
package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"backtest-systemv1/internal/backtest"
	"backtest-systemv1/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS bars_daily (
	symbol TEXT NOT NULL,
	ts     INTEGER NOT NULL,
	open   REAL NOT NULL,
	high   REAL NOT NULL,
	low    REAL NOT NULL,
	close  REAL NOT NULL,
	volume REAL NOT NULL,
	PRIMARY KEY (symbol, ts)
);

CREATE TABLE IF NOT EXISTS backtest_runs (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol           TEXT NOT NULL,
	started_at       INTEGER NOT NULL,
	total_return_pct REAL NOT NULL,
	buy_hold_pct     REAL NOT NULL,
	trade_count      INTEGER NOT NULL,
	win_count        INTEGER NOT NULL,
	win_rate_pct     REAL NOT NULL,
	final_cash       REAL NOT NULL,
	marked_to_market INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS backtest_trades (
	run_id      INTEGER NOT NULL REFERENCES backtest_runs(id),
	entry_index INTEGER NOT NULL,
	exit_index  INTEGER NOT NULL,
	entry_price REAL NOT NULL,
	exit_price  REAL NOT NULL,
	pnl_pct     REAL NOT NULL,
	outcome     TEXT NOT NULL
);
`

// Store wraps a sqlite database holding bars and backtest results.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path in WAL mode.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite handles one writer; serialize at the pool level.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Printf("[sqlite] opened %s", path)
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the connection is alive.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// WriteBars upserts a batch of daily bars for symbol in one transaction.
func (s *Store) WriteBars(symbol string, bars []model.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO bars_daily
		(symbol, ts, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.TS.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar %s: %w", b.TS.Format(time.RFC3339), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	log.Printf("[sqlite] wrote %d bars for %s", len(bars), symbol)
	return nil
}

// SaveRun persists one backtest result with its trade log and returns
// the run id.
func (s *Store) SaveRun(symbol string, res *backtest.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	marked := 0
	if res.MarkedToMarket {
		marked = 1
	}
	out, err := tx.Exec(`INSERT INTO backtest_runs
		(symbol, started_at, total_return_pct, buy_hold_pct, trade_count,
		 win_count, win_rate_pct, final_cash, marked_to_market)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		symbol, time.Now().Unix(), res.TotalReturnPct, res.BuyAndHoldPct,
		res.TradeCount, res.WinCount, res.WinRatePct, res.FinalCash, marked)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := out.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO backtest_trades
		(run_id, entry_index, exit_index, entry_price, exit_price, pnl_pct, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare trades: %w", err)
	}
	defer stmt.Close()

	for _, t := range res.Trades {
		if _, err := stmt.Exec(runID, t.EntryIndex, t.ExitIndex, t.EntryPrice, t.ExitPrice, t.PnLPct, string(t.Outcome)); err != nil {
			return 0, fmt.Errorf("insert trade: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	log.Printf("[sqlite] saved run %d for %s (%d trades)", runID, symbol, res.TradeCount)
	return runID, nil
}
