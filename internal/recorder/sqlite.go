package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"StockLens/internal/grid"
)

// SQLiteRecorder persists runs to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard-side readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id               TEXT PRIMARY KEY,
			created_at       INTEGER NOT NULL,
			kind             TEXT NOT NULL,
			trade_date       TEXT NOT NULL,
			total_stocks     INTEGER,
			gainers          INTEGER,
			losers           INTEGER,
			avg_volatility   REAL,
			mood             TEXT,
			portfolio_value  REAL,
			portfolio_change REAL,
			portfolio_pct    REAL,
			duration_ms      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

		`CREATE TABLE IF NOT EXISTS stock_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			symbol       TEXT NOT NULL,
			sector       TEXT,
			open         REAL,
			close        REAL,
			high         REAL,
			high_time    TEXT,
			low          REAL,
			low_time     TEXT,
			change       REAL,
			change_pct   REAL,
			green_shadow REAL,
			red_shadow   REAL,
			trend        TEXT,
			signal       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_run ON stock_snapshots(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol ON stock_snapshots(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunSummary, stocks []StockSnapshot) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, created_at, kind, trade_date, total_stocks, gainers, losers,
		 avg_volatility, mood, portfolio_value, portfolio_change, portfolio_pct, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, time.Now().Unix(), string(run.Kind), run.Date.Format(grid.DateLayout),
		run.TotalStocks, run.GainerCount, run.LoserCount,
		run.AvgVolatility, run.Mood,
		run.PortfolioValue, run.PortfolioChange, run.PortfolioPct,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO stock_snapshots
		(run_id, symbol, sector, open, close, high, high_time, low, low_time,
		 change, change_pct, green_shadow, red_shadow, trend, signal)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return "", fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stocks {
		_, err := stmt.Exec(id, s.Symbol, s.Sector,
			s.Open, s.Close, s.High, s.HighTime.String(), s.Low, s.LowTime.String(),
			s.Change, nullableFloat(s.ChangePct), s.GreenShadow, s.RedShadow,
			s.Trend, s.Signal,
		)
		if err != nil {
			return "", fmt.Errorf("insert snapshot %s: %w", s.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(`SELECT id, kind, trade_date, created_at, total_stocks, mood, portfolio_value
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		var kind string
		var createdAt int64
		if err := rows.Scan(&row.ID, &kind, &row.Date, &createdAt, &row.TotalStocks, &row.Mood, &row.PortfolioValue); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		row.Kind = RunKind(kind)
		row.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
