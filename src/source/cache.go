package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zyweven/daily-stock-analysis-sub001/src/logging"
	"github.com/zyweven/daily-stock-analysis-sub001/src/types"
)

// Cache keeps fetched bars in SQLite and serves them while fresh.
// When the upstream fails, whatever is cached is returned instead.
type Cache struct {
	Upstream Fetcher
	MaxAge   time.Duration

	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// OpenCache opens (or creates) the cache database at path and runs migrations.
func OpenCache(path string, upstream Fetcher, maxAge time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	c := &Cache{Upstream: upstream, MaxAge: maxAge, db: db, now: time.Now}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logging.Infof("[source] bar cache opened: %s", path)
	return c, nil
}

func (c *Cache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bars (
			code           TEXT NOT NULL,
			date           TEXT NOT NULL,
			open           REAL,
			high           REAL,
			low            REAL,
			close          REAL NOT NULL,
			volume         REAL,
			amount         REAL,
			change_percent REAL,
			PRIMARY KEY (code, date)
		)`,
		`CREATE TABLE IF NOT EXISTS fetches (
			code       TEXT PRIMARY KEY,
			source     TEXT,
			fetched_at INTEGER NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:30], err)
		}
	}
	return nil
}

func (c *Cache) Name() string { return "cache+" + c.Upstream.Name() }

// Close releases the database.
func (c *Cache) Close() error { return c.db.Close() }

func (c *Cache) Fetch(ctx context.Context, code string, days int) ([]types.Bar, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, fetchedAt, err := c.load(ctx, code, days)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 && (days <= 0 || len(cached) >= days) && c.now().Sub(fetchedAt) < c.MaxAge {
		logging.Debugf("[source] cache hit %s: %d bars", code, len(cached))
		return cached, nil
	}

	fresh, err := c.Upstream.Fetch(ctx, code, days)
	if err != nil {
		if len(cached) > 0 && !errors.Is(err, context.Canceled) {
			logging.Warnf("[source] %s fetch %s failed, serving %d cached bars: %v", c.Upstream.Name(), code, len(cached), err)
			return cached, nil
		}
		return nil, err
	}
	if err := c.store(ctx, code, fresh); err != nil {
		logging.Warnf("[source] cache store %s: %v", code, err)
	}
	return fresh, nil
}

func (c *Cache) load(ctx context.Context, code string, days int) ([]types.Bar, time.Time, error) {
	var ts int64
	err := c.db.QueryRowContext(ctx, `SELECT fetched_at FROM fetches WHERE code = ?`, code).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("cache lookup %s: %w", code, err)
	}
	limit := days
	if limit <= 0 {
		limit = -1
	}
	rows, err := c.db.QueryContext(ctx, `SELECT date, open, high, low, close, volume, amount, change_percent
		FROM bars WHERE code = ? ORDER BY date DESC LIMIT ?`, code, limit)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("cache read %s: %w", code, err)
	}
	defer rows.Close()
	var bars []types.Bar
	for rows.Next() {
		var b types.Bar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume, &b.Amount, &b.ChangePercent); err != nil {
			return nil, time.Time{}, fmt.Errorf("cache scan %s: %w", code, err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, time.Unix(ts, 0), nil
}

func (c *Cache) store(ctx context.Context, code string, bars []types.Bar) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO bars
		(code, date, open, high, low, close, volume, amount, change_percent)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, code, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume, b.Amount, b.ChangePercent); err != nil {
			return fmt.Errorf("insert %s %s: %w", code, b.Date, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO fetches (code, source, fetched_at) VALUES (?,?,?)`,
		code, c.Upstream.Name(), c.now().Unix()); err != nil {
		return err
	}
	return tx.Commit()
}
