package data

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"battery-benchmark/internal/model"
)

// PriceCache is an on-disk range cache for market price schedules, keyed by
// market, area and interval start. It serves two operations: an ordered range
// query and a merge-on-write that keeps already cached rows.
type PriceCache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS price_schedule (
	market          TEXT    NOT NULL,
	area            TEXT    NOT NULL,
	interval_start  INTEGER NOT NULL,
	charge_price    REAL    NOT NULL,
	discharge_price REAL    NOT NULL,
	PRIMARY KEY (market, area, interval_start)
);`

// OpenPriceCache opens (and if needed creates) the cache database at path.
// Use ":memory:" for an ephemeral cache.
func OpenPriceCache(path string) (*PriceCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening price cache: %w", err)
	}
	// A single writer keeps sqlite happy without a busy loop.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring price cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating price cache: %w", err)
	}
	return &PriceCache{db: db}, nil
}

func (c *PriceCache) Close() error {
	return c.db.Close()
}

// Merge upserts a schedule into the cache. Rows already present win over
// incoming ones, so a re-fetch never rewrites history.
func (c *PriceCache) Merge(market, area string, schedule model.PriceSchedule) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("merging into price cache: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO price_schedule (market, area, interval_start, charge_price, discharge_price)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (market, area, interval_start) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("merging into price cache: %w", err)
	}
	defer stmt.Close()

	for _, pt := range schedule {
		if _, err := stmt.Exec(market, area, pt.IntervalStart.Unix(), pt.ChargePrice, pt.DischargePrice); err != nil {
			return fmt.Errorf("merging into price cache: %w", err)
		}
	}
	return tx.Commit()
}

// Get returns the cached rows for a market and area in [start, end], end
// inclusive, ordered by interval start. A partially covered range comes back
// short; the caller decides whether that is sufficient.
func (c *PriceCache) Get(market, area string, start, end time.Time) (model.PriceSchedule, error) {
	rows, err := c.db.Query(`
		SELECT interval_start, charge_price, discharge_price
		FROM price_schedule
		WHERE market = ? AND area = ? AND interval_start >= ? AND interval_start <= ?
		ORDER BY interval_start ASC`,
		market, area, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("querying price cache: %w", err)
	}
	defer rows.Close()

	var schedule model.PriceSchedule
	for rows.Next() {
		var ts int64
		var pt model.PricePoint
		if err := rows.Scan(&ts, &pt.ChargePrice, &pt.DischargePrice); err != nil {
			return nil, fmt.Errorf("scanning price cache row: %w", err)
		}
		pt.IntervalStart = time.Unix(ts, 0).UTC()
		schedule = append(schedule, pt)
	}
	return schedule, rows.Err()
}
