package sources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/draftkit/valuation-api/internal/models"
)

// PgPool is the subset of *pgxpool.Pool used by the projection store.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Schema creates the projection tables.
const Schema = `
CREATE TABLE IF NOT EXISTS projections (
	id           BIGSERIAL PRIMARY KEY,
	season       INTEGER NOT NULL,
	source_table TEXT NOT NULL,
	player       TEXT NOT NULL,
	team         TEXT NOT NULL DEFAULT '',
	position     TEXT NOT NULL,
	stats        JSONB NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS idx_projections_season ON projections (season, source_table);

CREATE TABLE IF NOT EXISTS adp (
	id     BIGSERIAL PRIMARY KEY,
	season INTEGER NOT NULL,
	player TEXT NOT NULL,
	adp    DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_adp_season ON adp (season);
`

// PostgresProjections reads and writes projection and ADP tables for one
// season.
type PostgresProjections struct {
	pg     PgPool
	season int
}

// NewPostgresProjections creates a store bound to season.
func NewPostgresProjections(pg PgPool, season int) *PostgresProjections {
	return &PostgresProjections{pg: pg, season: season}
}

// Load returns every projection table and the ADP table for the season.
func (p *PostgresProjections) Load(ctx context.Context) (*TableSet, error) {
	rows, err := p.pg.Query(ctx, `
		SELECT source_table, player, team, position, stats
		FROM projections
		WHERE season = $1
		ORDER BY source_table, id`, p.season)
	if err != nil {
		return nil, fmt.Errorf("query projections: %w", err)
	}
	defer rows.Close()

	byTable := make(map[string]*models.ProjectionTable)
	for rows.Next() {
		var (
			table, player, team, position string
			rawStats                      []byte
		)
		if err := rows.Scan(&table, &player, &team, &position, &rawStats); err != nil {
			return nil, fmt.Errorf("scan projection: %w", err)
		}
		stats := models.StatLine{}
		if len(rawStats) > 0 {
			if err := json.Unmarshal(rawStats, &stats); err != nil {
				return nil, fmt.Errorf("decode stats for %s: %w", player, err)
			}
		}
		pos, _ := models.ParsePosition(position)
		t, ok := byTable[table]
		if !ok {
			t = &models.ProjectionTable{Name: table}
			byTable[table] = t
		}
		t.Records = append(t.Records, models.ProjectionRecord{Name: player, Team: team, Position: pos, Stats: stats})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projections: %w", err)
	}

	set := &TableSet{}
	for _, name := range ProjectionTables {
		if t, ok := byTable[name]; ok {
			set.Tables = append(set.Tables, *t)
		}
	}

	adpRows, err := p.pg.Query(ctx, `SELECT player, adp FROM adp WHERE season = $1 ORDER BY id`, p.season)
	if err != nil {
		return nil, fmt.Errorf("query adp: %w", err)
	}
	defer adpRows.Close()
	for adpRows.Next() {
		var e models.ADPEntry
		if err := adpRows.Scan(&e.Name, &e.ADP); err != nil {
			return nil, fmt.Errorf("scan adp: %w", err)
		}
		set.ADP = append(set.ADP, e)
	}
	if err := adpRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate adp: %w", err)
	}
	return set, nil
}

// Migrate applies Schema.
func (p *PostgresProjections) Migrate(ctx context.Context) error {
	if _, err := p.pg.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ReplaceTable swaps the season's rows for one projection table in a single
// transaction. On error nothing is written.
func (p *PostgresProjections) ReplaceTable(ctx context.Context, table models.ProjectionTable) (int, error) {
	n := 0
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM projections WHERE season = $1 AND source_table = $2`, p.season, table.Name); err != nil {
			return fmt.Errorf("clear %s: %w", table.Name, err)
		}
		for _, rec := range table.Records {
			stats, err := json.Marshal(rec.Stats)
			if err != nil {
				return fmt.Errorf("encode stats for %s: %w", rec.Name, err)
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO projections (season, source_table, player, team, position, stats)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				p.season, table.Name, rec.Name, rec.Team, string(rec.Position), stats); err != nil {
				return fmt.Errorf("insert %s: %w", rec.Name, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ReplaceADP swaps the season's ADP rows in a single transaction.
func (p *PostgresProjections) ReplaceADP(ctx context.Context, entries []models.ADPEntry) (int, error) {
	n := 0
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM adp WHERE season = $1`, p.season); err != nil {
			return fmt.Errorf("clear adp: %w", err)
		}
		for _, e := range entries {
			if _, err := tx.Exec(ctx, `INSERT INTO adp (season, player, adp) VALUES ($1, $2, $3)`, p.season, e.Name, e.ADP); err != nil {
				return fmt.Errorf("insert adp %s: %w", e.Name, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// inTx runs fn inside a transaction, rolling back unless fn and the commit
// both succeed.
func (p *PostgresProjections) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := p.pg.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
