package sources

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/draftkit/valuation-api/internal/models"
)

type mockPgPool struct {
	QueryFunc func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execs     []string
	execErr   error
	// failOn makes any Exec whose SQL contains it return an error.
	failOn string
	txs    []*mockTx
}

func (m *mockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.QueryFunc(ctx, sql, args...)
}

func (m *mockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.execs = append(m.execs, strings.TrimSpace(sql))
	if m.failOn != "" && strings.Contains(sql, m.failOn) {
		return pgconn.CommandTag{}, errors.New("insert failed")
	}
	return pgconn.CommandTag{}, m.execErr
}

func (m *mockPgPool) Begin(ctx context.Context) (pgx.Tx, error) {
	tx := &mockTx{pool: m}
	m.txs = append(m.txs, tx)
	return tx, nil
}

// mockTx records Commit and Rollback and routes Exec through the pool.
type mockTx struct {
	pgx.Tx
	pool       *mockPgPool
	committed  bool
	rolledBack bool
}

func (t *mockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.pool.Exec(ctx, sql, args...)
}

func (t *mockTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

// mockRows serves fixed rows; each row's values are assigned to Scan
// destinations in order.
type mockRows struct {
	rows [][]any
	curr int
}

func (r *mockRows) Close()                                       {}
func (r *mockRows) Err() error                                   { return nil }
func (r *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *mockRows) Values() ([]any, error)                       { return r.rows[r.curr-1], nil }
func (r *mockRows) RawValues() [][]byte                          { return nil }
func (r *mockRows) Conn() *pgx.Conn                              { return nil }

func (r *mockRows) Next() bool {
	r.curr++
	return r.curr <= len(r.rows)
}

func (r *mockRows) Scan(dest ...any) error {
	row := r.rows[r.curr-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *float64:
			*p = row[i].(float64)
		case *[]byte:
			*p = row[i].([]byte)
		default:
			return errors.New("unsupported scan destination")
		}
	}
	return nil
}

func TestPostgresProjections_Load(t *testing.T) {
	pool := &mockPgPool{QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
		if args[0] != 2026 {
			t.Errorf("season arg = %v", args[0])
		}
		if strings.Contains(sql, "FROM projections") {
			return &mockRows{rows: [][]any{
				{"k", "Justin Tucker", "BAL", "PK", []byte(`{"FG0": 30, "PAT": "40"}`)},
				{"qb", "Josh Allen", "BUF", "QB", []byte(`{"PY": 4000}`)},
				{"qb", "Joe Burrow", "CIN", "QB", []byte(nil)},
			}}, nil
		}
		return &mockRows{rows: [][]any{{"Josh Allen", 20.5}}}, nil
	}}

	set, err := NewPostgresProjections(pool, 2026).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set.Tables) != 2 || set.Tables[0].Name != TableQB || set.Tables[1].Name != TableK {
		t.Fatalf("tables out of load order: %+v", set.Tables)
	}
	if n := len(set.Tables[0].Records); n != 2 {
		t.Errorf("qb records = %d, want 2", n)
	}
	kicker := set.Tables[1].Records[0]
	if kicker.Position != models.PositionK || kicker.Stats["PAT"] != 40 {
		t.Errorf("kicker = %+v", kicker)
	}
	if len(set.ADP) != 1 || set.ADP[0].ADP != 20.5 {
		t.Errorf("adp = %+v", set.ADP)
	}
}

func TestPostgresProjections_QueryError(t *testing.T) {
	pool := &mockPgPool{QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
		return nil, errors.New("connection refused")
	}}
	if _, err := NewPostgresProjections(pool, 2026).Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresProjections_Replace(t *testing.T) {
	pool := &mockPgPool{}
	store := NewPostgresProjections(pool, 2026)
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	n, err := store.ReplaceTable(ctx, models.ProjectionTable{Name: TableQB, Records: []models.ProjectionRecord{
		{Name: "Josh Allen", Team: "BUF", Position: models.PositionQB, Stats: models.StatLine{"PY": 4000}},
	}})
	if err != nil || n != 1 {
		t.Fatalf("ReplaceTable = %d, %v", n, err)
	}
	n, err = store.ReplaceADP(ctx, []models.ADPEntry{{Name: "Josh Allen", ADP: 20}, {Name: "Joe Burrow", ADP: 40}})
	if err != nil || n != 2 {
		t.Fatalf("ReplaceADP = %d, %v", n, err)
	}

	// migrate, delete+insert, delete+2 inserts
	if len(pool.execs) != 6 {
		t.Errorf("exec count = %d, want 6", len(pool.execs))
	}
	if !strings.HasPrefix(pool.execs[1], "DELETE FROM projections") {
		t.Errorf("exec[1] = %q", pool.execs[1])
	}
	if len(pool.txs) != 2 || !pool.txs[0].committed || !pool.txs[1].committed {
		t.Errorf("replacements not committed: %+v", pool.txs)
	}

	pool.execErr = errors.New("read only")
	if _, err := store.ReplaceADP(ctx, nil); err == nil {
		t.Error("expected exec error")
	}
}

func TestPostgresProjections_ReplaceRollsBackOnFailedInsert(t *testing.T) {
	tests := []struct {
		name    string
		replace func(*PostgresProjections) (int, error)
	}{
		{"table", func(p *PostgresProjections) (int, error) {
			return p.ReplaceTable(context.Background(), models.ProjectionTable{Name: TableQB, Records: []models.ProjectionRecord{
				{Name: "Josh Allen", Position: models.PositionQB},
				{Name: "Joe Burrow", Position: models.PositionQB},
			}})
		}},
		{"adp", func(p *PostgresProjections) (int, error) {
			return p.ReplaceADP(context.Background(), []models.ADPEntry{{Name: "Josh Allen", ADP: 20}})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := &mockPgPool{failOn: "INSERT"}
			n, err := tt.replace(NewPostgresProjections(pool, 2026))
			if err == nil {
				t.Fatal("expected insert error")
			}
			if n != 0 {
				t.Errorf("rows reported = %d, want 0", n)
			}
			if len(pool.txs) != 1 {
				t.Fatalf("transactions = %d, want 1", len(pool.txs))
			}
			if tx := pool.txs[0]; tx.committed || !tx.rolledBack {
				t.Errorf("committed=%v rolledBack=%v, want rollback only", tx.committed, tx.rolledBack)
			}
			if !strings.HasPrefix(pool.execs[0], "DELETE") {
				t.Errorf("delete not issued inside the transaction: %q", pool.execs)
			}
		})
	}
}
