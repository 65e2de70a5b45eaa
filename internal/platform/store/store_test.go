package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	perr "skillreel/internal/platform/errors"
	"skillreel/internal/platform/store/ch"
	"skillreel/internal/platform/store/pg"
	"skillreel/internal/platform/testkit"
)

// fakeRows yields one int per row
type fakeRows struct {
	vals []int
	i    int
	err  error
}

func (r *fakeRows) Next() bool { r.i++; return r.i <= len(r.vals) }
func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*int)) = r.vals[r.i-1]
	return nil
}
func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return []string{"n"} }

type fakeQ struct {
	rows *fakeRows
	err  error
}

func (f fakeQ) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (f fakeQ) Query(context.Context, string, ...any) (Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f fakeQ) QueryRow(context.Context, string, ...any) Row { return nil }

func scanInt(r Row) (int, error) {
	var n int
	err := r.Scan(&n)
	return n, err
}

func TestOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	n, err := One(ctx, fakeQ{rows: &fakeRows{vals: []int{7}}}, scanInt, "q")
	if err != nil || n != 7 {
		t.Fatalf("One = %d %v", n, err)
	}
	if _, err := One(ctx, fakeQ{rows: &fakeRows{}}, scanInt, "q"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := One(ctx, fakeQ{rows: &fakeRows{vals: []int{1, 2}}}, scanInt, "q"); err == nil {
		t.Fatalf("expected error on extra rows")
	}
}

func TestMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	got, err := Many(ctx, fakeQ{rows: &fakeRows{vals: []int{1, 2, 3}}}, scanInt, "q")
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Fatalf("Many = %v %v", got, err)
	}
	boom := errors.New("boom")
	if _, err := Many(ctx, fakeQ{err: boom}, scanInt, "q"); !errors.Is(err, boom) {
		t.Fatalf("query error not returned: %v", err)
	}
	if _, err := Many(ctx, fakeQ{rows: &fakeRows{vals: []int{1}, err: boom}}, scanInt, "q"); !errors.Is(err, boom) {
		t.Fatalf("rows error not returned: %v", err)
	}
}

type fakeBackend struct {
	fakeQ
	pingErr  error
	closeErr error
	closed   bool
}

func (f *fakeBackend) Tx(ctx context.Context, fn func(q RowQuerier) error) error { return fn(f) }
func (f *fakeBackend) Ping(context.Context) error                                { return f.pingErr }
func (f *fakeBackend) Close() error                                              { f.closed = true; return f.closeErr }

func TestGuardAndClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var nilStore *Store
	if err := nilStore.Guard(ctx); err == nil {
		t.Fatalf("nil store must fail Guard")
	}
	if err := nilStore.Close(ctx); err != nil {
		t.Fatalf("nil store Close: %v", err)
	}

	db := &fakeBackend{pingErr: errors.New("refused"), closeErr: errors.New("busy")}
	s := &Store{PG: db}
	if err := s.Guard(ctx); err == nil || !strings.Contains(err.Error(), "pg: refused") {
		t.Fatalf("Guard = %v", err)
	}
	if err := s.Close(ctx); err == nil || !db.closed {
		t.Fatalf("Close = %v closed=%v", err, db.closed)
	}

	if err := (&Store{}).Guard(ctx); err != nil {
		t.Fatalf("empty store Guard: %v", err)
	}
}

func TestOpen_NothingEnabled(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{AppName: "test"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("disabled backends must stay nil")
	}

	optErr := errors.New("bad option")
	if _, err := Open(context.Background(), Config{}, func(*Store) error { return optErr }); !errors.Is(err, optErr) {
		t.Fatalf("option error not returned: %v", err)
	}
}

func TestOpen_PGBadURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true}})
	if err == nil || !strings.Contains(err.Error(), "store: postgres") {
		t.Fatalf("expected postgres error, got %v", err)
	}
}

func TestWaitReady_RetriesThenGivesUp(t *testing.T) {
	calls := 0
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error {
		calls++
		if calls == 2 {
			return nil
		}
		return errors.New("not yet")
	})
	if err := waitReady(context.Background(), &pg.PG{}, 5, time.Second); err != nil || calls != 2 {
		t.Fatalf("waitReady = %v after %d calls", err, calls)
	}

	calls = 0
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error { calls++; return errors.New("down") })
	err := waitReady(context.Background(), &pg.PG{}, 2, time.Second)
	if err == nil || calls != 2 || !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("waitReady = %v after %d calls", err, calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := waitReady(ctx, &pg.PG{}, 3, time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestClickhouse_InsertShape(t *testing.T) {
	t.Parallel()

	c, err := ch.Open(context.Background(), ch.Config{URL: "clickhouse://127.0.0.1:9000/default"})
	if err != nil {
		t.Fatalf("ch.Open: %v", err)
	}
	a := clickhouse{c}
	t.Cleanup(func() { _ = a.Close() })

	if err := a.Insert(context.Background(), "moderation_events", []string{"x"}); err == nil || !strings.Contains(err.Error(), "[][]any") {
		t.Fatalf("expected shape error, got %v", err)
	}
	if err := a.Insert(context.Background(), "moderation_events", [][]any{}); err != nil {
		t.Fatalf("empty insert should be a no-op: %v", err)
	}
}
