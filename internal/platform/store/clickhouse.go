package store

import (
	"context"
	"fmt"

	"skillreel/internal/platform/store/ch"
)

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := ch.Open(ctx, ch.Config{URL: cfg.CH.URL, Role: cfg.AppName})
	if err != nil {
		return nil, err
	}
	return clickhouse{c}, nil
}

// clickhouse adapts *ch.CH to the Clickhouse seam
type clickhouse struct{ c *ch.CH }

// Insert accepts rows as [][]any in table column order
func (a clickhouse) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return fmt.Errorf("store: clickhouse insert wants [][]any, got %T", data)
	}
	return a.c.Insert(ctx, table, rows)
}

func (a clickhouse) Exec(ctx context.Context, sql string, args ...any) error {
	return a.c.Exec(ctx, sql, args...)
}

func (a clickhouse) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (a clickhouse) Ping(ctx context.Context) error { return a.c.Ping(ctx) }

func (a clickhouse) Close() error { return a.c.Close() }

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
