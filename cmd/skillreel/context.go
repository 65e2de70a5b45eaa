package main

import (
	"context"
	"fmt"

	"skillreel/internal/modkit"
	"skillreel/internal/platform/config"
	"skillreel/internal/platform/logger"
	"skillreel/internal/platform/store"

	modmod "skillreel/internal/services/moderation/module"
)

// commandContext carries flags and lazily opened backends shared by subcommands
type commandContext struct {
	jsonOut bool

	cfg config.Conf
	st  *store.Store
}

func newCommandContext() *commandContext {
	return &commandContext{cfg: config.New()}
}

// store opens Postgres (and ClickHouse when configured) on first use
func (c *commandContext) store(ctx context.Context) (*store.Store, error) {
	if c.st != nil {
		return c.st, nil
	}
	pg := c.cfg.Prefix("SERVICE_PGSQL_")
	url := pg.MayString("DBURL", "")
	if url == "" {
		return nil, fmt.Errorf("SERVICE_PGSQL_DBURL is not set")
	}
	chURL := c.cfg.Prefix("SERVICE_CLICKHOUSE_").MayString("DBURL", "")

	st, err := store.Open(ctx, store.Config{
		AppName: "skillreel-cli",
		PG:      store.PGConfig{Enabled: true, URL: url, MaxConns: 2, LogSQL: pg.MayBool("LOG_SQL", false)},
		CH:      store.CHConfig{Enabled: chURL != "", URL: chURL},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	c.st = st
	return st, nil
}

// module builds the moderation module over the opened store
func (c *commandContext) module(ctx context.Context) (*modmod.Module, error) {
	st, err := c.store(ctx)
	if err != nil {
		return nil, err
	}
	deps := modkit.Deps{Cfg: c.cfg, PG: st.PG, CH: st.CH, Log: *logger.Get()}
	return modmod.New(deps), nil
}

func (c *commandContext) close() error {
	if c.st == nil {
		return nil
	}
	err := c.st.Close(context.Background())
	c.st = nil
	return err
}
