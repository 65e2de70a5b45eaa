package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillreel/internal/modkit"
	"skillreel/internal/modkit/module"
	"skillreel/internal/modkit/repokit"
	"skillreel/internal/platform/config"
	"skillreel/internal/platform/logger"
	"skillreel/internal/platform/store"

	modmod "skillreel/internal/services/moderation/module"
)

func main() {
	root := config.New()
	dbCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	// env first, flags override
	cfg := modmod.FromConfig(root)
	var (
		fConc    = flag.Int("concurrency", cfg.Worker.Concurrency, "worker concurrency")
		fBatch   = flag.Int("batch", cfg.Worker.QueueTakeBatch, "jobs leased per poll")
		fLease   = flag.Duration("lease", cfg.Worker.LeaseFor, "job lease duration")
		fPoll    = flag.Duration("poll", cfg.Worker.PollEvery, "queue poll interval")
		fID      = flag.String("worker_id", cfg.Worker.WorkerID, "worker id recorded on leased jobs")
		fTimeout = flag.Duration("provider_timeout", cfg.ProviderTimeout, "per provider call timeout")
		fThresh  = flag.Float64("threshold", cfg.Threshold, "skill confidence threshold")
		fAudit   = flag.Bool("audit", cfg.AuditEnabled, "append moderation events to ClickHouse")
	)
	flag.Parse()

	cfg.Worker.Concurrency = *fConc
	cfg.Worker.QueueTakeBatch = *fBatch
	cfg.Worker.LeaseFor = *fLease
	cfg.Worker.PollEvery = *fPoll
	cfg.Worker.WorkerID = *fID
	cfg.ProviderTimeout = *fTimeout
	cfg.OpenAI.Timeout = *fTimeout
	cfg.Threshold = *fThresh
	cfg.AuditEnabled = *fAudit

	chURL := ""
	if cfg.AuditEnabled {
		chURL = chCfg.MustString("DBURL")
	}

	st, err := store.Open(context.Background(), store.Config{
		AppName: "skillreel-moderator",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dbCfg.MustString("DBURL"),
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", max(4, *fConc+1))),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{Enabled: chURL != "", URL: chURL},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repokit.MustGuard(ctx, st, 30*time.Second)

	deps := modkit.Deps{Cfg: root, PG: st.PG, CH: st.CH, Log: *l}
	mod := modmod.NewWithOptions(deps, cfg)
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[modmod.Ports](mod)
	if err := ports.Worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Fatal().Err(err).Msg("moderation worker failed")
	}
	l.Info().Msg("moderation worker stopped")
}
