// @title         Skillreel API
// @version       0.1.0
// @description   Video moderation endpoints: safety analysis, skill classification and review queue

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillreel/internal/modkit/httpkit"
	"skillreel/internal/modkit/repokit"
	"skillreel/internal/modkit/swaggerkit"
	"skillreel/internal/platform/config"
	"skillreel/internal/platform/logger"
	phttp "skillreel/internal/platform/net/http"
	"skillreel/internal/platform/store"

	"skillreel/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	chURL := chCfg.MayString("DBURL", "")

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "skillreel-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled: chURL != "",
				URL:     chURL,
			},
		},
		store.WithLogger(*l),
	)
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

	repokit.MustGuard(ctx, st, apiCfg.MayDuration("BOOT_GUARD", 30*time.Second))

	if pgCfg.MayBool("AUTO_MIGRATE", true) {
		if err := ensureSchema(ctx, st); err != nil {
			l.Panic().Err(err).Msg("schema setup failed")
		}
	}

	// http server (CORE_API_ADDR, CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config: root,
			Store:  st,
			Logger: l,
			Swagger: swaggerkit.Options{
				Enabled:     apiCfg.MayBool("SWAGGER", true),
				TitleSuffix: apiCfg.MayString("DOCS_TITLE_SUFFIX", ""),
			},
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Stack: httpkit.StackOptions{
				SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
				Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
				MaxInFlight: apiCfg.MayInt("MAX_IN_FLIGHT", 0),
				CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
			},
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
