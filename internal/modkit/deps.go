// Package modkit builds API modules: shared deps, options and prefix mounting
package modkit

import (
	"skillreel/internal/modkit/repokit"
	"skillreel/internal/platform/config"
	"skillreel/internal/platform/logger"
	"skillreel/internal/platform/store"
)

// Deps are the shared backends handed to every module
// CH is nil when ClickHouse is not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
