// Package api provides the HTTP API for the application
package api

import (
	"skillreel/internal/platform/config"
	"skillreel/internal/platform/logger"
	phttp "skillreel/internal/platform/net/http"
	"skillreel/internal/platform/store"

	"skillreel/internal/modkit"
	"skillreel/internal/modkit/httpkit"
	"skillreel/internal/modkit/module"
	"skillreel/internal/modkit/swaggerkit"

	metamod "skillreel/internal/services/api/meta/module"
	modmod "skillreel/internal/services/moderation/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Swagger        swaggerkit.Options
	EnableProfiler bool
	Stack          httpkit.StackOptions
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// moderation owns the policy port that meta reports
	moderation := modmod.New(deps)
	policy := module.MustPortsOf[modmod.PolicyPort](moderation)

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Policy: policy})),
		moderation,
	}

	swaggerkit.Mount(r, opt.Swagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			m.MountRoutes(api)
		}
	})
}
