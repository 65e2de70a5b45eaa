// Package module wires the meta endpoints into the API
package module

import (
	"time"

	"skillreel/internal/modkit"
	"skillreel/internal/modkit/httpkit"
	"skillreel/internal/modkit/module"
	"skillreel/internal/platform/store"
	mmod "skillreel/internal/services/moderation/module"

	metahttp "skillreel/internal/services/api/meta/http"
)

// PolicyPort is the slice of the moderation ports the meta module reads
type PolicyPort interface {
	Policy() mmod.Policy
}

// Ports are the optional ports injected into the meta module
type Ports struct {
	Policy PolicyPort
}

// Module serves health, readiness, version and policy
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New builds the meta module; WithPorts(Ports{...}) enables /policy
func New(deps modkit.Deps, opts ...modkit.Option) module.Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)

	d := metahttp.Deps{
		ServiceName: "skillreel-api",
		StartedAt:   time.Now(),
		Modules:     module.Names,
	}
	// backends that cannot ping stay nil and are reported as skipped
	if p, ok := deps.PG.(store.Pinger); ok {
		d.PG = p
	}
	if p, ok := deps.CH.(store.Pinger); ok {
		d.CH = p
	}
	if p, ok := b.Ports.(Ports); ok && p.Policy != nil {
		d.Policy = func() any { return p.Policy.Policy() }
	}
	return &Module{built: b, deps: d}
}

// MountRoutes mounts the meta routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Ports exposes nothing; meta only consumes
func (m *Module) Ports() any { return nil }
