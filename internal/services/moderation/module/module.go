// Package module wires moderation into the API and worker binaries using modkit
package module

import (
	"fmt"

	"skillreel/internal/adapters/ai/openai"
	"skillreel/internal/core/moderation"
	"skillreel/internal/modkit"
	"skillreel/internal/modkit/httpkit"
	"skillreel/internal/modkit/repokit"
	"skillreel/internal/platform/net/middleware"

	mhttp "skillreel/internal/services/moderation/http"
	mrepo "skillreel/internal/services/moderation/repo"
	msvc "skillreel/internal/services/moderation/service"
)

// Module is the moderation module
type Module struct {
	built modkit.Built
	ports Ports
	auth  middleware.AuthPort

	svc  *msvc.Svc
	pipe *msvc.Pipeline
}

// New constructs the moderation module from deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions constructs the moderation module with explicit options
// invalid policy settings panic at boot
func NewWithOptions(deps modkit.Deps, cfg Options, opts ...modkit.Option) *Module {
	if deps.PG == nil {
		panic("moderation module requires a postgres TxRunner")
	}
	b := modkit.Build([]modkit.Option{
		modkit.WithName("moderation"),
		modkit.WithPrefix("/moderation"),
	}, opts...)

	pipe := NewPipeline(cfg)

	so := msvc.Options{Pipeline: pipe, Worker: cfg.Worker}
	if cfg.AuditEnabled && deps.CH != nil {
		so.Audit = mrepo.NewAudit(deps.CH)
	}
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(cfg.StatementTimeout))
	svc := msvc.New(db, mrepo.NewPG(), so)

	m := &Module{built: b, svc: svc, pipe: pipe}
	m.ports = Ports{Service: svc, Worker: svc, Policy: policyPort{pipe: pipe}}
	if len(cfg.ServiceTokens) > 0 {
		m.auth = httpkit.NewPortFunc(httpkit.StaticTokens(cfg.ServiceTokens))
	}
	return m
}

// NewPipeline builds the provider client, taxonomy and merger from options
func NewPipeline(cfg Options) *msvc.Pipeline {
	merger, err := moderation.NewMerger(cfg.Threshold)
	if err != nil {
		panic(fmt.Sprintf("moderation: %v", err))
	}

	var tx *moderation.Taxonomy
	if cfg.TaxonomyFile != "" {
		if tx, err = moderation.LoadTaxonomyFile(cfg.TaxonomyFile); err != nil {
			panic(fmt.Sprintf("moderation: taxonomy %s: %v", cfg.TaxonomyFile, err))
		}
	}

	client := openai.NewClient(cfg.OpenAI)
	return msvc.NewPipeline(msvc.PipelineOptions{
		Safety:   client,
		Text:     client,
		Taxonomy: tx,
		Merger:   &merger,
		Timeout:  cfg.ProviderTimeout,
	})
}

// Service returns the moderation service
func (m *Module) Service() *msvc.Svc { return m.svc }

// Pipeline returns the moderation pipeline
func (m *Module) Pipeline() *msvc.Pipeline { return m.pipe }

// MountRoutes mounts the moderation routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { mhttp.Register(rr, m.svc, m.auth) })
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.built.Prefix }

type policyPort struct{ pipe *msvc.Pipeline }

func (p policyPort) Policy() Policy {
	safety, skill := p.pipe.Providers()
	return Policy{
		SkillConfidenceThreshold: p.pipe.Threshold(),
		ProviderTimeout:          p.pipe.Timeout(),
		TaxonomyVersion:          p.pipe.Taxonomy().Version,
		Skills:                   p.pipe.Taxonomy().IDs(),
		SafetyProvider:           safety,
		SkillProvider:            skill,
	}
}
