// Package http serves the meta endpoints: liveness, readiness, build info and the moderation policy
package http

import (
	"context"
	"net/http"
	"time"

	"skillreel/internal/core/version"
	"skillreel/internal/modkit/httpkit"
	"skillreel/internal/platform/store"

	"golang.org/x/sync/errgroup"
)

// readyTimeout bounds all dependency pings of one /ready call
const readyTimeout = 2 * time.Second

// Deps are the handler dependencies; nil backends are reported as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          store.Pinger
	CH          store.Pinger

	// Policy reports the active moderation policy; nil disables /policy
	Policy func() any

	// Modules lists the mounted modules for /service
	Modules func() []string
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	if d.Policy != nil {
		httpkit.Get(r, "/policy", h.policy)
	}
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"skillreel-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is one dependency probe
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok" enums:"ok,fail,skipped"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse summarises readiness: ok, degraded (a backend skipped) or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok" enums:"ok,degraded,fail"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse is service identity and uptime
type ServiceResponse struct {
	Name    string   `json:"name"    example:"skillreel-api"`
	Started string   `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules,omitempty"`
}

// PolicyResponse wraps the moderation policy with build info
type PolicyResponse struct {
	Policy any               `json:"policy"`
	Build  version.BuildInfo `json:"build"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(time.Now()),
	}, nil
}

// @Summary Readiness with dependency pings
// @Description Pings Postgres and ClickHouse in parallel. Any failed ping answers 503
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := []ReadyCheck{{Name: "pg"}, {Name: "ch"}}
	backends := []store.Pinger{h.deps.PG, h.deps.CH}

	var g errgroup.Group
	for i, p := range backends {
		if p == nil {
			checks[i].Status = "skipped"
			continue
		}
		g.Go(func() error {
			if err := p.Ping(ctx); err != nil {
				checks[i].Status, checks[i].Error = "fail", err.Error()
				return nil
			}
			checks[i].Status = "ok"
			return nil
		})
	}
	_ = g.Wait()

	res := ReadyResponse{Status: "ok", Checks: checks, Now: stamp(time.Now())}
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			res.Status = "fail"
		case c.Status == "skipped" && res.Status == "ok":
			res.Status = "degraded"
		}
	}
	if res.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: res}, nil
	}
	return res, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info, uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	res := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}
	if h.deps.Modules != nil {
		res.Modules = h.deps.Modules()
	}
	return res, nil
}

// @Summary Active moderation policy
// @Description Confidence threshold, provider timeout and the skill taxonomy offered to the classifier
// @Tags Meta
// @Produce json
// @Success 200 {object} PolicyResponse
// @Router /meta/policy [get]
func (h *handlers) policy(*http.Request) (any, error) {
	return PolicyResponse{Policy: h.deps.Policy(), Build: version.Info()}, nil
}
