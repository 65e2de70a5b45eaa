package modkit

import (
	"net/http"

	"skillreel/internal/modkit/httpkit"
	str "skillreel/internal/platform/strings"
)

// Router is the routing seam modules mount on
type Router = httpkit.Router

// Built is the resolved module configuration
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	extra []func(Router)
}

// Build resolves opts over the module's defaults; later options win
// name and prefix are asserted here so a misconfigured module fails at boot
func Build(defaults []Option, opts ...Option) Built {
	var c buildCfg
	for _, o := range append(defaults, opts...) {
		o(&c)
	}
	return Built{
		Name:   str.MustString(c.name, "module name"),
		Prefix: str.MustPrefix(c.prefix),
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  c.ports,
		extra:  c.register,
	}
}

// Mount scopes own under the prefix, behind the module middleware, followed by any WithRegister routes
func (b Built) Mount(r Router, own func(Router)) {
	r.Route(b.Prefix, func(rr Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		own(rr)
		for _, fn := range b.extra {
			fn(rr)
		}
	})
}
