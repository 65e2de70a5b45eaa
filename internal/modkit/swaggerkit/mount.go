// Package swaggerkit serves the OpenAPI document and Swagger UI under /api/docs
package swaggerkit

import (
	"net/http"

	phttp "skillreel/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options configure the docs mount
type Options struct {
	Enabled bool
	// TitleSuffix is appended to the document title, e.g. the environment name
	TitleSuffix string
}

// Mount serves the UI and doc.json when enabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(o.TitleSuffix))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
