package httpkit

import (
	"skillreel/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth
// a nil port leaves the group open, which is how local runs without tokens behave
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	if p == nil {
		fn(r)
		return
	}
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
