// Package httpkit is what modules mount handlers with: routing aliases, JSON handler
// adapters, the API stack and bearer service auth
package httpkit

import (
	"compress/flate"
	"net/http"
	"strings"
	"time"

	phttp "skillreel/internal/platform/net/http"
	"skillreel/internal/platform/net/http/bind"
	"skillreel/internal/platform/net/middleware"
)

type (
	// Envelope is the response body shape
	Envelope = phttp.Envelope
	// Response is a return-style handler result
	Response = phttp.Response
	// Handler is the route handler shape
	Handler = phttp.Handler
	// Router is the routing seam
	Router = phttp.Router
)

// OK is a 200 with data
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201 with data
func Created(data any) Response { return phttp.Created(data) }

// Error renders err with its mapped status
func Error(err error) Response { return phttp.Error(err) }

func reply(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// JSON binds and validates a T body before calling fn
// fn may return a Response to pick its own status
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return reply(fn(r, in))
	})
}

// Call adapts a body-less handler
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response { return reply(fn(r)) })
}

// Get mounts a body-less GET
func Get(r Router, path string, fn func(*http.Request) (any, error)) { r.Get(path, Call(fn)) }

// PostJSON mounts a POST with a validated T body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(fn))
}

// StackOptions tunes CommonStack
type StackOptions struct {
	SlowRequest time.Duration
	Timeout     time.Duration
	MaxInFlight int
	CORSOrigins []string
}

// CommonStack is the middleware every API scope runs behind
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.AccessLog(o.SlowRequest),
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Throttle(o.MaxInFlight),
		middleware.Timeout(o.Timeout),
	}
}

// MountAPI scopes mount under /api/{version} behind mw
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/"), func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}

// Auth is middleware.Auth writing envelopes with phttp.JSON
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
