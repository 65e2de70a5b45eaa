package httpkit

import (
	"net/http"

	perrs "skillreel/internal/platform/errors"
	pnet "skillreel/internal/platform/net"
)

// Caller returns the authenticated caller from the request context
func Caller(r *http.Request) (string, error) {
	caller := pnet.Caller(r.Context())
	if caller == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return caller, nil
}

// CallerOr returns the authenticated caller or def on open routes
func CallerOr(r *http.Request, def string) string {
	if caller, err := Caller(r); err == nil {
		return caller
	}
	return def
}
