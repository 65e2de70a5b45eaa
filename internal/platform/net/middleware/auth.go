package middleware

import (
	"net/http"

	pnet "skillreel/internal/platform/net"
)

// AuthPort resolves the calling service from a request
type AuthPort interface {
	Parse(r *http.Request) (caller string, err error)
}

// Auth rejects requests the port cannot attribute and stores the caller on the context
// a nil port passes every request through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			caller, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Fail(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithCaller(r.Context(), caller)))
		})
	}
}
