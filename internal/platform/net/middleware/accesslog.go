package middleware

import (
	"net/http"
	"time"

	"skillreel/internal/platform/logger"
	pnet "skillreel/internal/platform/net"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

// AccessLog writes one zerolog line per request
// 5xx log at error, requests at or over slow at warn; slow <= 0 disables the warn
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			log := logger.C(r.Context())
			ev := log.Info()
			switch {
			case sw.status >= http.StatusInternalServerError:
				ev = log.Error()
			case slow > 0 && elapsed >= slow:
				ev = log.Warn()
			}
			if c := pnet.Caller(r.Context()); c != "" {
				ev = ev.Str("caller", c)
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Int("bytes", sw.bytes).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}
