package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "skillreel/internal/platform/errors"
)

// TokenFunc resolves a bearer token to the calling service
type TokenFunc func(token string) (caller string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// StaticTokens resolves tokens from a fixed caller -> token table
func StaticTokens(byCaller map[string]string) TokenFunc {
	type entry struct{ caller, token string }
	entries := make([]entry, 0, len(byCaller))
	for c, tok := range byCaller {
		if c != "" && tok != "" {
			entries = append(entries, entry{c, tok})
		}
	}
	return func(token string) (string, error) {
		// compare every entry so timing does not reveal which caller matched
		match := ""
		for _, e := range entries {
			if subtle.ConstantTimeCompare([]byte(e.token), []byte(token)) == 1 {
				match = e.caller
			}
		}
		if match == "" {
			return "", perrs.Unauthorizedf("unknown service token")
		}
		return match, nil
	}
}

// Parse extracts the caller from an Authorization Bearer token
// returns unauthorized when the header is missing, malformed, or the parser returns an error
func (p *Port) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	if s == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	const prefix = "bearer"
	if !strings.HasPrefix(strings.ToLower(s), prefix) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}

	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}

	caller, err := p.parse(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return caller, nil
}
