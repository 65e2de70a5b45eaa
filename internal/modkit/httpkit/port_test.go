package httpkit

import (
	"errors"
	"net/http"
	"testing"

	perrs "skillreel/internal/platform/errors"
)

func authReq(header string) *http.Request {
	req, _ := http.NewRequest(http.MethodPost, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func TestPort_Parse_MissingOrMalformed(t *testing.T) {
	t.Parallel()

	p := NewPortFunc(func(string) (string, error) {
		t.Fatalf("parser should not be called on a missing or malformed header")
		return "", nil
	})

	for _, h := range []string{"", "Basic abc", "Bearer   \t "} {
		_, err := p.Parse(authReq(h))
		var pe *perrs.Error
		if !errors.As(err, &pe) || pe.Code() != perrs.ErrorCodeUnauthorized {
			t.Fatalf("header %q: expected unauthorized, got %#v", h, err)
		}
	}
}

func TestPort_Parse_ParserErrorIsUnauthorized(t *testing.T) {
	t.Parallel()

	calls := 0
	p := NewPortFunc(func(tok string) (string, error) {
		calls++
		if tok != "bad.token" {
			t.Fatalf("expected raw token bad.token, got %q", tok)
		}
		return "", errors.New("parse failed")
	})

	caller, err := p.Parse(authReq("Bearer bad.token"))
	if err == nil || caller != "" || calls != 1 {
		t.Fatalf("expected one failed parse, got %q %v calls=%d", caller, err, calls)
	}
	if got := err.Error(); got != "invalid bearer token" {
		t.Fatalf("error = %q", got)
	}
}

func TestPort_Parse_CaseInsensitiveAndTrim(t *testing.T) {
	t.Parallel()

	p := NewPortFunc(func(tok string) (string, error) {
		if tok != "abc123" {
			t.Fatalf("expected trimmed token abc123, got %q", tok)
		}
		return "uploader", nil
	})

	caller, err := p.Parse(authReq("   BEARER   abc123   "))
	if err != nil || caller != "uploader" {
		t.Fatalf("unexpected %q %v", caller, err)
	}
}

func TestPort_Parse_NilParser(t *testing.T) {
	t.Parallel()

	var p Port
	if _, err := p.Parse(authReq("Bearer tok")); err == nil {
		t.Fatalf("expected error when parser is nil")
	}
}

func TestStaticTokens(t *testing.T) {
	t.Parallel()

	resolve := StaticTokens(map[string]string{"uploader": "tok-a", "admin": "tok-b", "blank": ""})

	if c, err := resolve("tok-b"); err != nil || c != "admin" {
		t.Fatalf("tok-b: %q %v", c, err)
	}
	if _, err := resolve("tok-c"); err == nil {
		t.Fatalf("unknown token must fail")
	}
	if _, err := resolve(""); err == nil {
		t.Fatalf("empty token must not match a blank entry")
	}

	p := NewPortFunc(resolve)
	if c, err := p.Parse(authReq("Bearer tok-a")); err != nil || c != "uploader" {
		t.Fatalf("port: %q %v", c, err)
	}
}
