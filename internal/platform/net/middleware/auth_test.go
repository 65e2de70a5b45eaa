package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perrs "skillreel/internal/platform/errors"
	"skillreel/internal/platform/net"
	"skillreel/internal/platform/net/middleware"
)

type fakeAuthPort struct {
	caller string
	err    error
}

func (f fakeAuthPort) Parse(*http.Request) (string, error) {
	return f.caller, f.err
}

func writeStub(w http.ResponseWriter, status int, _ any) {
	w.WriteHeader(status)
}

func TestAuth_NilPortPassesThrough(t *testing.T) {
	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(200)
	})

	rr := httptest.NewRecorder()
	middleware.Auth(nil, writeStub)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !nextCalled || rr.Code != 200 {
		t.Fatalf("expected pass through, called=%v code=%d", nextCalled, rr.Code)
	}
}

func TestAuth_UnauthorizedStopsChain(t *testing.T) {
	p := fakeAuthPort{err: perrs.Unauthorizedf("unknown service token")}

	var nextCalled bool
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { nextCalled = true })

	rr := httptest.NewRecorder()
	middleware.Auth(p, writeStub)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	if nextCalled {
		t.Fatal("did not expect next to be called on auth error")
	}
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestAuth_SetsCallerOnContext(t *testing.T) {
	p := fakeAuthPort{caller: "uploader"}

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = net.Caller(r.Context())
		w.WriteHeader(200)
	})

	rr := httptest.NewRecorder()
	middleware.Auth(p, writeStub)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != 200 || seen != "uploader" {
		t.Fatalf("expected caller uploader with 200, got %q %d", seen, rr.Code)
	}
}
