// Package http is the platform HTTP layer: a chi backed router seam, the server and JSON envelopes
package http

import (
	"encoding/json"
	"net/http"

	pnet "skillreel/internal/platform/net"
)

// Envelope is the response body shape
type Envelope = pnet.Envelope

// JSON writes v with status as application/json
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers produce
// a Body holding an error is rendered as an error envelope
type Response struct {
	Status int
	Body   any
	Header http.Header
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: http.StatusOK, Body: data} }

// Created is a 201 with data
func Created(data any) Response { return Response{Status: http.StatusCreated, Body: data} }

// Error renders err with the status its code maps to
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response returning func to net/http
func Handle(fn func(*http.Request) Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(r).write(w, r)
	}
}

func (resp Response) write(w http.ResponseWriter, r *http.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := pnet.Fail(err, reqID)
		JSON(w, status, env)
		return
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, pnet.Reply(status, resp.Body, reqID))
}
