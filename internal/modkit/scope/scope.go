// Package scope carries attribution values across service boundaries on a context
package scope

import (
	"context"
	"maps"
	"slices"
)

// Well known keys
const (
	JobID    = "job_id"
	WorkerID = "worker_id"
	Caller   = "caller"
)

// Scope holds cross boundary attributes
type Scope struct {
	Values map[string]string
}

type key struct{}

// With returns a child context whose scope is the parent's merged with kv
// the parent scope is never mutated
func With(ctx context.Context, kv map[string]string) context.Context {
	parent := From(ctx)
	next := make(map[string]string, len(parent.Values)+len(kv))
	maps.Copy(next, parent.Values)
	for k, v := range kv {
		if v != "" {
			next[k] = v
		}
	}
	return context.WithValue(ctx, key{}, Scope{Values: next})
}

// Get returns a value and whether it was set
func Get(ctx context.Context, k string) (string, bool) {
	v, ok := From(ctx).Values[k]
	return v, ok
}

// From returns scope on ctx or an empty one
func From(ctx context.Context) Scope {
	s, _ := ctx.Value(key{}).(Scope)
	if s.Values == nil {
		s.Values = map[string]string{}
	}
	return s
}

// Each calls fn for every scoped value in key order
func Each(ctx context.Context, fn func(k, v string)) {
	s := From(ctx)
	for _, k := range slices.Sorted(maps.Keys(s.Values)) {
		fn(k, s.Values[k])
	}
}
