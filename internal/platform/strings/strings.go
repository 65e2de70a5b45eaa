// Package strings holds the boot-time string assertions modules use for names and prefixes
package strings

import std "strings"

// MustString returns s unless it is blank, in which case it panics naming what was missing
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalises a route prefix to one leading slash and no trailing slash
// it panics on a blank or root prefix
func MustPrefix(s string) string {
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("route prefix is required")
	}
	return s
}
