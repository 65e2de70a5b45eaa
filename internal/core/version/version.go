// Package version reports what build is running
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// set with -ldflags "-X skillreel/internal/core/version.version=v0.1.0 -X ...commit=abcd -X ...date=2025-09-02"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo identifies a build
type BuildInfo struct {
	Version string `json:"version"    example:"v0.1.0"`
	Commit  string `json:"commit"     example:"4f2a9c1"`
	Date    string `json:"date"       example:"2025-09-02T10:00:00Z"`
	Go      string `json:"go_version" example:"go1.25.0"`
	Dirty   bool   `json:"dirty,omitempty"`
}

// String is the one line form printed by --version
func (b BuildInfo) String() string {
	s := b.Version
	if b.Commit != "" {
		s += " (" + b.Commit
		if b.Dirty {
			s += "-dirty"
		}
		s += ")"
	}
	if b.Date != "" {
		s += " built " + b.Date
	}
	return fmt.Sprintf("%s %s", s, b.Go)
}

var (
	once sync.Once
	info BuildInfo
)

// Info returns ldflags values, falling back to the vcs stamp go build embeds
func Info() BuildInfo {
	once.Do(func() { info = resolve(version, commit, date, debug.ReadBuildInfo) })
	return info
}

func resolve(v, c, d string, read func() (*debug.BuildInfo, bool)) BuildInfo {
	b := BuildInfo{Version: v, Commit: c, Date: d, Go: runtime.Version()}
	bi, ok := read()
	if !ok {
		return b
	}
	if b.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		b.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value[:min(len(s.Value), 12)]
			}
		case "vcs.time":
			if b.Date == "" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	return b
}
