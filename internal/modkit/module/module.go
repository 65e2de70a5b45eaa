// Package module is the contract modules satisfy and how their ports are found
package module

import "skillreel/internal/modkit/httpkit"

// Module mounts routes and exposes a port set other modules can consume
type Module interface {
	Name() string
	MountRoutes(r httpkit.Router)
	Ports() any
}
