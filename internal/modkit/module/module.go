// Package module defines the minimal contract for a modkit module and the port lookup helpers
package module

import (
	phttp "assetsearch/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
// it lives apart from modkit so a module can export its own ports type without an import knot
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
