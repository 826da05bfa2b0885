package modkit

import (
	"net/http"

	phttp "assetsearch/internal/platform/net/http"
	str "assetsearch/internal/platform/strings"
)

// Module is the common surface for API modules that can mount routes and expose ports
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set interface for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// Base carries the routing half every module shares
// embed it and supply Ports to satisfy Module
type Base struct {
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)
}

// NewBase binds the built options to the module's own route registration
// an external WithRegister hook runs after own so callers can extend a module
func NewBase(b Built, own func(phttp.Router)) Base {
	external := b.Register
	return Base{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		register: func(r phttp.Router) {
			if own != nil {
				own(r)
			}
			if external != nil {
				external(r)
			}
		},
	}
}

// MountRoutes mounts the module under its prefix, or inline when the prefix is empty
func (m Base) MountRoutes(r phttp.Router) {
	mount := func(rr phttp.Router) {
		if len(m.mws) > 0 {
			rr.Use(m.mws...)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	}
	if m.prefix == "" || m.prefix == "/" {
		r.Group(mount)
		return
	}
	r.Route(m.prefix, mount)
}

// Name returns the module name
func (m Base) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m Base) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m Base) Middlewares() []func(http.Handler) http.Handler { return m.mws }
