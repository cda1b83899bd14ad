// Package app assembles the extensions into one dispatchable unit: a
// router directs every incoming transaction to the handler registered for
// its message path.
package app

import (
	"fmt"
	"regexp"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux.
type Router struct {
	routes map[string]easynft.Handler
}

var _ easynft.Registry = (*Router)(nil)
var _ easynft.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]easynft.Handler, 10),
	}
}

// Handle implements easynft.Registry interface. Path may contain
// alphanumeric characters, underscores and slashes. Panics on invalid or
// duplicate path.
func (r *Router) Handle(path string, h easynft.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path, or a handler that
// always fails if no route exists.
func (r *Router) handler(tx easynft.Tx) easynft.Handler {
	path := easynft.GetPath(tx)
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx easynft.Context, store easynft.KVStore, tx easynft.Tx) (*easynft.CheckResult, error) {
	return r.handler(tx).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx easynft.Context, store easynft.KVStore, tx easynft.Tx) (*easynft.DeliverResult, error) {
	return r.handler(tx).Deliver(ctx, store, tx)
}

// notFoundHandler always returns a not found error.
type notFoundHandler string

var _ easynft.Handler = notFoundHandler("")

func (h notFoundHandler) Check(easynft.Context, easynft.KVStore, easynft.Tx) (*easynft.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(h))
}

func (h notFoundHandler) Deliver(easynft.Context, easynft.KVStore, easynft.Tx) (*easynft.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(h))
}
