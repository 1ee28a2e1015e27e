// Package middleware holds the filters every request passes through before
// reaching the router.
package middleware

import "net/http"

// Middleware wraps a Handler to add cross-cutting behaviour.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares right-to-left so the first listed runs outermost.
//
//	Chain(h, mw1, mw2, mw3) ≡ mw1(mw2(mw3(h)))
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
