package handler

import (
	"net/http"
	"regexp"
	"strconv"
)

type route struct {
	method  string
	pattern *regexp.Regexp
	handle  func(w http.ResponseWriter, r *http.Request, params []string)
}

// Router dispatches the todo API and hands every other request to a fallback.
type Router struct {
	routes   []route
	fallback http.Handler
}

var (
	collectionPath = regexp.MustCompile(`^/api/todos$`)
	itemPath       = regexp.MustCompile(`^/api/todos/([0-9]+)$`)
)

// NewRouter builds the API dispatch table. Requests matching no rule go to
// fallback, which is expected to serve static files.
func NewRouter(todos *TodoHandler, fallback http.Handler) *Router {
	return &Router{
		routes: []route{
			{http.MethodGet, collectionPath, func(w http.ResponseWriter, r *http.Request, _ []string) {
				todos.List(w, r)
			}},
			{http.MethodPost, collectionPath, func(w http.ResponseWriter, r *http.Request, _ []string) {
				todos.Create(w, r)
			}},
			{http.MethodPatch, itemPath, withID(todos.Update)},
			{http.MethodDelete, itemPath, withID(todos.Delete)},
		},
		fallback: fallback,
	}
}

// ServeHTTP implements http.Handler
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, route := range rt.routes {
		if r.Method != route.method {
			continue
		}
		if m := route.pattern.FindStringSubmatch(r.URL.Path); m != nil {
			route.handle(w, r, m[1:])
			return
		}
	}
	rt.fallback.ServeHTTP(w, r)
}

// withID parses the {id} capture. Digit runs too long for an int name no
// stored todo, so they answer 404 like any other unknown id.
func withID(next func(http.ResponseWriter, *http.Request, int)) func(http.ResponseWriter, *http.Request, []string) {
	return func(w http.ResponseWriter, r *http.Request, params []string) {
		id, err := strconv.Atoi(params[0])
		if err != nil {
			respondError(w, http.StatusNotFound, "Not found")
			return
		}
		next(w, r, id)
	}
}
