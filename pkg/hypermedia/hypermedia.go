// Package hypermedia generates HATEOAS links from a registry of named routes.
// Handlers inject a Resolver so that link targets always reflect the route
// table the server actually mounted, never hardcoded URLs.
package hypermedia

import (
	"fmt"
	"net/http"
	"strings"
)

// Link is a hypermedia reference embedded in a response: an absolute URL,
// the relation of the linked operation to the resource, and its HTTP method.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type route struct {
	method  string
	pattern string
}

// Resolver maps route names to method/pattern pairs and builds absolute
// links against the host of an inbound request. Registration happens once
// at startup; resolution runs per response record.
type Resolver struct {
	routes map[string]route
}

// NewResolver creates an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{routes: make(map[string]route)}
}

// Register adds a named route. Patterns use {param} placeholders,
// e.g. "/augmentations/{id}". Registering the same name twice panics:
// the route table is fixed configuration, not runtime state.
func (r *Resolver) Register(name, method, pattern string) *Resolver {
	if _, exists := r.routes[name]; exists {
		panic(fmt.Sprintf("hypermedia: route %q registered twice", name))
	}
	if !strings.HasPrefix(pattern, "/") {
		panic(fmt.Sprintf("hypermedia: route %q pattern must start with /: %s", name, pattern))
	}
	r.routes[name] = route{method: method, pattern: pattern}
	return r
}

// Resolve builds an absolute link for the named route, substituting params
// into the pattern and taking scheme and host from the request. An unknown
// route name or an unfilled placeholder is a configuration defect and is
// returned as an error for the caller's 500 boundary to surface.
func (r *Resolver) Resolve(req *http.Request, rel, name string, params map[string]string) (Link, error) {
	rt, ok := r.routes[name]
	if !ok {
		return Link{}, fmt.Errorf("hypermedia: unresolved route %q", name)
	}

	path := rt.pattern
	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	if i := strings.IndexByte(path, '{'); i >= 0 {
		return Link{}, fmt.Errorf("hypermedia: route %q missing value for %s", name, path[i:])
	}

	return Link{
		Href:   baseURL(req) + path,
		Rel:    rel,
		Method: rt.method,
	}, nil
}

func baseURL(req *http.Request) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + req.Host
}
