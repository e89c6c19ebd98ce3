package provider

import (
	"errors"
	"sort"

	"github.com/mandalnilabja/llmshim/internal/config"
)

// ErrModelNotFound is returned when a model slug cannot be resolved.
var ErrModelNotFound = errors.New("model not found")

// Route is a resolved provider and upstream model for a client slug.
type Route struct {
	Provider Provider
	Model    string
}

// Router routes requests to the appropriate provider based on model aliases.
type Router struct {
	providers map[string]Provider
	slugMap   map[string]Route // Pre-resolved for O(1) lookup
	default_  *config.DefaultRoute
}

// NewRouter creates a Router with pre-resolved model aliases.
// Aliases naming an unknown provider are skipped.
func NewRouter(providers map[string]Provider, cfg *config.Config) *Router {
	r := &Router{
		providers: providers,
		slugMap:   make(map[string]Route),
		default_:  cfg.Default,
	}

	// Build slug map at startup (not per-request)
	for _, alias := range cfg.Models {
		if p, ok := providers[alias.Provider]; ok {
			r.slugMap[alias.Slug] = Route{Provider: p, Model: alias.Model}
		}
	}
	return r
}

// Resolve maps a client model slug to a route. Explicit aliases win; unknown
// slugs fall back to the default provider with the slug passed through. An
// empty slug takes the default model.
func (r *Router) Resolve(slug string) (Route, error) {
	if route, ok := r.slugMap[slug]; ok {
		return route, nil
	}

	if r.default_ != nil {
		if p, ok := r.providers[r.default_.Provider]; ok {
			model := slug
			if r.default_.Model != "" && slug == "" {
				model = r.default_.Model
			}
			return Route{Provider: p, Model: model}, nil
		}
	}

	return Route{}, ErrModelNotFound
}

// Slugs returns the configured model aliases, sorted.
func (r *Router) Slugs() []string {
	slugs := make([]string, 0, len(r.slugMap))
	for slug := range r.slugMap {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Lookup returns the route for an explicit alias only.
func (r *Router) Lookup(slug string) (Route, bool) {
	route, ok := r.slugMap[slug]
	return route, ok
}
