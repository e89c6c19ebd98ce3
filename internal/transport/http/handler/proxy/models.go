package proxy

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// modelsListResponse represents the OpenAI models list response.
type modelsListResponse struct {
	Object string  `json:"object"`
	Data   []model `json:"data"`
}

// model represents a single model in the list.
type model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// started stamps the created field of listed aliases.
var started = time.Now().Unix()

// ListModels handles GET /v1/models with the configured model aliases.
func (h *Handlers) ListModels(w http.ResponseWriter, r *http.Request) {
	slugs := h.Router.Slugs()
	out := modelsListResponse{Object: "list", Data: make([]model, 0, len(slugs))}
	for _, slug := range slugs {
		route, _ := h.Router.Lookup(slug)
		out.Data = append(out.Data, aliasModel(slug, route.Provider.Name()))
	}
	writeJSON(w, out)
}

// GetModel handles GET /v1/models/{model}.
func (h *Handlers) GetModel(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("model")
	route, ok := h.Router.Lookup(slug)
	if !ok {
		types.WriteError(w, http.StatusNotFound, types.ErrNotFound("model '"+slug+"' not found"))
		return
	}
	writeJSON(w, aliasModel(slug, route.Provider.Name()))
}

func aliasModel(slug, owner string) model {
	return model{ID: slug, Object: "model", Created: started, OwnedBy: owner}
}
