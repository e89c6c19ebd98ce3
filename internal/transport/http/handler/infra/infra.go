// Package infra serves status and health endpoints.
package infra

import (
	"time"

	"github.com/mandalnilabja/llmshim/internal/logprobs"
	"github.com/mandalnilabja/llmshim/internal/storage"
)

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	Storage   storage.Storage
	Logprobs  *logprobs.Registry
	StartTime time.Time
}

// New creates a new instance of infrastructure handlers.
func New(store storage.Storage, startTime time.Time) *Handlers {
	return &Handlers{
		Storage:   store,
		Logprobs:  logprobs.Default(),
		StartTime: startTime,
	}
}
