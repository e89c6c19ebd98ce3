package proxy

import (
	"net/http"
	"testing"
	"time"

	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/types"
)

func TestRecord_PromptEstimate(t *testing.T) {
	tests := []struct {
		name          string
		usage         *types.Usage
		wantPrompt    int
		wantTotal     int
		wantEstimated bool
	}{
		{"no usage reported", nil, 5, 5, true},
		{"completion only", &types.Usage{CompletionTokens: 4, TotalTokens: 4}, 5, 9, true},
		{"total only", &types.Usage{TotalTokens: 20}, 0, 20, false},
		{"total above completion", &types.Usage{CompletionTokens: 4, TotalTokens: 12}, 0, 12, false},
		{"prompt reported", &types.Usage{PromptTokens: 3, CompletionTokens: 4}, 3, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStorage{}
			h := newTestHandlers(&fakeProvider{name: "fake"}, store)

			h.record(outcome{
				endpoint:  storage.EndpointCompletions,
				requestID: "req-1",
				provider:  "fake",
				model:     "m",
				usage:     tt.usage,
				status:    http.StatusOK,
				start:     time.Now(),
				estimate:  func() int { return 5 },
			})

			log := store.only(t)
			if log.PromptTokens != tt.wantPrompt || log.TotalTokens != tt.wantTotal || log.PromptEstimated != tt.wantEstimated {
				t.Errorf("logged prompt=%d total=%d estimated=%v, want %d/%d/%v",
					log.PromptTokens, log.TotalTokens, log.PromptEstimated,
					tt.wantPrompt, tt.wantTotal, tt.wantEstimated)
			}
		})
	}
}
