package proxy

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mandalnilabja/llmshim/internal/convert"
	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/tokenizer"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// Completions handles POST /v1/completions, the legacy text completion
// endpoint. The prompt is sent upstream as a chat request and the reply is
// reshaped into text_completion form.
func (h *Handlers) Completions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteError(w, http.StatusBadRequest, types.ErrInvalidRequest("invalid request format"))
		return
	}
	if len(req.Prompt.Values) == 0 {
		types.WriteError(w, http.StatusBadRequest, types.ErrInvalidRequest("prompt is required"))
		return
	}

	o := outcome{
		endpoint:  storage.EndpointCompletions,
		requestID: requestID(r),
		model:     req.Model,
		streaming: req.Stream,
		start:     start,
		estimate:  func() int { return tokenizer.EstimateCompletion(h.Tokenizer, &req) },
	}

	route, err := h.Router.Resolve(req.Model)
	if err != nil {
		o.status, o.err = writeProviderError(w, err), err
		h.record(o)
		return
	}
	o.provider = route.Provider.Name()

	chatReq := convert.CompletionToChatRequest(&req)
	chatReq.Model = route.Model

	if !req.Stream {
		resp, err := route.Provider.ChatCompletion(r.Context(), chatReq)
		if err != nil {
			o.status, o.err = writeProviderError(w, err), err
			h.record(o)
			return
		}

		out := convert.ConvertWith(h.Logprobs, resp, nil, o.provider)
		if len(out.Choices) > 0 && out.Choices[0].Logprobs != nil {
			h.Metrics.IncrementLogprobs(o.provider)
		}

		o.status = http.StatusOK
		o.usage = out.Usage
		if len(out.Choices) > 0 {
			o.finishReason = out.Choices[0].GetFinishReason()
		}
		writeJSON(w, out)
		h.record(o)
		return
	}

	seq, err := route.Provider.StreamChatCompletion(r.Context(), chatReq)
	if err != nil {
		o.status, o.err = writeProviderError(w, err), err
		h.record(o)
		return
	}

	res := relay(w, seq, req.IncludeUsage(), func(c *types.ChatCompletionChunk) any {
		return convert.ChunkToTextCompletion(c)
	})
	h.finishStream(&o, res)
}
