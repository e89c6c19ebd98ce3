package proxy

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mandalnilabja/llmshim/internal/storage"
	"github.com/mandalnilabja/llmshim/internal/tokenizer"
	"github.com/mandalnilabja/llmshim/internal/transport/http/middleware"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// ChatCompletions handles POST /v1/chat/completions. The body is relayed to
// the routed provider; streamed replies get their usage summed and, when
// requested, a closing usage chunk.
func (h *Handlers) ChatCompletions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteError(w, http.StatusBadRequest, types.ErrInvalidRequest("invalid request format"))
		return
	}
	if len(req.Messages) == 0 {
		types.WriteError(w, http.StatusBadRequest, types.ErrInvalidRequest("messages is required"))
		return
	}

	o := outcome{
		endpoint:  storage.EndpointChat,
		requestID: requestID(r),
		model:     req.Model,
		streaming: req.Stream,
		start:     start,
		estimate:  func() int { return tokenizer.EstimateChat(h.Tokenizer, &req) },
	}

	route, err := h.Router.Resolve(req.Model)
	if err != nil {
		o.status, o.err = writeProviderError(w, err), err
		h.record(o)
		return
	}
	o.provider = route.Provider.Name()

	upstreamReq := req
	upstreamReq.Model = route.Model

	if !req.Stream {
		resp, err := route.Provider.ChatCompletion(r.Context(), &upstreamReq)
		if err != nil {
			o.status, o.err = writeProviderError(w, err), err
			h.record(o)
			return
		}
		if resp.Object == "" {
			resp.Object = types.ObjectChatCompletion
		}
		o.status = http.StatusOK
		o.usage = resp.Usage
		if len(resp.Choices) > 0 {
			o.finishReason = resp.Choices[0].FinishReason
		}
		writeJSON(w, resp)
		h.record(o)
		return
	}

	seq, err := route.Provider.StreamChatCompletion(r.Context(), &upstreamReq)
	if err != nil {
		o.status, o.err = writeProviderError(w, err), err
		h.record(o)
		return
	}

	res := relay(w, seq, req.IncludeUsage(), func(c *types.ChatCompletionChunk) any { return c })
	h.finishStream(&o, res)
}

// finishStream records a relayed stream.
func (h *Handlers) finishStream(o *outcome, res relayResult) {
	o.status = http.StatusOK
	o.usage = res.usage
	o.finishReason = res.finishReason
	if res.err != nil {
		o.status, o.err = http.StatusBadGateway, res.err
		h.Logger.Warn("stream ended with error", "request_id", o.requestID, "error", res.err)
	}
	if res.synthetic {
		h.Metrics.IncrementSyntheticUsage(o.endpoint)
	}
	h.record(*o)
}

func requestID(r *http.Request) string {
	if id := middleware.GetRequestID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
