// Package huggingface implements a provider for text-generation-inference
// servers, including the Hugging Face serverless inference API.
//
// TGI has no chat schema, so requests are flattened into a prompt and the
// /generate reply is rebuilt as a chat completion. The raw reply is kept in
// the hidden params for logprob extraction.
package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mandalnilabja/llmshim/internal/provider/upstream"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// Provider implements the provider.Provider interface for TGI.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// New creates a provider. baseURL may contain a "{model}" placeholder.
func New(apiKey, baseURL string) *Provider {
	return &Provider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  upstream.NewHTTPClient(),
		now:     time.Now,
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "huggingface"
}

func (p *Provider) targetURL(model string) string {
	if strings.Contains(p.baseURL, "{model}") {
		return strings.ReplaceAll(p.baseURL, "{model}", model)
	}
	return p.baseURL + "/generate"
}

// ChatCompletion runs one generation and returns it as a chat completion.
func (p *Provider) ChatCompletion(ctx context.Context, req *types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	h := http.Header{}
	if p.apiKey != "" {
		h.Set("Authorization", "Bearer "+p.apiKey)
	}

	target := p.targetURL(req.Model)
	resp, err := upstream.PostJSON(ctx, p.client, target, h, buildRequest(req))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	gen, err := firstGeneration(body)
	if err != nil {
		return nil, err
	}

	completion := &types.ChatCompletionResponse{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  types.ObjectChatCompletion,
		Created: p.now().Unix(),
		Model:   req.Model,
		Choices: []types.Choice{{
			Index:        0,
			Message:      types.NewTextMessage(types.RoleAssistant, gen.GeneratedText),
			FinishReason: mapFinishReason(gen.Details),
		}},
		Usage: usageOf(gen.Details),
		Hidden: types.HiddenParams{
			types.HiddenOriginalResponse: json.RawMessage(body),
			types.HiddenProvider:         p.Name(),
			types.HiddenAPIBase:          target,
		},
	}
	return completion, nil
}

// StreamChatCompletion emits the full generation as one content chunk
// followed by a usage-only chunk.
func (p *Provider) StreamChatCompletion(ctx context.Context, req *types.ChatCompletionRequest) (iter.Seq2[*types.ChatCompletionChunk, error], error) {
	completion, err := p.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	return singleEventStream(completion), nil
}

func singleEventStream(resp *types.ChatCompletionResponse) iter.Seq2[*types.ChatCompletionChunk, error] {
	return func(yield func(*types.ChatCompletionChunk, error) bool) {
		for _, choice := range resp.Choices {
			var finish *string
			if choice.FinishReason != "" {
				reason := choice.FinishReason
				finish = &reason
			}
			chunk := &types.ChatCompletionChunk{
				ID:      resp.ID,
				Object:  types.ObjectChatCompletionChunk,
				Created: resp.Created,
				Model:   resp.Model,
				Choices: []types.ChunkChoice{{
					Index:        choice.Index,
					Delta:        types.Delta{Role: types.RoleAssistant, Content: choice.Message.Content.String()},
					FinishReason: finish,
				}},
			}
			if !yield(chunk, nil) {
				return
			}
		}

		if resp.Usage != nil {
			u := resp.Usage.Clone()
			yield(&types.ChatCompletionChunk{
				ID:      resp.ID,
				Object:  types.ObjectChatCompletionChunk,
				Created: resp.Created,
				Model:   resp.Model,
				Choices: []types.ChunkChoice{},
				Usage:   &u,
			}, nil)
		}
	}
}
