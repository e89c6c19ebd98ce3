// Package upstream holds the HTTP plumbing shared by the provider adapters:
// posting JSON, mapping error replies and decoding chat payloads.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"

	"github.com/mandalnilabja/llmshim/internal/stream"
	"github.com/mandalnilabja/llmshim/internal/types"
)

// ErrNoAPIKey is returned when no API key is configured for a provider.
var ErrNoAPIKey = errors.New("no API key configured")

// Error is a non-2xx reply from an upstream provider.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// NewHTTPClient returns the client used for upstream calls.
// Compression is disabled so SSE bodies arrive unbuffered.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DisableCompression: true,
		},
	}
}

// PostJSON sends payload to url. Replies with status >= 400 are drained and
// returned as *Error; otherwise the caller owns resp.Body.
func PostJSON(ctx context.Context, client *http.Client, url string, header http.Header, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode upstream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, readError(resp)
	}
	return resp, nil
}

// readError extracts the upstream error message when it is OpenAI-shaped,
// falling back to the raw body.
func readError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	upstreamErr := &Error{StatusCode: resp.StatusCode}
	// OpenRouter sends numeric codes, so only the message is decoded.
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		upstreamErr.Message = apiErr.Error.Message
		return upstreamErr
	}

	var tgiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &tgiErr); err == nil && tgiErr.Error != "" {
		upstreamErr.Message = tgiErr.Error
		return upstreamErr
	}

	upstreamErr.Message = string(bytes.TrimSpace(body))
	return upstreamErr
}

// DecodeChat reads an OpenAI-compatible chat response and records the raw
// body and its origin in the hidden params.
func DecodeChat(resp *http.Response, provider, apiBase string) (*types.ChatCompletionResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	var completion types.ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}

	completion.Hidden = types.HiddenParams{
		types.HiddenOriginalResponse: json.RawMessage(body),
		types.HiddenProvider:         provider,
		types.HiddenAPIBase:          apiBase,
	}
	return &completion, nil
}

// ChunkStream decodes an SSE reply. The body is closed when iteration ends,
// so the returned sequence must be ranged over.
func ChunkStream(resp *http.Response) iter.Seq2[*types.ChatCompletionChunk, error] {
	return func(yield func(*types.ChatCompletionChunk, error) bool) {
		defer resp.Body.Close()
		for chunk, err := range stream.ReadChunks(resp.Body) {
			if !yield(chunk, err) {
				return
			}
		}
	}
}

// WithModel returns a shallow copy of req targeting model with the stream
// flag forced. Streaming copies always ask upstream for usage.
func WithModel(req *types.ChatCompletionRequest, model string, streaming bool) *types.ChatCompletionRequest {
	out := *req
	out.Model = model
	out.Stream = streaming
	out.StreamOptions = nil
	if streaming {
		out.StreamOptions = &types.StreamOptions{IncludeUsage: true}
	}
	return &out
}
