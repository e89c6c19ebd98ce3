package tokenizer

import (
	"encoding/json"
	"testing"

	"github.com/mandalnilabja/llmshim/internal/types"
)

const weatherTool = `[{"type":"function","function":{"name":"get_weather","description":"Get weather for a location","parameters":{"type":"object","properties":{"location":{"type":"string","description":"City name"}},"required":["location"]}}}]`

func TestCountMessages(t *testing.T) {
	tok := newLoadedTokenizer(t)

	tests := []struct {
		name     string
		messages []types.Message
		model    string
		minCount int
		maxCount int
	}{
		{
			name: "single user message",
			messages: []types.Message{
				types.NewTextMessage(types.RoleUser, "Hello!"),
			},
			model:    "gpt-4",
			minCount: 5,
			maxCount: 10,
		},
		{
			name: "system and user messages",
			messages: []types.Message{
				types.NewTextMessage(types.RoleSystem, "You are a helpful assistant."),
				types.NewTextMessage(types.RoleUser, "Hello!"),
			},
			model:    "gpt-4",
			minCount: 12,
			maxCount: 20,
		},
		{
			name: "conversation with assistant",
			messages: []types.Message{
				types.NewTextMessage(types.RoleSystem, "You are helpful."),
				types.NewTextMessage(types.RoleUser, "Hi"),
				types.NewTextMessage(types.RoleAssistant, "Hello! How can I help?"),
				types.NewTextMessage(types.RoleUser, "What is 2+2?"),
			},
			model:    "gpt-4",
			minCount: 25,
			maxCount: 40,
		},
		{
			name:     "empty messages",
			messages: []types.Message{},
			model:    "gpt-4",
			minCount: 3, // Reply priming only
			maxCount: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tok.CountMessages(tc.messages, tc.model)
			if err != nil {
				t.Fatalf("CountMessages() error: %v", err)
			}
			if count < tc.minCount || count > tc.maxCount {
				t.Errorf("CountMessages() = %d, want between %d and %d",
					count, tc.minCount, tc.maxCount)
			}
		})
	}
}

func TestCountMessages_NameAndToolCalls(t *testing.T) {
	tok := newLoadedTokenizer(t)

	plain := []types.Message{types.NewTextMessage(types.RoleAssistant, "ok")}
	named := []types.Message{{Role: types.RoleAssistant, Content: types.TextContent("ok"), Name: "bot"}}
	withCalls := []types.Message{{
		Role:      types.RoleAssistant,
		ToolCalls: json.RawMessage(`[{"id":"call_1","type":"function","function":{"name":"f","arguments":"{}"}}]`),
	}}

	base, err := tok.CountMessages(plain, "gpt-4")
	if err != nil {
		t.Fatalf("CountMessages(plain) error: %v", err)
	}
	n, err := tok.CountMessages(named, "gpt-4")
	if err != nil {
		t.Fatalf("CountMessages(named) error: %v", err)
	}
	if n <= base {
		t.Errorf("CountMessages(named) = %d, want > %d", n, base)
	}

	c, err := tok.CountMessages(withCalls, "gpt-4")
	if err != nil {
		t.Fatalf("CountMessages(tool calls) error: %v", err)
	}
	if c < toolCallOverhead+replyPrimingTokens {
		t.Errorf("CountMessages(tool calls) = %d, want >= %d", c, toolCallOverhead+replyPrimingTokens)
	}
}

func TestCountMessages_MultimodalImage(t *testing.T) {
	tok := newLoadedTokenizer(t)

	msg := types.Message{
		Role: types.RoleUser,
		Content: types.Content{Set: true, Parts: []types.ContentPart{
			{Type: types.ContentTypeText, Text: "describe"},
			{Type: types.ContentTypeImageURL, ImageURL: &types.ImageURL{URL: "http://example.com/a.png", Detail: "low"}},
		}},
	}
	count, err := tok.CountMessages([]types.Message{msg}, "gpt-4o")
	if err != nil {
		t.Fatalf("CountMessages() error: %v", err)
	}
	lowImage := imageBaseTokens + imageLowDetailTiles*imageTileTokens
	if count < lowImage {
		t.Errorf("CountMessages() = %d, want >= %d", count, lowImage)
	}
}

func TestCountRequest(t *testing.T) {
	tok := newLoadedTokenizer(t)

	tests := []struct {
		name     string
		req      *types.ChatCompletionRequest
		minCount int
		maxCount int
	}{
		{
			name: "simple request",
			req: &types.ChatCompletionRequest{
				Model: "gpt-4",
				Messages: []types.Message{
					types.NewTextMessage(types.RoleUser, "Hello!"),
				},
			},
			minCount: 5,
			maxCount: 10,
		},
		{
			name: "request with tools",
			req: &types.ChatCompletionRequest{
				Model: "gpt-4",
				Messages: []types.Message{
					types.NewTextMessage(types.RoleUser, "What's the weather?"),
				},
				Tools: json.RawMessage(weatherTool),
			},
			minCount: 30,
			maxCount: 80,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tok.CountRequest(tc.req)
			if err != nil {
				t.Fatalf("CountRequest() error: %v", err)
			}
			if count < tc.minCount || count > tc.maxCount {
				t.Errorf("CountRequest() = %d, want between %d and %d",
					count, tc.minCount, tc.maxCount)
			}
		})
	}
}

func TestCountRequest_InvalidTools(t *testing.T) {
	tok := New()
	req := &types.ChatCompletionRequest{Model: "gpt-4", Tools: json.RawMessage(`{"not":"an array"}`)}

	// Messages are empty, so no encoding is needed before the tools fail.
	if _, err := tok.CountRequest(req); err == nil {
		t.Error("CountRequest() error = nil, want decode error")
	}
}

func TestEstimate(t *testing.T) {
	if got := EstimateChat(nil, &types.ChatCompletionRequest{}); got != 0 {
		t.Errorf("EstimateChat(nil tokenizer) = %d, want 0", got)
	}
	if got := EstimateCompletion(New(), nil); got != 0 {
		t.Errorf("EstimateCompletion(nil request) = %d, want 0", got)
	}

	bad := &types.ChatCompletionRequest{Model: "gpt-4", Tools: json.RawMessage(`"x"`)}
	if got := EstimateChat(New(), bad); got != 0 {
		t.Errorf("EstimateChat(invalid tools) = %d, want 0", got)
	}

	tok := newLoadedTokenizer(t)
	req := &types.CompletionRequest{Model: "gpt-4", Prompt: types.CompletionPrompt{Values: []string{"Say hi"}}}
	if got := EstimateCompletion(tok, req); got == 0 {
		t.Error("EstimateCompletion() = 0, want > 0")
	}
}
