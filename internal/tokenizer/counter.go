package tokenizer

import (
	"fmt"
	"strings"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// replyPrimingTokens is the assistant header every reply starts with.
const replyPrimingTokens = 3

// framing is the chat template's fixed cost around each message.
type framing struct {
	perMessage int
	perName    int
}

// framingFor returns the template cost for model. gpt-3.5 wraps messages in
// one extra token; later families use <|start|>role<|end|>.
func framingFor(model string) framing {
	if strings.Contains(strings.ToLower(model), "gpt-3.5") {
		return framing{perMessage: 4, perName: 1}
	}
	return framing{perMessage: 3, perName: 1}
}

// CountMessages counts prompt tokens for messages, including template framing
// and reply priming.
func (t *TiktokenTokenizer) CountMessages(messages []types.Message, model string) (int, error) {
	f := framingFor(model)
	total := replyPrimingTokens
	for i := range messages {
		n, err := t.countMessage(&messages[i], model, f)
		if err != nil {
			return 0, fmt.Errorf("message %d: %w", i, err)
		}
		total += n
	}
	return total, nil
}

// CountRequest counts prompt tokens for a chat request: messages plus tool
// definitions.
func (t *TiktokenTokenizer) CountRequest(req *types.ChatCompletionRequest) (int, error) {
	total, err := t.CountMessages(req.Messages, req.Model)
	if err != nil {
		return 0, err
	}
	if len(req.Tools) == 0 {
		return total, nil
	}

	tools, err := t.countTools(req.Tools, req.Model)
	if err != nil {
		return 0, fmt.Errorf("tools: %w", err)
	}
	return total + tools, nil
}

func (t *TiktokenTokenizer) countMessage(msg *types.Message, model string, f framing) (int, error) {
	total, err := t.sum(model, msg.Role, msg.ToolCallID, msg.Name)
	if err != nil {
		return 0, err
	}
	total += f.perMessage
	if msg.Name != "" {
		total += f.perName
	}

	content, err := t.countContent(msg.Content, model)
	if err != nil {
		return 0, err
	}
	total += content

	if len(msg.ToolCalls) > 0 {
		calls, err := t.countToolCalls(msg.ToolCalls, model)
		if err != nil {
			return 0, fmt.Errorf("tool calls: %w", err)
		}
		total += calls
	}
	return total, nil
}

// sum adds the token counts of texts; empty strings cost nothing.
func (t *TiktokenTokenizer) sum(model string, texts ...string) (int, error) {
	total := 0
	for _, s := range texts {
		n, err := t.CountTokens(s, model)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
