package tokenizer

import (
	"encoding/json"
)

// Approximate structural overhead per entry.
const (
	toolOverhead     = 7 // {"type":"function","function":{...}}
	toolCallOverhead = 5 // {"type":"function","id":"...","function":{...}}
)

// countTools counts tokens for tool definitions, which are forwarded as raw
// JSON. Each array entry is counted as its compact encoding plus overhead.
func (t *TiktokenTokenizer) countTools(raw json.RawMessage, model string) (int, error) {
	return t.countRawArray(raw, model, toolOverhead)
}

// countToolCalls counts tokens for tool calls in assistant messages.
func (t *TiktokenTokenizer) countToolCalls(raw json.RawMessage, model string) (int, error) {
	return t.countRawArray(raw, model, toolCallOverhead)
}

func (t *TiktokenTokenizer) countRawArray(raw json.RawMessage, model string, overhead int) (int, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, err
	}

	total := 0
	for _, entry := range entries {
		n, err := t.CountTokens(string(entry), model)
		if err != nil {
			return 0, err
		}
		total += n + overhead
	}
	return total, nil
}
