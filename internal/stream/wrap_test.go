package stream

import (
	"bytes"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/mandalnilabja/llmshim/internal/types"
)

func seqOf(chunks []*types.ChatCompletionChunk, tail error) iter.Seq2[*types.ChatCompletionChunk, error] {
	return func(yield func(*types.ChatCompletionChunk, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
		if tail != nil {
			yield(nil, tail)
		}
	}
}

func collect(t *testing.T, seq iter.Seq2[*types.ChatCompletionChunk, error]) ([]*types.ChatCompletionChunk, error) {
	t.Helper()
	var out []*types.ChatCompletionChunk
	for c, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}

func TestWithUsage(t *testing.T) {
	chunks := []*types.ChatCompletionChunk{usageChunk("a", 1), usageChunk("a", 2), contentChunk("a", "!")}

	tests := []struct {
		name         string
		includeUsage bool
		wantLen      int
	}{
		{"appends usage chunk", true, 4},
		{"no usage chunk", false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collect(t, WithUsage(seqOf(chunks, nil), tt.includeUsage))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			for i, c := range chunks {
				if got[i] != c {
					t.Errorf("chunk %d was not forwarded as-is", i)
				}
			}
			if tt.includeUsage {
				last := got[len(got)-1]
				if !last.IsUsageOnly() || last.Usage.CompletionTokens != 3 {
					t.Errorf("last chunk = %+v, want usage-only with 3 completion tokens", last)
				}
			}
		})
	}
}

func TestWithUsageUpstreamError(t *testing.T) {
	boom := errors.New("boom")

	got, err := collect(t, WithUsage(seqOf([]*types.ChatCompletionChunk{usageChunk("a", 1)}, boom), true))
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1 chunk before the error", len(got))
	}
}

func TestObservedConsumerBreak(t *testing.T) {
	acc := NewUsageAccumulator(true)
	chunks := []*types.ChatCompletionChunk{usageChunk("a", 1), usageChunk("a", 2)}

	n := 0
	for range Observed(seqOf(chunks, nil), acc) {
		n++
		break
	}

	if n != 1 {
		t.Errorf("received %d chunks, want 1", n)
	}
	if acc.State() != StateAccumulating {
		t.Errorf("State() = %v, want %v after early stop", acc.State(), StateAccumulating)
	}
}

func TestReadChunks(t *testing.T) {
	body := strings.Join([]string{
		": keep-alive",
		`data: {"id":"c1","object":"chat.completion.chunk","model":"m","choices":[{"index":0,"delta":{"content":"Hi"},"finish_reason":null}]}`,
		"",
		"data: {not json",
		`data: {"id":"c1","object":"chat.completion.chunk","model":"m","choices":[],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`,
		"data: [DONE]",
		`data: {"id":"after-done","choices":[]}`,
	}, "\n")

	got, err := collect(t, ReadChunks(strings.NewReader(body)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Choices[0].Delta.Content != "Hi" {
		t.Errorf("first chunk content = %q, want %q", got[0].Choices[0].Delta.Content, "Hi")
	}
	if !got[1].IsUsageOnly() || got[1].Usage.TotalTokens != 2 {
		t.Errorf("second chunk = %+v, want usage-only", got[1])
	}
}

func TestWriteSSE(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSSE(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatalf("WriteSSE() error: %v", err)
	}
	if err := WriteDone(&buf); err != nil {
		t.Fatalf("WriteDone() error: %v", err)
	}

	want := "data: {\"a\":1}\n\ndata: [DONE]\n\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
