package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"iter"

	"github.com/mandalnilabja/llmshim/internal/types"
)

var (
	dataPrefix = []byte(types.SSEPrefix)
	doneMarker = []byte("[DONE]")
)

// ReadChunks decodes an upstream SSE body into chat chunks. Non-data lines
// and malformed JSON are skipped; [DONE] ends the sequence.
func ReadChunks(r io.Reader) iter.Seq2[*types.ChatCompletionChunk, error] {
	return func(yield func(*types.ChatCompletionChunk, error) bool) {
		scanner := bufio.NewScanner(r)
		// Set a larger buffer for potentially large chunks
		buf := make([]byte, 64*1024)
		scanner.Buffer(buf, 256*1024)

		for scanner.Scan() {
			line := scanner.Bytes()
			if !bytes.HasPrefix(line, dataPrefix) {
				continue
			}

			data := bytes.TrimSpace(bytes.TrimPrefix(line, dataPrefix))
			if bytes.Equal(data, doneMarker) {
				return
			}

			var chunk types.ChatCompletionChunk
			if err := json.Unmarshal(data, &chunk); err != nil {
				continue // Skip malformed chunks
			}
			if !yield(&chunk, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// WriteSSE encodes v as one SSE data event.
func WriteSSE(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(types.FormatSSE(data))
	return err
}

// WriteDone writes the terminating [DONE] event.
func WriteDone(w io.Writer) error {
	_, err := io.WriteString(w, types.SSEDone)
	return err
}
