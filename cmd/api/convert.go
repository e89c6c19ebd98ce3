package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/llmshim/internal/convert"
	"github.com/mandalnilabja/llmshim/internal/stream"
	"github.com/mandalnilabja/llmshim/internal/types"
)

type convertOptions struct {
	provider     string
	stream       bool
	includeUsage bool
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert a saved chat completion into text_completion form",
		Long: `Convert reads a chat completion JSON document (optionally carrying a
"_hidden_params" object with the raw provider reply under
"original_response") and prints the equivalent text_completion response.

With --stream the input is an SSE chat stream and the output is the
converted SSE stream, closed by a usage chunk when --include-usage is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(args)
			if err != nil {
				return err
			}
			defer closeIn()

			if opts.stream {
				return convertStream(in, cmd.OutOrStdout(), opts.includeUsage)
			}
			return convertJSON(in, cmd.OutOrStdout(), opts.provider)
		},
	}

	cmd.Flags().StringVar(&opts.provider, "provider", "", "Provider id for log probability extraction (default: _hidden_params.custom_llm_provider)")
	cmd.Flags().BoolVar(&opts.stream, "stream", false, "Treat input as an SSE chat stream")
	cmd.Flags().BoolVar(&opts.includeUsage, "include-usage", false, "Append a usage chunk to the converted stream")
	return cmd
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// savedResponse is a chat completion with its hidden params inlined.
type savedResponse struct {
	types.ChatCompletionResponse
	HiddenParams map[string]json.RawMessage `json:"_hidden_params"`
}

func convertJSON(r io.Reader, w io.Writer, provider string) error {
	var saved savedResponse
	if err := json.NewDecoder(r).Decode(&saved); err != nil {
		return fmt.Errorf("decode chat completion: %w", err)
	}

	resp := saved.ChatCompletionResponse
	resp.Hidden = hiddenParams(saved.HiddenParams)

	if provider == "" {
		provider, _ = resp.Hidden.Get(types.HiddenProvider).(string)
	}

	out := convert.ChatToTextCompletion(&resp, nil, provider)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// hiddenParams keeps JSON strings as Go strings and everything else raw.
func hiddenParams(raw map[string]json.RawMessage) types.HiddenParams {
	if len(raw) == 0 {
		return nil
	}
	out := make(types.HiddenParams, len(raw))
	for k, v := range raw {
		var s string
		if bytes.HasPrefix(bytes.TrimSpace(v), []byte(`"`)) && json.Unmarshal(v, &s) == nil {
			out[k] = s
			continue
		}
		out[k] = v
	}
	return out
}

func convertStream(r io.Reader, w io.Writer, includeUsage bool) error {
	for chunk, err := range stream.WithUsage(stream.ReadChunks(r), includeUsage) {
		if err != nil {
			return fmt.Errorf("read stream: %w", err)
		}
		if err := stream.WriteSSE(w, convert.ChunkToTextCompletion(chunk)); err != nil {
			return err
		}
	}
	return stream.WriteDone(w)
}
