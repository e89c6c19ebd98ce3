package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/llmshim/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "llmshim",
		Short: "llmshim - OpenAI-compatible gateway with legacy completions support",
		Long: `llmshim routes OpenAI-style requests to upstream providers and
normalizes what comes back: chat replies are reshaped into text_completion
responses, streamed usage is summed, and provider log probabilities are
mapped onto the completions format.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConvertCmd())
	return rootCmd
}
