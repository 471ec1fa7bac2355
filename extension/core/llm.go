// llm.go implements the "bookrab llm" command for LLM integration hints.
//
// Separated from extension.go to isolate LLM-specific documentation that
// helps AI assistants discover the CLI, the MCP tools and the REST routes.
//
// Design: Reads from guide/llm.md to avoid duplicating content. The guide
// file is the single source of truth for LLM onboarding documentation.

package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/guide"
)

func newLlmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "llm",
		Short: "Getting started guide for LLMs",
		Long:  `Quick reference for LLMs to discover available commands and usage patterns.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			content, err := guide.Get("llm")
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			printMarkdown(content)
			return nil
		},
	}
}
