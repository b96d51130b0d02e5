package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Long = fmt.Sprintf(`Scout %s

Conversational agent that routes each query to the right capability:
a direct model answer, a web search, or a deterministic tool.

Configure models and search in HCL, or run with just environment
variables (LLM_API_KEY, TAVILY_API_KEY).

Get started:
  scout chat            Start an interactive conversation
  scout ask "question"  Ask a single question
  scout serve           Expose the agent over WebSocket`, Version)
}
