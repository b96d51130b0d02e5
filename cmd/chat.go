package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scout/agent"
	"scout/streamers"
	"scout/streamers/cli"
)

var configPath string
var debugMode bool

// exitTokens end the interactive loop. Matched case-insensitively.
var exitTokens = []string{"quit", "q", "退出", "exit"}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long:  `Start an interactive chat session. Each question is routed to a direct answer, a web search, or a tool.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		opts := agent.Options{ConfigPath: configPath}
		if debugMode {
			opts.DebugFile = "debug.txt"
		}

		a, err := agent.New(ctx, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		streamer := cli.NewChatHandler()
		streamer.Welcome(a.ModelName)

		for {
			input, err := streamer.AwaitClientAnswer()
			if err != nil {
				if err == io.EOF {
					streamer.Goodbye()
					break
				}
				streamer.Error(err)
				break
			}

			if input == "" {
				continue
			}

			if isExitToken(input) {
				streamer.Goodbye()
				break
			}

			runTurn(ctx, a, input, streamer)
		}
	},
}

func isExitToken(input string) bool {
	lowered := strings.ToLower(input)
	for _, token := range exitTokens {
		if lowered == token {
			return true
		}
	}
	return false
}

// runTurn executes one turn and keeps the loop alive through both errors
// and panics.
func runTurn(ctx context.Context, a *agent.Agent, input string, streamer streamers.ChatHandler) {
	defer func() {
		if r := recover(); r != nil {
			streamer.Error(fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	outcome, err := a.Ask(ctx, input, streamer)
	if err != nil {
		streamer.Error(err)
		return
	}
	streamer.Answer(outcome.Answer)
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file or directory")
	chatCmd.Flags().BoolVarP(&debugMode, "debug", "d", false, "Log full session messages to debug.txt")
}
