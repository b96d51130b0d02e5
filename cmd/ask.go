package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scout/agent"
	"scout/streamers/cli"
)

var askConfigPath string
var askPlain bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		question := strings.Join(args, " ")

		a, err := agent.New(ctx, agent.Options{ConfigPath: askConfigPath})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		streamer := cli.NewChatHandler()
		outcome, err := a.Ask(ctx, question, streamer)
		if err != nil {
			streamer.Error(err)
			os.Exit(1)
		}

		if askPlain {
			fmt.Println(outcome.Answer)
			return
		}
		streamer.Answer(outcome.Answer)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askConfigPath, "config", "c", "", "Path to config file or directory")
	askCmd.Flags().BoolVarP(&askPlain, "plain", "p", false, "Print the raw answer without markdown rendering")
}
