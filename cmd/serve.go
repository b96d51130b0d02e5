package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"scout/config"
	"scout/wsbridge"
)

var serveConfigPath string
var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the agent over a WebSocket endpoint",
	Long: `Start a long-running server that accepts WebSocket connections on /ws.
Each connection gets its own conversation; clients send 'ask' messages
and receive stage events followed by the final answer.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadOrEnv(serveConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		logger := hclog.New(&hclog.LoggerOptions{
			Name:  "scout",
			Level: hclog.Info,
		})

		server := wsbridge.NewServer(cfg, logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := server.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\nShutting down...")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to config file or directory")
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides config)")
}
