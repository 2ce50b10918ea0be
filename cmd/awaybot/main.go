package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DevRickLin/feishu-away-bot/internal/conf"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "awaybot",
		Short:         "Automatic away replies for Feishu private messages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Printf("[Config] No %s file found, using environment variables\n", envFile)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path of the .env file to load")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newSummaryCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "awaybot %s\n", version)
		},
	}
}

// loadLocalConfig loads configuration for commands that only touch the state directory
func loadLocalConfig() (*conf.Config, error) {
	cfg := conf.LoadFromEnv()
	if err := cfg.ValidateLocal(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
