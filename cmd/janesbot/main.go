// Command janesbot runs the Discord bot.
//
// Usage:
//
//	export DISCORD_TOKEN="your-bot-token"
//	janesbot
//
// The token and other settings can also be put in a .env file.
// Then, in a Discord channel where the bot is present, type:
//
//	!janes chat Welcome to the chat!
//	!listjanes
//	!addimage https://example.com/cat.png
//	!randomimage
//	!help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
	"github.com/spf13/cobra"

	"github.com/janesbot/janesbot/internal/command"
	"github.com/janesbot/janesbot/internal/config"
	"github.com/janesbot/janesbot/internal/discord"
	"github.com/janesbot/janesbot/internal/reactor"
)

var version = "dev"

func main() {
	// Set up a context that cancels on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "janesbot",
		Short:         "Discord bot with image commands and channel trigger words",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), envFile)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "path to a .env file; missing file is ignored")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("janesbot " + version)
		},
	})

	return cmd
}

func run(ctx context.Context, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	state := command.NewState()

	// The reactor replies through the adapter, and the adapter feeds the reactor.
	var channelReactor *reactor.Reactor
	adapter, err := discord.NewAdapter(&cfg.Discord, discord.WithChannelCreateHandler(func(ctx context.Context, channelID string, channelName string) {
		channelReactor.HandleChannelCreate(ctx, channelID, channelName)
	}))
	if err != nil {
		return fmt.Errorf("failed to create adapter: %w", err)
	}
	channelReactor = reactor.New(state.Triggers, adapter)

	sarah.RegisterBot(sarah.NewBot(adapter))

	if err := command.NewHandlers(state, adapter, cfg.Prefix).Register(); err != nil {
		return err
	}

	// Start go-sarah's lifecycle management.
	if err := sarah.Run(ctx, sarah.NewConfig()); err != nil {
		return fmt.Errorf("failed to run: %w", err)
	}

	logger.Infof("Bot is running. Press Ctrl+C to stop.")

	// Block until shutdown signal.
	<-ctx.Done()

	logger.Infof("Shutting down...")
	return nil
}
