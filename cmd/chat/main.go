package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/davidbz/launchpad/internal/chat"
	"github.com/davidbz/launchpad/internal/config"
	"github.com/davidbz/launchpad/internal/observability"
)

const (
	transportRelay  = "relay"
	transportDirect = "direct"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		relayURL   string
		transport  string
		noGreeting bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the startup adviser from the terminal",
		Long: "Talk to the startup adviser from the terminal.\n\n" +
			"Commands: " + chat.CommandSuggest + " lists suggested prompts, " +
			chat.CommandAsk + " N sends one, " + chat.CommandQuit + " exits.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadChat()
			if cmd.Flags().Changed("relay-url") {
				cfg.Relay.URL = relayURL
			}
			if cmd.Flags().Changed("transport") {
				cfg.Transport = transport
			}

			logger, err := observability.InitLogger(&cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			t, err := newTransport(ctx, cfg)
			if err != nil {
				return err
			}

			greeting := chat.Greeting
			if noGreeting {
				greeting = ""
			}

			session := chat.NewSession(t, greeting)
			return chat.NewConsole(session, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&relayURL, "relay-url", "", "relay endpoint (overrides CHAT_RELAY_URL)")
	cmd.Flags().StringVar(&transport, "transport", transportRelay,
		"relay sends prompts through the relay; direct calls Gemini with VITE_GEMINI_API_KEY")
	cmd.Flags().BoolVar(&noGreeting, "no-greeting", false, "start with an empty transcript")

	return cmd
}

func newTransport(ctx context.Context, cfg *config.ChatConfig) (chat.Transport, error) {
	switch cfg.Transport {
	case transportRelay, "":
		return chat.NewRelayTransport(cfg.Relay), nil
	case transportDirect:
		observability.FromContext(ctx).Warn("direct transport exposes the API key to this client")
		return chat.NewDirectTransport(ctx, cfg.Direct)
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}
