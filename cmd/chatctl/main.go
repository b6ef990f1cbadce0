package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/ngongtopro/love-story-chat/client"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/internal"
	"github.com/ngongtopro/love-story-chat/observability"
	"github.com/ngongtopro/love-story-chat/repositories"
	"github.com/ngongtopro/love-story-chat/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Exit codes for chatctl.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatctl: %v\n", err)
	}
	os.Exit(code)
}

// run loads the configuration and hands over to cobra.
func run() (int, error) {
	// 1. Load configuration, .env first when present.
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	// 2. Stop cleanly on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Dispatch the command.
	a := &app{config: config, log: logs.GetLoggerFromString(config.LogLevel)}
	defer func() {
		if err := a.close(); err != nil {
			a.log.Error("Cannot close credential store", "error", err)
		}
	}()
	root := newRootCommand(a)
	if err := root.ExecuteContext(ctx); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}

// app is the client wired for one invocation.
type app struct {
	config internal.Config
	log    *slog.Logger

	registry   *prometheus.Registry
	store      repositories.ICredentialRepository
	closeStore func() error
	router     *client.Router
	auth       *services.AuthService
	chat       *services.ChatService
}

// open builds the stack: store, router, pipeline, then the two services.
func (a *app) open(ctx context.Context) error {
	store, closeStore, err := internal.OpenCredentialStore(ctx, a.config, a.log)
	if err != nil {
		return err
	}
	a.store, a.closeStore = store, closeStore

	a.registry = prometheus.NewRegistry()
	a.router = client.NewRouter("/", a.log)
	pipeline := client.NewPipeline(a.config.BaseURL(), a.config.HTTPClient(), store, a.router,
		observability.NewClientMetrics(a.registry), a.log)
	a.auth = services.NewAuthService(client.NewAuthAPI(pipeline), store, a.log)
	pipeline.OnCredentialsRevoked(a.auth.Invalidate)
	a.chat = services.NewChatService(client.NewChatAPI(pipeline, a.auth), a.router, a.auth, a.log)
	return nil
}

func (a *app) close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

// requireSession resolves the stored credentials and fails when nobody is signed in.
func (a *app) requireSession(ctx context.Context) (domain.Session, error) {
	session := a.auth.Start(ctx)
	if !session.IsAuthenticated() {
		return session, fmt.Errorf("not signed in, run `chatctl login` first")
	}
	return session, nil
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "chatctl",
		Short:         "Terminal client for the love story chat service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}
	root.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newStatusCommand(a),
		newUsersCommand(a),
		newThreadsCommand(a),
		newOpenCommand(a),
		newSendCommand(a),
		newChatCommand(a),
	)
	return root
}
