package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/civic-lab/sevadesk/pkg/cli/config"
	httpctrl "github.com/civic-lab/sevadesk/pkg/controller/http"
	"github.com/civic-lab/sevadesk/pkg/usecase"
	"github.com/civic-lab/sevadesk/pkg/utils/logging"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var providerTimeout time.Duration
	var catalogCfg config.Catalog
	var geminiCfg config.Gemini
	var matcherCfg config.Matcher
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SEVADESK_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "provider-timeout",
			Usage:       "Timeout for a single completion-provider call",
			Value:       usecase.DefaultProviderTimeout,
			Sources:     cli.EnvVars("SEVADESK_PROVIDER_TIMEOUT"),
			Destination: &providerTimeout,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, matcherCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sentryClose, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure error reporting")
			}
			defer sentryClose()

			// Load-time failure aborts startup: no traffic without a catalog
			svcCatalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient == nil {
				return goerr.New("gemini-project is required: refusing to serve without a completion provider")
			}

			m, err := matcherCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure matcher")
			}

			chatUC, err := usecase.NewChatUseCase(svcCatalog, llmClient,
				usecase.WithMatcher(m),
				usecase.WithProviderTimeout(providerTimeout),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize chat use case")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(chatUC),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"records", svcCatalog.Len(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
