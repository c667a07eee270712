package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/civic-lab/sevadesk/pkg/cli/config"
	"github.com/civic-lab/sevadesk/pkg/usecase"
)

func cmdAsk() *cli.Command {
	var providerTimeout time.Duration
	var catalogCfg config.Catalog
	var geminiCfg config.Gemini
	var matcherCfg config.Matcher

	flags := []cli.Flag{
		&cli.DurationFlag{
			Name:        "provider-timeout",
			Usage:       "Timeout for the completion-provider call",
			Value:       usecase.DefaultProviderTimeout,
			Sources:     cli.EnvVars("SEVADESK_PROVIDER_TIMEOUT"),
			Destination: &providerTimeout,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, matcherCfg.Flags()...)

	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask a single question from the terminal",
		ArgsUsage: "<question>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if question == "" {
				return goerr.New("question is required, e.g. sevadesk ask \"how do I get a birth certificate\"")
			}

			svcCatalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient == nil {
				return goerr.New("gemini-project is required")
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

			envelope, err := chatUC.Chat(ctx, question)
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			cyan := color.New(color.FgCyan)

			bold.Println("Answer:")
			fmt.Println(envelope.Response)
			fmt.Println()

			if len(envelope.ServiceReferences) > 0 {
				bold.Println("Referenced services:")
				for _, id := range envelope.ServiceReferences {
					record, ok := svcCatalog.Get(id)
					if !ok {
						continue
					}
					cyan.Printf("  %s", id)
					fmt.Printf("  %s (%s)\n", record.Title, record.Department)
				}
			}

			return nil
		},
	}
}
