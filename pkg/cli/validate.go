package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/civic-lab/sevadesk/pkg/cli/config"
	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/civic-lab/sevadesk/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var checkLinks bool
	var linkTimeout time.Duration
	var catalogCfg config.Catalog
	var matcherCfg config.Matcher

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "check-links",
			Usage:       "Verify application links respond over HTTP",
			Sources:     cli.EnvVars("SEVADESK_CHECK_LINKS"),
			Destination: &checkLinks,
		},
		&cli.DurationFlag{
			Name:        "link-timeout",
			Usage:       "Timeout per link check",
			Value:       10 * time.Second,
			Destination: &linkTimeout,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, matcherCfg.Flags()...)

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate dataset and matcher tuning without serving",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			svcCatalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			if _, err := matcherCfg.Configure(); err != nil {
				return goerr.Wrap(err, "matcher config validation failed")
			}

			logging.Default().Info("Validation passed",
				"records", svcCatalog.Len(),
				"dataset", catalogCfg.Path(),
			)

			if !checkLinks {
				return nil
			}

			client := &http.Client{Timeout: linkTimeout}
			eg, egCtx := errgroup.WithContext(ctx)
			eg.SetLimit(8)

			for record := range svcCatalog.All() {
				if record.ApplicationLink == "" {
					continue
				}
				eg.Go(func() error {
					return checkLink(egCtx, client, record)
				})
			}

			if err := eg.Wait(); err != nil {
				return goerr.Wrap(err, "link check failed")
			}

			logging.Default().Info("All application links responded")
			return nil
		},
	}
}

func checkLink(ctx context.Context, client *http.Client, record *model.ServiceRecord) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, record.ApplicationLink, nil)
	if err != nil {
		return goerr.Wrap(err, "invalid application link",
			goerr.V("id", record.ID),
			goerr.V("link", record.ApplicationLink),
		)
	}

	resp, err := client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "application link unreachable",
			goerr.V("id", record.ID),
			goerr.V("link", record.ApplicationLink),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return goerr.New(fmt.Sprintf("application link returned %d", resp.StatusCode),
			goerr.V("id", record.ID),
			goerr.V("link", record.ApplicationLink),
		)
	}

	return nil
}
