package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/civic-lab/sevadesk/pkg/repository/catalog"
	"github.com/civic-lab/sevadesk/pkg/utils/logging"
)

// Catalog holds CLI flags for the service dataset location
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "services-data",
			Usage:       "Path to the municipal services dataset (JSON)",
			Value:       "data/services.json",
			Sources:     cli.EnvVars("SEVADESK_SERVICES_DATA"),
			Destination: &c.path,
		},
	}
}

// Path returns the configured dataset path
func (c *Catalog) Path() string {
	return c.path
}

// Configure loads the catalog from the dataset file. A load failure is
// fatal: the process must not serve traffic without a catalog.
func (c *Catalog) Configure() (*catalog.Catalog, error) {
	loaded, err := catalog.Load(c.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load service catalog", goerr.V("path", c.path))
	}

	logging.Default().Info("Loaded service catalog",
		"path", c.path,
		"records", loaded.Len(),
	)
	return loaded, nil
}
