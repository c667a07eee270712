package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/civic-lab/sevadesk/pkg/service/matcher"
	"github.com/civic-lab/sevadesk/pkg/utils/logging"
)

// Matcher holds CLI flags for relevance-matcher tuning. The scoring
// weights and shortlist limit are heuristic constants, so they live in
// an optional TOML file instead of hard-coded magic numbers.
type Matcher struct {
	configPath string
}

// matcherFile is the on-disk shape of the matcher tuning file
type matcherFile struct {
	Limit   int             `toml:"limit"`
	Weights matcher.Weights `toml:"weights"`
}

// Flags returns CLI flags for matcher configuration
func (m *Matcher) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "matcher-config",
			Usage:       "Path to matcher tuning file (TOML); built-in defaults when empty",
			Sources:     cli.EnvVars("SEVADESK_MATCHER_CONFIG"),
			Destination: &m.configPath,
		},
	}
}

// Configure builds the relevance matcher. Without a tuning file the
// built-in weights and limit apply.
func (m *Matcher) Configure() (*matcher.Matcher, error) {
	if m.configPath == "" {
		return matcher.New(), nil
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read matcher config", goerr.V("path", m.configPath))
	}

	file := matcherFile{
		Limit:   matcher.DefaultLimit,
		Weights: matcher.DefaultWeights(),
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse matcher config", goerr.V("path", m.configPath))
	}

	if file.Limit < 1 {
		return nil, goerr.New("matcher limit must be at least 1", goerr.V("limit", file.Limit))
	}
	if err := file.Weights.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid matcher weights", goerr.V("path", m.configPath))
	}

	logging.Default().Info("Loaded matcher tuning",
		"path", m.configPath,
		"limit", file.Limit,
	)

	return matcher.New(
		matcher.WithWeights(file.Weights),
		matcher.WithLimit(file.Limit),
	), nil
}
