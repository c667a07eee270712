package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/civic-lab/sevadesk/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	t.Run("defaults are accepted", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "console", "stderr")
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := config.NewLoggerForTest("verbose", "console", "stderr")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "stderr")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("file output", func(t *testing.T) {
		path := writeFile(t, "app.log", "")
		cfg := config.NewLoggerForTest("debug", "json", path)
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("returns flags", func(t *testing.T) {
		var cfg config.Logger
		gt.Value(t, len(cfg.Flags())).Equal(3)
	})
}
