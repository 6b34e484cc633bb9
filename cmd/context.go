package cmd

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"cutxml/config"
	"cutxml/logging"
)

type commandContext struct {
	configFlag string
	logLevel   string
	logFormat  string

	config *config.Config
	logger *slog.Logger
}

func (c *commandContext) setup(cmd *cobra.Command) error {
	cfg, _, err := config.Load(strings.TrimSpace(c.configFlag))
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Log.Format = c.logFormat
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	c.config = cfg
	c.logger = logger
	return nil
}
