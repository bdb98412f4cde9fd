package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/legend-exp/detinfo/internal/config"
	"github.com/legend-exp/detinfo/internal/dettable"
	"github.com/legend-exp/detinfo/internal/fieldpath"
	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/record"
)

type commandContext struct {
	configFlag   *string
	metadataFlag *string
	verboseFlag  *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger *zap.Logger
}

func newCommandContext(configFlag, metadataFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		metadataFlag: metadataFlag,
		verboseFlag:  verboseFlag,
	}
}

// ensureConfig loads the config file once and applies flag overrides.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg := config.Empty()
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				c.configErr = err
				return
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("metadata") {
			cfg.SetMetadataDir(*c.metadataFlag)
		}
		if cmd.Flags().Changed("verbose") {
			cfg.SetVerbose(*c.verboseFlag)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = fmt.Errorf("invalid configuration: %w", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// setupLogging routes monitoring output through zap.
func (c *commandContext) setupLogging(cfg *config.Config) error {
	logger, err := monitoring.NewLogger(cfg.GetVerbose())
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	c.logger = logger
	monitoring.UseZap(logger)
	return nil
}

func (c *commandContext) sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *commandContext) store() *record.Store {
	return record.NewStore(c.config.GetMetadataDir())
}

func (c *commandContext) paths() (fieldpath.Table, error) {
	f := c.config.GetFormat()
	t, ok := fieldpath.ForFormat(f)
	if !ok {
		return nil, fmt.Errorf("unknown metadata format %q", f)
	}
	return t, nil
}

// buildTable resolves params for the selected detectors up to the configured
// maximum order.
func (c *commandContext) buildTable(params []string, types []string) (*dettable.Table, error) {
	opts, err := tableOptions(params, types, c.config.GetMaxOrder())
	if err != nil {
		return nil, err
	}
	return c.build(opts)
}

func (c *commandContext) build(opts dettable.Options) (*dettable.Table, error) {
	paths, err := c.paths()
	if err != nil {
		return nil, err
	}
	opts.Paths = paths
	return dettable.Build(c.store(), opts)
}
