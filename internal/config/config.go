// Package config loads the detinfo configuration file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/legend-exp/detinfo/internal/dettable"
	"github.com/legend-exp/detinfo/internal/fieldpath"
	"github.com/legend-exp/detinfo/internal/plotting"
	"github.com/legend-exp/detinfo/internal/report"
)

//go:embed sample_config.toml
var sampleConfig string

// Defaults for unset fields.
const (
	DefaultMetadataDir = "legend-detectors/germanium/detectors"
	DefaultOutputDir   = "new_format"
	DefaultPlotsDir    = "plots"
)

// Config is the root configuration. Every field is optional; the Get*
// methods supply the defaults, so partial files are safe.
type Config struct {
	// MetadataDir holds one <detector>.json per detector.
	MetadataDir *string `toml:"metadata_dir,omitempty"`
	// OutputDir receives migrated detectors and crystal records.
	OutputDir *string `toml:"output_dir,omitempty"`
	PlotsDir  *string `toml:"plots_dir,omitempty"`
	// DeadLayerCSV overrides where the migration writes removed dead layers.
	DeadLayerCSV *string `toml:"dead_layer_csv,omitempty"`

	TargetMassKg *int `toml:"target_mass_kg,omitempty"`
	MaxOrder     *int `toml:"max_order,omitempty"`

	// Format is the metadata schema to read: "new" or "old".
	Format *string `toml:"format,omitempty"`
	// PlotFormat is pdf, png or svg.
	PlotFormat *string `toml:"plot_format,omitempty"`
	HTML       *bool   `toml:"html,omitempty"`
	Verbose    *bool   `toml:"verbose,omitempty"`
}

func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }
func ptrBool(v bool) *bool       { return &v }

// Empty returns a Config with every field unset.
func Empty() *Config {
	return &Config{}
}

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Load reads a TOML config file. The file must have a .toml extension and
// be at most 1MB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".toml" {
		return nil, fmt.Errorf("config file must have .toml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if c.TargetMassKg != nil && *c.TargetMassKg <= 0 {
		return fmt.Errorf("target_mass_kg must be positive, got %d", *c.TargetMassKg)
	}
	if c.MaxOrder != nil && *c.MaxOrder < 0 {
		return fmt.Errorf("max_order must not be negative, got %d", *c.MaxOrder)
	}
	if c.Format != nil {
		switch fieldpath.Format(*c.Format) {
		case fieldpath.FormatNew, fieldpath.FormatOld:
		default:
			return fmt.Errorf("format must be %q or %q, got %q", fieldpath.FormatNew, fieldpath.FormatOld, *c.Format)
		}
	}
	if c.PlotFormat != nil && !plotting.IsValidFormat(strings.ToLower(*c.PlotFormat)) {
		return fmt.Errorf("plot_format must be pdf, png or svg, got %q", *c.PlotFormat)
	}
	if c.MetadataDir != nil && *c.MetadataDir == "" {
		return fmt.Errorf("metadata_dir must not be empty")
	}
	return nil
}

// GetMetadataDir returns the metadata directory or the default.
func (c *Config) GetMetadataDir() string {
	if c.MetadataDir == nil {
		return DefaultMetadataDir
	}
	return *c.MetadataDir
}

// GetOutputDir returns the output directory or the default.
func (c *Config) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return DefaultOutputDir
	}
	return *c.OutputDir
}

// GetPlotsDir returns the plots directory or the default.
func (c *Config) GetPlotsDir() string {
	if c.PlotsDir == nil || *c.PlotsDir == "" {
		return DefaultPlotsDir
	}
	return *c.PlotsDir
}

// GetDeadLayerCSV returns the dead-layer CSV path; empty means next to the
// migrated records.
func (c *Config) GetDeadLayerCSV() string {
	if c.DeadLayerCSV == nil {
		return ""
	}
	return *c.DeadLayerCSV
}

// GetTargetMassKg returns the production target or the default.
func (c *Config) GetTargetMassKg() int {
	if c.TargetMassKg == nil {
		return report.DefaultTargetMassKg
	}
	return *c.TargetMassKg
}

// GetMaxOrder returns the highest production order to include or the default.
// A configured 0 selects the order-0 detectors only.
func (c *Config) GetMaxOrder() int {
	if c.MaxOrder == nil {
		return dettable.DefaultMaxOrder
	}
	return *c.MaxOrder
}

// GetFormat returns the metadata schema or the default (new).
func (c *Config) GetFormat() fieldpath.Format {
	if c.Format == nil {
		return fieldpath.FormatNew
	}
	return fieldpath.Format(*c.Format)
}

// GetPlotFormat returns the static figure format or the default (pdf).
func (c *Config) GetPlotFormat() string {
	if c.PlotFormat == nil {
		return plotting.FormatPDF
	}
	return strings.ToLower(*c.PlotFormat)
}

// GetHTML reports whether interactive HTML charts are written too.
func (c *Config) GetHTML() bool {
	if c.HTML == nil {
		return true
	}
	return *c.HTML
}

// GetVerbose returns the verbose flag.
func (c *Config) GetVerbose() bool {
	return c.Verbose != nil && *c.Verbose
}

// SetMetadataDir overrides the metadata directory, typically from a flag.
func (c *Config) SetMetadataDir(dir string) { c.MetadataDir = ptrString(dir) }

// SetOutputDir overrides the output directory.
func (c *Config) SetOutputDir(dir string) { c.OutputDir = ptrString(dir) }

// SetPlotsDir overrides the plots directory.
func (c *Config) SetPlotsDir(dir string) { c.PlotsDir = ptrString(dir) }

// SetMaxOrder overrides the maximum order.
func (c *Config) SetMaxOrder(n int) { c.MaxOrder = ptrInt(n) }

// SetVerbose overrides the verbose flag.
func (c *Config) SetVerbose(v bool) { c.Verbose = ptrBool(v) }

// CreateSample writes a commented sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
