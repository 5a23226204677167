// Package config loads operator settings from a YAML file and checks
// them against an embedded CUE schema.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/cnsrgl/stock-gestion-codeon/internal/engine"
	"github.com/cnsrgl/stock-gestion-codeon/internal/license"
)

//go:embed schema.cue
var schemaCUE string

// Settings holds everything the CLI can configure from a file.
type Settings struct {
	LowThreshold    int    `yaml:"low_threshold" json:"low_threshold"`
	MediumThreshold int    `yaml:"medium_threshold" json:"medium_threshold"`
	LowColor        string `yaml:"low_color" json:"low_color"`
	MediumColor     string `yaml:"medium_color" json:"medium_color"`
	HighColor       string `yaml:"high_color" json:"high_color"`

	LicenseKey       string `yaml:"license_key" json:"license_key"`
	LicenseEndpoint  string `yaml:"license_endpoint" json:"license_endpoint"`
	LicenseProductID string `yaml:"license_product_id" json:"license_product_id"`

	DefaultOrder    string `yaml:"default_order" json:"default_order"`
	DefaultOrderDir string `yaml:"default_order_dir" json:"default_order_dir"`
}

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{
		LowThreshold:     engine.DefaultThresholds.Low,
		MediumThreshold:  engine.DefaultThresholds.Medium,
		LowColor:         engine.DefaultColors.Low,
		MediumColor:      engine.DefaultColors.Medium,
		HighColor:        engine.DefaultColors.High,
		LicenseEndpoint:  license.DefaultEndpoint,
		LicenseProductID: license.DefaultProductID,
		DefaultOrder:     "name",
		DefaultOrderDir:  "asc",
	}
}

// Load reads settings from path. A missing file is not an error; the
// defaults apply. Fields absent from the file keep their defaults, so a
// config can set just the thresholds.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", path, err)
	}

	return s, nil
}

// Validate unifies the settings with the embedded schema and applies
// the one cross-field rule CUE cannot express per-field.
func (s Settings) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile settings schema: %w", err)
	}

	val := schema.Unify(ctx.Encode(s))
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if s.LowThreshold > s.MediumThreshold {
		return fmt.Errorf("invalid settings: low_threshold %d exceeds medium_threshold %d", s.LowThreshold, s.MediumThreshold)
	}

	return nil
}

// Thresholds converts the settings into classifier thresholds.
func (s Settings) Thresholds() engine.Thresholds {
	return engine.Thresholds{Low: s.LowThreshold, Medium: s.MediumThreshold}
}

// Colors converts the settings into a classifier color scheme.
func (s Settings) Colors() engine.ColorScheme {
	return engine.ColorScheme{Low: s.LowColor, Medium: s.MediumColor, High: s.HighColor}
}
