package fracdiff

import (
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables read by ApplyEnv,
// e.g. FRACDIFF_THRESHOLD.
const EnvPrefix = "FRACDIFF"

var validate = validator.New()

// Config holds configuration for the minimum order search.
type Config struct {
	Threshold    float64   `yaml:"threshold" envconfig:"THRESHOLD" validate:"gt=0"`                // FFD weight cutoff (default: 1e-5)
	Significance float64   `yaml:"significance" envconfig:"SIGNIFICANCE" validate:"gt=0,lt=1"`     // p-value cutoff (default: 0.05)
	Orders       []float64 `yaml:"orders" envconfig:"ORDERS" validate:"required,min=1,dive,gte=0"` // candidate orders (default: 0, 0.1, ..., 1)
	Workers      int       `yaml:"workers" envconfig:"WORKERS" validate:"gte=0"`                   // concurrent candidates, 0 = one per CPU
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() *Config {
	return &Config{
		Threshold:    DefaultThreshold,
		Significance: 0.05,
		Orders:       DefaultOrders(),
	}
}

// DefaultOrders returns 11 evenly spaced orders covering [0, 1].
func DefaultOrders() []float64 {
	return floats.Span(make([]float64, 11), 0, 1)
}

// LoadConfig reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "LoadConfig read")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "LoadConfig unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from <prefix>_THRESHOLD, <prefix>_SIGNIFICANCE,
// <prefix>_ORDERS (comma separated) and <prefix>_WORKERS. Unset variables
// leave the field untouched.
func (c *Config) ApplyEnv(prefix string) error {
	if err := envconfig.Process(prefix, c); err != nil {
		return errors.Wrap(err, "ApplyEnv")
	}
	return nil
}

// Validate checks every field and wraps ErrInvalidParameter on failure.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrapf(ErrInvalidParameter, "config: %v", err)
	}
	// Tags do not reject infinities.
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) || c.Threshold <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "threshold %v must be positive", c.Threshold)
	}
	if err := checkSignificance(c.Significance); err != nil {
		return err
	}
	if len(c.Orders) == 0 {
		return errors.Wrap(ErrInvalidParameter, "at least one candidate order is required")
	}
	for _, d := range c.Orders {
		if err := checkOrder(d); err != nil {
			return err
		}
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidParameter, "workers %d must not be negative", c.Workers)
	}
	return nil
}

func checkSignificance(alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return errors.Wrapf(ErrInvalidParameter, "significance %v must lie in (0, 1)", alpha)
	}
	return nil
}
