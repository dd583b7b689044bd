package selection

import (
	"math"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"github.com/YuminosukeSato/qfs/pkg/log"
)

const (
	// DefaultImportanceThreshold is the magnitude below which a scaled
	// importance is considered negligible and replaced by the penalty.
	DefaultImportanceThreshold = 1e-8

	// DefaultPrecisionLimit is the alpha interval width that ends the search.
	DefaultPrecisionLimit = 1e-4
)

// Config holds the parameters shared by FeatureSelectionQUBO, Search and QFS.
type Config struct {
	// ImportanceThreshold: diagonal entries greater than -ImportanceThreshold
	// are replaced by the penalty.
	ImportanceThreshold float64

	// ThresholdPenalty overrides the penalty value. When nil, the infinity
	// norm of Q is used.
	ThresholdPenalty *float64

	// PrecisionLimit ends the binary search once right-left <= PrecisionLimit.
	PrecisionLimit float64

	// Observer, if set, is called after every solver invocation.
	Observer func(Step)

	// Logger overrides the default "selection" component logger.
	Logger log.Logger
}

// Option is a function that configures Config
type Option func(*Config)

// WithImportanceThreshold sets the negligible-importance threshold
func WithImportanceThreshold(threshold float64) Option {
	return func(c *Config) {
		c.ImportanceThreshold = threshold
	}
}

// WithThresholdPenalty sets a fixed penalty for negligible-importance features
func WithThresholdPenalty(penalty float64) Option {
	return func(c *Config) {
		c.ThresholdPenalty = &penalty
	}
}

// WithPrecisionLimit sets the alpha interval width that ends the search
func WithPrecisionLimit(limit float64) Option {
	return func(c *Config) {
		c.PrecisionLimit = limit
	}
}

// WithObserver registers a callback receiving every evaluated alpha candidate
func WithObserver(fn func(Step)) Option {
	return func(c *Config) {
		c.Observer = fn
	}
}

// WithLogger sets the logger used by the search
func WithLogger(logger log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func newConfig(opts []Option) *Config {
	cfg := &Config{
		ImportanceThreshold: DefaultImportanceThreshold,
		PrecisionLimit:      DefaultPrecisionLimit,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.GetLoggerWithName("selection")
	}
	return cfg
}

func (c *Config) validateQUBO() error {
	if math.IsNaN(c.ImportanceThreshold) {
		return errors.NewValidationError("importance_threshold", "must be a number", c.ImportanceThreshold)
	}
	if c.ThresholdPenalty != nil && math.IsNaN(*c.ThresholdPenalty) {
		return errors.NewValidationError("threshold_penalty", "must be a number", *c.ThresholdPenalty)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if err := c.validateQUBO(); err != nil {
		return err
	}
	if !(c.PrecisionLimit > 0) {
		return errors.NewValidationError("precision_limit", "must be positive", c.PrecisionLimit)
	}
	return nil
}
