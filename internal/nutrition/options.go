package nutrition

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultYieldLossPercent       = 5.0
	DefaultOverrunPercent         = 50.0
	DefaultServingSizeG           = 95.0
	DefaultServingSizeDescription = "2/3 cup (95g)"
)

// ErrInvalidOptions reports tuning values that would make the serving math meaningless.
var ErrInvalidOptions = errors.New("nutrition: invalid options")

// Options tunes how batch nutrition is turned into per-serving values.
type Options struct {
	// YieldLossPercent is the share of raw ingredient weight lost in processing.
	YieldLossPercent float64 `json:"yield_loss_percent" yaml:"yield_loss_percent"`
	// OverrunPercent is the volume gained from aeration.
	OverrunPercent float64 `json:"overrun_percent" yaml:"overrun_percent"`
	// ServingSizeG is measured against the finished, aerated product.
	ServingSizeG           float64 `json:"serving_size_g" yaml:"serving_size_g"`
	ServingSizeDescription string  `json:"serving_size_description" yaml:"serving_size_description"`
}

// DefaultOptions returns the tuning used for standard hard-pack product.
func DefaultOptions() Options {
	return Options{
		YieldLossPercent:       DefaultYieldLossPercent,
		OverrunPercent:         DefaultOverrunPercent,
		ServingSizeG:           DefaultServingSizeG,
		ServingSizeDescription: DefaultServingSizeDescription,
	}
}

// Validate rejects yield loss outside [0, 100), overrun at or below -100 and
// non-positive serving sizes.
func (o Options) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"yield_loss_percent", o.YieldLossPercent},
		{"overrun_percent", o.OverrunPercent},
		{"serving_size_g", o.ServingSizeG},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidOptions, v.name)
		}
	}

	if o.YieldLossPercent < 0 || o.YieldLossPercent >= 100 {
		return fmt.Errorf("%w: yield_loss_percent must be in [0, 100), got %g", ErrInvalidOptions, o.YieldLossPercent)
	}
	if o.OverrunPercent <= -100 {
		return fmt.Errorf("%w: overrun_percent must be greater than -100, got %g", ErrInvalidOptions, o.OverrunPercent)
	}
	if o.ServingSizeG <= 0 {
		return fmt.Errorf("%w: serving_size_g must be greater than zero, got %g", ErrInvalidOptions, o.ServingSizeG)
	}
	return nil
}
