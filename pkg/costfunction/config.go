package costfunction

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/behaviorplanner/pkg"
)

// Config holds the tunables of the cost model.
//
// Raising ReachGoal biases the planner toward reaching the goal lane sooner,
// raising Efficiency biases it toward faster lanes.
type Config struct {
	ReachGoal  float64 `validate:"gte=0"`
	Efficiency float64 `validate:"gte=0"`
	Epsilon    float64 `validate:"gt=0"`
	Horizon    float64 `validate:"gt=0"`
}

func DefaultConfig() Config {
	return Config{
		ReachGoal:  pkg.REACH_GOAL_WEIGHT,
		Efficiency: pkg.EFFICIENCY_WEIGHT,
		Epsilon:    pkg.EPSILON,
		Horizon:    pkg.LOOKAHEAD_HORIZON,
	}
}

func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"reach goal weight": c.ReachGoal,
		"efficiency weight": c.Efficiency,
		"epsilon":           c.Epsilon,
		"lookahead horizon": c.Horizon,
	} {
		if !isFinite(v) {
			return fmt.Errorf("%s must be finite, got %v", name, v)
		}
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid cost config: %w", err)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
