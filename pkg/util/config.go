package util

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/behaviorplanner/pkg"
	"github.com/lintang-b-s/behaviorplanner/pkg/costfunction"
	"github.com/spf13/viper"
)

// ReadConfig loads the config file at path (any format viper understands).
// Environment variables with the same key override file values.
func ReadConfig(path string) error {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	viper.SetConfigName(strings.TrimSuffix(file, filepath.Ext(file)))
	viper.AddConfigPath(dir)
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// ReadCostConfig reads the cost model tunables, falling back to the package
// defaults for keys that are not set.
func ReadCostConfig() (costfunction.Config, error) {
	viper.SetDefault("COST_REACH_GOAL_WEIGHT", pkg.REACH_GOAL_WEIGHT)
	viper.SetDefault("COST_EFFICIENCY_WEIGHT", pkg.EFFICIENCY_WEIGHT)
	viper.SetDefault("COST_EPSILON", pkg.EPSILON)
	viper.SetDefault("COST_LOOKAHEAD_HORIZON", pkg.LOOKAHEAD_HORIZON)

	cfg := costfunction.Config{
		ReachGoal:  viper.GetFloat64("COST_REACH_GOAL_WEIGHT"),
		Efficiency: viper.GetFloat64("COST_EFFICIENCY_WEIGHT"),
		Epsilon:    viper.GetFloat64("COST_EPSILON"),
		Horizon:    viper.GetFloat64("COST_LOOKAHEAD_HORIZON"),
	}
	if err := cfg.Validate(); err != nil {
		return costfunction.Config{}, WrapErrorf(err, ErrBadParamInput, "read cost config: %v", err)
	}
	return cfg, nil
}
