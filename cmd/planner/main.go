package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/behaviorplanner/pkg/costfunction"
	"github.com/lintang-b-s/behaviorplanner/pkg/http"
	"github.com/lintang-b-s/behaviorplanner/pkg/http/usecases"
	"github.com/lintang-b-s/behaviorplanner/pkg/logger"
	"github.com/lintang-b-s/behaviorplanner/pkg/planner"
	"github.com/lintang-b-s/behaviorplanner/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile   = flag.String("config", "./data/config.yaml", "config file path")
	useRateLimit = flag.Bool("rate_limit", false, "limit the request rate of the http api")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(*configFile); err != nil {
		logger.Warn("using default config", zap.String("configFile", *configFile), zap.Error(err))
	}

	costConfig, err := util.ReadCostConfig()
	if err != nil {
		logger.Fatal("invalid cost config", zap.Error(err))
	}
	logger.Info("cost model",
		zap.Float64("reach_goal_weight", costConfig.ReachGoal),
		zap.Float64("efficiency_weight", costConfig.Efficiency),
		zap.Float64("epsilon", costConfig.Epsilon),
		zap.Float64("lookahead_horizon", costConfig.Horizon))

	viper.SetDefault("PLANNER_WORKERS", 4)
	behaviorPlanner := planner.NewPlanner(costfunction.NewCostCalculator(costConfig), viper.GetInt("PLANNER_WORKERS"))

	api := http.NewServer(logger)

	plannerService := usecases.NewPlannerService(logger, behaviorPlanner)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, *useRateLimit, plannerService); err != nil {
		logger.Fatal("start http api", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	logger.Info("Behavior Planner Server Stopping", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
