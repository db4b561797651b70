// Command evaluate reads an evaluate request JSON from a file argument (or
// stdin), scores every candidate trajectory and writes the response JSON to
// stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lintang-b-s/behaviorplanner/pkg/costfunction"
	"github.com/lintang-b-s/behaviorplanner/pkg/http/router/controllers"
	"github.com/lintang-b-s/behaviorplanner/pkg/http/usecases"
	"github.com/lintang-b-s/behaviorplanner/pkg/logger"
	"github.com/lintang-b-s/behaviorplanner/pkg/planner"
	"github.com/lintang-b-s/behaviorplanner/pkg/util"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "optional config file path")
	workers    = flag.Int("workers", 1, "number of trajectories scored concurrently")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *configFile != "" {
		if err := util.ReadConfig(*configFile); err != nil {
			logger.Fatal("read config", zap.Error(err))
		}
	}
	costConfig, err := util.ReadCostConfig()
	if err != nil {
		logger.Fatal("invalid cost config", zap.Error(err))
	}

	var data []byte
	if flag.NArg() > 0 {
		data, err = os.ReadFile(flag.Arg(0))
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	behaviorPlanner := planner.NewPlanner(costfunction.NewCostCalculator(costConfig), *workers)
	plannerService := usecases.NewPlannerService(logger, behaviorPlanner)

	result, err := controllers.EvaluateJSON(context.Background(), plannerService, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluation error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(result))
}
