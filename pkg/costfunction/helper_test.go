package costfunction

import (
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
)

type stubVehicle struct {
	goalLane   int
	goalS      float64
	kinematics map[int]da.Kinematics
}

func (v stubVehicle) GetGoalLane() int {
	return v.goalLane
}

func (v stubVehicle) GetGoalS() float64 {
	return v.goalS
}

func (v stubVehicle) GetKinematics(predictions da.Predictions, lane int) da.Kinematics {
	return v.kinematics[lane]
}

func trajectoryTo(last da.TrajectoryState) da.Trajectory {
	return da.Trajectory{da.NewTrajectoryState(last.State, last.Lane, 0), last}
}
