package costfunction

import (
	"fmt"

	"github.com/lintang-b-s/behaviorplanner/pkg"
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
)

/*
ComputeHelperData. derives the per-trajectory features shared by every cost function:

intended lane: +/- 1 from the final lane while a lane change is only being prepared.
final lane: the lane of the vehicle at the end of the trajectory.
end distance to goal: goal s minus the s at the end of the trajectory, negative once the goal is passed.

Keeping both lanes lets the cost functions tell planning a lane change apart from executing it.
Only the last state of the trajectory is read.
*/
func ComputeHelperData(vehicle Vehicle, trajectory da.Trajectory, predictions da.Predictions) (da.TrajectoryData, error) {
	if len(trajectory) < 2 {
		return da.TrajectoryData{}, fmt.Errorf("trajectory has %d states, need at least 2: %w",
			len(trajectory), ErrInvalidTrajectory)
	}

	last := trajectory.Last()

	intendedLane := last.Lane
	switch last.State {
	case pkg.PREPARE_LANE_CHANGE_LEFT:
		intendedLane = last.Lane + 1
	case pkg.PREPARE_LANE_CHANGE_RIGHT:
		intendedLane = last.Lane - 1
	}

	distanceToGoal := vehicle.GetGoalS() - last.S

	return da.NewTrajectoryData(intendedLane, last.Lane, distanceToGoal), nil
}
