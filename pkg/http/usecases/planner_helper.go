package usecases

import (
	"github.com/lintang-b-s/behaviorplanner/pkg"
	"github.com/lintang-b-s/behaviorplanner/pkg/costfunction"
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
	"github.com/lintang-b-s/behaviorplanner/pkg/util"
	"github.com/lintang-b-s/behaviorplanner/pkg/vehicle"
)

// validateTrajectoryLanes enforces that the lanes the cost model reads (every
// state lane and the intended lane of a prepare state) are on the road.
func validateTrajectoryLanes(ego *vehicle.Ego, trajectories []da.Trajectory) error {
	for i, trajectory := range trajectories {
		for _, st := range trajectory {
			if st.State == pkg.UNKNOWN_STATE {
				return util.WrapErrorf(nil, util.ErrBadParamInput, "trajectory %d: unknown maneuver state", i)
			}
			if !ego.ValidLane(st.Lane) {
				return util.WrapErrorf(nil, util.ErrBadParamInput, "trajectory %d: lane %d out of range [0,%d)",
					i, st.Lane, ego.LanesAvailable)
			}
		}
		data, err := costfunction.ComputeHelperData(ego, trajectory, nil)
		if err != nil {
			// scored and reported per trajectory by the planner.
			continue
		}
		if trajectory.Last().State.IsPrepare() && !ego.ValidLane(data.GetIntendedLane()) {
			return util.WrapErrorf(nil, util.ErrBadParamInput, "trajectory %d: %s from lane %d leaves the road",
				i, trajectory.Last().State, data.GetFinalLane())
		}
	}
	return nil
}

// laneSpeeds keeps the lane speeds of the lanes on the road. Its cost depends
// on the number of tracked vehicles only, never on lanes available.
func laneSpeeds(ego *vehicle.Ego, predictions da.Predictions) map[int]float64 {
	speeds := costfunction.LaneSpeeds(predictions)
	for lane := range speeds {
		if !ego.ValidLane(lane) {
			delete(speeds, lane)
		}
	}
	return speeds
}
