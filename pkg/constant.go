package pkg

// enum of maneuver_state assigned by the finite-state behavior planner
type ManeuverState uint8

const (
	KEEP_LANE ManeuverState = iota
	PREPARE_LANE_CHANGE_LEFT
	PREPARE_LANE_CHANGE_RIGHT
	LANE_CHANGE_LEFT
	LANE_CHANGE_RIGHT
	UNKNOWN_STATE
)

const (
	// EGO_VEHICLE_ID is the predictions key of the ego vehicle itself.
	EGO_VEHICLE_ID = -1

	// EPSILON is the floor used whenever a cost divides by a distance that may be zero.
	EPSILON float64 = 1e-6

	REACH_GOAL_WEIGHT float64 = 1.0
	EFFICIENCY_WEIGHT float64 = 0.5

	// LOOKAHEAD_HORIZON is the time (in planner time units) used to project
	// ego progress in a lane.
	LOOKAHEAD_HORIZON float64 = 2.0
)

func (ms ManeuverState) String() string {
	switch ms {
	case KEEP_LANE:
		return "KL"
	case PREPARE_LANE_CHANGE_LEFT:
		return "PLCL"
	case PREPARE_LANE_CHANGE_RIGHT:
		return "PLCR"
	case LANE_CHANGE_LEFT:
		return "LCL"
	case LANE_CHANGE_RIGHT:
		return "LCR"
	default:
		return "UNKNOWN"
	}
}

// IsPrepare reports whether the state only prepares a lane change, so the
// vehicle is still in its current lane while intending to leave it.
func (ms ManeuverState) IsPrepare() bool {
	return ms == PREPARE_LANE_CHANGE_LEFT || ms == PREPARE_LANE_CHANGE_RIGHT
}

func GetManeuverState(state string) ManeuverState {
	switch state {
	case "KL":
		return KEEP_LANE
	case "PLCL":
		return PREPARE_LANE_CHANGE_LEFT
	case "PLCR":
		return PREPARE_LANE_CHANGE_RIGHT
	case "LCL":
		return LANE_CHANGE_LEFT
	case "LCR":
		return LANE_CHANGE_RIGHT
	default:
		return UNKNOWN_STATE
	}
}
