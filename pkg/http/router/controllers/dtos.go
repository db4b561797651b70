package controllers

import (
	"sort"

	"github.com/lintang-b-s/behaviorplanner/pkg"
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
	"github.com/lintang-b-s/behaviorplanner/pkg/planner"
	"github.com/lintang-b-s/behaviorplanner/pkg/vehicle"
)

type egoVehicleRequest struct {
	Lane            int     `json:"lane" validate:"min=0"`
	S               float64 `json:"s"`
	V               float64 `json:"v" validate:"min=0"`
	A               float64 `json:"a"`
	GoalLane        int     `json:"goal_lane" validate:"min=0"`
	GoalS           float64 `json:"goal_s"`
	TargetSpeed     float64 `json:"target_speed" validate:"gt=0"`
	MaxAcceleration float64 `json:"max_acceleration" validate:"min=0"`
	PreferredBuffer float64 `json:"preferred_buffer" validate:"min=0"`
	LanesAvailable  int     `json:"lanes_available" validate:"required,min=1"`
}

func (e egoVehicleRequest) toEgo() *vehicle.Ego {
	return &vehicle.Ego{
		Lane:            e.Lane,
		S:               e.S,
		V:               e.V,
		A:               e.A,
		GoalLane:        e.GoalLane,
		GoalS:           e.GoalS,
		TargetSpeed:     e.TargetSpeed,
		MaxAcceleration: e.MaxAcceleration,
		PreferredBuffer: e.PreferredBuffer,
		LanesAvailable:  e.LanesAvailable,
	}
}

type predictedStateRequest struct {
	Lane int     `json:"lane" validate:"min=0"`
	S    float64 `json:"s"`
	V    float64 `json:"v" validate:"min=0"`
	A    float64 `json:"a"`
}

type predictionRequest struct {
	ID     int                     `json:"id"`
	States []predictedStateRequest `json:"states" validate:"required,min=1,dive"`
}

type trajectoryStateRequest struct {
	State string  `json:"state" validate:"required,oneof=KL PLCL PLCR LCL LCR"`
	Lane  int     `json:"lane" validate:"min=0"`
	S     float64 `json:"s"`
}

type evaluateTrajectoriesRequest struct {
	Vehicle      egoVehicleRequest          `json:"vehicle"`
	Predictions  []predictionRequest        `json:"predictions" validate:"dive"`
	Trajectories [][]trajectoryStateRequest `json:"trajectories" validate:"required,min=1,dive,dive"`
}

func toPredictions(reqs []predictionRequest) (da.Predictions, bool) {
	predictions := make(da.Predictions, len(reqs))
	for _, p := range reqs {
		if _, dup := predictions[p.ID]; dup {
			return nil, false
		}
		states := make([]da.PredictedState, 0, len(p.States))
		for _, st := range p.States {
			states = append(states, da.NewPredictedState(st.Lane, st.S, st.V, st.A))
		}
		predictions[p.ID] = states
	}
	return predictions, true
}

func toTrajectories(reqs [][]trajectoryStateRequest) []da.Trajectory {
	trajectories := make([]da.Trajectory, 0, len(reqs))
	for _, tr := range reqs {
		trajectory := make(da.Trajectory, 0, len(tr))
		for _, st := range tr {
			trajectory = append(trajectory, da.NewTrajectoryState(pkg.GetManeuverState(st.State), st.Lane, st.S))
		}
		trajectories = append(trajectories, trajectory)
	}
	return trajectories
}

type costTermResponse struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Cost     float64 `json:"cost"`
	Weighted float64 `json:"weighted_cost"`
}

type trajectoryEvaluationResponse struct {
	Index             int                `json:"index"`
	Cost              float64            `json:"cost"`
	IntendedLane      int                `json:"intended_lane"`
	FinalLane         int                `json:"final_lane"`
	EndDistanceToGoal float64            `json:"end_distance_to_goal"`
	Terms             []costTermResponse `json:"terms,omitempty"`
	Error             string             `json:"error,omitempty"`
}

type laneSpeedResponse struct {
	Lane  int     `json:"lane"`
	Speed float64 `json:"speed"`
}

type evaluateTrajectoriesResponse struct {
	BestIndex   int                            `json:"best_index"`
	BestState   string                         `json:"best_state,omitempty"`
	Evaluations []trajectoryEvaluationResponse `json:"evaluations"`
	LaneSpeeds  []laneSpeedResponse            `json:"lane_speeds"`
}

func NewEvaluateTrajectoriesResponse(evaluations []planner.Evaluation, bestIndex int, laneSpeeds map[int]float64,
	trajectories []da.Trajectory) evaluateTrajectoriesResponse {
	resp := evaluateTrajectoriesResponse{
		BestIndex:   bestIndex,
		Evaluations: make([]trajectoryEvaluationResponse, 0, len(evaluations)),
		LaneSpeeds:  make([]laneSpeedResponse, 0, len(laneSpeeds)),
	}
	if bestIndex >= 0 && bestIndex < len(trajectories) {
		resp.BestState = trajectories[bestIndex].Last().State.String()
	}

	for _, ev := range evaluations {
		er := trajectoryEvaluationResponse{Index: ev.Index}
		if ev.Err != nil {
			er.Error = ev.Err.Error()
			resp.Evaluations = append(resp.Evaluations, er)
			continue
		}
		er.Cost = ev.Cost
		er.IntendedLane = ev.Breakdown.Data.GetIntendedLane()
		er.FinalLane = ev.Breakdown.Data.GetFinalLane()
		er.EndDistanceToGoal = ev.Breakdown.Data.GetEndDistanceToGoal()
		for _, term := range ev.Breakdown.Terms {
			er.Terms = append(er.Terms, costTermResponse{
				Name:     term.Name,
				Weight:   term.Weight,
				Cost:     term.Cost,
				Weighted: term.Weighted,
			})
		}
		resp.Evaluations = append(resp.Evaluations, er)
	}

	for lane, speed := range laneSpeeds {
		resp.LaneSpeeds = append(resp.LaneSpeeds, laneSpeedResponse{Lane: lane, Speed: speed})
	}
	sort.Slice(resp.LaneSpeeds, func(i, j int) bool {
		return resp.LaneSpeeds[i].Lane < resp.LaneSpeeds[j].Lane
	})
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
