package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/behaviorplanner/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type plannerAPI struct {
	plannerService PlannerService
	observer       EvaluationObserver
	log            *zap.Logger
}

func New(plannerService PlannerService, observer EvaluationObserver, log *zap.Logger) *plannerAPI {
	return &plannerAPI{
		plannerService: plannerService,
		observer:       observer,
		log:            log,
	}
}

func (api *plannerAPI) Routes(group *helper.RouteGroup) {
	group.POST("/evaluateTrajectories", api.evaluateTrajectories)
}

// evaluateTrajectories
//
//	@Summary		score candidate lane-change trajectories and pick the cheapest
//	@Tags			planner
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body		evaluateTrajectoriesRequest	true	"ego vehicle, predictions and candidate trajectories"
//	@Success		200		{object}	evaluateTrajectoriesResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/api/evaluateTrajectories [post]
func (api *plannerAPI) evaluateTrajectories(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request evaluateTrajectoriesRequest

	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	resp, err := evaluate(r.Context(), api.plannerService, api.observer, request)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := writeJSON(w, http.StatusOK, envelope{"data": resp}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
