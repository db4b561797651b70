package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/behaviorplanner/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorEnvelope(status int, message string) envelope {
	var resp errorResponse
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = message
	return envelope{"error": resp.Error}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

func validateRequest(request interface{}) error {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return util.WrapErrorf(err, util.ErrBadParamInput, "validation error: %v", vvString)
	}
	return nil
}

// statusCode maps an error returned by the service to the http status sent to the client.
func statusCode(err error) int {
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case util.ErrBadParamInput:
		return http.StatusBadRequest
	case util.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return util.MessageInternalServerError
	}
	return err.Error()
}

func (api *plannerAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := writeJSON(w, status, errorEnvelope(status, message), nil); err != nil {
		api.log.Error("write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *plannerAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *plannerAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("server error", zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

func (api *plannerAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	status := statusCode(err)
	if status == http.StatusInternalServerError {
		api.ServerErrorResponse(w, r, err)
		return
	}
	api.errorResponse(w, r, status, errorMessage(err, status))
}

// evaluate runs one validated evaluate request through the planner service.
func evaluate(ctx context.Context, svc PlannerService, observer EvaluationObserver,
	request evaluateTrajectoriesRequest) (evaluateTrajectoriesResponse, error) {
	if err := validateRequest(request); err != nil {
		return evaluateTrajectoriesResponse{}, err
	}
	predictions, ok := toPredictions(request.Predictions)
	if !ok {
		return evaluateTrajectoriesResponse{}, util.WrapErrorf(nil, util.ErrBadParamInput,
			"predictions contain a duplicate vehicle id")
	}
	trajectories := toTrajectories(request.Trajectories)

	evaluations, bestIndex, laneSpeeds, err := svc.EvaluateTrajectories(ctx, request.Vehicle.toEgo(), predictions,
		trajectories)
	if err != nil {
		return evaluateTrajectoriesResponse{}, err
	}
	if observer != nil {
		observer.ObserveEvaluations(evaluations, bestIndex)
	}
	return NewEvaluateTrajectoriesResponse(evaluations, bestIndex, laneSpeeds, trajectories), nil
}

// EvaluateJSON decodes an evaluate request, scores it and returns the encoded
// {"data": ...} envelope. It is the contract shared by the http api, the
// websocket stream and the command line tool.
func EvaluateJSON(ctx context.Context, svc PlannerService, input []byte) ([]byte, error) {
	var request evaluateTrajectoriesRequest
	if err := json.Unmarshal(input, &request); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "decode request: %v", err)
	}
	resp, err := evaluate(ctx, svc, nil, request)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(envelope{"data": resp}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return out, nil
}
