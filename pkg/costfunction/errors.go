package costfunction

import "errors"

var (
	ErrInvalidTrajectory = errors.New("invalid trajectory")
	ErrInvalidCostInput  = errors.New("invalid cost input")
)
