package evaluation

import "errors"

var (
	ErrPlanNotFound     = errors.New("evaluation plan not found")
	ErrPlanNotOpen      = errors.New("evaluation plan is not open for scoring")
	ErrEmployeeNotFound = errors.New("target employee not found")
	ErrProfileNotLinked = errors.New("actor has no linked employee profile")
	ErrForbidden        = errors.New("forbidden")
)
