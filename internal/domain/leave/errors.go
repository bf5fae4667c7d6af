package leave

import "errors"

var (
	ErrNotFound          = errors.New("leave request not found")
	ErrForbidden         = errors.New("leave request out of scope")
	ErrInvalidTransition = errors.New("leave request already decided")
	ErrProfileNotLinked  = errors.New("user has no linked employee profile")
	ErrInvalidRange      = errors.New("leave end date precedes start date")
)
