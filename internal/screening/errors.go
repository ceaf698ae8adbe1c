package screening

import "errors"

var (
	// ErrInvalidRequest marks caller input rejected before any network call.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConfiguration marks a job with no interview routing configured;
	// initiating a call for it would be dialing into nothing.
	ErrConfiguration = errors.New("interview routing not configured")

	// ErrProvider marks a failed outbound call placement. No interview row
	// exists when this is returned.
	ErrProvider = errors.New("voice provider request failed")
)
