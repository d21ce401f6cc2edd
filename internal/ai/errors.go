package ai

import "errors"

// Initialization errors. An agent that hits one of these stays static for its lifetime.
var (
	ErrMissingPoseSink  = errors.New("pose sink not attached")
	ErrMissingNavigator = errors.New("navigator not attached")
	ErrMissingSurface   = errors.New("navigation surface not attached")
	ErrMissingProbe     = errors.New("obstacle probe not attached")
	ErrMissingSpatial   = errors.New("spatial query not attached")
	ErrUnknownMovement  = errors.New("unknown movement kind")
)
