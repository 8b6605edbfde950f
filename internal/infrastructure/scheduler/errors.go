package scheduler

import "errors"

var (
	// ErrSchedulerRunning is returned when registering a job after Start
	ErrSchedulerRunning = errors.New("scheduler is already running")

	// ErrJobNotFound is returned for unknown job names
	ErrJobNotFound = errors.New("job not found")

	// ErrDuplicateJob is returned when two jobs share a name
	ErrDuplicateJob = errors.New("job already registered")

	// ErrInvalidConfig is returned when a job definition is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)
