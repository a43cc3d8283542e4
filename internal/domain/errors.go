package domain

import "errors"

var (
	ErrInvalidWeights      = errors.New("criteria weights must sum to 1.0")
	ErrInvalidThreshold    = errors.New("criteria threshold out of range")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrEvaluationNotFound  = errors.New("evaluation not found")
	ErrCredentialMissing   = errors.New("credential is not configured")
)
