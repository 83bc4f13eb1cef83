package showcase

import "github.com/kailas-cloud/showcase/internal/domain"

// Errors returned by the client. Match with errors.Is.
var (
	ErrPatientNotFound = domain.ErrPatientNotFound
	ErrInvalidQuery    = domain.ErrInvalidQuery
	ErrInvalidRecord   = domain.ErrInvalidRecord
	ErrRunInProgress   = domain.ErrRunInProgress
	ErrRunCanceled     = domain.ErrRunCanceled
	ErrRunFailed       = domain.ErrRunFailed
)
