package matching

import (
	"context"

	"github.com/kailas-cloud/showcase/internal/domain/patient"
	"github.com/kailas-cloud/showcase/internal/domain/stage"
	"github.com/kailas-cloud/showcase/internal/usecase/staging"
)

// Catalog provides the read-only patient cohort.
type Catalog interface {
	Patients() []patient.Patient
	Patient(id int) (patient.Patient, error)
}

// Runner drives the staged progress shown while matches are computed.
type Runner interface {
	Run(ctx context.Context, plan staging.Plan, onStep staging.StepFunc) (stage.Snapshot, error)
}
