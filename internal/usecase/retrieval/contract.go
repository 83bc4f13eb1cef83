package retrieval

import (
	"context"

	"github.com/kailas-cloud/showcase/internal/domain/document"
	"github.com/kailas-cloud/showcase/internal/domain/stage"
	"github.com/kailas-cloud/showcase/internal/usecase/staging"
)

// Catalog provides the read-only document set.
type Catalog interface {
	Documents() []document.Document
}

// Runner drives the staged progress shown while an answer is prepared.
type Runner interface {
	Run(ctx context.Context, plan staging.Plan, onStep staging.StepFunc) (stage.Snapshot, error)
}
