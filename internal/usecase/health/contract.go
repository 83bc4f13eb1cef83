package health

import "context"

// LockPinger checks the run-lock backend.
type LockPinger interface {
	Ping(ctx context.Context) error
}

// CatalogCounter reports how many records the catalog holds.
type CatalogCounter interface {
	Counts() (documents, patients int)
}
