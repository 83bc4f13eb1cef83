package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	lock    LockPinger
	catalog CatalogCounter
}

// New creates a Service. lock can be nil when runs are not serialized.
func New(lock LockPinger, catalog CatalogCounter) *Service {
	return &Service{lock: lock, catalog: catalog}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.lock != nil {
		if err := s.lock.Ping(ctx); err != nil {
			checks["lock"] = CheckError
		} else {
			checks["lock"] = CheckOK
		}
	}

	// Both demos need records to rank.
	docs, patients := s.catalog.Counts()
	if docs == 0 || patients < 2 {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
