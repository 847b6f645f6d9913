package health

import (
	"context"
	"time"
)

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
	db            DBPinger
	catalog       CatalogChecker
	catalogMaxAge time.Duration
}

// New creates a Service. db can be nil when the catalog is file-backed.
func New(db DBPinger, catalog CatalogChecker) *Service {
	return &Service{db: db, catalog: catalog}
}

// WithCatalogMaxAge flags the catalog check when the snapshot has not
// refreshed within d, so a source that keeps failing while stale data
// is served still surfaces as degraded. Zero disables the age check.
func (s *Service) WithCatalogMaxAge(d time.Duration) *Service {
	s.catalogMaxAge = d
	return s
}

// Check runs health checks against all components. The catalog check
// passes once a snapshot has been loaded and, when a max age is set,
// only while the snapshot is recent enough.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
		} else {
			checks["database"] = CheckOK
		}
	}

	if s.catalog != nil {
		last := s.catalog.LastRefresh()
		switch {
		case last.IsZero():
			checks["catalog"] = CheckError
		case s.catalogMaxAge > 0 && time.Since(last) > s.catalogMaxAge:
			checks["catalog"] = CheckError
		default:
			checks["catalog"] = CheckOK
		}
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
