package application

import (
	"context"
	"time"
)

// DatabasePinger checks store connectivity. Satisfied by *sql.DB.
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// HealthStatus is the liveness probe payload.
type HealthStatus struct {
	Status   string
	Uptime   time.Duration
	Database string
}

// HealthService reports process uptime and credential store connectivity.
type HealthService struct {
	db      DatabasePinger
	started time.Time
}

// NewHealthService creates a HealthService anchored at the current time.
func NewHealthService(db DatabasePinger) *HealthService {
	return &HealthService{db: db, started: time.Now()}
}

// Check pings the credential store and assembles the probe payload. The
// overall status degrades when the store is unreachable.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:   "ok",
		Uptime:   time.Since(s.started).Round(time.Second),
		Database: "ok",
	}

	if err := s.db.PingContext(ctx); err != nil {
		status.Status = "degraded"
		status.Database = "error"
	}

	return status
}
