package health

import (
	"context"
	"database/sql"
	"time"

	"healthrisk-backend/internal/shared/storage/db"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	DatabaseConnected    = "connected"
	DatabaseMemory       = "memory"
	DatabaseDisconnected = "disconnected"
)

// Report is the readiness payload served on /health.
type Report struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	ModelsLoaded bool   `json:"models_loaded"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB           *sql.DB
	ModelsLoaded func() bool
	PingTimeout  time.Duration
}

// NewService constructs a new health service. A nil database means the
// process runs on in-memory repositories.
func NewService(database *sql.DB, modelsLoaded func() bool) *Service {
	return &Service{DB: database, ModelsLoaded: modelsLoaded, PingTimeout: 2 * time.Second}
}

// Status reports readiness. It is unhealthy when a configured database does
// not answer a ping or no model is loaded.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{Status: StatusHealthy, Database: DatabaseMemory}
	if s.ModelsLoaded != nil {
		report.ModelsLoaded = s.ModelsLoaded()
	}
	if s.DB != nil {
		if err := db.Ping(ctx, s.DB, s.PingTimeout); err != nil {
			report.Status = StatusUnhealthy
			report.Database = DatabaseDisconnected
		} else {
			report.Database = DatabaseConnected
		}
	}
	if !report.ModelsLoaded {
		report.Status = StatusUnhealthy
	}
	return report
}

// Healthy reports whether the payload should be served with 200.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}
