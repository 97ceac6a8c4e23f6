package handler

import (
	"context"
	"net/http"

	"github.com/daap14/teamdir/internal/api/middleware"
	"github.com/daap14/teamdir/internal/api/response"
	"github.com/daap14/teamdir/internal/directory"
)

// DBPinger checks database reachability. *pgxpool.Pool satisfies it.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	directory directory.HealthChecker
	db        DBPinger // nil when no database is configured
	version   string
}

// NewHealthHandler creates a new HealthHandler. db may be nil.
func NewHealthHandler(checker directory.HealthChecker, db DBPinger, version string) *HealthHandler {
	return &HealthHandler{
		directory: checker,
		db:        db,
		version:   version,
	}
}

type directoryStatus struct {
	Connected bool    `json:"connected"`
	Version   *string `json:"version"`
}

type databaseStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Directory directoryStatus `json:"directory"`
	Database  *databaseStatus `json:"database,omitempty"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	status := "healthy"

	connectivity := h.directory.CheckConnectivity(r.Context())
	var dirVersion *string
	if connectivity.Connected {
		dirVersion = &connectivity.Version
	} else {
		status = "degraded"
	}

	data := healthData{
		Status:  status,
		Version: h.version,
		Directory: directoryStatus{
			Connected: connectivity.Connected,
			Version:   dirVersion,
		},
	}

	if h.db != nil {
		dbOK := h.db.Ping(r.Context()) == nil
		if !dbOK {
			data.Status = "degraded"
		}
		data.Database = &databaseStatus{Connected: dbOK}
	}

	response.Success(w, http.StatusOK, data, requestID)
}
