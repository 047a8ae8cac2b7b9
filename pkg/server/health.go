package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"mercator-hq/sweeper/pkg/retention"
)

// HealthStatus is the /health response body.
type HealthStatus struct {
	// Status is "ok" while the agent runs and "stopped" once it has stopped.
	Status    string            `json:"status"`
	Scheduler *retention.Status `json:"scheduler,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// VersionInfo contains build and version information.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// healthHandler returns 200 while the scheduler is running and 503 after
// it has stopped.
//
// Example response:
//
//	{
//	    "status": "ok",
//	    "scheduler": {"state": "WAITING", "cycles": 12, "last_cycle": "...", "next_scan": "..."},
//	    "timestamp": "2024-03-10T12:00:00Z"
//	}
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body := HealthStatus{Status: "ok", Timestamp: time.Now().UTC()}
		code := http.StatusOK
		if s.status != nil {
			st := s.status.Status()
			body.Scheduler = &st
			if st.State == retention.StateStopped.String() {
				body.Status = "stopped"
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)

		if r.Method != http.MethodHead {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

func versionHandler(version string) http.HandlerFunc {
	info := VersionInfo{
		Version:   version,
		GoVersion: runtime.Version(),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if r.Method != http.MethodHead {
			_ = json.NewEncoder(w).Encode(info)
		}
	}
}
