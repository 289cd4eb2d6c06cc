package http

import (
	"database/sql"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	version string
	tempDir string
}

// NewHealthController creates a health controller. Uploads are staged under
// tempDir, which defaults to os.TempDir().
func NewHealthController(version, tempDir string) *HealthController {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &HealthController{
		version: version,
		tempDir: tempDir,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Kobo uploads need the sqlite3 driver
	if slices.Contains(sql.Drivers(), "sqlite3") {
		checks["sqlite"] = "ok"
	} else {
		checks["sqlite"] = "error: sqlite3 driver not registered"
		status = "unhealthy"
	}

	// Check uploads can be staged
	if dir, err := os.MkdirTemp(h.tempDir, "highlights-health-*"); err != nil {
		checks["temp_dir"] = "error: " + err.Error()
		status = "unhealthy"
	} else {
		os.RemoveAll(dir)
		checks["temp_dir"] = "ok"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
