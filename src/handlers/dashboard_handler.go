package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed templates/dashboard.html
var dashboardHTML []byte

// HandleDashboard serves the embedded single-page dashboard. The page
// polls the JSON API every 30 seconds.
func HandleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(dashboardHTML)
}
