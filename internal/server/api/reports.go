// Package api provides HTTP API handlers for the Mudra pinch recognition
// system.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ayusman/mudra/internal/store"
)

// ReportsHandler handles HTTP requests for the classification history.
type ReportsHandler struct {
	store *store.Store
}

// NewReportsHandler creates a new ReportsHandler with the given store.
func NewReportsHandler(s *store.Store) *ReportsHandler {
	return &ReportsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected path: /api/reports?limit=N or /api/reports?session={id}
func (h *ReportsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if session := r.URL.Query().Get("session"); session != "" {
		h.bySession(w, session)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	h.recent(w, limit)
}

// Response types

type reportResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Hands     int    `json:"hands"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type listReportsResponse struct {
	Reports []reportResponse `json:"reports"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func toReportResponse(r *store.Report) reportResponse {
	return reportResponse{
		ID:        r.ID,
		SessionID: r.SessionID,
		Hands:     r.Hands,
		Body:      r.Body,
		CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// recent handles GET /api/reports
func (h *ReportsHandler) recent(w http.ResponseWriter, limit int) {
	reports, err := h.store.Reports().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	h.respond(w, reports)
}

// bySession handles GET /api/reports?session={id}
func (h *ReportsHandler) bySession(w http.ResponseWriter, sessionID string) {
	reports, err := h.store.Reports().BySession(sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	h.respond(w, reports)
}

func (h *ReportsHandler) respond(w http.ResponseWriter, reports []*store.Report) {
	response := listReportsResponse{
		Reports: make([]reportResponse, 0, len(reports)),
	}
	for _, r := range reports {
		response.Reports = append(response.Reports, toReportResponse(r))
	}

	writeJSON(w, http.StatusOK, response)
}
