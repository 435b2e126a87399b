package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"employee-stats/services"
	"employee-stats/storage"
)

type runRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok"}
	if s.counter != nil {
		n, err := s.counter.Count(r.Context())
		if err != nil {
			s.logger.Warn("[api] health: store count failed: %v", err)
			respondJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "error": "record store unavailable"})
			return
		}
		body["employees"] = n
	}
	respondJSON(w, http.StatusOK, body)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req runRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.sessions.Run(r.Context(), sessionID, req.Text)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("[api] session %s: %v", sessionID, err)
		}
		respondError(w, status, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	result, err := s.sessions.Latest(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	result, err := s.sessions.Latest(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	f, err := storage.BuildWorkbook(result)
	if err != nil {
		s.logger.Error("[api] export %s: %v", sessionID, err)
		respondError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="stats-%s.xlsx"`, result.RunID))
	if _, err := f.WriteTo(w); err != nil {
		s.logger.Error("[api] export %s: write: %v", sessionID, err)
	}
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var (
		empty     *services.EmptyInputError
		malformed *services.MalformedRowError
		lookup    *services.LookupFailedError
	)
	switch {
	case errors.As(err, &empty):
		return http.StatusBadRequest
	case errors.As(err, &malformed):
		return http.StatusUnprocessableEntity
	case errors.As(err, &lookup):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrRunInFlight):
		return http.StatusConflict
	case errors.Is(err, storage.ErrResultNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
