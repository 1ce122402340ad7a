package handlers

import (
	"encoding/json"
	"fromtodk/internal/api/dto"
	"fromtodk/internal/domain"
	"fromtodk/internal/platform/obs"
	"net/http"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && log != nil {
		log.Warn("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, status int, msg string) {
	writeJSON(w, r, log, status, map[string]string{"error": msg})
}

func allowGet(w http.ResponseWriter, r *http.Request, log *zap.Logger) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, r, log, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func toCoordinateResponse(c *domain.Coordinates) *dto.CoordinateResponse {
	if c == nil {
		return nil
	}
	return &dto.CoordinateResponse{Lat: c.Lat, Lon: c.Lon}
}

func toIDStrings(ids []domain.EntityID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
