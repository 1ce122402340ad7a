package handlers

import (
	"fromtodk/internal/api/dto"
	"fromtodk/internal/platform/obs"
	"fromtodk/internal/ports"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AddressHandler looks up imported Danish addresses ("<vejnavn> <husnr> <postnr>").
type AddressHandler struct {
	Repo ports.AddressRepository
	Log  *zap.Logger
}

func (h *AddressHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, h.Log) {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, h.Log, http.StatusBadRequest, "query parameter q is required")
		return
	}

	c, err := h.Repo.Lookup(r.Context(), q)
	if err != nil {
		h.Log.Error("address lookup failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, h.Log, http.StatusInternalServerError, "internal server error")
		return
	}
	if c == nil {
		writeError(w, r, h.Log, http.StatusNotFound, "address not found")
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, dto.AddressResponse{Address: q, Lat: c.Lat, Lon: c.Lon})
}
