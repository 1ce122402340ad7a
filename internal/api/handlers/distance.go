package handlers

import (
	"errors"
	"fromtodk/internal/api/dto"
	"fromtodk/internal/domain"
	"fromtodk/internal/platform/obs"
	"fromtodk/internal/ports"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// DistanceHandler serves the from/to lookup as an HTML form and as JSON.
type DistanceHandler struct {
	Lookup ports.DistanceService
	Log    *zap.Logger
}

// API handles GET /api/distance?f=<from>&t=<to>.
func (h *DistanceHandler) API(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, h.Log) {
		return
	}

	from := strings.TrimSpace(r.URL.Query().Get("f"))
	to := strings.TrimSpace(r.URL.Query().Get("t"))
	if from == "" || to == "" {
		writeError(w, r, h.Log, http.StatusBadRequest, "query parameters f and t are required")
		return
	}

	res, err := h.Lookup.LookupDistance(r.Context(), from, to)
	if err != nil {
		h.logLookupFailure(r, err)
		writeError(w, r, h.Log, http.StatusBadGateway, "upstream lookup failed")
		return
	}

	out := dto.DistanceResponse{
		From:      res.From,
		To:        res.To,
		FromIDs:   toIDStrings(res.FromIDs),
		ToIDs:     toIDStrings(res.ToIDs),
		FromID:    string(res.FromID),
		ToID:      string(res.ToID),
		FromCoord: toCoordinateResponse(res.FromCoord),
		ToCoord:   toCoordinateResponse(res.ToCoord),
		Found:     res.Found,
	}
	if res.Found {
		km := res.Km
		out.DistanceKm = &km
	}

	writeJSON(w, r, h.Log, http.StatusOK, out)
}

const absentDistance = "n/a"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
  <body>
    <form>
      <input name="f" value="{{.From}}">
      <input name="t" value="{{.To}}">
      <input type="submit">
    </form>
{{- if .Asked}}
    <div>
      Distance: {{.Distance}}
    </div>
{{- end}}
    <div>
      <a href="https://github.com/fnielsen/fromtodk">https://github.com/fnielsen/fromtodk</a>
    </div>
  </body>
</html>
`))

type indexPage struct {
	From, To string
	Asked    bool
	Distance string
}

// Index handles GET / with the optional query parameters f and t.
func (h *DistanceHandler) Index(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, h.Log) {
		return
	}

	page := indexPage{
		From:     strings.TrimSpace(r.URL.Query().Get("f")),
		To:       strings.TrimSpace(r.URL.Query().Get("t")),
		Distance: absentDistance,
	}
	page.Asked = page.From != "" || page.To != ""

	status := http.StatusOK
	if page.Asked {
		res, err := h.Lookup.LookupDistance(r.Context(), page.From, page.To)
		switch {
		case err != nil:
			h.logLookupFailure(r, err)
			status = http.StatusBadGateway
		case res.Found:
			page.Distance = res.KmString()
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, page); err != nil {
		h.Log.Warn("render index failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
	}
}

func (h *DistanceHandler) logLookupFailure(r *http.Request, err error) {
	h.Log.Error("distance lookup failed",
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.Bool("resolution", errors.Is(err, domain.ErrResolutionFailed)),
		zap.Error(err),
	)
}
