package api

import (
	"fromtodk/internal/api/handlers"
	"fromtodk/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP surface needs. Addresses is optional;
// without it the /address endpoint is not mounted.
type Deps struct {
	Lookup    ports.DistanceService
	Addresses ports.AddressRepository
	Log       *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	mux := http.NewServeMux()

	distHandler := &handlers.DistanceHandler{Lookup: deps.Lookup, Log: log}

	mux.HandleFunc("/{$}", distHandler.Index)
	mux.HandleFunc("/api/distance", distHandler.API)
	mux.HandleFunc("/health", handlers.Health(log))
	mux.Handle("/metrics", promhttp.Handler())

	if deps.Addresses != nil {
		addrHandler := &handlers.AddressHandler{Repo: deps.Addresses, Log: log}
		mux.HandleFunc("/address", addrHandler.Lookup)
	}

	return requestMiddleware(log, mux)
}
