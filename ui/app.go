package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pulseboard/domain/core"
	"pulseboard/domain/table"
	"pulseboard/internal"
	"pulseboard/internal/registry"
	"pulseboard/internal/report"
	"pulseboard/internal/view"
)

// App is a lean read-only surface over an already-populated registry: no
// uploads, no filter mutation. Suitable for embedding the engine behind a
// static dashboard or a reverse proxy that handles writes elsewhere.
type App struct {
	router   *chi.Mux
	registry *registry.Registry
	views    *view.Service
	log      *internal.Logger
}

// NewApp creates the read-only application
func NewApp(reg *registry.Registry, views *view.Service) *App {
	a := &App{
		router:   chi.NewRouter(),
		registry: reg,
		views:    views,
		log:      internal.DefaultLogger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/datasets", a.handleDatasets)
	a.router.Get("/views", a.handleAllViews)
	a.router.Get("/views/{id}", a.handleDatasetView)
	a.router.Get("/views/{id}/report", a.handleDatasetReport)
}

// Start starts the HTTP server and blocks.
func (a *App) Start(port string) error {
	addr := ":" + port
	a.log.Info("read-only API listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"datasets": a.registry.Len(),
	})
}

func (a *App) handleDatasets(w http.ResponseWriter, r *http.Request) {
	type summary struct {
		ID            core.DatasetID      `json:"id"`
		DisplayName   string              `json:"display_name"`
		CanonicalName string              `json:"canonical_name"`
		Color         string              `json:"color"`
		RowCount      int                 `json:"row_count"`
		Status        table.DatasetStatus `json:"status"`
	}

	list := a.registry.List()
	out := make([]summary, 0, len(list))
	for _, ds := range list {
		out = append(out, summary{
			ID:            ds.ID,
			DisplayName:   ds.DisplayName,
			CanonicalName: ds.CanonicalName,
			Color:         ds.Color,
			RowCount:      ds.RowCount,
			Status:        ds.Status,
		})
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"datasets": out})
}

func (a *App) handleAllViews(w http.ResponseWriter, r *http.Request) {
	g := a.granularity(r)
	views, err := a.views.DeriveAll(r.Context(), g)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"granularity": g, "views": views})
}

func (a *App) handleDatasetView(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseDatasetID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	v, err := a.views.Derive(id, a.granularity(r))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, v)
}

func (a *App) handleDatasetReport(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseDatasetID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	v, err := a.views.Derive(id, a.granularity(r))
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.HTML(v))
}

func (a *App) granularity(r *http.Request) table.Granularity {
	if g := r.URL.Query().Get("granularity"); g != "" {
		return table.Granularity(g)
	}
	return table.GranularityMonth
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.Error("failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case core.IsContractViolation(err):
		status = http.StatusUnprocessableEntity
	}
	a.writeJSON(w, status, map[string]string{"error": err.Error()})
}
