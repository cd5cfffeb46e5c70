// Package ui exposes the engine over HTTP for the dashboard frontend. The
// frontend affects engine output only through FilterState replacement; it
// never reaches into intermediate aggregator state.
package ui

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulseboard/internal"
	"pulseboard/internal/config"
	"pulseboard/internal/filter"
	"pulseboard/internal/registry"
	"pulseboard/internal/view"
	"pulseboard/ports"
)

// Server represents the dashboard API server
type Server struct {
	router   *gin.Engine
	config   *config.Config
	registry *registry.Registry
	filters  *filter.Engine
	views    *view.Service
	repo     ports.DatasetRepository // nil when persistence is disabled
	log      *internal.Logger
}

// NewServer wires the engine into a gin router. repo may be nil for a purely
// in-memory deployment.
func NewServer(cfg *config.Config, reg *registry.Registry, filters *filter.Engine, views *view.Service, repo ports.DatasetRepository) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.Default(),
		config:   cfg,
		registry: reg,
		filters:  filters,
		views:    views,
		repo:     repo,
		log:      internal.DefaultLogger,
	}
	s.router.MaxMultipartMemory = cfg.Engine.MaxUploadSize
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "datasets": s.registry.Len()})
	})

	api := s.router.Group("/api")
	{
		api.POST("/datasets", s.handleUpload)
		api.GET("/datasets", s.handleListDatasets)
		api.DELETE("/datasets/:id", s.handleDeleteDataset)

		api.GET("/views", s.handleViews)
		api.GET("/views/:id", s.handleView)
		api.GET("/views/:id/report", s.handleViewReport)
		api.GET("/series/combined", s.handleCombinedSeries)

		api.GET("/filters", s.handleGetFilters)
		api.PUT("/filters", s.handlePutFilters)
		api.DELETE("/filters", s.handleClearFilters)
	}
}

// Run starts the HTTP server and blocks.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Server.Port)
	s.log.Info("dashboard API listening on %s", addr)
	return s.router.Run(addr)
}

// RestoreFromRepository reloads persisted datasets into the registry on boot.
func (s *Server) RestoreFromRepository(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	persisted, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, ds := range persisted {
		if _, err := s.registry.Add(ds.DisplayName, ds.Rows); err != nil {
			s.log.Warn("skipping persisted dataset %s: %v", ds.ID, err)
		}
	}
	s.log.Info("restored %d persisted datasets", len(persisted))
	return nil
}
