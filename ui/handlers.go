package ui

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"pulseboard/adapters/ingest"
	"pulseboard/domain/core"
	"pulseboard/domain/table"
	"pulseboard/internal/report"
)

// handleUpload decodes a CSV upload and registers it as a dataset.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open upload"})
		return
	}
	defer file.Close()

	name := c.PostForm("name")
	if name == "" {
		name = strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	}

	var decoded *ingest.Decoded
	if strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		decoded, err = ingest.DecodeXLSX(file, name)
	} else {
		decoded, err = ingest.DecodeCSV(file, name)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ds, err := s.registry.Add(decoded.DisplayName, decoded.Rows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if s.repo != nil {
		if err := s.repo.Create(c.Request.Context(), ds); err != nil {
			// The in-memory dataset stays usable; persistence catches up
			// on the next boot at worst.
			s.log.Warn("failed to persist dataset %s: %v", ds.ID, err)
		}
	}

	c.JSON(http.StatusCreated, datasetSummary(ds))
}

func (s *Server) handleListDatasets(c *gin.Context) {
	list := s.registry.List()
	out := make([]gin.H, 0, len(list))
	for _, ds := range list {
		out = append(out, datasetSummary(ds))
	}
	c.JSON(http.StatusOK, gin.H{"datasets": out})
}

func (s *Server) handleDeleteDataset(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.registry.Remove(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if s.repo != nil {
		if err := s.repo.Delete(c.Request.Context(), id); err != nil {
			s.log.Warn("failed to delete persisted dataset %s: %v", id, err)
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleViews(c *gin.Context) {
	g := granularityParam(c)
	views, err := s.views.DeriveAll(c.Request.Context(), g)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"granularity": g, "views": views})
}

func (s *Server) handleView(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := s.views.Derive(id, granularityParam(c))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleViewReport(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := s.views.Derive(id, granularityParam(c))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(v)))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(v))
}

func (s *Server) handleCombinedSeries(c *gin.Context) {
	combined, err := s.views.CombinedSeries(granularityParam(c))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": combined})
}

func (s *Server) handleGetFilters(c *gin.Context) {
	state := s.filters.Current()
	c.JSON(http.StatusOK, gin.H{"state": state, "active": state.Active()})
}

func (s *Server) handlePutFilters(c *gin.Context) {
	var state table.FilterState
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed filter state: " + err.Error()})
		return
	}
	if err := s.filters.Replace(state); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "active": state.Active()})
}

func (s *Server) handleClearFilters(c *gin.Context) {
	s.filters.Clear()
	c.Status(http.StatusNoContent)
}

func datasetSummary(ds *table.Dataset) gin.H {
	return gin.H{
		"id":             ds.ID,
		"display_name":   ds.DisplayName,
		"canonical_name": ds.CanonicalName,
		"color":          ds.Color,
		"row_count":      ds.RowCount,
		"status":         ds.Status,
	}
}

func granularityParam(c *gin.Context) table.Granularity {
	g := table.Granularity(c.DefaultQuery("granularity", string(table.GranularityMonth)))
	return g
}

func statusFor(err error) int {
	switch {
	case core.IsNotFoundError(err):
		return http.StatusNotFound
	case core.IsContractViolation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
