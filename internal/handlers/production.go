// Package handlers provides HTTP request handlers for the dashboard API and web UI.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/cnc-monitor/internal/export"
	"github.com/pandeptwidyaop/cnc-monitor/internal/middleware"
	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
	"github.com/pandeptwidyaop/cnc-monitor/internal/services"
	"github.com/pandeptwidyaop/cnc-monitor/internal/validation"
)

// ProductionHandler serves machine, program, export and statistics reads.
type ProductionHandler struct {
	service *services.ProductionService
}

// NewProductionHandler creates a new ProductionHandler instance.
func NewProductionHandler(service *services.ProductionService) *ProductionHandler {
	return &ProductionHandler{service: service}
}

// Machines returns all machines as JSON.
// GET /api/machines
func (h *ProductionHandler) Machines(c *gin.Context) {
	machines, err := h.service.ListMachines(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to fetch machines")
		return
	}

	c.JSON(http.StatusOK, machines)
}

// Programs returns production programs matching the query filter as JSON.
// GET /api/production-programs?startDate=&endDate=&machineId=
func (h *ProductionHandler) Programs(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	programs, err := h.service.ListPrograms(c.Request.Context(), filter)
	if err != nil {
		internalError(c, err, "Failed to fetch production programs")
		return
	}

	c.JSON(http.StatusOK, programs)
}

// ExportCSV returns production programs matching the query filter as a CSV attachment.
// GET /api/export/csv?startDate=&endDate=&machineId=
func (h *ProductionHandler) ExportCSV(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	rows, err := h.service.ListProgramsForExport(c.Request.Context(), filter)
	if err != nil {
		internalError(c, err, "Failed to export data")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export.FormatCSV(rows)))
}

// Stats returns the dashboard summary as JSON.
// GET /api/stats
func (h *ProductionHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to fetch statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func bindFilter(c *gin.Context) (models.ProgramFilter, bool) {
	var query validation.ProgramQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.ProgramFilter{}, false
	}

	filter, err := query.Filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.ProgramFilter{}, false
	}
	return filter, true
}

func internalError(c *gin.Context, err error, message string) {
	zap.S().Errorw(message,
		"error", err,
		"request_id", c.GetString(middleware.RequestIDContextKey),
		"store_error", errors.Is(err, services.ErrFetchFailed),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
