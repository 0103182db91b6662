package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// ReportHandler serves the weekly receiving report routes.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the report HTTP adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Weekly handles GET /api/report/weekly?weeks=8 for the receiving chart.
func (h *ReportHandler) Weekly(c *gin.Context) {
	weeks := 8
	if raw := c.Query("weeks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 52 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weeks must be between 1 and 52"})
			return
		}
		weeks = parsed
	}

	reports, err := h.svc.Recent(c.Request.Context(), weeks)
	if err != nil {
		h.logger.Error("failed to list weekly reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// Run handles POST /api/report/weekly/run, regenerating the report for the
// current week on demand.
func (h *ReportHandler) Run(c *gin.Context) {
	report, err := h.svc.GenerateWeekly(c.Request.Context(), time.Now())
	if err != nil {
		h.logger.Error("failed to generate weekly report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
