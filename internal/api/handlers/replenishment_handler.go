// internal/api/handlers/replenishment_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/service"
	"github.com/gin-gonic/gin"
)

type ReplenishmentHandler struct {
	service *service.ReplenishmentService
}

func NewReplenishmentHandler(service *service.ReplenishmentService) *ReplenishmentHandler {
	return &ReplenishmentHandler{service: service}
}

// parseSelectors reads the branch and period query parameters. The period
// accepts both the plain month count ("3") and the labelled form
// ("3 meses"); anything unrecognized comes back as the zero Lookback,
// which the pipeline answers with an empty report.
func (h *ReplenishmentHandler) parseSelectors(c *gin.Context) (domain.BranchID, domain.Lookback) {
	branch := domain.NewBranchID(c.DefaultQuery("branch", ""))
	lookback, _ := domain.ParseLookback(c.DefaultQuery("period", ""))
	return branch, lookback
}

func (h *ReplenishmentHandler) GetReport(c *gin.Context) {
	branch, lookback := h.parseSelectors(c)
	if strings.TrimSpace(c.Query("branch")) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch is required"})
		return
	}

	report, err := h.service.BranchReport(c.Request.Context(), branch, lookback)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report.Rows == nil {
		report.Rows = make([]domain.ReplenishmentRow, 0)
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReplenishmentHandler) GetSuggestions(c *gin.Context) {
	branch, lookback := h.parseSelectors(c)
	if strings.TrimSpace(c.Query("branch")) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch is required"})
		return
	}

	rows, err := h.service.Suggestions(c.Request.Context(), branch, lookback)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rows == nil {
		rows = make([]domain.ReplenishmentRow, 0)
	}
	c.JSON(http.StatusOK, gin.H{"branch": branch, "rows": rows})
}

func (h *ReplenishmentHandler) GetAnalysis(c *gin.Context) {
	branch, lookback := h.parseSelectors(c)
	if strings.TrimSpace(c.Query("branch")) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch is required"})
		return
	}

	analysis, err := h.service.Analysis(c.Request.Context(), branch, lookback)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if analysis.Rows == nil {
		analysis.Rows = make([]domain.AnalysisRow, 0)
	}
	c.JSON(http.StatusOK, analysis)
}

// GetIndicators serves the cached stock-health labels. An absent or
// unclassified snapshot renders as an empty list, never as an error.
func (h *ReplenishmentHandler) GetIndicators(c *gin.Context) {
	rows, err := h.service.Indicators(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rows == nil {
		rows = make([]domain.ReplenishmentRow, 0)
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
