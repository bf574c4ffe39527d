package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rgehrsitz/sipcalc/internal/api/models"
	"github.com/rgehrsitz/sipcalc/internal/calculation"
	"github.com/rgehrsitz/sipcalc/internal/config"
	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// ProjectionHandler handles projection requests
type ProjectionHandler struct {
	engine *calculation.ProjectionEngine
	logger calculation.Logger
}

// NewProjectionHandler creates a projection handler. A nil engine gets a fresh one.
func NewProjectionHandler(engine *calculation.ProjectionEngine, logger calculation.Logger) *ProjectionHandler {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &ProjectionHandler{engine: engine, logger: logger}
}

// RunProjection handles POST /api/v1/projections
//
// The body is a plan; omitted fields take the default plan's values. Query
// parameters: view=summary|yearly|monthly (default summary) and strict=true to
// reject plans that fail validation instead of normalizing them.
func (h *ProjectionHandler) RunProjection(c *gin.Context) {
	view := strings.ToLower(c.DefaultQuery("view", models.ViewSummary))
	if !models.ValidView(view) {
		writeError(c, http.StatusBadRequest, "INVALID_VIEW",
			"view must be one of summary, yearly, monthly", gin.H{"view": view})
		return
	}

	plan := domain.DefaultPlan()
	if err := bindJSON(c, &plan); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	if strict, _ := strconv.ParseBool(c.Query("strict")); strict {
		if issues := config.ValidatePlan(plan); len(issues) > 0 {
			writeError(c, http.StatusUnprocessableEntity, "INVALID_PLAN",
				(&config.ConfigurationError{Issues: issues}).Error(), issues)
			return
		}
	}

	id := uuid.New().String()
	result := h.engine.Project(plan)
	h.logger.Infof("projection %s: %d months, final corpus %s", id, len(result.Records), result.Metrics.FinalCorpus.StringFixed(2))

	resp := models.ProjectionResponse{
		ID:      id,
		View:    view,
		Plan:    plan,
		Metrics: result.Metrics,
	}
	switch view {
	case models.ViewYearly:
		resp.Yearly = calculation.AggregateYearly(result)
	case models.ViewMonthly:
		resp.Records = result.Records
	}

	writeJSON(c, http.StatusOK, resp)
}
