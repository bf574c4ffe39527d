package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rgehrsitz/sipcalc/internal/api/models"
	"github.com/rgehrsitz/sipcalc/internal/calculation"
	"github.com/rgehrsitz/sipcalc/internal/compare"
	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// CompareHandler handles what-if comparison requests
type CompareHandler struct {
	compare *compare.CompareEngine
	logger  calculation.Logger
}

// NewCompareHandler creates a compare handler over the built-in templates
func NewCompareHandler(engine *calculation.ProjectionEngine, logger calculation.Logger) *CompareHandler {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &CompareHandler{compare: compare.NewCompareEngine(engine), logger: logger}
}

// Compare handles POST /api/v1/compare
func (h *CompareHandler) Compare(c *gin.Context) {
	req := models.CompareRequest{Base: domain.DefaultPlan()}
	if err := bindJSON(c, &req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	if len(req.Templates) == 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "at least one template is required", nil)
		return
	}
	var unknown []string
	for _, name := range req.Templates {
		if _, ok := h.compare.TemplateRegistry.Get(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		writeError(c, http.StatusBadRequest, "UNKNOWN_TEMPLATE",
			"unknown template(s): "+strings.Join(unknown, ", "),
			gin.H{"available": h.compare.TemplateRegistry.List()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Base"
	}
	base := &domain.Scenario{Name: name, Plan: req.Base}

	compSet, err := h.compare.CompareTemplates(c.Request.Context(), base, req.Templates)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "COMPARE_ERROR", err.Error(), nil)
		return
	}

	id := uuid.New().String()
	h.logger.Infof("comparison %s: %s against %d template(s)", id, name, len(req.Templates))
	writeJSON(c, http.StatusOK, models.CompareResponse{ID: id, ComparisonSet: compSet})
}

// ListTemplates handles GET /api/v1/templates
func (h *CompareHandler) ListTemplates(c *gin.Context) {
	templates := h.compare.TemplateRegistry.Templates()
	resp := models.TemplatesResponse{Templates: make([]models.TemplateInfo, 0, len(templates))}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, models.TemplateInfo{
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
		})
	}
	writeJSON(c, http.StatusOK, resp)
}
