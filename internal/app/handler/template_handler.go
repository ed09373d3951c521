package handler

import (
	"errors"
	"net/http"

	"estimator/internal/app/dto"
	"estimator/internal/app/estimate"

	"github.com/gin-gonic/gin"
)

// GetTemplates lists the built-in templates
// @Summary List templates
// @Description Returns the template catalog with pre-computed totals
// @Tags Templates
// @Produce json
// @Success 200 {object} dto.TemplateListResponse
// @Router /api/templates [get]
func (h *APIHandler) GetTemplates(c *gin.Context) {
	templates := estimate.Catalog()
	h.successResponse(c, http.StatusOK, "", dto.TemplateListResponse{
		Templates: templates,
		Total:     len(templates),
	})
}

// GetTemplate returns one template with its items
// @Summary Get template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} estimate.Template
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/templates/{id} [get]
func (h *APIHandler) GetTemplate(c *gin.Context) {
	t, err := estimate.FindTemplate(c.Param("id"))
	if errors.Is(err, estimate.ErrTemplateNotFound) {
		h.errorResponse(c, http.StatusNotFound, "template not found")
		return
	}
	h.successResponse(c, http.StatusOK, "", t)
}

// GetTaxPresets lists the selectable tax rates
// @Summary List tax presets
// @Tags Templates
// @Produce json
// @Success 200 {array} estimate.TaxPreset
// @Router /api/tax-presets [get]
func (h *APIHandler) GetTaxPresets(c *gin.Context) {
	h.successResponse(c, http.StatusOK, "", estimate.TaxPresets())
}
