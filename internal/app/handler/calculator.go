package handler

import (
	"net/http"

	"estimator/internal/app/dto"
	"estimator/internal/app/estimate"

	"github.com/gin-gonic/gin"
)

// Calculate aggregates an item list without storing anything
// @Summary Calculate totals
// @Description Recomputes every item total and returns subtotal, tax, final amount and negotiation rate. Tax rate defaults to 10.
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.CalculateRequest true "Items and tax rate"
// @Success 200 {object} dto.CalculateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/calculate [post]
func (h *APIHandler) Calculate(c *gin.Context) {
	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	taxRate := estimate.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	items := itemsFromRequest(req.Items)
	h.successResponse(c, http.StatusOK, "", dto.CalculateResponse{
		Items:  items,
		Totals: estimate.Aggregate(items, taxRate),
	})
}
