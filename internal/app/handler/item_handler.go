package handler

import (
	"errors"
	"net/http"

	"estimator/internal/app/ds"
	"estimator/internal/app/dto"
	"estimator/internal/app/estimate"

	"github.com/gin-gonic/gin"
)

var errInvalidQuantity = errors.New("quantity must be a whole number, or a multiple of 0.5 for 일")

// AddItem appends a line item
// @Summary Add item
// @Description Unit defaults to 건. The quantity is normalized for the unit. An AI item without a name gets the AI preset.
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Param request body dto.ItemRequest true "Item"
// @Success 200 {object} dto.EstimateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/items [post]
func (h *APIHandler) AddItem(c *gin.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	h.editEstimate(c, func(_ *ds.Estimate, items []estimate.Item) ([]estimate.Item, error) {
		req.ID = ""
		it := itemFromRequest(req)
		if it.Unit == "" {
			it.Unit = estimate.UnitCase
		}
		if it.Category == estimate.CategoryAI && it.Name == "" {
			it.SetCategory(estimate.CategoryAI)
		}
		it.SetQuantity(it.Quantity)
		return append(items, it), nil
	})
}

// UpdateItem edits the fields present in the request
// @Summary Update item
// @Description Changing quantity or unit price recomputes the item total. Switching to the ai category presets name and description.
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Param item_id path string true "Item ID"
// @Param request body dto.UpdateItemRequest true "Changed fields"
// @Success 200 {object} dto.EstimateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/items/{item_id} [put]
func (h *APIHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	h.editEstimate(c, func(_ *ds.Estimate, items []estimate.Item) ([]estimate.Item, error) {
		i, err := estimate.FindItem(items, c.Param("item_id"))
		if err != nil {
			return nil, err
		}
		it := &items[i]

		if req.Name != nil {
			it.Name = *req.Name
		}
		if req.Description != nil {
			it.Description = *req.Description
		}
		if req.Category != nil {
			it.SetCategory(estimate.Category(*req.Category))
		}
		if req.IsDiscount != nil {
			it.IsDiscount = *req.IsDiscount
		}
		if req.Unit != nil {
			it.Unit = *req.Unit
		}
		if req.UnitPrice != nil {
			it.SetUnitPrice(*req.UnitPrice)
		}
		if req.Quantity != nil {
			if !estimate.ValidQuantity(it.Unit, *req.Quantity) {
				return nil, errInvalidQuantity
			}
			it.SetQuantity(*req.Quantity)
		}
		it.Recompute()
		return items, nil
	})
}

// StepItem nudges the quantity by one whole unit
// @Summary Increment or decrement quantity
// @Description delta 1 moves to floor(q)+1. delta -1 moves to floor(q)-1 and does nothing at 1 or below.
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Param item_id path string true "Item ID"
// @Param request body dto.StepItemRequest true "Step"
// @Success 200 {object} dto.EstimateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/items/{item_id}/step [post]
func (h *APIHandler) StepItem(c *gin.Context) {
	var req dto.StepItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	h.editEstimate(c, func(_ *ds.Estimate, items []estimate.Item) ([]estimate.Item, error) {
		i, err := estimate.FindItem(items, c.Param("item_id"))
		if err != nil {
			return nil, err
		}
		if req.Delta > 0 {
			items[i].Increment()
		} else {
			items[i].Decrement()
		}
		return items, nil
	})
}

// RemoveItem deletes a line item
// @Summary Remove item
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Param item_id path string true "Item ID"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/items/{item_id} [delete]
func (h *APIHandler) RemoveItem(c *gin.Context) {
	h.editEstimate(c, func(_ *ds.Estimate, items []estimate.Item) ([]estimate.Item, error) {
		i, err := estimate.FindItem(items, c.Param("item_id"))
		if err != nil {
			return nil, err
		}
		return append(items[:i], items[i+1:]...), nil
	})
}
