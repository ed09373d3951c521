package handler

import (
	"errors"
	"net/http"

	"estimator/internal/app/ds"
	"estimator/internal/app/dto"
	"estimator/internal/app/estimate"
	"estimator/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var errCompanyNotFound = errors.New("company not found")

// CreateDraft starts an unsaved estimate from a template
// @Summary Start estimate from template
// @Description Copies the template items into a new draft with tax rate 10, validity of 30 days and the default company attached. Use "blank" or an empty id for an empty draft. Nothing is stored.
// @Tags Estimates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DraftRequest true "Template"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/drafts [post]
func (h *APIHandler) CreateDraft(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	draft, err := estimate.Instantiate(req.TemplateID, h.now())
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "template not found")
		return
	}

	company, err := h.Repository.GetDefaultCompany(userID)
	if err != nil && !repository.IsNotFound(err) {
		logrus.Error("Error loading default company: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to load default company")
		return
	}

	h.successResponse(c, http.StatusOK, "", draftToResponse(draft, company))
}

// GetEstimates lists saved estimates, most recently saved first
// @Summary List saved estimates
// @Tags Estimates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EstimateListResponse
// @Router /api/estimates [get]
func (h *APIHandler) GetEstimates(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	estimates, err := h.Repository.ListEstimates(userID)
	if err != nil {
		logrus.Error("Error listing estimates: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to load estimates")
		return
	}

	out := make([]dto.EstimateSummary, len(estimates))
	for i, e := range estimates {
		out[i] = estimateToSummary(e)
	}
	h.successResponse(c, http.StatusOK, "", dto.EstimateListResponse{
		Estimates: out,
		Total:     len(out),
	})
}

// GetEstimate returns a saved estimate with its items
// @Summary Get estimate
// @Tags Estimates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id} [get]
func (h *APIHandler) GetEstimate(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	h.respondEstimate(c, http.StatusOK, userID, c.Param("id"), "")
}

// CreateEstimate saves a full estimate document
// @Summary Save new estimate
// @Description Item totals and document totals are recomputed on the server. Without company_id the default company is attached.
// @Tags Estimates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EstimateRequest true "Estimate"
// @Success 201 {object} dto.EstimateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates [post]
func (h *APIHandler) CreateEstimate(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	est := &ds.Estimate{
		UserID:     userID,
		TaxRate:    estimate.DefaultTaxRate,
		ValidUntil: h.now().Add(estimate.DefaultValidity),
	}
	if req.CompanyID == nil {
		company, err := h.Repository.GetDefaultCompany(userID)
		if err != nil && !repository.IsNotFound(err) {
			logrus.Error("Error loading default company: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "failed to load default company")
			return
		}
		attachCompany(est, company)
	}

	if err := h.applyEstimateRequest(userID, est, req); err != nil {
		h.requestError(c, err)
		return
	}

	if err := h.Repository.CreateEstimate(est); err != nil {
		logrus.Error("Error creating estimate: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to save estimate")
		return
	}

	h.respondEstimate(c, http.StatusCreated, userID, est.ID, "estimate saved")
}

// UpdateEstimate overwrites a saved estimate
// @Summary Save estimate
// @Description Replaces every field and item. Omitting company_id keeps the current company, an empty string detaches it.
// @Tags Estimates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Param request body dto.EstimateRequest true "Estimate"
// @Success 200 {object} dto.EstimateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id} [put]
func (h *APIHandler) UpdateEstimate(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	est, err := h.Repository.GetEstimate(userID, c.Param("id"))
	if err != nil {
		h.repositoryError(c, err, "estimate not found")
		return
	}

	if err := h.applyEstimateRequest(userID, est, req); err != nil {
		h.requestError(c, err)
		return
	}

	if err := h.Repository.SaveEstimate(est); err != nil {
		h.repositoryError(c, err, "estimate not found")
		return
	}

	h.respondEstimate(c, http.StatusOK, userID, est.ID, "estimate saved")
}

// DeleteEstimate removes a saved estimate
// @Summary Delete estimate
// @Tags Estimates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id} [delete]
func (h *APIHandler) DeleteEstimate(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	if err := h.Repository.DeleteEstimate(userID, c.Param("id")); err != nil {
		h.repositoryError(c, err, "estimate not found")
		return
	}
	h.successResponse(c, http.StatusOK, "estimate deleted", nil)
}

// DuplicateEstimate saves a copy of an estimate under a new id
// @Summary Duplicate estimate
// @Tags Estimates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Success 201 {object} dto.EstimateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/duplicate [post]
func (h *APIHandler) DuplicateEstimate(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	est, err := h.Repository.GetEstimate(userID, c.Param("id"))
	if err != nil {
		h.repositoryError(c, err, "estimate not found")
		return
	}

	// CreateEstimate clears the ids, so the copy gets its own rows
	est.CreatedAt, est.UpdatedAt = h.now(), h.now()
	if err := h.Repository.CreateEstimate(est); err != nil {
		logrus.Error("Error duplicating estimate: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to duplicate estimate")
		return
	}

	h.respondEstimate(c, http.StatusCreated, userID, est.ID, "estimate duplicated")
}

// SelectTemplate replaces every item with the template's items
// @Summary Apply template
// @Description The current items are discarded, not merged and the title becomes the template name. An empty or "blank" template id clears the items and keeps the title.
// @Tags Estimates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Param request body dto.SelectTemplateRequest true "Template"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/template [put]
func (h *APIHandler) SelectTemplate(c *gin.Context) {
	var req dto.SelectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	h.editEstimate(c, func(est *ds.Estimate, _ []estimate.Item) ([]estimate.Item, error) {
		items, title, err := estimate.ReplaceItems(req.TemplateID)
		if err != nil {
			return nil, err
		}
		est.TemplateID = req.TemplateID
		if title != "" {
			est.Title = title
		}
		return items, nil
	})
}

// SelectCustomer copies a customer profile into the client block
// @Summary Attach customer
// @Tags Estimates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Param request body dto.SelectCustomerRequest true "Customer"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/customer [put]
func (h *APIHandler) SelectCustomer(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	customer, err := h.Repository.GetCustomer(userID, req.CustomerID)
	if err != nil {
		h.repositoryError(c, err, "customer not found")
		return
	}

	h.editEstimate(c, func(est *ds.Estimate, items []estimate.Item) ([]estimate.Item, error) {
		est.Client = ds.ClientInfo{
			Name:    customer.Name,
			Company: customer.Company,
			Email:   customer.Email,
			Phone:   customer.Phone,
		}
		est.DisplayClientName = customer.Name
		return items, nil
	})
}

// SelectCompany switches the issuing company
// @Summary Attach company
// @Tags Estimates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Param request body dto.SelectCompanyRequest true "Company"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/company [put]
func (h *APIHandler) SelectCompany(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.SelectCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	company, err := h.Repository.GetCompany(userID, req.CompanyID)
	if err != nil {
		h.repositoryError(c, err, "company not found")
		return
	}

	h.editEstimate(c, func(est *ds.Estimate, items []estimate.Item) ([]estimate.Item, error) {
		attachCompany(est, company)
		return items, nil
	})
}

// applyEstimateRequest copies the request onto est and recomputes totals.
func (h *APIHandler) applyEstimateRequest(userID uint, est *ds.Estimate, req dto.EstimateRequest) error {
	est.Title = req.Title
	est.TemplateID = req.TemplateID
	est.DisplayClientName = req.DisplayClientName
	est.Client = ds.ClientInfo(req.Client)
	est.Notes = req.Notes
	if req.TaxRate != nil {
		est.TaxRate = *req.TaxRate
	}
	if req.ValidUntil != nil {
		est.ValidUntil = *req.ValidUntil
	}

	if req.CompanyID != nil {
		if *req.CompanyID == "" {
			attachCompany(est, nil)
		} else {
			company, err := h.Repository.GetCompany(userID, *req.CompanyID)
			if err != nil {
				if repository.IsNotFound(err) {
					return errCompanyNotFound
				}
				return err
			}
			attachCompany(est, company)
		}
	}

	setItems(est, itemsFromRequest(req.Items))
	return nil
}

// editEstimate loads the estimate named by :id, lets edit change it and its
// items, recomputes totals, saves and responds with the stored result.
func (h *APIHandler) editEstimate(c *gin.Context, edit func(est *ds.Estimate, items []estimate.Item) ([]estimate.Item, error)) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	est, err := h.Repository.GetEstimate(userID, c.Param("id"))
	if err != nil {
		h.repositoryError(c, err, "estimate not found")
		return
	}

	items, err := edit(est, itemsFromModel(est.Items))
	if err != nil {
		h.requestError(c, err)
		return
	}
	setItems(est, items)

	if err := h.Repository.SaveEstimate(est); err != nil {
		h.repositoryError(c, err, "estimate not found")
		return
	}

	h.respondEstimate(c, http.StatusOK, userID, est.ID, "estimate updated")
}

func (h *APIHandler) requestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidQuantity):
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, estimate.ErrTemplateNotFound),
		errors.Is(err, estimate.ErrItemNotFound),
		errors.Is(err, errCompanyNotFound):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	default:
		logrus.Error(err)
		h.errorResponse(c, http.StatusInternalServerError, "internal error")
	}
}

// respondEstimate re-reads the estimate so the response reflects stored state.
func (h *APIHandler) respondEstimate(c *gin.Context, status int, userID uint, id, message string) {
	est, err := h.Repository.GetEstimate(userID, id)
	if err != nil {
		h.repositoryError(c, err, "estimate not found")
		return
	}
	h.successResponse(c, status, message, estimateToResponse(est))
}
