package handler

import (
	"net/http"
	"net/url"
	"strings"

	"estimator/internal/app/ds"
	"estimator/internal/app/dto"
	"estimator/internal/app/export"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetCustomers lists customers, optionally filtered by name or company
// @Summary List customers
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param query query string false "Search by name or company"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers [get]
func (h *APIHandler) GetCustomers(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var customers []ds.Customer
	var err error

	searchQuery := strings.TrimSpace(c.Query("query"))
	if searchQuery == "" {
		customers, err = h.Repository.ListCustomers(userID)
	} else {
		customers, err = h.Repository.SearchCustomers(userID, searchQuery)
	}

	if err != nil {
		logrus.Error("Error getting customers: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to load customers")
		return
	}

	out := make([]dto.CustomerResponse, len(customers))
	for i, cu := range customers {
		out[i] = customerToResponse(cu)
	}
	h.successResponse(c, http.StatusOK, "", dto.CustomerListResponse{
		Customers: out,
		Total:     len(out),
	})
}

// GetCustomer returns one customer
// @Summary Get customer
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [get]
func (h *APIHandler) GetCustomer(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	customer, err := h.Repository.GetCustomer(userID, c.Param("id"))
	if err != nil {
		h.repositoryError(c, err, "customer not found")
		return
	}
	h.successResponse(c, http.StatusOK, "", customerToResponse(*customer))
}

// CreateCustomer adds a customer profile
// @Summary Create customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CustomerRequest true "Customer"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/customers [post]
func (h *APIHandler) CreateCustomer(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	customer := &ds.Customer{
		UserID:  userID,
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := h.Repository.CreateCustomer(customer); err != nil {
		logrus.Error("Error creating customer: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to create customer")
		return
	}

	h.respondCustomer(c, http.StatusCreated, userID, customer.ID, "customer created")
}

// UpdateCustomer replaces the customer fields
// @Summary Update customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param request body dto.CustomerRequest true "Customer"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [put]
func (h *APIHandler) UpdateCustomer(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	customer := &ds.Customer{
		ID:      c.Param("id"),
		UserID:  userID,
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := h.Repository.UpdateCustomer(customer); err != nil {
		h.repositoryError(c, err, "customer not found")
		return
	}

	h.respondCustomer(c, http.StatusOK, userID, customer.ID, "customer updated")
}

// DeleteCustomer removes a customer. Estimates keep their copied client block.
// @Summary Delete customer
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/customers/{id} [delete]
func (h *APIHandler) DeleteCustomer(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	if err := h.Repository.DeleteCustomer(userID, c.Param("id")); err != nil {
		h.repositoryError(c, err, "customer not found")
		return
	}
	h.successResponse(c, http.StatusOK, "customer deleted", nil)
}

// ExportCustomers downloads every customer as an Excel workbook
// @Summary Export customers
// @Tags Customers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/customers/export [get]
func (h *APIHandler) ExportCustomers(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	customers, err := h.Repository.ListCustomers(userID)
	if err != nil {
		logrus.Error("Error getting customers: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to load customers")
		return
	}

	f, err := export.CustomersXLSX(customers)
	if err != nil {
		logrus.Error("Error building workbook: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to export customers")
		return
	}
	defer f.Close()

	setAttachment(c, export.XLSXContentType, export.CustomerFileName)
	if err := f.Write(c.Writer); err != nil {
		logrus.Error("write excel: ", err)
	}
}

func (h *APIHandler) respondCustomer(c *gin.Context, status int, userID uint, id, message string) {
	customer, err := h.Repository.GetCustomer(userID, id)
	if err != nil {
		h.repositoryError(c, err, "customer not found")
		return
	}
	h.successResponse(c, status, message, customerToResponse(*customer))
}

// setAttachment sets download headers; non-ASCII names go in filename*.
func setAttachment(c *gin.Context, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Header("Content-Transfer-Encoding", "binary")
}
