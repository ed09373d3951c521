package handler

import (
	"io"
	"net/http"

	"estimator/internal/app/ds"
	"estimator/internal/app/dto"
	"estimator/internal/app/repository"
	"estimator/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetCompanies lists the user's companies
// @Summary List companies
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CompanyListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/companies [get]
func (h *APIHandler) GetCompanies(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	companies, err := h.Repository.ListCompanies(userID)
	if err != nil {
		logrus.Error("Error listing companies: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to load companies")
		return
	}

	out := make([]dto.CompanyResponse, len(companies))
	for i, co := range companies {
		out[i] = companyToResponse(co)
	}
	h.successResponse(c, http.StatusOK, "", dto.CompanyListResponse{
		Companies: out,
		Total:     len(out),
	})
}

// GetCompany returns one company
// @Summary Get company
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/companies/{id} [get]
func (h *APIHandler) GetCompany(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	company, err := h.Repository.GetCompany(userID, c.Param("id"))
	if err != nil {
		h.repositoryError(c, err, "company not found")
		return
	}
	h.successResponse(c, http.StatusOK, "", companyToResponse(*company))
}

// CreateCompany adds a company profile
// @Summary Create company
// @Description A company created with is_default clears the flag on every other company
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CompanyRequest true "Company"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/companies [post]
func (h *APIHandler) CreateCompany(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	company := companyFromRequest(userID, req)
	if err := h.Repository.CreateCompany(company); err != nil {
		logrus.Error("Error creating company: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to create company")
		return
	}

	h.respondCompany(c, http.StatusCreated, userID, company.ID, "company created")
}

// UpdateCompany replaces the company fields
// @Summary Update company
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Param request body dto.CompanyRequest true "Company"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/companies/{id} [put]
func (h *APIHandler) UpdateCompany(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	company := companyFromRequest(userID, req)
	company.ID = c.Param("id")
	if err := h.Repository.UpdateCompany(company); err != nil {
		h.repositoryError(c, err, "company not found")
		return
	}

	h.respondCompany(c, http.StatusOK, userID, company.ID, "company updated")
}

// SetDefaultCompany makes the company the only default one
// @Summary Set default company
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/companies/{id}/default [put]
func (h *APIHandler) SetDefaultCompany(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.Repository.SetDefaultCompany(userID, id); err != nil {
		h.repositoryError(c, err, "company not found")
		return
	}

	h.respondCompany(c, http.StatusOK, userID, id, "default company set")
}

// DeleteCompany removes a company and its stored images
// @Summary Delete company
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/companies/{id} [delete]
func (h *APIHandler) DeleteCompany(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	company, err := h.Repository.GetCompany(userID, c.Param("id"))
	if err != nil {
		h.repositoryError(c, err, "company not found")
		return
	}

	if err := h.Repository.DeleteCompany(userID, company.ID); err != nil {
		h.repositoryError(c, err, "company not found")
		return
	}

	for _, url := range []*string{company.Logo, company.Signature, company.Stamp} {
		h.deleteAsset(c, url)
	}

	h.successResponse(c, http.StatusOK, "company deleted", nil)
}

// UploadCompanyAsset stores a logo, signature or stamp image
// @Summary Upload company image
// @Description Accepts jpg, png, gif or webp up to 1MB. Storage errors are returned verbatim.
// @Tags Companies
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Param kind path string true "logo, signature or stamp"
// @Param file formData file true "Image"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/companies/{id}/assets/{kind} [post]
func (h *APIHandler) UploadCompanyAsset(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	kind := c.Param("kind")
	switch kind {
	case repository.AssetLogo, repository.AssetSignature, repository.AssetStamp:
	default:
		h.errorResponse(c, http.StatusBadRequest, "unknown asset kind "+kind)
		return
	}

	company, err := h.Repository.GetCompany(userID, c.Param("id"))
	if err != nil {
		h.repositoryError(c, err, "company not found")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "file is missing")
		return
	}
	if file.Size > storage.MaxAssetSize {
		h.errorResponse(c, http.StatusBadRequest, "file exceeds 1MB")
		return
	}
	if _, isImage := storage.ContentType(file.Filename); !isImage {
		h.errorResponse(c, http.StatusBadRequest, "only image files are allowed")
		return
	}

	openedFile, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to read file")
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "failed to read file")
		return
	}

	url, err := h.Storage.UploadFile(c.Request.Context(), userID, kind, fileData, file.Filename)
	if err != nil {
		logrus.Error("Error uploading asset: ", err)
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.Repository.UpdateCompanyAsset(userID, company.ID, kind, url); err != nil {
		h.repositoryError(c, err, "company not found")
		return
	}

	h.deleteAsset(c, assetURL(company, kind))
	h.respondCompany(c, http.StatusOK, userID, company.ID, "image uploaded")
}

func assetURL(company *ds.Company, kind string) *string {
	switch kind {
	case repository.AssetLogo:
		return company.Logo
	case repository.AssetSignature:
		return company.Signature
	case repository.AssetStamp:
		return company.Stamp
	}
	return nil
}

// deleteAsset removes a replaced image; failures only leave an orphan object.
func (h *APIHandler) deleteAsset(c *gin.Context, url *string) {
	if url == nil || *url == "" {
		return
	}
	if err := h.Storage.DeleteFile(c.Request.Context(), *url); err != nil {
		logrus.Warnf("Failed to delete old image %s: %v", *url, err)
	}
}

// respondCompany re-reads the company so the response reflects stored state.
func (h *APIHandler) respondCompany(c *gin.Context, status int, userID uint, id, message string) {
	company, err := h.Repository.GetCompany(userID, id)
	if err != nil {
		h.repositoryError(c, err, "company not found")
		return
	}
	h.successResponse(c, status, message, companyToResponse(*company))
}
