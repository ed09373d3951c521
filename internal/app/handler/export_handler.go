package handler

import (
	"net/http"

	"estimator/internal/app/ds"
	"estimator/internal/app/export"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ExportEstimatePDF downloads the estimate as a PDF document
// @Summary Export estimate as PDF
// @Description File name is the title without spaces followed by the date, e.g. 브랜드필름_20260309.pdf
// @Tags Export
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/pdf [get]
func (h *APIHandler) ExportEstimatePDF(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	est, err := h.Repository.GetEstimate(userID, c.Param("id"))
	if err != nil {
		h.repositoryError(c, err, "estimate not found")
		return
	}

	data, err := h.Renderer.EstimatePDF(est, h.loadAssets(c, est))
	if err != nil {
		logrus.Error("Error rendering pdf: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to render pdf")
		return
	}

	setAttachment(c, export.PDFContentType, export.FileName(est.Title, "pdf", h.now()))
	c.Data(http.StatusOK, export.PDFContentType, data)
}

// ExportEstimateXLSX downloads the estimate as an Excel workbook
// @Summary Export estimate as Excel
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Estimate ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/xlsx [get]
func (h *APIHandler) ExportEstimateXLSX(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	est, err := h.Repository.GetEstimate(userID, c.Param("id"))
	if err != nil {
		h.repositoryError(c, err, "estimate not found")
		return
	}

	f, err := export.EstimateXLSX(est)
	if err != nil {
		logrus.Error("Error building workbook: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "failed to export estimate")
		return
	}
	defer f.Close()

	setAttachment(c, export.XLSXContentType, export.FileName(est.Title, "xlsx", h.now()))
	if err := f.Write(c.Writer); err != nil {
		logrus.Error("write excel: ", err)
	}
}

// loadAssets fetches the company images referenced by the snapshot. Missing
// or unsupported images are left out of the document.
func (h *APIHandler) loadAssets(c *gin.Context, est *ds.Estimate) export.Assets {
	company := est.Company.Data()
	fetch := func(url string) *export.Image {
		if url == "" || h.Storage == nil {
			return nil
		}
		imgType := export.ImageType(url)
		if imgType == "" {
			return nil
		}
		data, err := h.Storage.DownloadFile(c.Request.Context(), url)
		if err != nil {
			logrus.Warnf("Failed to load image %s: %v", url, err)
			return nil
		}
		return &export.Image{Data: data, Type: imgType}
	}

	return export.Assets{
		Logo:      fetch(company.Logo),
		Signature: fetch(company.Signature),
		Stamp:     fetch(company.Stamp),
	}
}
