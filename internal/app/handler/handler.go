package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"estimator/internal/app/dto"
	"estimator/internal/app/estimate"
	"estimator/internal/app/export"
	"estimator/internal/app/middleware"
	"estimator/internal/app/repository"
	"estimator/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// AssetStorage keeps company images. URLs returned by UploadFile are what
// DeleteFile and DownloadFile accept.
type AssetStorage interface {
	UploadFile(ctx context.Context, userID uint, kind string, fileData []byte, originalFilename string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	DownloadFile(ctx context.Context, fileURL string) ([]byte, error)
}

// APIHandler serves the REST API.
type APIHandler struct {
	Repository  *repository.Repository
	Storage     AssetStorage
	Renderer    *export.PDFRenderer
	AuthHandler *AuthHandler

	now func() time.Time
}

func NewAPIHandler(r *repository.Repository, storage AssetStorage, renderer *export.PDFRenderer, authHandler *AuthHandler) *APIHandler {
	return &APIHandler{
		Repository:  r,
		Storage:     storage,
		Renderer:    renderer,
		AuthHandler: authHandler,
		now:         time.Now,
	}
}

// RegisterValidators adds the custom binding rules used by the dto package.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(itemQuantityRule, dto.ItemRequest{})
		v.RegisterStructValidation(updateItemQuantityRule, dto.UpdateItemRequest{})
	}
}

func itemQuantityRule(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.ItemRequest)
	if !estimate.ValidQuantity(req.Unit, req.Quantity) {
		sl.ReportError(req.Quantity, "quantity", "Quantity", "unitstep", req.Unit)
	}
}

// updateItemQuantityRule can only check a quantity sent together with its
// unit; UpdateItem checks the rest against the stored item.
func updateItemQuantityRule(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.UpdateItemRequest)
	if req.Quantity == nil || req.Unit == nil {
		return
	}
	if !estimate.ValidQuantity(*req.Unit, *req.Quantity) {
		sl.ReportError(*req.Quantity, "quantity", "Quantity", "unitstep", *req.Unit)
	}
}

func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		logrus.Warn("userID not found in context")
		return 0, role.Viewer, errors.New("user not authenticated")
	}
	return id, middleware.CurrentRole(c), nil
}

// requireUser writes 401 and returns false when the request is anonymous.
func (h *APIHandler) requireUser(c *gin.Context) (uint, bool) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "authorization required")
		return 0, false
	}
	return userID, true
}

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// repositoryError maps not-found to 404 and logs everything else as a 500.
func (h *APIHandler) repositoryError(c *gin.Context, err error, notFoundMessage string) {
	if repository.IsNotFound(err) {
		h.errorResponse(c, http.StatusNotFound, notFoundMessage)
		return
	}
	logrus.Error(err)
	h.errorResponse(c, http.StatusInternalServerError, "internal error")
}
