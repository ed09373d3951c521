package handler

import (
	"estimator/internal/app/middleware"
	"estimator/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes wires every REST route. Templates, tax presets and the
// calculator are public; everything owned by a user needs a token.
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")
	signedIn := authMiddleware.WithAuthCheck(role.Viewer, role.Manager, role.Admin)
	editor := authMiddleware.WithAuthCheck(role.Manager, role.Admin)

	api.GET("/templates", h.GetTemplates)
	api.GET("/templates/:id", h.GetTemplate)
	api.GET("/tax-presets", h.GetTaxPresets)
	api.POST("/calculate", h.Calculate)

	companies := api.Group("/companies")
	companies.Use(signedIn)
	{
		companies.GET("", h.GetCompanies)
		companies.GET("/:id", h.GetCompany)
		companies.POST("", editor, h.CreateCompany)
		companies.PUT("/:id", editor, h.UpdateCompany)
		companies.DELETE("/:id", editor, h.DeleteCompany)
		companies.PUT("/:id/default", editor, h.SetDefaultCompany)
		companies.POST("/:id/assets/:kind", editor, h.UploadCompanyAsset)
	}

	customers := api.Group("/customers")
	customers.Use(signedIn)
	{
		customers.GET("", h.GetCustomers)
		customers.GET("/export", h.ExportCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("", editor, h.CreateCustomer)
		customers.PUT("/:id", editor, h.UpdateCustomer)
		customers.DELETE("/:id", editor, h.DeleteCustomer)
	}

	estimates := api.Group("/estimates")
	estimates.Use(signedIn)
	{
		estimates.GET("", h.GetEstimates)
		estimates.GET("/:id", h.GetEstimate)
		estimates.GET("/:id/pdf", h.ExportEstimatePDF)
		estimates.GET("/:id/xlsx", h.ExportEstimateXLSX)

		estimates.POST("/drafts", editor, h.CreateDraft)
		estimates.POST("", editor, h.CreateEstimate)
		estimates.PUT("/:id", editor, h.UpdateEstimate)
		estimates.DELETE("/:id", editor, h.DeleteEstimate)
		estimates.POST("/:id/duplicate", editor, h.DuplicateEstimate)
		estimates.PUT("/:id/template", editor, h.SelectTemplate)
		estimates.PUT("/:id/customer", editor, h.SelectCustomer)
		estimates.PUT("/:id/company", editor, h.SelectCompany)

		estimates.POST("/:id/items", editor, h.AddItem)
		estimates.PUT("/:id/items/:item_id", editor, h.UpdateItem)
		estimates.POST("/:id/items/:item_id/step", editor, h.StepItem)
		estimates.DELETE("/:id/items/:item_id", editor, h.RemoveItem)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", h.AuthHandler.LoginUser)

		auth.GET("/profile", signedIn, h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", signedIn, h.AuthHandler.UpdateProfile)
		auth.POST("/logout", signedIn, h.AuthHandler.LogoutUser)
	}

	router.GET("/ping", h.Ping)
}

// Ping reports that the API is up
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
