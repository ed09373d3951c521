package main

import (
	"estimator/internal/api"

	"github.com/sirupsen/logrus"
)

// @title Estimator API
// @version 1.0
// @description Estimate documents for video production: templates, line items, totals, companies, customers and exports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logrus.Info("App start")
	api.StartServer()
	logrus.Info("App terminated")
}
