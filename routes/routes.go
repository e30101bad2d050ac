package routes

import (
	"database/sql"

	"bankfeed-api/config"
	"bankfeed-api/handlers"
	"bankfeed-api/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
}

// SetupUserRoutes sets up protected user profile and 2FA routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}

// SetupBankingRoutes sets up the protected bank link and feed routes.
func SetupBankingRoutes(rg *gin.RouterGroup, db *sql.DB, cfg *config.Config, wsHandler *handlers.WSHandler) {
	gcService := services.NewGoCardlessService(cfg.GoCardlessSecretID, cfg.GoCardlessSecretKey)

	pipeline := services.NewEnrichmentPipeline(cfg.Currency, func() (services.Classifier, error) {
		return services.LoadModel(cfg.CategoryModelPath)
	})

	gcHandler := handlers.NewGoCardlessHandler(db, gcService, cfg.FrontendURL, wsHandler)
	bankingHandler := handlers.NewBankingHandler(db)
	txHandler := handlers.NewTransactionsHandler(db, gcService, pipeline)

	rg.GET("/banking/institutions", gcHandler.GetInstitutions)
	rg.POST("/banking/connections", gcHandler.CreateBankConnection)
	rg.GET("/banking/callback", gcHandler.CompleteConnection)

	rg.GET("/banking/connections", bankingHandler.GetConnections)
	rg.DELETE("/banking/connections/:id", bankingHandler.DeleteConnection)

	rg.GET("/banking/accounts/:id/transactions", txHandler.GetTransactions)
}
