package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/auth"
	"github.com/BruksfildServices01/visit-tracker/internal/handlers"
	infraRepo "github.com/BruksfildServices01/visit-tracker/internal/infra/repository"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/middleware"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
	ucClient "github.com/BruksfildServices01/visit-tracker/internal/usecase/client"
)

// Deps are the singletons the routes are built from.
type Deps struct {
	DB               *gorm.DB
	Broker           realtime.Broker
	Audit            *audit.Dispatcher
	Tokens           *auth.TokenIssuer
	Logger           logging.Logger
	CheckEmailDomain bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA / USE CASES
	// ======================================================
	clientRepo := infraRepo.NewClientGormRepository(d.DB)
	gateway := ucClient.NewGateway(clientRepo, d.Broker, d.Audit, d.Logger)
	authService := auth.NewService(d.DB, d.Tokens, d.Audit, d.CheckEmailDomain)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authService)
	meHandler := handlers.NewMeHandler(authService)
	clientHandler := handlers.NewClientHandler(gateway, d.Logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.SignUp)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			days := secured.Group("/me/days/:day/clients")
			{
				days.GET("", clientHandler.List)
				days.GET("/stream", clientHandler.Stream)
				days.POST("", clientHandler.Add)
				days.PUT("/:id", clientHandler.Replace)
				days.PATCH("/:id/visited", clientHandler.SetVisited)
				days.DELETE("/:id", clientHandler.Delete)
			}

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
