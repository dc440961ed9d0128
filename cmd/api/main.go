package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"finboard/internal/config"
	"finboard/internal/database"
	"finboard/internal/gateway"
	"finboard/internal/handlers"
	"finboard/internal/logger"
	"finboard/internal/middleware"
	"finboard/internal/models"
	"finboard/internal/notify"
	"finboard/internal/services"
	"finboard/internal/session"
	"finboard/internal/validator"

	_ "finboard/internal/docs" // Import swagger docs
)

// @title           Finboard API
// @version         1.0
// @description     Finboard is a personal finance dashboard over the Finance REST backend: earnings, expenses, categories, investments and objectives, with summaries, comparisons and charts.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func main() {
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(appConfig.Env)
	defer logger.Sync()

	if err := run(appConfig); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(appConfig *config.Config) error {
	log := logger.Get()

	loc, err := time.LoadLocation(appConfig.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", appConfig.Timezone, err)
	}
	models.SetLocation(loc)

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	var notifiers notify.Fanout
	if appConfig.AMQPURL != "" {
		publisher, err := notify.NewPublisher(appConfig.AMQPURL, appConfig.AMQPExchange, log)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
		log.Infof("Publishing notifications to exchange %s", appConfig.AMQPExchange)
	}

	router := newRouter(appConfig, dbManager.DB(), notifiers...)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Finboard server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter wires every service and handler over db. Extra notifiers receive
// every notification alongside the in-memory inbox and the log.
func newRouter(appConfig *config.Config, db *gorm.DB, extra ...notify.Notifier) *gin.Engine {
	log := logger.Get()

	// Sessions, backend client and notifications
	sessions := session.NewStore(db, appConfig.SessionKey, appConfig.SessionTTL)
	resets := session.NewResetStore(appConfig.ResetTTL)
	inbox := notify.NewInbox(notify.DefaultInboxSize)
	notifier := append(notify.Fanout{inbox, notify.NewLogNotifier(log)}, extra...)

	client := gateway.NewClient(appConfig.BackendURL,
		gateway.WithTimeout(appConfig.BackendTimeout),
		gateway.WithRateLimit(appConfig.BackendRateLimit),
		gateway.WithLogger(log),
	)

	// Initialize services
	workspaceService := services.NewWorkspaceService(sessions, client, notifier)
	client.OnUnauthorized(workspaceService.Expire)

	authService := services.NewAuthService(client, sessions, resets, workspaceService, inbox)
	activityService := services.NewActivityService(db)
	dashboardService := services.NewDashboardService(workspaceService)
	maintenanceService := services.NewMaintenanceService(sessions, workspaceService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, activityService, appConfig.JWTSecret, appConfig.JWTExpirationDur)
	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(workspaceService), activityService)
	earningHandler := handlers.NewEarningHandler(services.NewEarningService(workspaceService), activityService)
	expenseHandler := handlers.NewExpenseHandler(services.NewExpenseService(workspaceService), activityService)
	investmentHandler := handlers.NewInvestmentHandler(services.NewInvestmentService(workspaceService), activityService)
	objectiveHandler := handlers.NewObjectiveHandler(services.NewObjectiveService(workspaceService), activityService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	stateHandler := handlers.NewStateHandler(workspaceService)
	notificationHandler := handlers.NewNotificationHandler(inbox)
	activityHandler := handlers.NewActivityHandler(activityService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/google", authHandler.LoginGoogle)
	auth.POST("/register", authHandler.Register)
	auth.POST("/recover", authHandler.Recover)
	auth.POST("/validate-otp", authHandler.ValidateOTP)
	auth.POST("/change-password", authHandler.ChangePassword)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(appConfig.JWTSecret, sessions))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	earnings := protected.Group("/earnings")
	earnings.GET("", earningHandler.ListEarnings)
	earnings.POST("", earningHandler.CreateEarning)
	earnings.GET("/:id", earningHandler.GetEarning)
	earnings.PUT("/:id", earningHandler.UpdateEarning)
	earnings.DELETE("/:id", earningHandler.DeleteEarning)

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	investments := protected.Group("/investments")
	investments.GET("", investmentHandler.ListInvestments)
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)
	investments.GET("/:id/return", dashboardHandler.GetInvestmentReturn)

	objectives := protected.Group("/objectives")
	objectives.GET("", objectiveHandler.ListObjectives)
	objectives.POST("", objectiveHandler.CreateObjective)
	objectives.GET("/:id", objectiveHandler.GetObjective)
	objectives.PUT("/:id", objectiveHandler.UpdateObjective)
	objectives.DELETE("/:id", objectiveHandler.DeleteObjective)
	objectives.GET("/:id/progress", dashboardHandler.GetObjectiveProgress)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/expenses/by-category", dashboardHandler.GetExpensesByCategory)
	dashboard.GET("/expenses/by-day", dashboardHandler.GetExpensesByDay)
	dashboard.GET("/charts/daily.png", dashboardHandler.GetDailyChart)
	dashboard.GET("/charts/categories.png", dashboardHandler.GetCategoryChart)
	dashboard.GET("/returns", dashboardHandler.GetInvestmentReturns)

	protected.POST("/sync", stateHandler.Sync)
	protected.GET("/state", stateHandler.GetState)
	protected.GET("/notifications", notificationHandler.ListNotifications)
	protected.GET("/activity", activityHandler.ListActivity)

	// Maintenance routes for external schedulers
	internal := v1.Group("/internal")
	internal.Use(middleware.MaintenanceAuthMiddleware(appConfig.MaintenanceAPIKey))
	internal.POST("/sessions/purge", maintenanceHandler.PurgeSessions)

	return router
}
