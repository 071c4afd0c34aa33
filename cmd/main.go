package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Nihongo/config"
	"github.com/lshigami/Nihongo/database"
	_ "github.com/lshigami/Nihongo/docs" // Swagger docs
	adminctrl "github.com/lshigami/Nihongo/internal/controller/admin"
	userctrl "github.com/lshigami/Nihongo/internal/controller/user"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/identity"
	"github.com/lshigami/Nihongo/internal/logger"
	"github.com/lshigami/Nihongo/internal/middleware"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/repository"
	"github.com/lshigami/Nihongo/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Nihongo Quiz API
// @version 1.0
// @description Quiz taking, submission and grading for the Nihongo learning platform.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			middleware.NewAuth,
			quiz.NewSystemClock,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewCourseRepository,
			repository.NewQuizRepository,
			repository.NewSubmissionRepository,
			repository.NewAttemptSessionRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewScoreConverterService,
			service.NewGeminiLLMService,
			service.NewNotificationService,
			service.NewQuizService,
			service.NewAdminQuizService,
			service.NewSubmissionService,
			service.NewAttemptService,
			service.NewResultsService,
			service.NewGradingService,
			service.NewAutoSubmitScheduler,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewQuizController,
			adminctrl.NewAdminQuizController,
			adminctrl.NewGradingController,
		),

		fx.Invoke(AutoMigrateDB),
		// registered before the server so pending mail drains after it stops
		fx.Invoke(service.RegisterNotificationService),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(service.RegisterAutoSubmitScheduler),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func NewGinEngine(cfg *config.Config) (*gin.Engine, error) {
	logger.SetLevel(cfg.LogLevel)
	gin.SetMode(cfg.Server.GinMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, err
		}
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	auth *middleware.Auth,
	quizCtrl *userctrl.QuizController,
	adminQuizCtrl *adminctrl.AdminQuizController,
	gradingCtrl *adminctrl.GradingController,
) {
	adminOnly := []gin.HandlerFunc{auth.RequireUser(), auth.RequireRole(identity.RoleAdmin)}

	// Grading routes live under /api/quiz/grade but are admin only
	gradingCtrl.RegisterRoutes(router.Group("/api/quiz/grade", adminOnly...))
	quizCtrl.RegisterRoutes(router.Group("/api/quiz", auth.RequireUser()))
	adminQuizCtrl.RegisterRoutes(router.Group("/api/admin", adminOnly...))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Nihongo quiz API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
