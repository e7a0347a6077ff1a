package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/beeynow/ADUSTECH/external/abstractapi"
	"github.com/beeynow/ADUSTECH/external/cloudinary"
	"github.com/beeynow/ADUSTECH/external/resend"

	"github.com/beeynow/ADUSTECH/internal/db"
	"github.com/beeynow/ADUSTECH/internal/repository"
	"github.com/beeynow/ADUSTECH/internal/services"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// ======================
	// INFRA
	// ======================
	ctx := context.Background()
	database, err := db.Connect(ctx)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer database.Client().Disconnect(ctx)

	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Fatal("index bootstrap failed", zap.Error(err))
	}

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if os.Getenv("USE_EMAIL_REPUTATION") == "true" {
		emailValidator, err = abstractapi.NewAbstractReputationValidator()
		if err != nil {
			logger.Fatal("email reputation validator init failed", zap.Error(err))
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	mailer, err := resend.NewResendMailer("ADUSTECH<onboarding@resend.dev>")
	if err != nil {
		logger.Fatal("mailer init failed", zap.Error(err))
	}

	uploader, err := cloudinary.NewCloudinaryUploader()
	if err != nil {
		logger.Fatal("media uploader init failed", zap.Error(err))
	}

	powerEmail := os.Getenv("POWER_ADMIN_EMAIL")
	if powerEmail == "" {
		logger.Warn("POWER_ADMIN_EMAIL not set; no power account will be assigned at registration")
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(database)
	postRepo := repository.NewPostRepository(database)
	channelRepo := repository.NewChannelRepository(database)
	eventRepo := repository.NewEventRepository(database)
	timetableRepo := repository.NewTimetableRepository(database)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(userRepo, emailValidator, mailer, powerEmail, logger)
	adminSvc := services.NewAdminService(userRepo, mailer, powerEmail, logger)
	profileSvc := services.NewProfileService(userRepo, uploader)
	postSvc := services.NewPostService(postRepo, uploader)
	channelSvc := services.NewChannelService(channelRepo, userRepo)
	eventSvc := services.NewEventService(eventRepo, uploader)
	timetableSvc := services.NewTimetableService(timetableRepo, uploader)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
	}))

	api := e.Group("/api")
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc, adminSvc)
	registerProfileRoutes(api, profileSvc)
	registerPostRoutes(api, postSvc)
	registerChannelRoutes(api, channelSvc)
	registerEventRoutes(api, eventSvc)
	registerTimetableRoutes(api, timetableSvc)

	// ======================
	// SERVER
	// ======================
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
