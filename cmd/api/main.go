package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Keavors/MyFanBoard/internal/config"
	"github.com/Keavors/MyFanBoard/internal/handler"
	"github.com/Keavors/MyFanBoard/internal/middleware"
	pgRepo "github.com/Keavors/MyFanBoard/internal/repository/postgres"
	redisRepo "github.com/Keavors/MyFanBoard/internal/repository/redis"
	"github.com/Keavors/MyFanBoard/internal/service"
	"github.com/Keavors/MyFanBoard/pkg/auth"
	"github.com/Keavors/MyFanBoard/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	profileRepo := pgRepo.NewUserProfileRepo(db)
	boardRepo := pgRepo.NewBoardRepo(db)
	postRepo := pgRepo.NewPostRepo(db)
	responseRepo := pgRepo.NewResponseRepo(db)
	newsletterRepo := pgRepo.NewNewsletterRepo(db)
	txManager := pgRepo.NewTxManager(db)

	pendingRepo, err := redisRepo.NewPendingVerificationRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize PendingVerificationRepo: %v", err)
		os.Exit(1)
	}

	// Сервис отправки почты выбирается конфигурацией
	var emailSender service.EmailSender
	switch cfg.Email.Provider {
	case "resend":
		emailSender, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
	case "smtp":
		emailSender, err = service.NewSMTPEmailService(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.SMTPUser, cfg.Email.SMTPPassword, cfg.Email.From,
		)
	default:
		log.Println("[Main] Email provider is 'noop': письма будут только логироваться")
		emailSender = &service.NoopEmailService{}
	}
	if err != nil {
		log.Printf("Failed to initialize email service: %v", err)
		os.Exit(1)
	}

	// JWT-сервис — примитив установки сессии после подтверждения входа
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	registrationService, err := service.NewRegistrationService(txManager, userRepo, pendingRepo, emailSender, cfg.Otp.PendingTTL())
	if err != nil {
		log.Printf("Failed to initialize RegistrationService: %v", err)
		os.Exit(1)
	}

	loginService, err := service.NewLoginService(txManager, userRepo, pendingRepo, emailSender, jwtService, cfg.Otp.PendingTTL())
	if err != nil {
		log.Printf("Failed to initialize LoginService: %v", err)
		os.Exit(1)
	}

	boardService, err := service.NewBoardService(boardRepo, postRepo)
	if err != nil {
		log.Printf("Failed to initialize BoardService: %v", err)
		os.Exit(1)
	}

	responseService, err := service.NewResponseService(responseRepo, postRepo, userRepo, emailSender, cfg.Email.SiteURL)
	if err != nil {
		log.Printf("Failed to initialize ResponseService: %v", err)
		os.Exit(1)
	}

	newsletterService, err := service.NewNewsletterService(newsletterRepo, userRepo, emailSender)
	if err != nil {
		log.Printf("Failed to initialize NewsletterService: %v", err)
		os.Exit(1)
	}

	userService, err := service.NewUserService(userRepo, profileRepo)
	if err != nil {
		log.Printf("Failed to initialize UserService: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики и middleware
	isProduction := gin.Mode() == gin.ReleaseMode
	authHandler := handler.NewAuthHandler(
		registrationService,
		loginService,
		int(cfg.Otp.PendingTTL().Seconds()),
		isProduction,
	)
	boardHandler := handler.NewBoardHandler(boardService)
	responseHandler := handler.NewResponseHandler(responseService)
	newsletterHandler := handler.NewNewsletterHandler(newsletterService)
	userHandler := handler.NewUserHandler(userService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Email.SiteURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация по одноразовым кодам
		authGroup := api.Group("/auth")
		{
			otpRequestLimit := rateLimiter.Limit(middleware.OtpRequestRateLimitConfig())
			otpVerifyLimit := rateLimiter.Limit(middleware.OtpVerifyRateLimitConfig())

			authGroup.POST("/register", otpRequestLimit, authHandler.Register)
			authGroup.POST("/register/verify", otpVerifyLimit, authHandler.VerifyRegistration)
			authGroup.POST("/login", otpRequestLimit, authHandler.RequestLoginCode)
			authGroup.POST("/login/verify", otpVerifyLimit, authHandler.VerifyLogin)
		}

		// Текущий пользователь
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", userHandler.Me)
			users.PUT("/me/newsletter", userHandler.SetNewsletterSubscription)
		}

		// Доски и посты
		boards := api.Group("/boards")
		{
			boards.GET("", boardHandler.ListBoards)
			boards.GET("/:id/posts", boardHandler.ListPosts)

			adminBoards := boards.Group("")
			adminBoards.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			{
				adminBoards.POST("", boardHandler.CreateBoard)
			}

			authedBoards := boards.Group("")
			authedBoards.Use(authMiddleware.RequireAuth())
			{
				authedBoards.POST("/:id/posts", boardHandler.CreatePost)
			}
		}

		posts := api.Group("/posts")
		{
			posts.GET("/:id", boardHandler.GetPost)
			posts.GET("/:id/responses", responseHandler.ListResponses)

			authedPosts := posts.Group("")
			authedPosts.Use(authMiddleware.RequireAuth())
			{
				authedPosts.PUT("/:id", boardHandler.UpdatePost)
				authedPosts.DELETE("/:id", boardHandler.DeletePost)
				authedPosts.POST("/:id/responses", responseHandler.AddResponse)
			}
		}

		responses := api.Group("/responses")
		responses.Use(authMiddleware.RequireAuth())
		{
			responses.POST("/:id/accept", responseHandler.AcceptResponse)
			responses.DELETE("/:id", responseHandler.DeleteResponse)
		}

		// Администрирование рассылок
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			admin.GET("/newsletters", newsletterHandler.ListNewsletters)
			admin.POST("/newsletters", newsletterHandler.CreateNewsletter)
			admin.POST("/newsletters/:id/send", newsletterHandler.SendNewsletter)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
