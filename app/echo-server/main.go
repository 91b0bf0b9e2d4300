package main

import (
	"context"
	"fmt"
	"log"
	"myFashionHub/app/echo-server/router"
	"myFashionHub/business/bag"
	"myFashionHub/business/category"
	notificationService "myFashionHub/business/notification"
	"myFashionHub/business/orders"
	"myFashionHub/business/payments"
	"myFashionHub/business/product"
	"myFashionHub/business/recommendation"
	"myFashionHub/business/transactions"
	"myFashionHub/business/wishlist"
	"myFashionHub/internal/middleware"
	mailjetRepo "myFashionHub/internal/repository/notification"
	psqlRepo "myFashionHub/internal/repository/postgres"
	"myFashionHub/internal/repository/push"
	redisRepo "myFashionHub/internal/repository/redis"
	"myFashionHub/internal/rest"
	"myFashionHub/pkg/config"
	"myFashionHub/pkg/database"
	redisdb "myFashionHub/pkg/database/redis"
	"myFashionHub/pkg/logger"
	"myFashionHub/pkg/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyFashionHub", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Recommendation cache is optional: without Redis the engine just
	// rescores on every request.
	var recoCache recommendation.ResultCache
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, recommendation cache disabled", "error", err)
	} else {
		recoCache = redisRepo.NewRecommendationCache(redisClient)
		defer redisdb.CloseRedisClient(redisClient)
	}

	mailjetEmail := mailjetRepo.NewMailjetRepository(
		mailjetRepo.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	expoPush := push.NewExpoRepository(push.ExpoConfig{
		PushURL:     cfg.Expo.PushURL,
		AccessToken: cfg.Expo.AccessToken,
	})

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	bagRepo := psqlRepo.NewBagRepository(db)
	wishlistRepo := psqlRepo.NewWishlistRepository(db)
	historyRepo := psqlRepo.NewBrowsingHistoryRepository(db)
	deviceTokenRepo := psqlRepo.NewDeviceTokenRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	transactionRepo := psqlRepo.NewTransactionRepository(db)
	paymentMethodRepo := psqlRepo.NewPaymentMethodRepository(db)

	// Init service
	productService := product.NewProductService(productRepo)
	categoryService := category.NewCategoryService(categoryRepo, productRepo)
	recommendationService := recommendation.NewRecommendationService(productRepo, categoryRepo, wishlistRepo, historyRepo, recoCache)
	bagService := bag.NewBagService(bagRepo, productRepo)
	wishlistService := wishlist.NewWishlistService(wishlistRepo, productRepo)
	notifyService := notificationService.NewNotificationService(deviceTokenRepo, expoPush)
	ordersService := orders.NewOrdersService(ordersRepo, bagRepo, productRepo, notifyService, mailjetEmail)
	transactionsService := transactions.NewTransactionsService(transactionRepo)
	paymentsService := payments.NewPaymentsService(paymentMethodRepo)

	// Init handler
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	recommendationHandler := rest.NewRecommendationHandler(recommendationService)
	bagHandler := rest.NewBagHandler(bagService)
	wishlistHandler := rest.NewWishlistHandler(wishlistService)
	notificationHandler := rest.NewNotificationHandler(notifyService, bagRepo)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	transactionHandler := rest.NewTransactionHandler(transactionsService)
	paymentMethodHandler := rest.NewPaymentMethodHandler(paymentsService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler)
	router.SetupCategoryRoutes(api, categoryHandler)
	router.SetupRecommendationRoutes(api, recommendationHandler)
	router.SetupBagRoutes(api, bagHandler)
	router.SetupWishlistRoutes(api, wishlistHandler)
	router.SetupOrdersRoutes(api, ordersHandler)
	router.SetupNotificationRoutes(api, notificationHandler)
	router.SetupTransactionRoutes(api, transactionHandler)
	router.SetupPaymentMethodRoutes(api, paymentMethodHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
