package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/digitalstore/storefront/internal/api/handlers"
	"github.com/digitalstore/storefront/internal/api/middleware"
	"github.com/digitalstore/storefront/internal/cache"
	"github.com/digitalstore/storefront/internal/config"
	"github.com/digitalstore/storefront/internal/health"
	"github.com/digitalstore/storefront/internal/metrics"
	repository "github.com/digitalstore/storefront/internal/repositories"
	redisrepo "github.com/digitalstore/storefront/internal/repositories/redis"
	service "github.com/digitalstore/storefront/internal/services"
	"github.com/digitalstore/storefront/internal/tracing"
	"github.com/digitalstore/storefront/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), "storefront", cfg.Tracing.Endpoint)
	if err != nil {
		slog.Error("Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	// Redis setup
	redisRepo, err := redisrepo.NewRedisRepo(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	productCache := cache.NewRedisCache(redisRepo.Client(), &cfg.Cache)

	jwtKey := []byte(cfg.Security.JWTKey)

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	userService := service.NewUserService(repos.User, redisRepo, jwtKey, cfg.Security.TokenExpiry)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product, productCache, cfg.Cache.ProductTTL)
	productHandler := handlers.NewProductHandler(productService)
	orderService := service.NewOrderService(repos.Order, emailService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewService := service.NewReviewService(repos.Review, repos.Product, repos.User)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.Handler(cfg, redisRepo.Client())
	if err != nil {
		slog.Error("Error registering health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/products/", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/products/featured/", productHandler.ListFeatured())
	routerMux.HandleFunc("GET /api/products/categories/", productHandler.ListCategories())
	routerMux.HandleFunc("GET /api/products/{id}/", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/orders/", orderHandler.CreateOrder())
	routerMux.HandleFunc("GET /api/orders/", orderHandler.ListOrders())
	routerMux.HandleFunc("GET /api/orders/{id}/", orderHandler.GetOrder())
	routerMux.HandleFunc("POST /api/reviews/", authMiddleware.Authenticate(reviewHandler.CreateReview()))
	routerMux.HandleFunc("PUT /api/reviews/{id}/", authMiddleware.Authenticate(reviewHandler.UpdateReview()))
	routerMux.HandleFunc("DELETE /api/reviews/{id}/", authMiddleware.Authenticate(reviewHandler.DeleteReview()))
	routerMux.HandleFunc("GET /api/reviews/product_reviews/", reviewHandler.ProductReviews())
	routerMux.HandleFunc("GET /api/reviews/my_reviews/", authMiddleware.Authenticate(reviewHandler.MyReviews()))
	routerMux.HandleFunc("POST /api/auth/register/", userHandler.Register())
	routerMux.HandleFunc("POST /api/auth/login/", userHandler.Login())
	routerMux.HandleFunc("GET /api/auth/user/", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
