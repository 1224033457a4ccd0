package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"samansetu/internal/config"
	"samansetu/internal/database"
	"samansetu/internal/mail"
	custommiddleware "samansetu/internal/middleware"
	"samansetu/internal/repository"
	"samansetu/internal/service"
	"samansetu/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	dbService   *database.Service
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService *database.Service) *Server {
	router := chi.NewRouter()

	// Basic middleware stack
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	// Liveness message
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"SamanSetu API is running"}`))
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(dbService.Health())
	})

	db := dbService.DB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	storehouseRepo := repository.NewStorehouseRepository(db)
	productRepo := repository.NewProductRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	// Initialize services
	notifier := mail.NewNotifier(cfg.Mail, logger)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)
	storehouseService := service.NewStorehouseService(storehouseRepo)
	productService := service.NewProductService(productRepo)
	inquiryService := service.NewInquiryService(inquiryRepo, notifier, logger)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	storehouseHandler := transport.NewStorehouseHandler(storehouseService, logger)
	productHandler := transport.NewProductHandler(productService, storehouseService, logger)
	inquiryHandler := transport.NewInquiryHandler(inquiryService, productService, logger)

	authMiddleware := custommiddleware.AuthMiddleware(authService, logger)

	// Rate limit the unauthenticated auth routes
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		KeyPrefix:         "auth_rate_limit",
	}, logger)

	// Register routes
	authHandler.RegisterRoutes(router, rateLimit)
	storehouseHandler.RegisterRoutes(router, authMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware)
	inquiryHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		dbService:   dbService,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.dbService != nil {
		if err := s.dbService.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
