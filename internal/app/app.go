package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plantnet/server/internal/adapter/email"
	mongoadapter "github.com/plantnet/server/internal/adapter/mongo"
	redisadapter "github.com/plantnet/server/internal/adapter/redis"
	"github.com/plantnet/server/internal/adapter/storage/s3"
	"github.com/plantnet/server/internal/app/config"
	"github.com/plantnet/server/internal/auth"
	"github.com/plantnet/server/internal/platform/logger"
	httpport "github.com/plantnet/server/internal/port/http"
	"github.com/plantnet/server/internal/port/http/handler"
	"github.com/plantnet/server/internal/port/http/middleware"
	"github.com/plantnet/server/internal/service"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *httpport.Server
	mongoClient *mongo.Client
	redisClient *redis.Client
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	log.Infof("configuration loaded: env=%s port=%s", cfg.Env, cfg.HTTPServer.Port)

	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("mongodb: %w", err)
	}
	db := mongoClient.Database(cfg.MongoDB.Database)
	log.Info("mongodb client initialized")

	userRepo := mongoadapter.NewUserRepository(db, log)
	plantRepo := mongoadapter.NewPlantRepository(db, log)
	orderRepo := mongoadapter.NewOrderRepository(db, log)

	var redisClient *redis.Client
	var limiter middleware.RequestLimiter
	if cfg.Redis.Addr != "" {
		redisClient, err = redisadapter.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		limiter = redisadapter.NewLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		log.Info("redis rate limiter initialized")
	} else {
		log.Warn("redis address not set, rate limiting disabled")
	}

	var mailer email.Sender = email.NopSender{}
	if cfg.SMTP.Host != "" {
		mailer, err = email.NewSMTPSender(cfg.SMTP)
		if err != nil {
			return nil, fmt.Errorf("smtp: %w", err)
		}
		log.Info("smtp sender initialized")
	} else {
		log.Warn("smtp host not set, order confirmation emails disabled")
	}

	var uploader s3.Uploader
	if cfg.S3.Endpoint != "" {
		storage, err := s3.NewStorage(cfg.S3, log)
		if err != nil {
			return nil, fmt.Errorf("s3: %w", err)
		}
		uploader = storage
		log.Info("image storage initialized")
	} else {
		log.Warn("s3 endpoint not set, image uploads disabled")
	}

	codec, err := auth.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}

	userService := service.NewUserService(userRepo, log)
	catalogService := service.NewCatalogService(plantRepo, log)
	orderService := service.NewOrderService(orderRepo, plantRepo, mailer, log)

	router := httpport.NewRouter(httpport.RouterDeps{
		Codec:   codec,
		Users:   userRepo,
		Auth:    handler.NewAuthHandler(codec, cfg.JWT.TTL, cfg.IsProduction(), log),
		User:    handler.NewUserHandler(userService, log),
		Plant:   handler.NewPlantHandler(catalogService, uploader, log),
		Order:   handler.NewOrderHandler(orderService, log),
		Limiter: limiter,
		Origins: cfg.CORS.AllowedOrigins,
		Log:     log,
	})

	return &App{
		cfg:         cfg,
		log:         log,
		server:      httpport.NewServer(cfg.HTTPServer, router, log),
		mongoClient: mongoClient,
		redisClient: redisClient,
	}, nil
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts
// everything down in reverse order of construction.
func (a *App) Run() {
	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Infof("received signal %v, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.ShutdownTimeout+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("http server shutdown: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("redis close: %v", err)
		}
	}
	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.log.Errorf("mongodb disconnect: %v", err)
	}
	a.log.Info("shutdown complete")
}
