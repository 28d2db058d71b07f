package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/config"
	httpcontrollers "storefront/internal/controllers/http"
	"storefront/internal/infra/mysql"
	"storefront/internal/infra/payment"
	"storefront/internal/infra/rabbitmq"
	mysqlrepo "storefront/internal/repository/mysql"
	"storefront/internal/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := mysql.New(cfg)
	if err != nil {
		logger.Fatal("db: connect", zap.Error(err))
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	orderRepo := mysqlrepo.NewOrderRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	userRepo := mysqlrepo.NewUserRepository(db)

	gateway := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentSecretKey, cfg.PaymentTimeout)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		logger.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	catalog := services.NewCatalogService(productRepo, logger)
	catalog.SetRedisClient(redisClient)

	orders := services.NewOrderService(orderRepo, gateway, publisher, cfg.Currency, logger)

	tokens := auth.NewTokenMaker(cfg.JWTSecret)
	handler := httpcontrollers.NewHandler(catalog, orders)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	handler.RegisterRoutes(r, httpcontrollers.Authenticate(tokens, userRepo))

	logger.Info("starting storefront", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server run", zap.Error(err))
	}
}
