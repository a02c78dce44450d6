package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/acruxa/storefront/internal/adapter/handler"
	"github.com/acruxa/storefront/internal/adapter/queue"
	"github.com/acruxa/storefront/internal/adapter/storage"
	"github.com/acruxa/storefront/internal/config"
	"github.com/acruxa/storefront/internal/core/checkout"
	"github.com/acruxa/storefront/internal/core/service"
)

func main() {
	cfg := config.LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: cfg.RedisPoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	log.Println("connected to redis")

	// Initialize RabbitMQ
	pool, err := queue.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
	if err != nil {
		log.Fatalf("failed to connect rabbitmq: %v", err)
	}
	publisher := queue.NewPublisher(pool, cfg.RabbitMQQueue)

	// Initialize adapters
	redisAdapter := storage.NewRedisAdapter(rdb)
	productAdapter := storage.NewMySQLProductAdapter(db)
	cartAdapter := storage.NewMySQLCartAdapter(db)
	orderAdapter := storage.NewMySQLOrderAdapter(db)
	profileAdapter := storage.NewMySQLProfileAdapter(db)

	// Initialize services
	catalogService := service.NewCatalogService(productAdapter)
	cartService := service.NewCartService(productAdapter, cartAdapter)
	orderService := service.NewOrderService(cartAdapter, orderAdapter, redisAdapter, publisher)
	addressService := service.NewAddressService(profileAdapter)
	paymentMethodService := service.NewPaymentMethodService(profileAdapter)
	adminService := service.NewAdminService(orderAdapter, productAdapter)
	checkoutSessions := checkout.NewManager()

	// Initialize HTTP server
	router := handler.Router(
		redisAdapter,
		handler.NewCatalogHandler(catalogService),
		handler.NewCartHandler(cartService),
		handler.NewCheckoutHandler(checkoutSessions, orderService, addressService, paymentMethodService),
		handler.NewOrderHandler(orderService),
		handler.NewProfileHandler(addressService, paymentMethodService),
		handler.NewAdminHandler(adminService),
	)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	pool.Close()

	rdb.Close()
	db.Close()
	log.Println("connections closed")
}
