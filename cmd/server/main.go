package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/bluimports/opsdesk/internal/config"
	"github.com/bluimports/opsdesk/internal/handler"
	"github.com/bluimports/opsdesk/internal/repository"
	"github.com/bluimports/opsdesk/internal/service"
	"github.com/bluimports/opsdesk/pkg/logger"
	"github.com/bluimports/opsdesk/pkg/response"
)

func main() {
	// .env is optional; viper picks up whatever godotenv exported
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	clientRepo := repository.NewClientRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)

	// Services
	orderService := service.NewOrderService(orderRepo, paymentRepo, clientRepo, redisClient, cfg)
	clientService := service.NewClientService(clientRepo)
	supplierService := service.NewSupplierService(supplierRepo)

	// Handlers
	orderHandler := handler.NewOrderHandler(orderService)
	clientHandler := handler.NewClientHandler(clientService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.HealthTimeout())

	router := setupRoutes(orderHandler, clientHandler, supplierHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.LoggingMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}

func setupRoutes(
	orderHandler *handler.OrderHandler,
	clientHandler *handler.ClientHandler,
	supplierHandler *handler.SupplierHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/orders", orderHandler.CreateOrder).Methods("POST")
	api.HandleFunc("/orders", orderHandler.ListOrders).Methods("GET")
	api.HandleFunc("/orders/{orderId}", orderHandler.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{orderId}", orderHandler.DeleteOrder).Methods("DELETE")
	api.HandleFunc("/orders/{orderId}/payments", orderHandler.RegisterPayment).Methods("POST")
	api.HandleFunc("/orders/{orderId}/payments", orderHandler.ListPayments).Methods("GET")
	api.HandleFunc("/orders/{orderId}/status", orderHandler.TransitionStatus).Methods("POST")
	api.HandleFunc("/orders/{orderId}/timeline", orderHandler.GetTimeline).Methods("GET")
	api.HandleFunc("/orders/{orderId}/contract", orderHandler.GetContract).Methods("GET")

	api.HandleFunc("/clients", clientHandler.Create).Methods("POST")
	api.HandleFunc("/clients", clientHandler.List).Methods("GET")
	api.HandleFunc("/clients/{clientId}", clientHandler.Get).Methods("GET")
	api.HandleFunc("/clients/{clientId}", clientHandler.Update).Methods("PUT")
	api.HandleFunc("/clients/{clientId}", clientHandler.Delete).Methods("DELETE")

	api.HandleFunc("/suppliers", supplierHandler.Create).Methods("POST")
	api.HandleFunc("/suppliers", supplierHandler.List).Methods("GET")
	api.HandleFunc("/suppliers/{supplierId}", supplierHandler.Get).Methods("GET")
	api.HandleFunc("/suppliers/{supplierId}", supplierHandler.Update).Methods("PUT")
	api.HandleFunc("/suppliers/{supplierId}", supplierHandler.Delete).Methods("DELETE")

	return router
}
