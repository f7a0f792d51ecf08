package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/ticketing-service/config"
	"github.com/Eursukkul/ticketing-service/internal/cache"
	"github.com/Eursukkul/ticketing-service/internal/consumer"
	"github.com/Eursukkul/ticketing-service/internal/handler"
	"github.com/Eursukkul/ticketing-service/internal/metrics"
	"github.com/Eursukkul/ticketing-service/internal/middleware"
	"github.com/Eursukkul/ticketing-service/internal/repository"
	"github.com/Eursukkul/ticketing-service/internal/service"
	"github.com/Eursukkul/ticketing-service/internal/validator"
	"github.com/Eursukkul/ticketing-service/migrations"
	"github.com/Eursukkul/ticketing-service/pkg/database"
	"github.com/Eursukkul/ticketing-service/pkg/rabbitmq"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DSN(), database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := migrations.Apply(ctx, db); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	// RabbitMQ is optional: without it, notifications are skipped and no
	// events are consumed.
	var publisher service.Publisher
	var mqConsumer *rabbitmq.Consumer
	if cfg.RabbitURL != "" {
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqPublisher.Close()
		publisher = mqPublisher

		mqConsumer, err = rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()
	}

	rdb := database.NewRedisClient(cfg.RedisURL)
	if rdb != nil {
		defer rdb.Close()
	}

	// Repositories
	tx := repository.NewTransactor(db)
	ticketRepo := repository.NewTicketRepository()
	eventRepo := repository.NewEventRepository()

	// Services
	ticketSvc := cache.NewTicketCache(service.NewTicketService(tx, ticketRepo, publisher), rdb, cfg.CacheTTL)
	eventSvc := service.NewEventService(tx, eventRepo, publisher)

	if mqConsumer != nil {
		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewEventConsumer(eventSvc).Start(msgs)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = validator.New()
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRequestID: true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	if cfg.EnableMetrics {
		e.Use(metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "ticketing-service"})
	})

	handler.NewTicketHandler(ticketSvc).RegisterRoutes(e)
	handler.NewEventHandler(eventSvc).RegisterRoutes(e.Group("/events"))

	go func() {
		log.Printf("Ticketing Service starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
