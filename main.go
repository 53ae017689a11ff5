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

	"github.com/Eursukkul/event-service/config"
	"github.com/Eursukkul/event-service/internal/cache"
	"github.com/Eursukkul/event-service/internal/clock"
	"github.com/Eursukkul/event-service/internal/consumer"
	"github.com/Eursukkul/event-service/internal/handler"
	"github.com/Eursukkul/event-service/internal/middleware"
	"github.com/Eursukkul/event-service/internal/repository"
	"github.com/Eursukkul/event-service/internal/service"
	"github.com/Eursukkul/event-service/internal/submission"
	"github.com/Eursukkul/event-service/internal/upload"
	"github.com/Eursukkul/event-service/internal/validation"
	"github.com/Eursukkul/event-service/internal/webhook"
	"github.com/Eursukkul/event-service/pkg/database"
	"github.com/Eursukkul/event-service/pkg/rabbitmq"
	"github.com/Eursukkul/event-service/pkg/telemetry"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

const (
	serviceName     = "event-service"
	revalidateQueue = "event-service.revalidate"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Opened on first use; a database outage at boot does not stop the server.
	db := database.NewHandle(cfg.DSN())
	defer db.Close()

	// View cache: Redis when configured, otherwise nothing is cached.
	var views cache.ViewCache = cache.Noop{}
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer client.Close()
		views = cache.NewRedisViewCache(client, cfg.ViewCacheTTL)
	}

	// Change notices: through RabbitMQ when configured, otherwise applied in-process.
	revalidator := consumer.NewRevalidationConsumer(views)
	var notifier service.Notifier = revalidator
	if cfg.RabbitURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, revalidateQueue, "event.*", "order.*")
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		revalidator.Start(msgs)
		notifier = service.NewBrokerNotifier(publisher)
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	// Services
	clk := clock.NewSystem()
	eventSvc := service.NewEventService(eventRepo, categoryRepo, notifier)
	orderSvc := service.NewOrderService(orderRepo, notifier)
	categorySvc := service.NewCategoryService(categoryRepo)
	assets := upload.NewStore(assetRepo, cfg.PublicBaseURL, cfg.UploadMaxBytes)
	workflow := submission.NewWorkflow(clk, validation.EventSchema(), assets, eventSvc)
	processor := webhook.NewProcessor(cfg.StripeWebhookSecret, orderSvc, clk)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = validation.NewEchoValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.BodyLimit("20M"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": serviceName})
	})

	auth := middleware.Auth(cfg.AuthJWTSecret)
	api := e.Group("/api/v1")
	handler.NewEventHandler(eventSvc, workflow, views, clk).RegisterRoutes(api.Group("/events"), auth)
	handler.NewCategoryHandler(categorySvc).RegisterRoutes(api.Group("/categories"), auth)
	handler.NewOrderHandler(orderSvc, eventSvc).RegisterRoutes(api, auth)
	handler.NewAssetHandler(assets).RegisterRoutes(api, auth)
	handler.NewWebhookHandler(processor).RegisterRoutes(e.Group("/api/webhook"))

	go func() {
		log.Printf("Event Service starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Event Service shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
