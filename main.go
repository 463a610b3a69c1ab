package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/staywell/reservation-service/config"
	"github.com/staywell/reservation-service/internal/availability"
	"github.com/staywell/reservation-service/internal/clock"
	"github.com/staywell/reservation-service/internal/handler"
	"github.com/staywell/reservation-service/internal/middleware"
	"github.com/staywell/reservation-service/internal/notifier"
	"github.com/staywell/reservation-service/internal/payment"
	"github.com/staywell/reservation-service/internal/repository"
	"github.com/staywell/reservation-service/internal/rooms"
	"github.com/staywell/reservation-service/internal/service"
	"github.com/staywell/reservation-service/pkg/database"
	"github.com/staywell/reservation-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Notifications are best-effort; a missing broker downgrades to no-op.
	var notify notifier.Notifier = notifier.Nop{}
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Printf("notifications disabled, RabbitMQ unavailable: %v", err)
		} else {
			defer pub.Close()
			notify = notifier.NewAMQPNotifier(pub)
		}
	}

	// Optional Redis room cache.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	catalog := rooms.WithCache(rooms.NewCatalog(db), rdb)
	gate := availability.NewGate(catalog)
	payments := payment.NewOrchestrator(payment.SandboxGateway{}, cfg.PaymentTimeout)
	store := repository.NewReservationRepository(db)

	saga := service.NewBookingSaga(store, catalog, gate, payments, notify, clock.System{})

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
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

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "reservation-service"})
	})

	handler.NewReservationHandler(saga).RegisterRoutes(e)

	log.Printf("Reservation Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
