package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/odelour/perfume-shop/storefront-service/config"
	"github.com/odelour/perfume-shop/storefront-service/internal/controller"
	circuitbreaker "github.com/odelour/perfume-shop/storefront-service/internal/infrastructure/circuit-breaker"
	"github.com/odelour/perfume-shop/storefront-service/internal/infrastructure/tracing"
	"github.com/odelour/perfume-shop/storefront-service/internal/middleware"
	"github.com/odelour/perfume-shop/storefront-service/internal/repository"
	"github.com/odelour/perfume-shop/storefront-service/internal/service"
	"github.com/odelour/perfume-shop/storefront-service/pkg/response"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	DB            *mongo.Database
	Config        *config.Config
	KafkaReader   *kafkago.Reader
	KafkaProducer *kafkago.Conn
	Server        *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()
	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	} else {
		defer func() {
			if err := traceProvider.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown tracing")
			}
		}()

		tracer := traceProvider.Tracer("storefront-service")

		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				// span creation and naming
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				// add the context to the request
				req := c.Request()
				c.SetRequest(req.WithContext(ctx))

				return next(c)
			}
		})
	}

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	g := e.Group("/api/v1")
	g.Use(middleware.Logger)

	productRepo := repository.CreateNewMongoDBProductRepository(app.DB)
	reviewRepo := repository.CreateNewMongoDBReviewRepository(app.DB)
	searchBreaker := circuitbreaker.CreateCircuitBreaker("elasticsearch")
	elasticSearchRepo := repository.CreateNewElasticSearchRepository(app.Config, searchBreaker)

	if err := reviewRepo.EnsureIndexes(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Failed to ensure review indexes")
	}

	productSvc := service.CreateProductService(productRepo, elasticSearchRepo, *app.Config, app.KafkaReader)
	reviewSvc := service.CreateReviewService(reviewRepo, productRepo, *app.Config, app.KafkaProducer)
	controller.CreateStorefrontController(g, productSvc, reviewSvc)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	go productSvc.ConsumeEvent()

	app.Server = e
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
