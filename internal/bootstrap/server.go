package bootstrap

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	app "github.com/mohammadpnp/asset-import/internal/application/importjob"
	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
	httpecho "github.com/mohammadpnp/asset-import/internal/interfaces/http/echo"
	"golang.org/x/time/rate"
)

type ServerOptions struct {
	BodyLimit string
	RateLimit float64
	Logger    *slog.Logger
}

func NewHTTPServer(store domain.JobStore, processor *app.Processor, runner *app.Runner, opts ServerOptions) *echo.Echo {
	if opts.BodyLimit == "" {
		opts.BodyLimit = "10M"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(requestLogger(opts.Logger))
	server.Use(middleware.BodyLimit(opts.BodyLimit))
	if opts.RateLimit > 0 {
		server.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimit))))
	}

	submit := app.NewSubmitImport(processor, store, runner)
	getJob := app.NewGetImportJob(store)
	importHandler := httpecho.NewImportHandler(submit, getJob)

	httpecho.RegisterRoutes(server, importHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "http request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}
