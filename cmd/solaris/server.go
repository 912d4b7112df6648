package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/solaris/internal/api"
	"github.com/terraincognita07/solaris/internal/config"
	"github.com/terraincognita07/solaris/internal/metrics"
)

const requestLogFormat = "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n"

func newApp(cfg config.Config, handler *api.Handler, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Solaris",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: requestLogFormat,
	}))
	app.Use(cors.New(corsMiddlewareConfig(cfg.CORSAllowedOrigins)))
	app.Use(compress.New())

	if cfg.MetricsEnabled && gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(gatherer)))
	}
	api.RegisterRoutes(app, handler)
	return app
}

func corsMiddlewareConfig(allowedOrigins string) cors.Config {
	return cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}
}
