// Package api assembles the pricepi HTTP gateway.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/donaldgifford/pricepi/api/openapi"
	"github.com/donaldgifford/pricepi/internal/api/handlers"
	"github.com/donaldgifford/pricepi/internal/api/middleware"
	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

// NewRouter builds the gateway with its middleware, probe endpoints, the
// Huma search operation and a Swagger UI. version is reported in the OpenAPI document.
func NewRouter(searcher pricepi.Searcher, log *slog.Logger, version string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(
		middleware.RequestLog(log),
		middleware.Tracing(otel.GetTracerProvider()),
		middleware.Recovery(log),
		middleware.Metrics(),
	)

	health := handlers.NewHealthHandler()
	e.GET("/healthz", health.Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaCfg := huma.DefaultConfig("Pricepi Gateway", version)
	humaAPI := humaecho.New(e, humaCfg)
	handlers.RegisterSearchRoutes(humaAPI, handlers.NewSearchHandler(searcher))
	openapi.RegisterRoutes(e, humaCfg.OpenAPIPath+".json")

	return e
}
