// Package app contains the application setup for the product API.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productapi/internal/config"
	"github.com/abgdnv/productapi/internal/product/service"
	"github.com/abgdnv/productapi/internal/product/store"
	"github.com/abgdnv/productapi/internal/product/transport/rest"
	"github.com/abgdnv/productapi/pkg/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ServiceName identifies the API in traces, metrics and environment variables.
const ServiceName = "product_api"

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
	MetricsHandler http.Handler
}

// SetupDependencies creates the product store, seeding it when configured, and the service on top of it.
// metricsHandler may be nil, in which case no metrics route is registered.
func SetupDependencies(cfg *config.Config, metricsHandler http.Handler, logger *slog.Logger) (*Dependencies, error) {
	var initial []store.Product
	if cfg.Catalog.Seed {
		initial = store.SampleProducts()
	}
	productStore := store.NewInMemoryStore(initial...)
	if err := registerCatalogGauge(productStore); err != nil {
		return nil, err
	}
	logger.Info("Product catalog ready", "products", productStore.Len(), "seeded", cfg.Catalog.Seed)

	return &Dependencies{
		ProductService: service.NewService(productStore),
		Logger:         logger,
		MetricsHandler: metricsHandler,
	}, nil
}

// registerCatalogGauge reports the current catalog size on every metrics collection.
func registerCatalogGauge(productStore store.ProductStore) error {
	_, err := otel.Meter("product-api").Int64ObservableGauge(
		"products_in_catalog",
		metric.WithDescription("Number of products currently stored"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(productStore.Len()))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to register catalog gauge: %w", err)
	}
	return nil
}

// SetupHttpHandler builds the router with every product route and wraps it for tracing.
// Used by scenario tests to run the API in an httptest.Server.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	if cfg.Metrics.Enabled && deps.MetricsHandler != nil {
		mux.Handle(cfg.Metrics.Path, deps.MetricsHandler)
	}
	rest.NewHandler(deps.ProductService, cfg.Auth, deps.Logger).RegisterRoutes(mux)
	return otelhttp.NewHandler(mux, ServiceName)
}

// SetupApplication wires dependencies and returns the ready HTTP handler.
func SetupApplication(cfg *config.Config, metricsHandler http.Handler, logger *slog.Logger) (http.Handler, error) {
	deps, err := SetupDependencies(cfg, metricsHandler, logger)
	if err != nil {
		return nil, err
	}
	return SetupHttpHandler(deps, cfg), nil
}

// SetupHttpServer creates and configures an HTTP server for the product API.
func SetupHttpServer(handler http.Handler, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, handler)
}
