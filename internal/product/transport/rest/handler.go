// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	producterrors "github.com/abgdnv/productapi/internal/product/errors"
	"github.com/abgdnv/productapi/internal/product/service"
	"github.com/abgdnv/productapi/pkg/config"
	"github.com/abgdnv/productapi/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const welcomeText = "Welcome to the Product API! Go to /api/products to see all products."

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	auth     config.AuthConfig
	logger   *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.ProductService, auth config.AuthConfig, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		auth:     auth,

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.NotFound(h.RouteNotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Welcome)
	r.Get("/healthz", h.HealthCheck)

	r.Route("/api/products", func(r chi.Router) {
		r.Use(web.APIKeyAuth(h.auth.Header, h.auth.APIKey, h.logger))

		r.Get("/", h.handle(h.FindAll))
		r.Post("/", h.handle(h.Create))
		r.Get("/stats", h.handle(h.Stats))
		r.Get("/search", h.handle(h.Search))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handle(h.FindByID))
			r.Put("/", h.handle(h.Update))
			r.Delete("/", h.handle(h.DeleteByID))
		})
	})
}

// FindAll returns one page of products, optionally filtered by category.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) error {
	page, err := web.QueryInt32Gte(r, "page", defaultPage, 1)
	if err != nil {
		return paramError(err)
	}
	limit, err := web.QueryInt32Gte(r, "limit", defaultLimit, 1)
	if err != nil {
		return paramError(err)
	}
	query := service.ListQuery{
		Category: r.URL.Query().Get("category"),
		Page:     page,
		Limit:    limit,
	}

	h.logger.DebugContext(r.Context(), "Received request to find products", "category", query.Category, "page", page, "limit", limit)
	list, err := h.service.FindAll(r.Context(), query)
	if err != nil {
		return err
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
	return nil
}

// Stats returns the number of products per category.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		return err
	}
	web.RespondJSON(w, h.logger, http.StatusOK, stats)
	return nil
}

// Search returns the products whose name contains the name query parameter.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) error {
	values := r.URL.Query()
	if !values.Has("name") {
		return producterrors.NewValidationError("name", "Missing required query parameter: name")
	}
	name := values.Get("name")

	h.logger.DebugContext(r.Context(), "Received request to search products", "name", name)
	found, err := h.service.Search(r.Context(), name)
	if err != nil {
		return err
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
	return nil
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		return err
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
	return nil
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	input, err := h.decodeInput(r)
	if err != nil {
		return err
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		return err
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", slog.String("ID", created.ID))
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
	return nil
}

// Update replaces an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	input, err := h.decodeInput(r)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		return err
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", slog.String("ID", updated.ID))
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
	return nil
}

// DeleteByID removes a product.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		return err
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", slog.String("ID", id))
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Welcome greets clients hitting the root path.
func (h *Handler) Welcome(w http.ResponseWriter, _ *http.Request) {
	web.RespondText(w, http.StatusOK, welcomeText)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RouteNotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.WarnContext(r.Context(), "Route not found", "method", r.Method, "path", r.URL.Path)
	web.RespondError(w, h.logger, http.StatusNotFound, "Route not found")
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.logger.WarnContext(r.Context(), "Method not allowed", "method", r.Method, "path", r.URL.Path)
	web.RespondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
}

// decodeInput reads a ProductInput from the body and checks it.
// Missing fields are reported before a mistyped price.
func (h *Handler) decodeInput(r *http.Request) (service.ProductInput, error) {
	var input service.ProductInput
	err := json.NewDecoder(r.Body).Decode(&input)

	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
		if err := h.validate.Struct(input); err != nil {
			return input, missingFields(err)
		}
	case errors.As(err, &typeErr) && typeErr.Field == "price":
		// The decoder keeps filling the other fields after a type mismatch.
		if err := h.validate.StructExcept(input, "Price"); err != nil {
			return input, missingFields(err)
		}
		return input, producterrors.NewValidationError("price", "Price must be a number")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return input, producterrors.NewValidationError(typeErr.Field, "Invalid value for field "+typeErr.Field)
	default:
		return input, producterrors.NewValidationError("", "Invalid request body")
	}
	return input, nil
}

func missingFields(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return producterrors.NewValidationError(validationErrors[0].Field(), "Missing required fields")
	}
	return producterrors.NewValidationError("", "Invalid request body")
}

func paramError(err error) error {
	var pErr *web.ParamError
	if errors.As(err, &pErr) {
		return producterrors.NewValidationError(pErr.Key, pErr.Error())
	}
	return err
}
