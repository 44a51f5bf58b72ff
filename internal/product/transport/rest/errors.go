package rest

import (
	"errors"
	"net/http"

	producterrors "github.com/abgdnv/productapi/internal/product/errors"
	"github.com/abgdnv/productapi/pkg/web"
)

// handlerFunc is an HTTP handler that reports failures instead of writing them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to http.HandlerFunc. A returned error is logged and answered with {"error": message}.
func (h *Handler) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.respondError(w, r, err)
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		h.logger.WarnContext(r.Context(), "Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	web.RespondError(w, h.logger, status, message)
}

// classify maps an error to its HTTP status and client-facing message.
func classify(err error) (int, string) {
	var notFound *producterrors.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, notFound.Error()
	}
	var invalid *producterrors.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, invalid.Error()
	}
	return http.StatusInternalServerError, web.InternalErrorMessage
}
