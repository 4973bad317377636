package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"shop-analytics/internal/service/period"
	"shop-analytics/internal/storage"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Field  string `json:"field,omitempty"`
	Source string `json:"source,omitempty"`
}

// StatusFor сопоставляет ошибку сервиса с HTTP-кодом.
func StatusFor(err error) int {
	var cfgErr *period.ConfigurationError
	var readErr *storage.ReadError

	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &readErr):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error пишет ошибку в лог и отдаёт клиенту JSON без внутренних подробностей.
func Error(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := StatusFor(err)
	resp := Response{Status: http.StatusText(status), Error: msg}

	var cfgErr *period.ConfigurationError
	var readErr *storage.ReadError

	switch {
	case errors.As(err, &cfgErr):
		resp.Error = cfgErr.Err.Error()
		resp.Field = cfgErr.Field
		log.Warn(msg, slog.String("error", err.Error()))
	case errors.As(err, &readErr):
		resp.Source = readErr.Source
		log.Error(msg, slog.String("error", err.Error()))
	default:
		log.Error(msg, slog.String("error", err.Error()))
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}
