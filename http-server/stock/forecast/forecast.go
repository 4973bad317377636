package forecast

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"shop-analytics/http-server/response"
	"shop-analytics/internal/service/stock"
)

type StockForecaster interface {
	ForecastStock(ctx context.Context) ([]stock.Forecast, error)
}

type ResponseForecast struct {
	Materials []stock.Forecast `json:"materials"`
	AtRisk    int              `json:"at_risk"`
}

func GetForecast(log *slog.Logger, forecaster StockForecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.stock.forecast.GetForecast"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		forecasts, err := forecaster.ForecastStock(ctx)
		if err != nil {
			response.Error(log, w, r, err, "failed to forecast stock")
			return
		}

		atRisk := 0
		for _, f := range forecasts {
			if f.AtRisk {
				atRisk++
			}
		}

		render.JSON(w, r, ResponseForecast{Materials: forecasts, AtRisk: atRisk})
	}
}
