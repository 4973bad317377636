package bottlenecks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"shop-analytics/http-server/response"
	"shop-analytics/internal/service/production"
)

type BottleneckDetector interface {
	DetectBottlenecks(ctx context.Context) ([]production.BottleneckFlag, error)
}

type StageAverager interface {
	AverageStageDurations(ctx context.Context) (map[string]float64, error)
}

type ResponseBottlenecks struct {
	Bottlenecks []production.BottleneckFlag `json:"bottlenecks"`
	Count       int                         `json:"count"`
}

// GetBottlenecks — этапы в работе, которые идут дольше порога.
func GetBottlenecks(log *slog.Logger, detector BottleneckDetector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.production.bottlenecks.GetBottlenecks"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		flags, err := detector.DetectBottlenecks(ctx)
		if err != nil {
			response.Error(log, w, r, err, "failed to detect bottlenecks")
			return
		}

		render.JSON(w, r, ResponseBottlenecks{Bottlenecks: flags, Count: len(flags)})
	}
}

// GetStageAverages — средняя длительность завершённых этапов, часы.
func GetStageAverages(log *slog.Logger, averager StageAverager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.production.bottlenecks.GetStageAverages"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		avg, err := averager.AverageStageDurations(ctx)
		if err != nil {
			response.Error(log, w, r, err, "failed to get stage averages")
			return
		}

		render.JSON(w, r, avg)
	}
}
