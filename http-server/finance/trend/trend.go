package trend

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"shop-analytics/http-server/response"
	"shop-analytics/internal/service/period"
	"shop-analytics/internal/service/profit"
)

type TrendProvider interface {
	Trend(ctx context.Context, periodsBack int, t period.Type) ([]profit.TrendEntry, error)
}

type ResponseTrend struct {
	Type     period.Type         `json:"type"`
	Entries  []profit.TrendEntry `json:"entries"`
	Degraded int                 `json:"degraded"`
}

// ParseQuery разбирает ?type=&periods=. Без periods берётся defaultPeriods.
func ParseQuery(r *http.Request, defaultPeriods int) (period.Type, int, error) {
	t := period.Monthly
	if s := r.URL.Query().Get("type"); s != "" {
		var err error
		if t, err = period.ParseType(s); err != nil {
			return "", 0, err
		}
	}

	n := defaultPeriods
	if s := r.URL.Query().Get("periods"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return "", 0, &period.ConfigurationError{Field: "periods", Value: s, Err: period.ErrInvalidCount}
		}
		n = v
	}

	return t, n, nil
}

func GetTrend(log *slog.Logger, svc TrendProvider, defaultPeriods int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.finance.trend.GetTrend"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		t, n, err := ParseQuery(r, defaultPeriods)
		if err != nil {
			response.Error(log, w, r, err, "invalid trend parameters")
			return
		}

		// ряд считается по периодам, даём больше времени
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		entries, err := svc.Trend(ctx, n, t)
		if err != nil {
			response.Error(log, w, r, err, "failed to build trend")
			return
		}

		degraded := 0
		for _, e := range entries {
			if e.Degraded {
				degraded++
			}
		}
		if degraded > 0 {
			log.Warn("trend has degraded periods", slog.Int("degraded", degraded), slog.Int("periods", len(entries)))
		}

		render.JSON(w, r, ResponseTrend{Type: t, Entries: entries, Degraded: degraded})
	}
}
