package get

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"shop-analytics/http-server/response"
	"shop-analytics/internal/service/period"
)

type Clock interface {
	Now() time.Time
}

type ResponsePeriod struct {
	Period          period.Period `json:"period"`
	Label           string        `json:"label"`
	ComparisonLabel string        `json:"comparison_label"`
	IsCurrent       bool          `json:"is_current"`
	HasNext         bool          `json:"has_next"`
}

// GetPeriod отдаёт границы периода для навигации на фронте.
// dir=-1 / dir=1 листает от периода, заданного type и date.
// quarterlyNextOpen включает старое правило has_next для кварталов.
func GetPeriod(log *slog.Logger, clock Clock, quarterlyNextOpen bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.period.get.GetPeriod"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		now := clock.Now()
		q := r.URL.Query()

		p, err := period.FromQuery(q.Get("type"), q.Get("date"), now)
		if err != nil {
			response.Error(log, w, r, err, "invalid period")
			return
		}

		if dirStr := q.Get("dir"); dirStr != "" && dirStr != "0" {
			dir, err := strconv.Atoi(dirStr)
			if err != nil {
				dir = 0
			}
			p, err = period.Advance(p, dir)
			if err != nil {
				response.Error(log, w, r, err, "invalid direction")
				return
			}
		}

		render.JSON(w, r, ResponsePeriod{
			Period:          p,
			Label:           p.Label(),
			ComparisonLabel: p.ComparisonLabel(),
			IsCurrent:       p.IsCurrent(now),
			HasNext:         p.HasNextWith(now, quarterlyNextOpen),
		})
	}
}
