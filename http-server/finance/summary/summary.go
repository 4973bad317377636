package summary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"shop-analytics/http-server/response"
	"shop-analytics/internal/service/ledger"
	"shop-analytics/internal/service/period"
	"shop-analytics/internal/service/profit"
)

type Clock interface {
	Now() time.Time
}

type SummaryProvider interface {
	Summary(ctx context.Context, p period.Period) (profit.FinancialSummary, ledger.Ledger, error)
}

type ComparisonProvider interface {
	Compare(ctx context.Context, p period.Period) (profit.Comparison, error)
}

type ResponseSummary struct {
	Period  period.Period           `json:"period"`
	Label   string                  `json:"label"`
	Summary profit.FinancialSummary `json:"summary"`
	Accrual ledger.Totals           `json:"accrual"`
	Cash    ledger.Totals           `json:"cash"`
}

// GetSummary — P&L за период (?type=monthly|quarterly|annual&date=2026-10-01).
func GetSummary(log *slog.Logger, svc SummaryProvider, clock Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.finance.summary.GetSummary"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		p, err := period.FromQuery(r.URL.Query().Get("type"), r.URL.Query().Get("date"), clock.Now())
		if err != nil {
			response.Error(log, w, r, err, "invalid period")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sum, l, err := svc.Summary(ctx, p)
		if err != nil {
			response.Error(log, w, r, err, "failed to build financial summary")
			return
		}

		render.JSON(w, r, ResponseSummary{
			Period:  p,
			Label:   p.Label(),
			Summary: sum,
			Accrual: l.Accrual,
			Cash:    l.Cash,
		})
	}
}

// GetComparison — период против предыдущего того же типа.
func GetComparison(log *slog.Logger, svc ComparisonProvider, clock Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.finance.summary.GetComparison"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		p, err := period.FromQuery(r.URL.Query().Get("type"), r.URL.Query().Get("date"), clock.Now())
		if err != nil {
			response.Error(log, w, r, err, "invalid period")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cmp, err := svc.Compare(ctx, p)
		if err != nil {
			response.Error(log, w, r, err, "failed to compare periods")
			return
		}

		render.JSON(w, r, cmp)
	}
}
