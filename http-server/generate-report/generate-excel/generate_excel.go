package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"shop-analytics/http-server/finance/trend"
	"shop-analytics/http-server/response"
	"shop-analytics/internal/service/period"
)

type GenerateExcelHandler interface {
	GenerateTrendExcel(ctx context.Context, periodsBack int, t period.Type) ([]byte, error)
}

// GenerateReportExcel отдаёт xlsx с рядом P&L. Параметры те же, что у /api/finance/trend.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler, defaultPeriods int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		t, n, err := trend.ParseQuery(r, defaultPeriods)
		if err != nil {
			response.Error(log, w, r, err, "invalid report parameters")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second) // На Excel можно побольше времени
		defer cancel()

		excelBytes, err := gen.GenerateTrendExcel(ctx, n, t)
		if err != nil {
			response.Error(log, w, r, err, "failed to generate excel")
			return
		}

		fileName := fmt.Sprintf("Profitability_%s_%s.xlsx", t, time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write excel", slog.String("error", err.Error()))
		}
	}
}
