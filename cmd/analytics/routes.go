package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"
	"shop-analytics/http-server/finance/summary"
	"shop-analytics/http-server/finance/trend"
	generate_excel "shop-analytics/http-server/generate-report/generate-excel"
	getperiod "shop-analytics/http-server/period/get"
	"shop-analytics/http-server/production/bottlenecks"
	"shop-analytics/http-server/stock/forecast"
	"shop-analytics/internal/config"
	"shop-analytics/internal/middleware/auth"
	"shop-analytics/internal/middleware/ratelimit"
	excelservice "shop-analytics/internal/service/generate-excel"
	"shop-analytics/internal/service/production"
	"shop-analytics/internal/service/profit"
	"shop-analytics/internal/service/stock"
)

type Services struct {
	Profit     *profit.Service
	Detector   *production.Detector
	Forecaster *stock.Forecaster
	Excel      *excelservice.GenerateExcelService
	Clock      production.Clock
}

type Pinger interface {
	Ping(ctx context.Context) error
}

func routes(cfg config.Config, log *slog.Logger, db Pinger, s Services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/api/health", health(log, db))

	router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.QueryTimeout))

		r.Get("/api/period", getperiod.GetPeriod(log, s.Clock, cfg.QuarterlyNextOpen))

		// финансы
		r.Get("/api/finance/summary", summary.GetSummary(log, s.Profit, s.Clock))
		r.Get("/api/finance/compare", summary.GetComparison(log, s.Profit, s.Clock))

		// производство и склад
		r.Get("/api/production/bottlenecks", bottlenecks.GetBottlenecks(log, s.Detector))
		r.Get("/api/production/stage-averages", bottlenecks.GetStageAverages(log, s.Detector))
		r.Get("/api/stock/forecast", forecast.GetForecast(log, s.Forecaster))
	})

	// ряд считается по периодам, у хендлера свой, более длинный таймаут
	router.Get("/api/finance/trend", trend.GetTrend(log, s.Profit, cfg.TrendPeriods))

	// выгрузка тяжёлая: только под паролем и с ограничением частоты
	router.With(
		ratelimit.RateLimit(cfg.ReportRate.RPS, cfg.ReportRate.Burst),
		auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass),
	).Get("/api/report/excel", generate_excel.GenerateReportExcel(log, s.Excel, cfg.TrendPeriods))

	return router
}

func health(log *slog.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.health"

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.Error("db ping failed",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("error", err.Error()),
			)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]string{"status": "unavailable"})
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}
