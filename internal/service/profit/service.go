package profit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"shop-analytics/internal/service/ledger"
	"shop-analytics/internal/service/period"
	"shop-analytics/internal/storage"
)

type Aggregator interface {
	Aggregate(ctx context.Context, p period.Period) (ledger.Ledger, error)
}

type Clock interface {
	Now() time.Time
}

type Options struct {
	MaxTrendPeriods  int
	TrendConcurrency int
}

type Service struct {
	log        *slog.Logger
	aggregator Aggregator
	clock      Clock
	opts       Options
}

func NewService(log *slog.Logger, aggregator Aggregator, clock Clock, opts Options) *Service {
	if opts.MaxTrendPeriods <= 0 {
		opts.MaxTrendPeriods = 36
	}
	if opts.TrendConcurrency <= 0 {
		opts.TrendConcurrency = 4
	}
	return &Service{log: log, aggregator: aggregator, clock: clock, opts: opts}
}

// Summary — P&L одного периода. Ошибка чтения любого источника возвращается как есть.
func (s *Service) Summary(ctx context.Context, p period.Period) (FinancialSummary, ledger.Ledger, error) {
	const op = "service.profit.Summary"

	l, err := s.aggregator.Aggregate(ctx, p)
	if err != nil {
		return FinancialSummary{}, ledger.Ledger{}, fmt.Errorf("%s: %w", op, err)
	}

	return Summarize(l), l, nil
}

type Comparison struct {
	Current         FinancialSummary `json:"current"`
	Previous        FinancialSummary `json:"previous"`
	Label           string           `json:"label"`
	RevenueChange   decimal.Decimal  `json:"revenue_change"`
	NetProfitChange decimal.Decimal  `json:"net_profit_change"`
	MarginDelta     decimal.Decimal  `json:"margin_delta"`
}

// Compare считает текущий и предыдущий периоды параллельно; оба обязательны.
func (s *Service) Compare(ctx context.Context, p period.Period) (Comparison, error) {
	const op = "service.profit.Compare"

	prev, err := period.Advance(p, -1)
	if err != nil {
		return Comparison{}, fmt.Errorf("%s: %w", op, err)
	}

	var cur, old ledger.Ledger

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = s.aggregator.Aggregate(gCtx, p)
		return err
	})
	g.Go(func() error {
		var err error
		old, err = s.aggregator.Aggregate(gCtx, prev)
		return err
	})

	if err := g.Wait(); err != nil {
		return Comparison{}, fmt.Errorf("%s: %w", op, err)
	}

	current, previous := Summarize(cur), Summarize(old)

	return Comparison{
		Current:         current,
		Previous:        previous,
		Label:           p.ComparisonLabel(),
		RevenueChange:   change(current.Revenue, previous.Revenue),
		NetProfitChange: change(current.NetProfit, previous.NetProfit),
		MarginDelta:     current.ProfitMargin.Sub(previous.ProfitMargin),
	}, nil
}

type TrendEntry struct {
	Label    string           `json:"label"`
	Summary  FinancialSummary `json:"summary"`
	Degraded bool             `json:"degraded"`
	Warning  string           `json:"warning,omitempty"`
}

// Trend строит ряд из periodsBack периодов, заканчивая текущим. Каждый период считается
// отдельно: сбой чтения одного периода даёт нулевую запись с предупреждением, остальные целы.
func (s *Service) Trend(ctx context.Context, periodsBack int, t period.Type) ([]TrendEntry, error) {
	const op = "service.profit.Trend"

	if periodsBack > s.opts.MaxTrendPeriods {
		return nil, &period.ConfigurationError{
			Field: "periods",
			Value: fmt.Sprint(periodsBack),
			Err:   period.ErrInvalidCount,
		}
	}

	periods, err := period.Last(periodsBack, t, s.clock.Now())
	if err != nil {
		return nil, err
	}

	entries := make([]TrendEntry, len(periods))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.TrendConcurrency)

	for i, p := range periods {
		g.Go(func() error {
			l, err := s.aggregator.Aggregate(gCtx, p)
			if err != nil {
				// отмена запроса прерывает весь ряд
				if gCtx.Err() != nil {
					return err
				}

				var readErr *storage.ReadError
				if !errors.As(err, &readErr) {
					return err
				}

				s.log.Warn("trend period degraded",
					slog.String("op", op),
					slog.String("period", p.Label()),
					slog.String("source", readErr.Source),
					slog.String("error", err.Error()),
				)

				entries[i] = TrendEntry{
					Label:    p.Label(),
					Summary:  Summarize(ledger.Ledger{Period: p}),
					Degraded: true,
					Warning:  fmt.Sprintf("data unavailable: %s", readErr.Source),
				}
				return nil
			}

			entries[i] = TrendEntry{Label: p.Label(), Summary: Summarize(l)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}
