package stock

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"shop-analytics/internal/constants"
	"shop-analytics/internal/storage"
)

type StockStorage interface {
	GetMaterials(ctx context.Context) ([]storage.Material, error)
	GetOpenBookings(ctx context.Context) ([]storage.MaterialBooking, error)
}

// Forecast — прогноз остатка материала после выполнения уже забронированного производства.
type Forecast struct {
	MaterialID    int64           `json:"material_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	OnHand        decimal.Decimal `json:"on_hand"`
	Booked        decimal.Decimal `json:"booked"`
	Forecasted    decimal.Decimal `json:"forecasted"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	Shortfall     decimal.Decimal `json:"shortfall"`
	AtRisk        bool            `json:"at_risk"`
}

type Forecaster struct {
	storage StockStorage
}

func NewForecaster(storage StockStorage) *Forecaster {
	return &Forecaster{storage: storage}
}

func (f *Forecaster) ForecastStock(ctx context.Context) ([]Forecast, error) {
	const op = "service.stock.ForecastStock"

	var (
		materials []storage.Material
		bookings  []storage.MaterialBooking
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		materials, err = f.storage.GetMaterials(gCtx)
		if err != nil {
			return storage.NewReadError(storage.SourceMaterials, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bookings, err = f.storage.GetOpenBookings(gCtx)
		if err != nil {
			return storage.NewReadError(storage.SourceBookings, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return Build(materials, bookings), nil
}

// Build сводит остатки с бронями. В ответ попадают только материалы под риском
// или с ненулевой бронью, сначала рисковые.
func Build(materials []storage.Material, bookings []storage.MaterialBooking) []Forecast {
	booked := make(map[int64]decimal.Decimal)
	for _, b := range bookings {
		// партия закрыта, материал уже списан с остатка
		if strings.EqualFold(strings.TrimSpace(b.BatchStatus), constants.BatchCompleted) {
			continue
		}
		booked[b.MaterialID] = booked[b.MaterialID].Add(b.QuantityUsed)
	}

	result := []Forecast{}
	for _, m := range materials {
		b := booked[m.ID]
		forecasted := m.OnHand.Sub(b)
		atRisk := forecasted.LessThanOrEqual(m.MinStockLevel)

		if !atRisk && b.IsZero() {
			continue
		}

		fc := Forecast{
			MaterialID:    m.ID,
			Name:          m.Name,
			Unit:          m.Unit,
			OnHand:        m.OnHand,
			Booked:        b,
			Forecasted:    forecasted,
			MinStockLevel: m.MinStockLevel,
			AtRisk:        atRisk,
		}
		if atRisk {
			fc.Shortfall = m.MinStockLevel.Sub(forecasted)
		}

		result = append(result, fc)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].AtRisk != result[j].AtRisk {
			return result[i].AtRisk
		}
		return result[i].Name < result[j].Name
	})

	return result
}
