package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"shop-analytics/internal/storage"
)

type MockStockStorage struct {
	mock.Mock
}

func (m *MockStockStorage) GetMaterials(ctx context.Context) ([]storage.Material, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Material), args.Error(1)
}

func (m *MockStockStorage) GetOpenBookings(ctx context.Context) ([]storage.MaterialBooking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.MaterialBooking), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuild_AtRiskAfterBookings(t *testing.T) {
	materials := []storage.Material{
		{ID: 1, Name: "Oak board", Unit: "m", OnHand: dec("50"), MinStockLevel: dec("25")},
	}
	bookings := []storage.MaterialBooking{
		{BatchID: 10, BatchStatus: "in_progress", MaterialID: 1, QuantityUsed: dec("20")},
		{BatchID: 11, BatchStatus: "planned", MaterialID: 1, QuantityUsed: dec("10")},
		{BatchID: 12, BatchStatus: "Completed", MaterialID: 1, QuantityUsed: dec("100")},
	}

	res := Build(materials, bookings)
	require.Len(t, res, 1)

	f := res[0]
	assert.True(t, f.Booked.Equal(dec("30")))
	assert.True(t, f.Forecasted.Equal(dec("20")))
	assert.True(t, f.Shortfall.Equal(dec("5")))
	assert.True(t, f.AtRisk)
}

func TestBuild_FiltersHealthyUntouched(t *testing.T) {
	materials := []storage.Material{
		{ID: 1, Name: "Varnish", OnHand: dec("100"), MinStockLevel: dec("10")},
		{ID: 2, Name: "Screws", OnHand: dec("100"), MinStockLevel: dec("10")},
		{ID: 3, Name: "Glue", OnHand: dec("5"), MinStockLevel: dec("5")},
	}
	bookings := []storage.MaterialBooking{
		{BatchID: 1, BatchStatus: "in_progress", MaterialID: 2, QuantityUsed: dec("40")},
		{BatchID: 1, BatchStatus: "in_progress", MaterialID: 99, QuantityUsed: dec("40")},
	}

	res := Build(materials, bookings)
	require.Len(t, res, 2)

	// Glue на минимуме без брони под риском и идёт первым
	assert.Equal(t, "Glue", res[0].Name)
	assert.True(t, res[0].AtRisk)
	assert.True(t, res[0].Booked.IsZero())
	assert.True(t, res[0].Shortfall.IsZero())

	assert.Equal(t, "Screws", res[1].Name)
	assert.False(t, res[1].AtRisk)
	assert.True(t, res[1].Forecasted.Equal(dec("60")))
	assert.True(t, res[1].Shortfall.IsZero())
}

func TestForecastStock_NoOpenProduction(t *testing.T) {
	st := new(MockStockStorage)
	st.On("GetMaterials", mock.Anything).Return([]storage.Material{
		{ID: 1, Name: "Varnish", OnHand: dec("100"), MinStockLevel: dec("10")},
	}, nil)
	st.On("GetOpenBookings", mock.Anything).Return(nil, nil)

	res, err := NewForecaster(st).ForecastStock(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
	st.AssertExpectations(t)
}

func TestForecastStock_ReadError(t *testing.T) {
	st := new(MockStockStorage)
	st.On("GetMaterials", mock.Anything).Return([]storage.Material{}, nil).Maybe()
	st.On("GetOpenBookings", mock.Anything).Return(nil, assert.AnError)

	res, err := NewForecaster(st).ForecastStock(context.Background())
	assert.Nil(t, res)

	var readErr *storage.ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, storage.SourceBookings, readErr.Source)
}
