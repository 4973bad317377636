package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"shop-analytics/http-server/response"
	"shop-analytics/internal/service/ledger"
	"shop-analytics/internal/service/period"
	"shop-analytics/internal/service/profit"
	"shop-analytics/internal/storage"
)

type MockProfitService struct {
	mock.Mock
}

func (m *MockProfitService) Summary(ctx context.Context, p period.Period) (profit.FinancialSummary, ledger.Ledger, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(profit.FinancialSummary), args.Get(1).(ledger.Ledger), args.Error(2)
}

func (m *MockProfitService) Compare(ctx context.Context, p period.Period) (profit.Comparison, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(profit.Comparison), args.Error(1)
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var now = fixedClock(time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC))

func october() period.Period {
	p, _ := period.Resolve(period.Monthly, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC))
	return p
}

func TestGetSummary_Success(t *testing.T) {
	svc := new(MockProfitService)

	l := ledger.Ledger{
		Period: october(),
		Accrual: ledger.Totals{
			Revenue:      decimal.RequireFromString("1000.00"),
			MaterialCost: decimal.RequireFromString("300.00"),
		},
		Cash: ledger.Totals{
			Revenue:          decimal.RequireFromString("800.00"),
			PaymentsReceived: decimal.RequireFromString("800.00"),
		},
	}
	svc.On("Summary", mock.Anything, october()).Return(profit.Summarize(l), l, nil)

	handler := GetSummary(slog.Default(), svc, now)

	req := httptest.NewRequest(http.MethodGet, "/api/finance/summary?type=monthly&date=2026-10-05", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseSummary
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "October 2026", resp.Label)
	assert.True(t, decimal.RequireFromString("700").Equal(resp.Summary.NetProfit))
	assert.True(t, decimal.RequireFromString("800").Equal(resp.Cash.PaymentsReceived))

	svc.AssertExpectations(t)
}

func TestGetSummary_InvalidType(t *testing.T) {
	svc := new(MockProfitService)
	handler := GetSummary(slog.Default(), svc, now)

	req := httptest.NewRequest(http.MethodGet, "/api/finance/summary?type=weekly", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Summary", mock.Anything, mock.Anything)
}

func TestGetSummary_ReadError(t *testing.T) {
	svc := new(MockProfitService)

	readErr := fmt.Errorf("service.profit.Summary: %w",
		storage.NewReadError(storage.SourceOverhead, errors.New("connection reset")))
	svc.On("Summary", mock.Anything, october()).Return(profit.FinancialSummary{}, ledger.Ledger{}, readErr)

	handler := GetSummary(slog.Default(), svc, now)

	req := httptest.NewRequest(http.MethodGet, "/api/finance/summary", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var resp response.Response
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, storage.SourceOverhead, resp.Source)
}

func TestGetComparison_Success(t *testing.T) {
	svc := new(MockProfitService)

	cmp := profit.Comparison{
		Label:         "vs previous month",
		RevenueChange: decimal.RequireFromString("25.00"),
		MarginDelta:   decimal.RequireFromString("-3.50"),
	}
	svc.On("Compare", mock.Anything, october()).Return(cmp, nil)

	handler := GetComparison(slog.Default(), svc, now)

	req := httptest.NewRequest(http.MethodGet, "/api/finance/compare?type=monthly", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp profit.Comparison
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "vs previous month", resp.Label)
	assert.True(t, decimal.RequireFromString("25").Equal(resp.RevenueChange))
	assert.True(t, decimal.RequireFromString("-3.5").Equal(resp.MarginDelta))

	svc.AssertExpectations(t)
}
