package generate_excel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"shop-analytics/internal/service/period"
	"shop-analytics/internal/storage"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateTrendExcel(ctx context.Context, periodsBack int, t period.Type) ([]byte, error) {
	args := m.Called(ctx, periodsBack, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestGenerateReportExcel_Success(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateTrendExcel", mock.Anything, 4, period.Annual).Return([]byte("PK-xlsx"), nil)

	handler := GenerateReportExcel(slog.Default(), gen, 6)

	req := httptest.NewRequest(http.MethodGet, "/api/report/excel?type=annual&periods=4", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "Profitability_annual_")
	assert.Equal(t, "PK-xlsx", rr.Body.String())

	gen.AssertExpectations(t)
}

func TestGenerateReportExcel_InvalidType(t *testing.T) {
	gen := new(MockGenerator)
	handler := GenerateReportExcel(slog.Default(), gen, 6)

	req := httptest.NewRequest(http.MethodGet, "/api/report/excel?type=daily", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	gen.AssertNotCalled(t, "GenerateTrendExcel", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateReportExcel_Failure(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateTrendExcel", mock.Anything, 6, period.Monthly).Return(nil, errors.New("excelize: broken style"))

	handler := GenerateReportExcel(slog.Default(), gen, 6)

	req := httptest.NewRequest(http.MethodGet, "/api/report/excel", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGenerateReportExcel_ReadError(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateTrendExcel", mock.Anything, 6, period.Monthly).
		Return(nil, storage.NewReadError(storage.SourceOrdersPlaced, errors.New("gone away")))

	handler := GenerateReportExcel(slog.Default(), gen, 6)

	req := httptest.NewRequest(http.MethodGet, "/api/report/excel", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
