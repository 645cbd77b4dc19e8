package predictor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventopredict/backend-go/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)
}

func constScorer(demand float64) Scorer {
	return ScorerFunc(func([]float64) (float64, error) {
		return demand, nil
	})
}

func TestPredictRow_DerivesDaysLeft(t *testing.T) {
	row := domain.ProductFeatureRow{
		ProductID:     1,
		ProductName:   "Widget",
		AvgDailySales: 30,
		NetStock:      90,
	}

	// 300 over a 30-day horizon is 10 a day, so 90 in stock lasts 9 days.
	p := New(constScorer(300), fixedNow)
	result, err := p.PredictRow(row)
	require.NoError(t, err)

	assert.Equal(t, 9, result.DaysLeft)
	assert.Equal(t, domain.StatusFine, result.StockStatus)

	wantDate := time.Date(2024, 6, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantDate, result.StockoutDate)
}

func TestPredictRow_FloorsDailyDemand(t *testing.T) {
	row := domain.ProductFeatureRow{ProductID: 2, NetStock: 5}

	// Zero predicted demand still consumes 0.1 a day.
	p := New(constScorer(0), fixedNow)
	result, err := p.PredictRow(row)
	require.NoError(t, err)

	assert.Equal(t, 50, result.DaysLeft)
}

func TestPredictRow_NegativeDemandFloored(t *testing.T) {
	row := domain.ProductFeatureRow{ProductID: 2, NetStock: 1}

	p := New(constScorer(-120), fixedNow)
	result, err := p.PredictRow(row)
	require.NoError(t, err)

	assert.Equal(t, 10, result.DaysLeft)
}

func TestPredictRow_NegativeNetStockClampsToZero(t *testing.T) {
	row := domain.ProductFeatureRow{ProductID: 3, NetStock: -40}

	p := New(constScorer(300), fixedNow)
	result, err := p.PredictRow(row)
	require.NoError(t, err)

	assert.Equal(t, 0, result.DaysLeft)
	assert.Equal(t, domain.StatusUnderstock, result.StockStatus)
	// Already-out products report today as the stockout date.
	assert.Equal(t, fixedNow().Truncate(24*time.Hour), result.StockoutDate)
}

func TestPredictRow_UsesLocalCalendarDate(t *testing.T) {
	// Early morning in a zone ahead of UTC: the UTC day is still yesterday,
	// but the stockout date must be counted from the local calendar date.
	ist := time.FixedZone("IST", 5*3600+1800)
	now := func() time.Time { return time.Date(2024, 6, 15, 1, 30, 0, 0, ist) }

	p := New(constScorer(300), now)
	result, err := p.PredictRow(domain.ProductFeatureRow{ProductID: 1, NetStock: 0})
	require.NoError(t, err)

	assert.Equal(t, 0, result.DaysLeft)
	assert.Equal(t, "2024-06-15", result.StockoutDate.Format("2006-01-02"))
}

func TestPredictRow_StatusBoundaries(t *testing.T) {
	cases := []struct {
		netStock float64
		want     domain.StockStatus
	}{
		{netStock: 60, want: domain.StatusUnderstock}, // 6 days
		{netStock: 70, want: domain.StatusFine},       // 7 days
		{netStock: 600, want: domain.StatusFine},      // 60 days
		{netStock: 610, want: domain.StatusOverstock}, // 61 days
	}

	p := New(constScorer(300), fixedNow)
	for _, tc := range cases {
		result, err := p.PredictRow(domain.ProductFeatureRow{NetStock: tc.netStock})
		require.NoError(t, err)
		assert.Equal(t, tc.want, result.StockStatus, "net stock %v", tc.netStock)
	}
}

func TestPredictRow_ScorerFailure(t *testing.T) {
	scoreErr := errors.New("shape mismatch")
	p := New(ScorerFunc(func([]float64) (float64, error) {
		return 0, scoreErr
	}), fixedNow)

	_, err := p.PredictRow(domain.ProductFeatureRow{ProductID: 9})
	require.Error(t, err)

	var predErr *domain.PredictionError
	require.ErrorAs(t, err, &predErr)
	assert.Equal(t, int64(9), predErr.ProductID)
	assert.ErrorIs(t, err, scoreErr)
}

func TestPredictAll_AbortsOnScorerFailure(t *testing.T) {
	calls := 0
	p := New(ScorerFunc(func([]float64) (float64, error) {
		calls++
		if calls == 2 {
			return 0, errors.New("boom")
		}
		return 300, nil
	}), fixedNow)

	rows := []domain.ProductFeatureRow{{ProductID: 1}, {ProductID: 2}, {ProductID: 3}}
	_, err := p.PredictAll(rows)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestPredictProduct_NotFound(t *testing.T) {
	p := New(constScorer(300), fixedNow)

	rows := []domain.ProductFeatureRow{{ProductID: 1}}
	_, _, err := p.PredictProduct(rows, 42)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(42), notFound.ProductID)
}

func TestPredictProduct_ReturnsMatchingRow(t *testing.T) {
	p := New(constScorer(300), fixedNow)

	rows := []domain.ProductFeatureRow{
		{ProductID: 1, ProductName: "Widget", NetStock: 90},
		{ProductID: 2, ProductName: "Gadget", NetStock: 10},
	}
	result, row, err := p.PredictProduct(rows, 2)
	require.NoError(t, err)

	assert.Equal(t, "Gadget", row.ProductName)
	assert.Equal(t, 1, result.DaysLeft)
}
