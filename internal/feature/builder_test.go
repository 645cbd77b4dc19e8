package feature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventopredict/backend-go/internal/dataset"
	"github.com/inventopredict/backend-go/internal/domain"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func baseBundle() *dataset.Bundle {
	return &dataset.Bundle{
		Inventory: []dataset.InventoryRow{
			{ProductID: 1, Date: day("2024-01-01"), StockReceived: 100, DamagedStock: 10},
		},
		Orders: []dataset.OrderRow{
			{OrderID: 10, OrderDate: day("2024-01-01")},
			{OrderID: 11, OrderDate: day("2024-01-02")},
			{OrderID: 12, OrderDate: day("2024-01-03")},
		},
		OrderItems: []dataset.OrderItemRow{
			{OrderID: 10, ProductID: 1, Quantity: 30},
			{OrderID: 11, ProductID: 1, Quantity: 30},
			{OrderID: 12, ProductID: 1, Quantity: 30},
		},
		Products: []dataset.ProductRow{
			{ProductID: 1, ProductName: "Widget", Category: "Grocery"},
		},
	}
}

func findRow(t *testing.T, rows []domain.ProductFeatureRow, productID int64) domain.ProductFeatureRow {
	t.Helper()
	for _, row := range rows {
		if row.ProductID == productID {
			return row
		}
	}
	t.Fatalf("product %d not in feature rows", productID)
	return domain.ProductFeatureRow{}
}

func TestBuild_AverageAndNetStock(t *testing.T) {
	rows, err := NewBuilder().Build(baseBundle())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, int64(1), row.ProductID)
	assert.Equal(t, "Widget", row.ProductName)
	assert.InDelta(t, 30.0, row.AvgDailySales, 1e-9)
	assert.InDelta(t, 90.0, row.NetStock, 1e-9)
	// Three identical daily sums have no spread.
	assert.InDelta(t, 0.0, row.SalesVolatility, 1e-9)
}

func TestBuild_SingleDayVolatilityIsZero(t *testing.T) {
	bundle := baseBundle()
	bundle.Orders = bundle.Orders[:1]
	bundle.OrderItems = bundle.OrderItems[:1]

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	row := findRow(t, rows, 1)
	assert.Equal(t, 0.0, row.SalesVolatility)
	assert.False(t, row.SalesVolatility != row.SalesVolatility, "volatility must not be NaN")
}

func TestBuild_VolatilityIsSampleStdDev(t *testing.T) {
	bundle := baseBundle()
	bundle.OrderItems = []dataset.OrderItemRow{
		{OrderID: 10, ProductID: 1, Quantity: 10},
		{OrderID: 11, ProductID: 1, Quantity: 20},
		{OrderID: 12, ProductID: 1, Quantity: 30},
	}

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	row := findRow(t, rows, 1)
	assert.InDelta(t, 20.0, row.AvgDailySales, 1e-9)
	assert.InDelta(t, 10.0, row.SalesVolatility, 1e-9)
}

func TestBuild_NegativeNetStock(t *testing.T) {
	bundle := baseBundle()
	bundle.Inventory = []dataset.InventoryRow{
		{ProductID: 1, StockReceived: 5, DamagedStock: 20},
		{ProductID: 1, StockReceived: 2, DamagedStock: 4},
	}

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	assert.InDelta(t, -17.0, findRow(t, rows, 1).NetStock, 1e-9)
}

func TestBuild_ProductMissingFromInventory(t *testing.T) {
	bundle := baseBundle()
	bundle.Inventory = nil

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	assert.Equal(t, 0.0, findRow(t, rows, 1).NetStock)
}

func TestBuild_DropsUnparsableOrderDates(t *testing.T) {
	bundle := baseBundle()
	// Zero time marks an unparsable source date.
	bundle.Orders[1].OrderDate = time.Time{}

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	// Only two days of history survive.
	assert.InDelta(t, 30.0, findRow(t, rows, 1).AvgDailySales, 1e-9)
}

func TestBuild_AllDatesUnparsableFails(t *testing.T) {
	bundle := baseBundle()
	for i := range bundle.Orders {
		bundle.Orders[i].OrderDate = time.Time{}
	}

	_, err := NewBuilder().Build(bundle)
	require.Error(t, err)

	var dataErr *domain.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Contains(t, err.Error(), "no usable order history")
}

func TestBuild_FestivalWindow(t *testing.T) {
	bundle := baseBundle()
	// Festival on Jan 8: window covers Jan 1 through Jan 11.
	bundle.Festivals = []dataset.FestivalEvent{
		{Date: day("2024-01-08"), Impact: 3},
	}

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	row := findRow(t, rows, 1)
	assert.InDelta(t, 3.0, row.FestivalScore, 1e-9)
	// Not electronics, so no boost.
	assert.Equal(t, 0.0, row.FestivalElectronicsBoost)
}

func TestBuild_FestivalOutsideWindow(t *testing.T) {
	bundle := baseBundle()
	bundle.Festivals = []dataset.FestivalEvent{
		{Date: day("2024-03-01"), Impact: 5},
	}

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	assert.Equal(t, 0.0, findRow(t, rows, 1).FestivalScore)
}

func TestBuild_FestivalLastWriteWins(t *testing.T) {
	bundle := baseBundle()
	bundle.Festivals = []dataset.FestivalEvent{
		{Date: day("2024-01-02"), Impact: 2},
		{Date: day("2024-01-03"), Impact: 7},
	}

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	// Both windows cover every order day; the later entry overwrites.
	assert.InDelta(t, 7.0, findRow(t, rows, 1).FestivalScore, 1e-9)
}

func TestBuild_ElectronicsBoost(t *testing.T) {
	bundle := baseBundle()
	bundle.Products[0].Category = "Electronics"
	bundle.Festivals = []dataset.FestivalEvent{
		{Date: day("2024-01-02"), Impact: 4},
	}

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	row := findRow(t, rows, 1)
	assert.InDelta(t, 4.0, row.FestivalScore, 1e-9)
	assert.InDelta(t, 4.0, row.FestivalElectronicsBoost, 1e-9)
}

func TestBuild_PartialFestivalCoverageAveragesAtLineLevel(t *testing.T) {
	bundle := baseBundle()
	// Window [Dec 25 - Jan 4] covers the first two order days only... the
	// third line gets zero, so the mean is 2/3 of the impact.
	bundle.Festivals = []dataset.FestivalEvent{
		{Date: day("2024-01-01"), Impact: 3},
	}
	bundle.Orders[2].OrderDate = day("2024-01-20")

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, findRow(t, rows, 1).FestivalScore, 1e-9)
}

func TestBuild_UnknownCatalogDefaults(t *testing.T) {
	bundle := baseBundle()
	bundle.Products = nil

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)

	row := findRow(t, rows, 1)
	assert.Equal(t, "Unknown", row.ProductName)
	assert.Equal(t, "Unknown", row.Category)
}

func TestBuild_MultipleProductsSortedByID(t *testing.T) {
	bundle := baseBundle()
	bundle.OrderItems = append(bundle.OrderItems,
		dataset.OrderItemRow{OrderID: 10, ProductID: 5, Quantity: 7},
		dataset.OrderItemRow{OrderID: 11, ProductID: 3, Quantity: 2},
	)

	rows, err := NewBuilder().Build(bundle)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, int64(1), rows[0].ProductID)
	assert.Equal(t, int64(3), rows[1].ProductID)
	assert.Equal(t, int64(5), rows[2].ProductID)
}
