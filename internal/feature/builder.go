package feature

import (
	"math"
	"sort"
	"time"

	"github.com/inventopredict/backend-go/internal/dataset"
	"github.com/inventopredict/backend-go/internal/domain"
)

const (
	festivalWindowBefore = 7
	festivalWindowAfter  = 3

	electronicsCategory = "Electronics"
	unknownLabel        = "Unknown"
)

// Builder turns a parsed table bundle into one feature row per product.
// It is a pure transformation; all I/O happens in the dataset loader.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// orderLine is one order item joined with its order date and catalog category.
type orderLine struct {
	productID     int64
	day           string
	quantity      float64
	festivalScore float64
	electronics   float64
}

// Build computes per-product features from the bundle. Order lines whose
// order date could not be parsed are dropped before aggregation; if that
// leaves nothing, the run fails with a DataError.
func (b *Builder) Build(bundle *dataset.Bundle) ([]domain.ProductFeatureRow, error) {
	if bundle == nil {
		return nil, domain.NewDataError("nil bundle")
	}

	orderDates := make(map[int64]time.Time, len(bundle.Orders))
	for _, o := range bundle.Orders {
		orderDates[o.OrderID] = o.OrderDate
	}

	categories := make(map[int64]string, len(bundle.Products))
	names := make(map[int64]string, len(bundle.Products))
	for _, p := range bundle.Products {
		categories[p.ProductID] = p.Category
		names[p.ProductID] = p.ProductName
	}

	impactByDay := festivalImpactByDay(bundle.Festivals)

	lines := make([]orderLine, 0, len(bundle.OrderItems))
	for _, item := range bundle.OrderItems {
		date, ok := orderDates[item.OrderID]
		if !ok || date.IsZero() {
			continue
		}

		day := dayKey(date)
		score := impactByDay[day]

		var electronics float64
		if score > 0 && categories[item.ProductID] == electronicsCategory {
			electronics = score
		}

		lines = append(lines, orderLine{
			productID:     item.ProductID,
			day:           day,
			quantity:      item.Quantity,
			festivalScore: score,
			electronics:   electronics,
		})
	}

	if len(lines) == 0 {
		return nil, domain.NewDataError("no usable order history")
	}

	// Per-(product, day) quantity sums feed the sales statistics; festival
	// scores are averaged at the line level, matching the training pipeline.
	dailyQty := make(map[int64]map[string]float64)
	festivalSum := make(map[int64]float64)
	electronicsSum := make(map[int64]float64)
	lineCount := make(map[int64]int)

	for _, line := range lines {
		byDay, ok := dailyQty[line.productID]
		if !ok {
			byDay = make(map[string]float64)
			dailyQty[line.productID] = byDay
		}
		byDay[line.day] += line.quantity

		festivalSum[line.productID] += line.festivalScore
		electronicsSum[line.productID] += line.electronics
		lineCount[line.productID]++
	}

	netStock := make(map[int64]float64, len(bundle.Inventory))
	for _, inv := range bundle.Inventory {
		netStock[inv.ProductID] += inv.StockReceived - inv.DamagedStock
	}

	productIDs := make([]int64, 0, len(dailyQty))
	for id := range dailyQty {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	rows := make([]domain.ProductFeatureRow, 0, len(productIDs))
	for _, id := range productIDs {
		mean, std := dailyStats(dailyQty[id])

		name, ok := names[id]
		if !ok || name == "" {
			name = unknownLabel
		}
		category, ok := categories[id]
		if !ok || category == "" {
			category = unknownLabel
		}

		n := float64(lineCount[id])
		rows = append(rows, domain.ProductFeatureRow{
			ProductID:                id,
			ProductName:              name,
			Category:                 category,
			AvgDailySales:            mean,
			SalesVolatility:          std,
			FestivalScore:            festivalSum[id] / n,
			FestivalElectronicsBoost: electronicsSum[id] / n,
			NetStock:                 netStock[id],
		})
	}

	if len(rows) == 0 {
		return nil, domain.NewDataError("no products after aggregation")
	}

	return rows, nil
}

// festivalImpactByDay expands each festival into its [D-7, D+3] window.
// Later calendar entries overwrite earlier ones on overlapping days.
func festivalImpactByDay(festivals []dataset.FestivalEvent) map[string]float64 {
	impact := make(map[string]float64)
	for _, fest := range festivals {
		if fest.Date.IsZero() {
			continue
		}
		for offset := -festivalWindowBefore; offset <= festivalWindowAfter; offset++ {
			day := fest.Date.AddDate(0, 0, offset)
			impact[dayKey(day)] = fest.Impact
		}
	}
	return impact
}

// dailyStats returns the mean and sample standard deviation of the per-day
// quantity sums. A single observation yields zero volatility.
func dailyStats(byDay map[string]float64) (mean, std float64) {
	n := float64(len(byDay))
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, qty := range byDay {
		sum += qty
	}
	mean = sum / n

	if n < 2 {
		return mean, 0
	}

	var sq float64
	for _, qty := range byDay {
		d := qty - mean
		sq += d * d
	}
	std = math.Sqrt(sq / (n - 1))

	return mean, std
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
