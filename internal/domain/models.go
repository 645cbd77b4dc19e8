package domain

import "time"

// ProductFeatureRow holds the per-product features produced by one pipeline run.
// Rows are rebuilt on every run and never persisted.
type ProductFeatureRow struct {
	ProductID               int64   `json:"product_id"`
	ProductName             string  `json:"product_name"`
	Category                string  `json:"category"`
	AvgDailySales           float64 `json:"avg_daily_sales"`
	SalesVolatility         float64 `json:"sales_volatility"`
	FestivalScore           float64 `json:"festival_score"`
	FestivalElectronicsBoost float64 `json:"festival_electronics_boost"`
	NetStock                float64 `json:"net_stock"`
}

// FeatureVector returns the features in the fixed order the demand model
// was trained on.
func (r ProductFeatureRow) FeatureVector() []float64 {
	return []float64{
		r.AvgDailySales,
		r.SalesVolatility,
		r.FestivalScore,
		r.FestivalElectronicsBoost,
		r.NetStock,
	}
}

// StockStatus classifies a product's projected stock position.
type StockStatus string

const (
	StatusUnderstock StockStatus = "Understock"
	StatusFine       StockStatus = "Fine"
	StatusOverstock  StockStatus = "Overstock"
)

// ClassifyStock maps days of remaining cover to a StockStatus.
func ClassifyStock(daysLeft int) StockStatus {
	switch {
	case daysLeft < 7:
		return StatusUnderstock
	case daysLeft > 60:
		return StatusOverstock
	default:
		return StatusFine
	}
}

// PredictionResult is the transient per-product outcome of a prediction run.
type PredictionResult struct {
	ProductID    int64       `json:"product_id"`
	ProductName  string      `json:"product_name"`
	Category     string      `json:"category"`
	DaysLeft     int         `json:"days_left"`
	StockoutDate time.Time   `json:"stockout_date"`
	StockStatus  StockStatus `json:"stock_status"`
}

// StockoutReminder is one tracked (recipient, product) subscription.
type StockoutReminder struct {
	ID           int64         `json:"id" db:"id"`
	Email        string        `json:"email" db:"email"`
	ProductName  string        `json:"product_name" db:"product_name"`
	StockoutDate time.Time     `json:"stockout_date" db:"stockout_date"`
	Stage        ReminderStage `json:"reminder_stage" db:"reminder_stage"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// TrendPoint is one day of the synthetic 30-day sales trend shown on the
// product dashboard.
type TrendPoint struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// ProductDashboard aggregates everything the dashboard view needs for one product.
type ProductDashboard struct {
	ProductID            int64        `json:"product_id"`
	ProductName          string       `json:"product_name"`
	Category             string       `json:"category"`
	AvgDailySales        float64      `json:"avg_daily_sales"`
	DaysLeft             int          `json:"days_left"`
	StockStatus          StockStatus  `json:"stock_status"`
	PredictedStockoutDate string      `json:"predicted_stockout_date"`
	HistoricalData       []TrendPoint `json:"historical_data"`
}
