package predictor

import (
	"math"
	"time"

	"github.com/inventopredict/backend-go/internal/domain"
)

const (
	// demandHorizonDays is the horizon the model was trained on.
	demandHorizonDays = 30

	// minDailyDemand floors the derived daily rate so a near-zero model
	// output cannot blow up the days-left division.
	minDailyDemand = 0.1
)

// Scorer is the trained demand model capability. Implementations take the
// fixed five-feature vector and return the predicted 30-day demand.
type Scorer interface {
	Predict(features []float64) (float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(features []float64) (float64, error)

func (f ScorerFunc) Predict(features []float64) (float64, error) {
	return f(features)
}

// Predictor derives stockout estimates from feature rows using an injected
// scoring function.
type Predictor struct {
	scorer Scorer
	now    func() time.Time
}

// New creates a Predictor. now may be nil, in which case time.Now is used.
func New(scorer Scorer, now func() time.Time) *Predictor {
	if now == nil {
		now = time.Now
	}
	return &Predictor{scorer: scorer, now: now}
}

// PredictRow scores one feature row and derives the stockout estimate.
func (p *Predictor) PredictRow(row domain.ProductFeatureRow) (domain.PredictionResult, error) {
	demand, err := p.scorer.Predict(row.FeatureVector())
	if err != nil {
		return domain.PredictionResult{}, &domain.PredictionError{ProductID: row.ProductID, Err: err}
	}

	daily := demand / demandHorizonDays
	if daily < minDailyDemand {
		daily = minDailyDemand
	}

	daysLeft := int(math.Floor(row.NetStock / daily))
	if daysLeft < 0 {
		daysLeft = 0
	}

	today := calendarDay(p.now())

	return domain.PredictionResult{
		ProductID:    row.ProductID,
		ProductName:  row.ProductName,
		Category:     row.Category,
		DaysLeft:     daysLeft,
		StockoutDate: today.AddDate(0, 0, daysLeft),
		StockStatus:  domain.ClassifyStock(daysLeft),
	}, nil
}

// calendarDay truncates to the wall-clock date, not the UTC day, so a
// stockout dated "in 2 days" here is the same date the reminder tick
// computes its delta against.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PredictAll scores every feature row. A scorer failure aborts the batch,
// since all rows share the same model.
func (p *Predictor) PredictAll(rows []domain.ProductFeatureRow) ([]domain.PredictionResult, error) {
	results := make([]domain.PredictionResult, 0, len(rows))
	for _, row := range rows {
		result, err := p.PredictRow(row)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// PredictProduct scores a single product out of the feature rows, failing
// with a NotFoundError when the product is absent.
func (p *Predictor) PredictProduct(rows []domain.ProductFeatureRow, productID int64) (domain.PredictionResult, domain.ProductFeatureRow, error) {
	for _, row := range rows {
		if row.ProductID == productID {
			result, err := p.PredictRow(row)
			return result, row, err
		}
	}
	return domain.PredictionResult{}, domain.ProductFeatureRow{}, &domain.NotFoundError{ProductID: productID}
}
