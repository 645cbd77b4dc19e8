package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inventopredict/backend-go/internal/cache"
	"github.com/inventopredict/backend-go/internal/dataset"
	"github.com/inventopredict/backend-go/internal/domain"
	"github.com/inventopredict/backend-go/internal/feature"
	"github.com/inventopredict/backend-go/internal/predictor"
)

const trendDays = 30

// PredictionService runs the full pipeline (load, build features, score)
// for uploaded workbooks and serves the per-product dashboard from the
// most recent dataset.
type PredictionService struct {
	loader    *dataset.Loader
	builder   *feature.Builder
	predictor *predictor.Predictor
	cache     cache.DashboardCache
	now       func() time.Time

	mu            sync.RWMutex
	latestDataset string
}

func NewPredictionService(
	loader *dataset.Loader,
	builder *feature.Builder,
	pred *predictor.Predictor,
	cacheImpl cache.DashboardCache,
	latestDataset string,
	now func() time.Time,
) *PredictionService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	if now == nil {
		now = time.Now
	}
	return &PredictionService{
		loader:        loader,
		builder:       builder,
		predictor:     pred,
		cache:         cacheImpl,
		now:           now,
		latestDataset: latestDataset,
	}
}

// PredictFile runs the pipeline over the workbook at path and returns one
// PredictionResult per product.
func (s *PredictionService) PredictFile(ctx context.Context, path string) ([]domain.PredictionResult, error) {
	bundle, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}

	rows, err := s.builder.Build(bundle)
	if err != nil {
		return nil, err
	}

	return s.predictor.PredictAll(rows)
}

// Dashboard builds the dashboard payload for one product from the latest
// known dataset, consulting the cache first.
func (s *PredictionService) Dashboard(ctx context.Context, productID int64) (*domain.ProductDashboard, error) {
	if dashboard, ok, err := s.cache.Get(ctx, productID); err == nil && ok {
		return dashboard, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	}

	s.mu.RLock()
	path := s.latestDataset
	s.mu.RUnlock()

	bundle, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}

	rows, err := s.builder.Build(bundle)
	if err != nil {
		return nil, err
	}

	result, row, err := s.predictor.PredictProduct(rows, productID)
	if err != nil {
		return nil, err
	}

	dashboard := &domain.ProductDashboard{
		ProductID:             result.ProductID,
		ProductName:           result.ProductName,
		Category:              result.Category,
		AvgDailySales:         row.AvgDailySales,
		DaysLeft:              result.DaysLeft,
		StockStatus:           result.StockStatus,
		PredictedStockoutDate: result.StockoutDate.Format("2006-01-02"),
		HistoricalData:        s.syntheticTrend(row.AvgDailySales),
	}

	if err := s.cache.Set(ctx, productID, dashboard); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set failed")
	}

	return dashboard, nil
}

// SetLatestDataset points the dashboard at a freshly ingested workbook and
// drops any cached payloads computed from the previous one.
func (s *PredictionService) SetLatestDataset(ctx context.Context, path string) {
	s.mu.Lock()
	s.latestDataset = path
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache invalidation failed")
	}
}

// syntheticTrend fabricates a 30-day series around the average daily sales
// for the dashboard chart, mirroring the source dashboard behaviour.
func (s *PredictionService) syntheticTrend(avgDaily float64) []domain.TrendPoint {
	today := s.now()
	points := make([]domain.TrendPoint, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		date := today.AddDate(0, 0, -(trendDays - 1 - i))
		qty := avgDaily + float64(rand.Intn(11)-5)
		if qty < 0 {
			qty = 0
		}
		points = append(points, domain.TrendPoint{
			Date:     date.Format("2006-01-02"),
			Quantity: qty,
		})
	}
	return points
}
