package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inventopredict/backend-go/internal/service"
	"github.com/inventopredict/backend-go/internal/storage"
)

// Watcher polls object storage for new dataset workbooks, downloads them,
// sanity-checks them through the pipeline and promotes the newest one as
// the dashboard's dataset.
type Watcher struct {
	store       storage.ObjectStorage
	predictions *service.PredictionService
	prefix      string
	downloadDir string
	interval    time.Duration

	mu   sync.Mutex
	seen map[string]struct{}
}

func NewWatcher(
	store storage.ObjectStorage,
	predictions *service.PredictionService,
	prefix, downloadDir string,
	interval time.Duration,
) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Watcher{
		store:       store,
		predictions: predictions,
		prefix:      prefix,
		downloadDir: downloadDir,
		interval:    interval,
		seen:        make(map[string]struct{}),
	}
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.ScanOnce(ctx); err != nil {
			log.Error().Err(err).Msg("dataset scan failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ScanOnce lists the bucket and ingests any workbook not seen before.
// It returns the number of newly ingested workbooks.
func (w *Watcher) ScanOnce(ctx context.Context) (int, error) {
	objects, err := w.store.ListObjects(ctx, w.prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list dataset objects: %w", err)
	}

	// Stable order so the newest (lexically last, date-prefixed) workbook
	// ends up as the promoted dataset.
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })

	ingested := 0
	for _, object := range objects {
		select {
		case <-ctx.Done():
			return ingested, ctx.Err()
		default:
		}

		if strings.ToLower(filepath.Ext(object.Key)) != ".xlsx" {
			continue
		}

		w.mu.Lock()
		_, known := w.seen[object.Key]
		w.mu.Unlock()
		if known {
			continue
		}

		if err := w.ingest(ctx, object.Key); err != nil {
			log.Error().Err(err).Str("key", object.Key).Msg("workbook ingest failed")
			continue
		}

		w.mu.Lock()
		w.seen[object.Key] = struct{}{}
		w.mu.Unlock()
		ingested++
	}

	return ingested, nil
}

func (w *Watcher) ingest(ctx context.Context, key string) error {
	if err := os.MkdirAll(w.downloadDir, 0755); err != nil {
		return fmt.Errorf("failed to create download dir: %w", err)
	}

	localPath := filepath.Join(w.downloadDir, filepath.Base(key))
	if err := w.store.DownloadObject(ctx, key, localPath); err != nil {
		return fmt.Errorf("failed to download %s: %w", key, err)
	}

	// Run the full pipeline once as a sanity check before promoting the
	// workbook; a broken upload must not replace a working dataset.
	if _, err := w.predictions.PredictFile(ctx, localPath); err != nil {
		return fmt.Errorf("workbook %s failed validation: %w", key, err)
	}

	w.predictions.SetLatestDataset(ctx, localPath)
	log.Info().Str("key", key).Str("path", localPath).Msg("dataset workbook promoted")

	return nil
}
