package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/triply-cloud/poidex/internal/catalog"
	"github.com/triply-cloud/poidex/internal/db"
	"github.com/triply-cloud/poidex/internal/domain"
)

// DefaultBatchSize is the GEOADD flush boundary.
const DefaultBatchSize = 1000

// geoStore is the consumer interface for geo set loading (ISP).
type geoStore interface {
	GeoAdd(ctx context.Context, set string, members []db.GeoMember) error
	DelSet(ctx context.Context, set string) error
}

// Loader bulk loads catalog coordinates into the geo set. Batches of
// batchSize are dispatched to a worker pool; the remainder is flushed
// explicitly at the end.
type Loader struct {
	store     geoStore
	set       string
	batchSize int
	workers   int
	logger    *zap.Logger
}

// NewLoader creates a geo set loader.
func NewLoader(store geoStore, set string, batchSize, workers int, logger *zap.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if workers <= 0 {
		workers = 1
	}
	return &Loader{store: store, set: set, batchSize: batchSize, workers: workers, logger: logger}
}

// Load wipes the geo set and reloads it from the catalog.
func (l *Loader) Load(ctx context.Context, cat *catalog.Catalog) error {
	if err := l.store.DelSet(ctx, l.set); err != nil {
		return fmt.Errorf("clear geo set: %w", err)
	}

	pool, err := ants.NewPool(l.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	submit := func(batch []db.GeoMember) {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := l.store.GeoAdd(ctx, l.set, batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit batch: %w", err)
			}
			mu.Unlock()
		}
	}

	batch := make([]db.GeoMember, 0, l.batchSize)
	cat.Each(func(poi domain.POI) bool {
		batch = append(batch, db.GeoMember{Lon: poi.Lon(), Lat: poi.Lat(), ID: poi.ID()})
		if len(batch) == l.batchSize {
			submit(batch)
			batch = make([]db.GeoMember, 0, l.batchSize)
		}
		return ctx.Err() == nil
	})

	// Explicit final flush of the remainder.
	if len(batch) > 0 {
		submit(batch)
	}

	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("load geo set: %w", firstErr)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("load geo set: %w", err)
	}

	l.logger.Info("geo set loaded",
		zap.String("set", l.set),
		zap.Int("members", cat.Len()),
		zap.Int("batch_size", l.batchSize),
	)
	return nil
}
