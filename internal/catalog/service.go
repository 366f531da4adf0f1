package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/logger"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/metrics"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/source"
)

// Load triggers.
const (
	TriggerStartup = "startup"
	TriggerReload  = "reload"
	TriggerUpload  = "upload"
	TriggerInspect = "inspect"
)

// Service loads snapshots into a Store and records what happened.
type Service struct {
	store   *Store
	loader  *Loader
	metrics *metrics.Collector
	log     *logger.Logger

	// loadMu serializes loads so the last started load wins.
	loadMu sync.Mutex
	// gaugeMu pairs each store mutation with its owned gauge change.
	gaugeMu sync.Mutex
}

// NewService wires a store and loader. metrics may be nil.
func NewService(store *Store, loader *Loader, m *metrics.Collector, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{store: store, loader: loader, metrics: m, log: log}
}

// Store returns the underlying store.
func (s *Service) Store() *Store {
	return s.store
}

// Load reads r, builds a snapshot and swaps it in. On error the current
// snapshot is left untouched.
func (s *Service) Load(ctx context.Context, trigger string, r source.Reader) (LoadStats, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	log := s.log.WithTrigger(trigger).WithSource(r.Describe())
	start := time.Now()

	snap, err := s.build(ctx, r)
	if err != nil {
		s.metrics.ObserveLoad(trigger, err, 0)
		log.Errorw("Catalog load failed", "error", err, "duration", time.Since(start))
		return LoadStats{}, err
	}

	// Summarize while snap is still private; Update may write it once installed.
	summary := snap.Summary()

	s.gaugeMu.Lock()
	s.store.Replace(snap)
	for _, g := range summary {
		s.metrics.SetGeneration(g.Key, g.Count, g.Owned)
	}
	s.gaugeMu.Unlock()

	s.metrics.ObserveLoad(trigger, nil, snap.Stats.Skipped)

	log.Infow("Catalog loaded",
		"rows", snap.Stats.Rows,
		"loaded", snap.Stats.Loaded,
		"skipped", snap.Stats.Skipped,
		"out_of_range", snap.Stats.OutOfRange,
		"duplicates", snap.Stats.Duplicates,
		"duration", time.Since(start),
	)
	return snap.Stats, nil
}

// Preview reads r and builds a snapshot without installing it.
func (s *Service) Preview(ctx context.Context, r source.Reader) (*Snapshot, error) {
	return s.build(ctx, r)
}

func (s *Service) build(ctx context.Context, r source.Reader) (*Snapshot, error) {
	tbl, err := r.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.Describe(), err)
	}

	snap, err := s.loader.Build(tbl)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.Describe(), err)
	}
	snap.Source = r.Describe()
	snap.LoadedAt = time.Now()
	return snap, nil
}

// Update sets the owned flag of a record and keeps the owned gauge in step.
func (s *Service) Update(id int, owned bool) (Change, error) {
	s.gaugeMu.Lock()
	change, err := s.store.Update(id, owned)
	if err == nil && change.Previous != owned {
		delta := 1
		if !owned {
			delta = -1
		}
		s.metrics.AdjustOwned(change.Generation, delta)
	}
	s.gaugeMu.Unlock()

	switch {
	case errors.Is(err, ErrRecordNotFound):
		s.metrics.ObserveUpdate(metrics.ResultNotFound)
		return change, err
	case err != nil:
		s.metrics.ObserveUpdate(metrics.ResultFailure)
		return change, err
	}

	s.metrics.ObserveUpdate(metrics.ResultSuccess)
	s.log.Debugw("Record updated", "id", id, "collected", owned, "generation", change.Generation)
	return change, nil
}
