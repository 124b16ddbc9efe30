package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codyseavey/archimago/internal/metrics"
)

// ErrNotLoaded is returned before the first snapshot has been published.
var ErrNotLoaded = errors.New("card catalog not loaded")

// Store publishes the active snapshot. Readers call Current and keep using the
// snapshot they got; a refresh builds a new one and swaps it in atomically.
type Store struct {
	source  Source
	current atomic.Pointer[Snapshot]

	// serializes rebuilds, readers never take it
	mu sync.Mutex
}

// NewStore creates an empty store backed by source.
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// Current returns the active snapshot, or nil before the first Refresh. A nil
// store has no snapshot.
func (s *Store) Current() *Snapshot {
	if s == nil {
		return nil
	}
	return s.current.Load()
}

// Publish makes snap the active snapshot.
func (s *Store) Publish(snap *Snapshot) {
	s.current.Store(snap)
	metrics.CatalogCards.Set(float64(snap.Catalog.Len()))
}

// Refresh loads the card collection from the source and publishes a new
// snapshot. The previous snapshot stays active if loading fails.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	if s == nil {
		return nil, ErrNotLoaded
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.source.LoadCards(ctx)
	if err != nil {
		metrics.CatalogRefreshesTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	if len(cards) == 0 {
		metrics.CatalogRefreshesTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("card source returned no cards")
	}

	snap := NewSnapshot(cards)
	s.Publish(snap)
	metrics.CatalogRefreshesTotal.WithLabelValues("success").Inc()

	log.Printf("Card catalog loaded: %d cards, %d index nodes", snap.Catalog.Len(), snap.Index.Size())
	return snap, nil
}

// Refresher rebuilds the catalog on a fixed interval.
type Refresher struct {
	store    *Store
	interval time.Duration
}

// NewRefresher creates a refresher. A non-positive interval disables it.
func NewRefresher(store *Store, interval time.Duration) *Refresher {
	return &Refresher{store: store, interval: interval}
}

// Start runs until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	log.Printf("Catalog refresher started: rebuilding every %s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Catalog refresher stopping...")
			return
		case <-ticker.C:
			if _, err := r.store.Refresh(ctx); err != nil {
				log.Printf("Catalog refresher: %v", err)
			}
		}
	}
}
