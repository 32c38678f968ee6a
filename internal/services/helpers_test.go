package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/repositories"
	"backoffice/internal/store"
)

var errOffline = errors.New("offline")

// countingStore wraps a store, counting writes and optionally failing every
// call with a transport error.
type countingStore struct {
	store.Store

	mu      sync.Mutex
	inserts int
	updates int
	deletes int
	offline bool
}

func (s *countingStore) setOffline(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offline = v
}

func (s *countingStore) down(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offline {
		return &store.TransportError{Op: op, Err: errOffline}
	}
	return nil
}

func (s *countingStore) Select(ctx context.Context, collection string, q store.Query) ([]store.Row, error) {
	if err := s.down("select"); err != nil {
		return nil, err
	}
	return s.Store.Select(ctx, collection, q)
}

func (s *countingStore) Insert(ctx context.Context, collection string, row store.Row) (store.Row, error) {
	if err := s.down("insert"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.inserts++
	s.mu.Unlock()
	return s.Store.Insert(ctx, collection, row)
}

func (s *countingStore) Update(ctx context.Context, collection string, patch store.Row, filters []store.Filter) error {
	if err := s.down("update"); err != nil {
		return err
	}
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()
	return s.Store.Update(ctx, collection, patch, filters)
}

func (s *countingStore) Delete(ctx context.Context, collection string, filters []store.Filter) error {
	if err := s.down("delete"); err != nil {
		return err
	}
	s.mu.Lock()
	s.deletes++
	s.mu.Unlock()
	return s.Store.Delete(ctx, collection, filters)
}

func (s *countingStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserts + s.updates + s.deletes
}

func newTestStore() (*store.MemoryStore, *countingStore) {
	mem := store.NewMemoryStore()
	mem.AddUnique(store.Tables, "restaurant_id", "table_number")
	mem.AddUnique(store.Restaurants, "email")
	return mem, &countingStore{Store: mem}
}

var r1 = models.Session{RestaurantID: 1, RestaurantName: "Spice Garden"}

func newInventory(st store.Store, session models.Session) *InventoryService {
	return NewInventoryService(
		repositories.NewInventoryRepository(st),
		repositories.NewCategoryRepository(st),
		session,
	)
}

func newTables(st store.Store, session models.Session) *TableService {
	return NewTableService(repositories.NewTableRepository(st), session, "https://menu.example.com/t/")
}

type memoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	down    error
}

func newMemoryBlacklist() *memoryBlacklist {
	return &memoryBlacklist{revoked: make(map[string]time.Duration)}
}

func (b *memoryBlacklist) Blacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ttl > 0 {
		b.revoked[jti] = ttl
	}
	return nil
}

func (b *memoryBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.down != nil {
		return false, b.down
	}
	_, ok := b.revoked[jti]
	return ok, nil
}
