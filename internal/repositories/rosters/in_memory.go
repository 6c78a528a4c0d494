package rosters

import (
	"context"
	"sync"

	"github.com/KirkDiggler/knight-battles/internal/domain/knight"
	knighterr "github.com/KirkDiggler/knight-battles/internal/errors"
)

type inMemoryRepository struct {
	mu      sync.RWMutex
	knights map[string]*knight.Config
}

// NewInMemoryRepository creates a new in-memory roster repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		knights: make(map[string]*knight.Config),
	}
}

// Put stores a copy of cfg under id
func (r *inMemoryRepository) Put(ctx context.Context, id string, cfg *knight.Config) error {
	if err := validatePut(id, cfg); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.knights[id] = cfg.Clone()
	return nil
}

// Get retrieves a copy of the record stored under id
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*knight.Config, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, exists := r.knights[id]
	if !exists {
		return nil, knighterr.NotFoundf("knight not found: %s", id).WithMeta("knight_id", id)
	}

	return cfg.Clone(), nil
}

// List retrieves copies of every stored record
func (r *inMemoryRepository) List(ctx context.Context) (map[string]*knight.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	knights := make(map[string]*knight.Config, len(r.knights))
	for id, cfg := range r.knights {
		knights[id] = cfg.Clone()
	}

	return knights, nil
}

// Delete removes the record stored under id
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.knights[id]; !exists {
		return knighterr.NotFoundf("knight not found: %s", id).WithMeta("knight_id", id)
	}

	delete(r.knights, id)
	return nil
}

func validateID(id string) error {
	if id == "" {
		return knighterr.InvalidArgument("knight id is required")
	}
	return nil
}

func validatePut(id string, cfg *knight.Config) error {
	if err := validateID(id); err != nil {
		return err
	}
	if cfg == nil {
		return knighterr.InvalidArgument("knight config cannot be nil")
	}
	return nil
}
