package rosters

//go:generate mockgen -destination=mock/mock.go -package=mockrosters -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/knight-battles/internal/domain/knight"
)

// Repository stores knight configuration records by knight identifier
type Repository interface {
	// Put creates or replaces the record stored under id
	Put(ctx context.Context, id string, cfg *knight.Config) error

	// Get retrieves the record stored under id
	Get(ctx context.Context, id string) (*knight.Config, error)

	// List retrieves every stored record keyed by id
	List(ctx context.Context) (map[string]*knight.Config, error)

	// Delete removes the record stored under id
	Delete(ctx context.Context, id string) error
}
