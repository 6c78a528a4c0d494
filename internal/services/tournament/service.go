// Package tournament runs scheduled battles over a stored knight roster.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/KirkDiggler/knight-battles/internal/domain/battle"
	"github.com/KirkDiggler/knight-battles/internal/domain/knight"
	knighterr "github.com/KirkDiggler/knight-battles/internal/errors"
	"github.com/KirkDiggler/knight-battles/internal/repositories/rosters"
	"github.com/KirkDiggler/knight-battles/internal/uuid"
)

// Service defines the tournament service interface
type Service interface {
	// ImportRoster validates every record and then stores them all
	ImportRoster(ctx context.Context, knights map[string]*knight.Config) error

	// Run conducts the scheduled battle over the stored roster
	Run(ctx context.Context) (*Report, error)
}

// Report is the outcome of one run
type Report struct {
	RunID   string         `json:"run_id"`
	Results battle.Result  `json:"results"`
	Fights  []battle.Fight `json:"fights"`
}

type service struct {
	repository    rosters.Repository
	schedule      battle.Schedule
	uuidGenerator uuid.Generator
	logger        *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    rosters.Repository
	Schedule      battle.Schedule
	UUIDGenerator uuid.Generator
	Logger        *zap.Logger
}

// NewService creates a new tournament service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("service config is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		schedule:      cfg.Schedule,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger,
	}

	if svc.schedule == nil {
		svc.schedule = battle.DefaultSchedule()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGenerator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	return svc
}

// ImportRoster writes nothing unless every record is valid
func (s *service) ImportRoster(ctx context.Context, knights map[string]*knight.Config) error {
	if len(knights) == 0 {
		return knighterr.InvalidArgument("roster cannot be empty")
	}

	ids := make([]string, 0, len(knights))
	for id := range knights {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []error
	for _, id := range ids {
		if err := knight.Validate(knights[id]); err != nil {
			errs = append(errs, fmt.Errorf("knight %q: %w", id, err))
		}
	}
	if len(errs) > 0 {
		return knighterr.WrapWithCode(errors.Join(errs...), knighterr.CodeConfiguration, "invalid roster")
	}

	for _, id := range ids {
		if err := s.repository.Put(ctx, id, knights[id]); err != nil {
			return knighterr.Wrapf(err, "failed to import knight %s", id)
		}
	}

	s.logger.Info("roster imported", zap.Int("knights", len(ids)))
	return nil
}

// Run conducts the scheduled battle over the stored roster
func (s *service) Run(ctx context.Context) (*Report, error) {
	runID := s.uuidGenerator.New()
	logger := s.logger.With(zap.String("run_id", runID))

	knights, err := s.repository.List(ctx)
	if err != nil {
		logger.Error("failed to list roster", zap.Error(err))
		return nil, knighterr.Wrap(err, "failed to list roster")
	}

	coordinator, err := battle.NewCoordinator(&battle.CoordinatorConfig{
		Knights:  knights,
		Schedule: s.schedule,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("invalid battle configuration", zap.Error(err))
		return nil, knighterr.Wrap(err, "failed to set up battle")
	}

	results, err := coordinator.ConductBattle()
	if err != nil {
		logger.Error("battle aborted", zap.Error(err))
		return nil, knighterr.Wrap(err, "failed to conduct battle")
	}

	return &Report{
		RunID:   runID,
		Results: results,
		Fights:  coordinator.Fights(),
	}, nil
}
