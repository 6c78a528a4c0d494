package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KirkDiggler/knight-battles/internal/config"
	"github.com/KirkDiggler/knight-battles/internal/services/tournament"
	"github.com/KirkDiggler/knight-battles/internal/testutils"
)

func TestOpenRoster_File(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Roster: config.RosterConfig{File: "../../data/knights.yaml"}}

	repo, closeRepo, err := openRoster(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeRepo()

	report, err := tournament.NewService(&tournament.ServiceConfig{Repository: repo}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutils.ReferenceResult(), map[string]int(report.Results))
}

func TestOpenRoster_Errors(t *testing.T) {
	ctx := context.Background()

	_, _, err := openRoster(ctx, &config.Config{Roster: config.RosterConfig{File: "missing.yaml"}}, zap.NewNop())
	assert.Error(t, err)

	_, _, err = openRoster(ctx, &config.Config{Redis: config.RedisConfig{URL: "not-a-url"}}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
