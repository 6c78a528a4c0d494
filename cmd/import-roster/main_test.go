package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KirkDiggler/knight-battles/internal/config"
	knighterr "github.com/KirkDiggler/knight-battles/internal/errors"
	"github.com/KirkDiggler/knight-battles/internal/roster"
)

const rosterFile = "../../data/knights.yaml"

func TestRun_RequiresRedisURL(t *testing.T) {
	var out bytes.Buffer
	cfg := &config.Config{Roster: config.RosterConfig{File: rosterFile}}

	err := run(context.Background(), cfg, zap.NewNop(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL is required")
	assert.Empty(t, out.String())
}

func TestRun_RosterErrors(t *testing.T) {
	dir := t.TempDir()
	incomplete := filepath.Join(dir, "incomplete.yaml")
	require.NoError(t, os.WriteFile(incomplete, []byte("lancelot:\n  name: Lancelot\n"), 0o600))

	tests := []struct {
		name string
		file string
	}{
		{name: "missing file", file: filepath.Join(dir, "missing.yaml")},
		{name: "incomplete record", file: incomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg := &config.Config{
				Roster: config.RosterConfig{File: tt.file},
				// unreachable: the roster must fail before any connection
				Redis: config.RedisConfig{URL: "redis://127.0.0.1:1/0"},
			}

			err := run(context.Background(), cfg, zap.NewNop(), &out)
			require.Error(t, err)
			assert.True(t, knighterr.IsConfiguration(err))
			assert.Empty(t, out.String())
		})
	}
}

func TestRun_InvalidRedisURL(t *testing.T) {
	var out bytes.Buffer
	cfg := &config.Config{
		Roster: config.RosterConfig{File: rosterFile},
		Redis:  config.RedisConfig{URL: "not-a-url"},
	}

	err := run(context.Background(), cfg, zap.NewNop(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}

func TestImportKnights(t *testing.T) {
	knights, err := roster.LoadFile(rosterFile)
	require.NoError(t, err)

	client, mock := redismock.NewClientMock()
	for _, id := range []string{"arthur", "lancelot", "mordred", "red_knight"} {
		data, err := json.Marshal(knights[id])
		require.NoError(t, err)
		mock.ExpectSet("camelot:knight:"+id, string(data), 0).SetVal("OK")
		mock.ExpectSAdd("camelot:ids", id).SetVal(1)
	}

	err = importKnights(context.Background(), client, "camelot", knights, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportKnights_StoreError(t *testing.T) {
	knights, err := roster.LoadFile(rosterFile)
	require.NoError(t, err)

	client, mock := redismock.NewClientMock()
	data, err := json.Marshal(knights["arthur"])
	require.NoError(t, err)
	mock.ExpectSet("camelot:knight:arthur", string(data), 0).SetErr(errors.New("redis error"))

	err = importKnights(context.Background(), client, "camelot", knights, zap.NewNop())
	require.Error(t, err)
	assert.True(t, knighterr.IsInternal(err))
}
