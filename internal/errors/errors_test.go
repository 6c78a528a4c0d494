package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	knighterr "github.com/KirkDiggler/knight-battles/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCode(t *testing.T) {
	cause := knighterr.Configurationf("knight %q has no weapon", "arthur").
		WithMeta("knight_id", "arthur")

	wrapped := knighterr.Wrap(cause, "failed to build coordinator")
	require.NotNil(t, wrapped)

	assert.Equal(t, knighterr.CodeConfiguration, wrapped.Code)
	assert.True(t, knighterr.IsConfiguration(wrapped))
	assert.Equal(t, "arthur", knighterr.GetMeta(wrapped)["knight_id"])
	assert.Equal(t, `failed to build coordinator: knight "arthur" has no weapon`, wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := knighterr.Wrap(stderrors.New("connection refused"), "failed to list roster")

	assert.Equal(t, knighterr.CodeUnknown, knighterr.GetCode(wrapped))
	assert.False(t, knighterr.IsNotFound(wrapped))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, knighterr.Wrap(nil, "nothing"))
	assert.Nil(t, knighterr.Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, knighterr.WrapWithCode(nil, knighterr.CodeInternal, "nothing"))
}

func TestWrapWithCode(t *testing.T) {
	wrapped := knighterr.WrapWithCode(stderrors.New("bad json"), knighterr.CodeInternal, "decode knight")

	assert.Equal(t, knighterr.CodeInternal, wrapped.Code)
	assert.Equal(t, "decode knight: bad json", wrapped.Error())
}

func TestIs_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("run: %w", knighterr.InvalidDamagef("damage %d is negative", -3))

	assert.True(t, knighterr.IsInvalidDamage(err))
	assert.Equal(t, knighterr.CodeInvalidDamage, knighterr.GetCode(err))
	assert.Nil(t, knighterr.GetMeta(stderrors.New("plain")))
}

func TestPredicates(t *testing.T) {
	assert.True(t, knighterr.IsNotFound(knighterr.NotFoundf("knight %q", "gawain")))
	assert.True(t, knighterr.IsInvalidArgument(knighterr.InvalidArgument("id is required")))
	assert.True(t, knighterr.IsFailedPrecondition(knighterr.FailedPreconditionf("already %s", "reported")))
	assert.True(t, knighterr.IsConfiguration(knighterr.Configuration("empty roster")))
	assert.True(t, knighterr.IsInternal(knighterr.Internalf("store returned %d records", 0)))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *knighterr.Error
		expected knighterr.Code
		message  string
	}{
		{name: "not found", err: knighterr.NotFound("no knight"), expected: knighterr.CodeNotFound, message: "no knight"},
		{name: "invalid damage", err: knighterr.InvalidDamage("negative"), expected: knighterr.CodeInvalidDamage, message: "negative"},
		{name: "invalid argument", err: knighterr.InvalidArgumentf("id %q", ""), expected: knighterr.CodeInvalidArgument, message: `id ""`},
		{name: "failed precondition", err: knighterr.FailedPrecondition("reported"), expected: knighterr.CodeFailedPrecondition, message: "reported"},
		{name: "internal", err: knighterr.Internal("broken"), expected: knighterr.CodeInternal, message: "broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, knighterr.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Message)
			assert.Nil(t, tt.err.Cause)
		})
	}
}
