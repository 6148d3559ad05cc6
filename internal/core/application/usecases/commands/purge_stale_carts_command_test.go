package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop/internal/core/application/usecases/commands"
)

func TestNewPurgeStaleCartsCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewPurgeStaleCartsCommand(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, cmd.MaxAge())
}

func TestNewPurgeStaleCartsCommand_NonPositiveMaxAge(t *testing.T) {
	_, err := commands.NewPurgeStaleCartsCommand(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrMaxAgeIsNotPositive)
}
