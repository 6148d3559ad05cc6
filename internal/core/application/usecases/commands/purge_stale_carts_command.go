package commands

import (
	"errors"
	"time"

	"shop/internal/pkg/guard"
)

var (
	ErrPurgeStaleCartsCommandIsNotConstructed = errors.New(
		"PurgeStaleCartsCommand must be created via NewPurgeStaleCartsCommand constructor",
	)
	ErrMaxAgeIsNotPositive = errors.New("max age must be positive")
)

// PurgeStaleCartsCommand represents a request to delete carts untouched for
// longer than the given age. Issued periodically by the background job.
type PurgeStaleCartsCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

// NewPurgeStaleCartsCommand creates a command to purge carts older than maxAge.
func NewPurgeStaleCartsCommand(maxAge time.Duration) (PurgeStaleCartsCommand, error) {
	cmd := PurgeStaleCartsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setMaxAge(maxAge); err != nil {
		return PurgeStaleCartsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeStaleCartsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeStaleCartsCommandIsNotConstructed)
}

// MaxAge returns how long a cart may stay untouched before it is purged.
func (c PurgeStaleCartsCommand) MaxAge() time.Duration {
	return c.maxAge
}

func (c *PurgeStaleCartsCommand) setMaxAge(maxAge time.Duration) error {
	if maxAge <= 0 {
		return ErrMaxAgeIsNotPositive
	}

	c.maxAge = maxAge
	return nil
}
