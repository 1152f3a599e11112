package commands

import (
	"errors"
	"time"

	"drycleaning/internal/pkg/errs"
	"drycleaning/internal/pkg/guard"
)

var (
	ErrExpireStaleSessionsCommandIsNotConstructed = errors.New(
		"ExpireStaleSessionsCommand must be created via NewExpireStaleSessionsCommand constructor",
	)
)

// ExpireStaleSessionsCommand expires every active session not touched
// since the cutoff. Issued periodically by the session expiry job so
// abandoned wizards do not stay open forever.
type ExpireStaleSessionsCommand struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewExpireStaleSessionsCommand creates a command expiring sessions last
// updated before the cutoff.
func NewExpireStaleSessionsCommand(cutoff time.Time) (ExpireStaleSessionsCommand, error) {
	if cutoff.IsZero() {
		return ExpireStaleSessionsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return ExpireStaleSessionsCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireStaleSessionsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleSessionsCommandIsNotConstructed)
}

// Cutoff returns the idle threshold.
func (c ExpireStaleSessionsCommand) Cutoff() time.Time {
	return c.cutoff
}
