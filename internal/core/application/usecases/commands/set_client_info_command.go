package commands

import (
	"errors"

	"drycleaning/internal/core/domain/model/kernel"
	"drycleaning/internal/pkg/guard"
)

var ErrSetClientInfoCommandIsNotConstructed = errors.New(
	"SetClientInfoCommand must be created via NewSetClientInfoCommand constructor",
)

// SetClientInfoCommand records the order client and the receiving branch
// at the first wizard stage.
type SetClientInfoCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	clientID  kernel.UUID
	branchID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetClientInfoCommand creates a command to record client and branch.
func NewSetClientInfoCommand(sessionID, clientID, branchID kernel.UUID) (SetClientInfoCommand, error) {
	cmd := SetClientInfoCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setClientID(clientID),
		cmd.setBranchID(branchID),
	); err != nil {
		return SetClientInfoCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetClientInfoCommand) Validate() error {
	return c.guard.Validate(ErrSetClientInfoCommandIsNotConstructed)
}

// SessionID returns the wizard session identifier.
func (c SetClientInfoCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ClientID returns the selected client identifier.
func (c SetClientInfoCommand) ClientID() kernel.UUID {
	return c.clientID
}

// BranchID returns the receiving branch identifier.
func (c SetClientInfoCommand) BranchID() kernel.UUID {
	return c.branchID
}

func (c *SetClientInfoCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}
	c.sessionID = sessionID
	return nil
}

func (c *SetClientInfoCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	c.clientID = clientID
	return nil
}

func (c *SetClientInfoCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	c.branchID = branchID
	return nil
}
