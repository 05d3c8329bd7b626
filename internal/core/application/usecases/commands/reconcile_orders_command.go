package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
)

var ErrReconcileOrdersCommandIsNotConstructed = errors.New(
	"ReconcileOrdersCommand must be created via NewReconcileOrdersCommand constructor",
)

// ReconcileOrdersCommand triggers one pass of the stale-order sweeps.
// Parameterless: the timeouts live in the handler's configuration.
type ReconcileOrdersCommand struct {
	guard kernel.ConstructorGuard
}

// NewReconcileOrdersCommand creates a command to run the reconciliation
// sweeps once.
func NewReconcileOrdersCommand() ReconcileOrdersCommand {
	return ReconcileOrdersCommand{guard: kernel.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileOrdersCommandIsNotConstructed if validation fails.
func (c ReconcileOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrdersCommandIsNotConstructed)
}
