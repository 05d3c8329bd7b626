// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"
)

// Actor roles recorded in the payment ledger and used for permission checks.
const (
	ActorRoleCustomer = "CUSTOMER"
	ActorRoleCourier  = "COURIER"
	ActorRoleAdmin    = "ADMIN"
	ActorRoleSystem   = "SYSTEM"
)

// AssignmentMode selects how settled orders reach a courier.
type AssignmentMode string

const (
	// AssignmentModeHall leaves settled orders in the pickup hall for
	// couriers to claim themselves.
	AssignmentModeHall AssignmentMode = "HALL"

	// AssignmentModeAuto dispatches a courier right after settlement.
	AssignmentModeAuto AssignmentMode = "AUTO"
)

// AssignmentModeFromString parses an assignment mode from configuration.
func AssignmentModeFromString(s string) (AssignmentMode, error) {
	switch AssignmentMode(s) {
	case AssignmentModeHall:
		return AssignmentModeHall, nil
	case AssignmentModeAuto:
		return AssignmentModeAuto, nil
	default:
		return "", errs.NewValidationError("assignmentMode")
	}
}

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// LedgerRepoFactory provides access to the payment ledger within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	// Used when commands only modify courier aggregates.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW manages transactions across orders, couriers and the payment
	// ledger. Used for commands that coordinate changes between aggregates,
	// such as settlement, assignment and cancellation with refund.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   courierRepo := uow.CourierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		LedgerRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
