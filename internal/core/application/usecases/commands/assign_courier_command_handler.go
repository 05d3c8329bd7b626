package commands

import (
	"context"

	"takeout/internal/pkg/errs"
)

// AssignCourierCommandHandler puts a specific courier on an order at an
// operator's request. The target courier must exist and be ACTIVE. When the
// order already carries a different courier that courier is released first;
// assigning the same courier again succeeds without side effects.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignCourierCommandHandler creates a handler for manual courier
// assignment.
func NewAssignCourierCommandHandler(uowFactory UoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the manual assignment command.
func (h *AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	target, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !target.IsActive() {
		return errs.NewConflictError("courier is not active")
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	previous := o.Courier()
	if previous != nil && previous.IsEqual(cmd.CourierID()) {
		return nil
	}

	if err = o.AssignCourier(cmd.CourierID()); err != nil {
		return err
	}

	if previous != nil {
		if err = courierRepo.DecrementLoad(ctx, *previous); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = courierRepo.IncrementLoad(ctx, cmd.CourierID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
