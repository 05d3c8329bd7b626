package commands

import (
	"context"

	"takeout/internal/pkg/errs"
)

// CourierPickupCommandHandler lets a courier claim a settled order from the
// pickup hall. The order row is locked for the duration of the transaction
// so concurrent claims of the same order serialize: the loser observes the
// winner's courier on the order and receives a conflict.
//
// A successful claim moves the order straight to DELIVERING and increments
// the courier's workload in the same transaction.
type CourierPickupCommandHandler struct {
	uowFactory UoWFactory
}

// NewCourierPickupCommandHandler creates a handler for hall pickups.
func NewCourierPickupCommandHandler(uowFactory UoWFactory) CourierPickupCommandHandler {
	return CourierPickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup command.
func (h *CourierPickupCommandHandler) Handle(ctx context.Context, cmd CourierPickupCommand) error {
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
	claimer, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !claimer.IsActive() {
		return errs.NewForbiddenError(ActorRoleCourier, "courier is not active")
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.ClaimByCourier(cmd.CourierID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = courierRepo.IncrementLoad(ctx, cmd.CourierID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
