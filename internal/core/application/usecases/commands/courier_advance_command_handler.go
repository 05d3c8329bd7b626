package commands

import (
	"context"
	"time"
)

// CourierAdvanceCommandHandler applies a courier's delivery progress report
// to the order. Only the assigned courier may advance an order, and only
// along the delivery path. Completing the delivery releases the courier and
// decrements their workload in the same transaction.
type CourierAdvanceCommandHandler struct {
	uowFactory UoWFactory
}

// NewCourierAdvanceCommandHandler creates a handler for courier status
// reports.
func NewCourierAdvanceCommandHandler(uowFactory UoWFactory) CourierAdvanceCommandHandler {
	return CourierAdvanceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status report command.
func (h *CourierAdvanceCommandHandler) Handle(ctx context.Context, cmd CourierAdvanceCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	released, err := o.AdvanceByCourier(cmd.CourierID(), cmd.Next(), time.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if released != nil {
		if err = uow.CourierRepository().DecrementLoad(ctx, *released); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
