package commands

import (
	"context"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/services"
	"takeout/internal/pkg/errs"
)

// AutoAssignCourierCommandHandler dispatches a courier for a settled order.
// Eligible orders are paid, not yet delivered and have no courier. The pool
// of ACTIVE couriers is scored by the dispatcher; an empty pool or a pool
// with no usable candidate leaves the order unassigned without error.
//
// Assignment and the workload increment happen in one transaction so the
// courier's counted load can never drift from the orders that reference it.
type AutoAssignCourierCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.CourierDispatcher
}

// NewAutoAssignCourierCommandHandler creates a handler for automatic courier
// dispatch.
func NewAutoAssignCourierCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.CourierDispatcher,
) AutoAssignCourierCommandHandler {
	return AutoAssignCourierCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the dispatch command.
func (h *AutoAssignCourierCommandHandler) Handle(ctx context.Context, cmd AutoAssignCourierCommand) error {
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

	if o.Courier() != nil {
		// Someone got there first, nothing left to do.
		return nil
	}

	if o.PayStatus() != order.PayPaid ||
		(o.Status() != order.StatusPaid && o.Status() != order.StatusDelivering) {
		return errs.NewConflictError("order is not ready for courier assignment")
	}

	courierRepo := uow.CourierRepository()
	pool, err := courierRepo.GetAssignable(ctx)
	if err != nil {
		return err
	}

	selected, err := h.dispatcher.SelectCourier(ctx, o, pool)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}

	if err = o.AssignCourier(selected.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = courierRepo.IncrementLoad(ctx, selected.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
