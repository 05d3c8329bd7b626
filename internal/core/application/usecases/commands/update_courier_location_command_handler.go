package commands

import (
	"context"
	"time"
)

// UpdateCourierLocationCommandHandler records a courier's reported position
// together with the report time.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateCourierLocationCommandHandler creates a handler for courier
// position reports.
func NewUpdateCourierLocationCommandHandler(uowFactory CourierUoWFactory) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the position report.
func (h *UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
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
	c, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = c.UpdateLocation(cmd.Location(), time.Now()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
