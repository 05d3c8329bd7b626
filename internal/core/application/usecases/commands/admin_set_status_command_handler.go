package commands

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/payment"
)

// AdminSetStatusCommandHandler forces an order into an operator-chosen
// lifecycle status. The aggregate enforces the override rules; the handler
// adds the refund bookkeeping when a paid order is forced to CANCELED and
// releases the courier's workload when the override ends the order.
type AdminSetStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewAdminSetStatusCommandHandler creates a handler for operator status
// overrides.
func NewAdminSetStatusCommandHandler(uowFactory UoWFactory) AdminSetStatusCommandHandler {
	return AdminSetStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the override command.
func (h *AdminSetStatusCommandHandler) Handle(ctx context.Context, cmd AdminSetStatusCommand) error {
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

	now := time.Now()
	needsRefund := cmd.Next() == order.StatusCanceled && o.PayStatus() == order.PayPaid
	refundAmount := o.PayAmount()

	released, err := o.OverrideStatus(cmd.Next(), now)
	if err != nil {
		return err
	}

	if needsRefund {
		if err = h.recordRefund(ctx, uow, o, cmd.ActorID(), refundAmount, now); err != nil {
			return err
		}
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

func (h *AdminSetStatusCommandHandler) recordRefund(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	actorID *kernel.UUID,
	amount kernel.Money,
	now time.Time,
) error {
	if err := o.MarkRefunded(now); err != nil {
		return err
	}

	entry, err := payment.NewLedgerEntry(
		kernel.NewUUID(),
		o.ID(),
		payment.EntryTypeRefund,
		amount,
		o.PayMethod(),
		ActorRoleAdmin,
		actorID,
		payment.EntryStatusSuccess,
		o.CancelReason(),
		now,
	)
	if err != nil {
		return err
	}

	return uow.LedgerRepository().Append(ctx, entry)
}
