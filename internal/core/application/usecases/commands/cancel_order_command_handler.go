package commands

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/payment"
	"takeout/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels orders. Cancelling an already canceled
// order succeeds without side effects so client retries are safe. When the
// order was paid the charged amount is refunded: the pay status moves to
// REFUNDED, the commission is voided and a REFUND ledger entry is written in
// the same transaction. A courier assigned to the order is released and its
// workload decremented.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if cmd.ActorRole() == ActorRoleCustomer {
		if cmd.ActorID() == nil || !o.CustomerID().IsEqual(*cmd.ActorID()) {
			return errs.NewForbiddenError(ActorRoleCustomer, "customers may only cancel their own orders")
		}
	}

	if o.Status() == order.StatusCanceled {
		return nil
	}

	now := time.Now()
	needsRefund := o.PayStatus() == order.PayPaid
	refundAmount := o.PayAmount()

	released, err := o.Cancel(cmd.Reason(), now)
	if err != nil {
		return err
	}

	if needsRefund {
		if err = h.recordRefund(ctx, uow, o, cmd, refundAmount, now); err != nil {
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

func (h *CancelOrderCommandHandler) recordRefund(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd CancelOrderCommand,
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
		cmd.ActorRole(),
		cmd.ActorID(),
		payment.EntryStatusSuccess,
		o.CancelReason(),
		now,
	)
	if err != nil {
		return err
	}

	return uow.LedgerRepository().Append(ctx, entry)
}
