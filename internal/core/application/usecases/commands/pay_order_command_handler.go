package commands

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/payment"
	"takeout/internal/core/ports"
)

// OrderAssigner dispatches a courier for a settled order. Implemented by
// AutoAssignCourierCommandHandler; abstracted so the settlement handler can be
// tested without a dispatcher.
type OrderAssigner interface {
	Handle(ctx context.Context, cmd AutoAssignCourierCommand) error
}

// PayOrderCommandHandler settles orders. The operation is idempotent: an
// order that is already paid is left untouched and no second ledger entry is
// written, so payment provider retries are safe.
//
// Commission is computed at settlement time from the restaurant's rate
// override, falling back to the platform default, applied to the charged
// amount with half-up rounding.
//
// When the assignment mode is AUTO the handler additionally attempts to
// dispatch a courier after the settlement transaction commits. Assignment
// failures are logged and never fail the payment.
type PayOrderCommandHandler struct {
	uowFactory UoWFactory
	rates      ports.CommissionRateSource
	assigner   OrderAssigner
	mode       AssignmentMode
	logger     *slog.Logger
}

// NewPayOrderCommandHandler creates a handler for order settlement.
// The assigner may be nil when the assignment mode is HALL.
func NewPayOrderCommandHandler(
	uowFactory UoWFactory,
	rates ports.CommissionRateSource,
	assigner OrderAssigner,
	mode AssignmentMode,
	logger *slog.Logger,
) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory: uowFactory,
		rates:      rates,
		assigner:   assigner,
		mode:       mode,
		logger:     logger.With("component", "pay_order_handler"),
	}
}

// Handle processes the settlement command.
func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	settled, err := h.markPaidIfNeeded(ctx, cmd)
	if err != nil {
		return err
	}

	if settled && h.mode == AssignmentModeAuto && h.assigner != nil {
		h.tryAutoAssign(ctx, cmd.OrderID())
	}

	return nil
}

// markPaidIfNeeded runs the settlement transaction. Returns false without
// touching anything when the order is already paid.
func (h *PayOrderCommandHandler) markPaidIfNeeded(ctx context.Context, cmd PayOrderCommand) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if o.PayStatus() == order.PayPaid {
		return false, nil
	}

	now := time.Now()
	amount := o.EnsurePayAmount()
	rate, err := h.commissionRate(ctx, o.RestaurantID())
	if err != nil {
		return false, err
	}

	if err = o.MarkPaid(amount.MulRateHalfUp(rate), cmd.Method(), cmd.TransactionID(), now); err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	entry, err := payment.NewLedgerEntry(
		kernel.NewUUID(),
		o.ID(),
		payment.EntryTypePay,
		amount,
		cmd.Method(),
		cmd.ActorRole(),
		cmd.ActorID(),
		payment.EntryStatusSuccess,
		"",
		now,
	)
	if err != nil {
		return false, err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func (h *PayOrderCommandHandler) commissionRate(ctx context.Context, restaurantID kernel.UUID) (kernel.Rate, error) {
	rate, ok, err := h.rates.RestaurantRate(ctx, restaurantID)
	if err != nil {
		return 0, err
	}
	if !ok {
		rate = h.rates.PlatformDefaultRate()
	}

	return rate, nil
}

func (h *PayOrderCommandHandler) tryAutoAssign(ctx context.Context, orderID kernel.UUID) {
	assignCmd, err := NewAutoAssignCourierCommand(orderID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Auto-assignment after settlement skipped", "error", err)
		return
	}

	if err = h.assigner.Handle(ctx, assignCmd); err != nil {
		h.logger.WarnContext(ctx, "Auto-assignment after settlement failed",
			"orderID", orderID.String(), "error", err)
	}
}
