package commands

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/payment"
)

// Cancellation reasons written by the reconciliation sweeps.
const (
	unpaidTimeoutReason    = "payment timeout — auto-canceled"
	noCourierTimeoutReason = "no courier available — auto-canceled and refunded"
)

// ReconcileConfig carries the sweep timeouts. A zero timeout disables the
// corresponding sweep.
type ReconcileConfig struct {
	// Mode is the assignment policy; the auto-assignment sweep only runs in
	// HALL mode, where nothing else would ever dispatch a courier.
	Mode AssignmentMode

	// UnpaidTimeout is how long an order may sit unpaid before it is
	// canceled.
	UnpaidTimeout time.Duration

	// AutoAssignDelay is how long a settled order may wait in the pickup
	// hall before a courier is dispatched for it.
	AutoAssignDelay time.Duration

	// PaidUnassignedTimeout is how long a settled order may stay without a
	// courier before it is canceled and refunded.
	PaidUnassignedTimeout time.Duration
}

// ReconcileOrdersCommandHandler runs the three stale-order sweeps:
//
//  1. unpaid orders past the payment timeout are canceled,
//  2. in HALL mode, settled orders stuck in the pickup hall past the
//     auto-assign delay get a courier dispatched and start delivering,
//  3. settled orders without a courier past the final timeout are canceled
//     and refunded on behalf of the system.
//
// Every order is processed in its own transaction; one failing order is
// logged and skipped so the rest of the sweep still runs.
type ReconcileOrdersCommandHandler struct {
	uowFactory UoWFactory
	assigner   OrderAssigner
	cfg        ReconcileConfig
	logger     *slog.Logger
}

// NewReconcileOrdersCommandHandler creates a handler running the stale-order
// sweeps with the given timeouts.
func NewReconcileOrdersCommandHandler(
	uowFactory UoWFactory,
	assigner OrderAssigner,
	cfg ReconcileConfig,
	logger *slog.Logger,
) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		cfg:        cfg,
		logger:     logger.With("component", "reconcile_orders_handler"),
	}
}

// Handle runs one reconciliation pass.
func (h *ReconcileOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	if h.cfg.UnpaidTimeout > 0 {
		h.sweepUnpaid(ctx, now)
	}
	if h.cfg.Mode == AssignmentModeHall && h.cfg.AutoAssignDelay > 0 && h.assigner != nil {
		h.sweepAutoAssign(ctx, now)
	}
	if h.cfg.PaidUnassignedTimeout > 0 {
		h.sweepExpireUnassigned(ctx, now)
	}

	return nil
}

// sweepUnpaid cancels orders that were never paid within the timeout.
func (h *ReconcileOrdersCommandHandler) sweepUnpaid(ctx context.Context, now time.Time) {
	ids, err := h.staleIDs(ctx, staleUnpaid, now.Add(-h.cfg.UnpaidTimeout))
	if err != nil {
		h.logger.ErrorContext(ctx, "Stale unpaid scan failed", "error", err)
		return
	}

	for _, id := range ids {
		if err := h.cancelUnpaid(ctx, id, now); err != nil {
			h.logger.WarnContext(ctx, "Stale unpaid cancellation failed",
				"orderID", id.String(), "error", err)
		}
	}
}

func (h *ReconcileOrdersCommandHandler) cancelUnpaid(ctx context.Context, id kernel.UUID, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	// The order may have been paid or canceled since the scan.
	if o.Status() != order.StatusCreated || o.PayStatus() != order.PayUnpaid {
		return nil
	}

	if _, err = o.Cancel(unpaidTimeoutReason, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// sweepAutoAssign dispatches couriers for settled orders stuck in the pickup
// hall and moves successfully assigned orders into delivery.
func (h *ReconcileOrdersCommandHandler) sweepAutoAssign(ctx context.Context, now time.Time) {
	ids, err := h.staleIDs(ctx, stalePaidUnassigned, now.Add(-h.cfg.AutoAssignDelay))
	if err != nil {
		h.logger.ErrorContext(ctx, "Stale unassigned scan failed", "error", err)
		return
	}

	for _, id := range ids {
		if err := h.assignAndStart(ctx, id, now); err != nil {
			h.logger.WarnContext(ctx, "Stale order auto-assignment failed",
				"orderID", id.String(), "error", err)
		}
	}
}

func (h *ReconcileOrdersCommandHandler) assignAndStart(ctx context.Context, id kernel.UUID, now time.Time) error {
	assignCmd, err := NewAutoAssignCourierCommand(id)
	if err != nil {
		return err
	}
	if err = h.assigner.Handle(ctx, assignCmd); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	// No courier means the dispatcher found nobody; the expiry sweep will
	// deal with the order eventually.
	if o.Courier() == nil || o.Status() != order.StatusPaid {
		return nil
	}

	if err = o.StartDelivery(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// sweepExpireUnassigned cancels and refunds settled orders no courier ever
// took.
func (h *ReconcileOrdersCommandHandler) sweepExpireUnassigned(ctx context.Context, now time.Time) {
	ids, err := h.staleIDs(ctx, stalePaidUnassigned, now.Add(-h.cfg.PaidUnassignedTimeout))
	if err != nil {
		h.logger.ErrorContext(ctx, "Expired unassigned scan failed", "error", err)
		return
	}

	for _, id := range ids {
		if err := h.cancelAndRefund(ctx, id, now); err != nil {
			h.logger.WarnContext(ctx, "Expired order cancellation failed",
				"orderID", id.String(), "error", err)
		}
	}
}

func (h *ReconcileOrdersCommandHandler) cancelAndRefund(ctx context.Context, id kernel.UUID, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	// The auto-assignment sweep or a courier may have taken the order since
	// the scan.
	if o.Status() != order.StatusPaid || o.PayStatus() != order.PayPaid || o.Courier() != nil {
		return nil
	}

	refundAmount := o.PayAmount()
	if _, err = o.Cancel(noCourierTimeoutReason, now); err != nil {
		return err
	}
	if err = o.MarkRefunded(now); err != nil {
		return err
	}

	entry, err := payment.NewLedgerEntry(
		kernel.NewUUID(),
		o.ID(),
		payment.EntryTypeRefund,
		refundAmount,
		o.PayMethod(),
		ActorRoleSystem,
		nil,
		payment.EntryStatusSuccess,
		o.CancelReason(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.LedgerRepository().Append(ctx, entry); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// staleKind selects which stale-order scan to run.
type staleKind int

const (
	staleUnpaid staleKind = iota
	stalePaidUnassigned
)

// staleIDs collects candidate order IDs in a short read-only transaction.
func (h *ReconcileOrdersCommandHandler) staleIDs(ctx context.Context, kind staleKind, cutoff time.Time) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if kind == staleUnpaid {
		return uow.OrderRepository().GetStaleUnpaid(ctx, cutoff)
	}
	return uow.OrderRepository().GetStalePaidUnassigned(ctx, cutoff)
}
