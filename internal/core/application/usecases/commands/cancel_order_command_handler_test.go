package commands_test

import (
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/payment"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cancelCommand(t *testing.T, orderID kernel.UUID, reason, role string, actorID *kernel.UUID) commands.CancelOrderCommand {
	t.Helper()
	cmd, err := commands.NewCancelOrderCommand(orderID, reason, role, actorID)
	require.NoError(t, err)
	return cmd
}

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should cancel an unpaid order without refund", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 5000, 0, nil, time.Now())
		h := commands.NewCancelOrderCommandHandler(newFakeUoWFactory(state))

		require.NoError(t, h.Handle(t.Context(),
			cancelCommand(t, o.ID(), "changed my mind", commands.ActorRoleAdmin, nil)))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusCanceled, stored.Status())
		assert.Equal(t, order.PayUnpaid, stored.PayStatus())
		assert.Equal(t, "changed my mind", stored.CancelReason())
		require.NotNil(t, stored.FinishedAt())

		entries, err := state.ledger.GetByOrder(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("should refund a paid order and write a refund entry", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 1000, nil, time.Now())
		settleOrder(t, o, 720, time.Now())
		h := commands.NewCancelOrderCommandHandler(newFakeUoWFactory(state))

		require.NoError(t, h.Handle(t.Context(),
			cancelCommand(t, o.ID(), "", commands.ActorRoleAdmin, nil)))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusCanceled, stored.Status())
		assert.Equal(t, order.PayRefunded, stored.PayStatus())
		require.NotNil(t, stored.CommissionAmount())
		assert.True(t, stored.CommissionAmount().IsZero())
		require.NotNil(t, stored.RefundedAt())
		assert.Equal(t, order.DefaultCancelReason, stored.CancelReason())

		entries, err := state.ledger.GetByOrder(t.Context(), o.ID())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, payment.EntryTypeRefund, entries[0].Type())
		assert.Equal(t, int64(9000), entries[0].Amount().Cents())
		assert.Equal(t, "card", entries[0].Method())
	})

	t.Run("should release the assigned courier and decrement its load", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())
		c := seedCourier(t, state, "Pavel", 2, nil)
		require.NoError(t, o.AssignCourier(c.ID()))

		h := commands.NewCancelOrderCommandHandler(newFakeUoWFactory(state))
		require.NoError(t, h.Handle(t.Context(),
			cancelCommand(t, o.ID(), "restaurant closed", commands.ActorRoleAdmin, nil)))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Nil(t, stored.Courier())

		reloaded, err := state.couriers.Get(t.Context(), c.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.CurrentLoad())
	})

	t.Run("should succeed without side effects for an already canceled order", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 5000, 0, nil, time.Now())
		_, err := o.Cancel("first", time.Now())
		require.NoError(t, err)

		h := commands.NewCancelOrderCommandHandler(newFakeUoWFactory(state))
		require.NoError(t, h.Handle(t.Context(),
			cancelCommand(t, o.ID(), "second", commands.ActorRoleAdmin, nil)))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, "first", stored.CancelReason())
	})

	t.Run("should let a customer cancel only their own order", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 5000, 0, nil, time.Now())
		h := commands.NewCancelOrderCommandHandler(newFakeUoWFactory(state))

		stranger := kernel.NewUUID()
		err := h.Handle(t.Context(),
			cancelCommand(t, o.ID(), "", commands.ActorRoleCustomer, &stranger))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)

		owner := o.CustomerID()
		require.NoError(t, h.Handle(t.Context(),
			cancelCommand(t, o.ID(), "", commands.ActorRoleCustomer, &owner)))
	})

	t.Run("should reject cancellation once delivery started", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 5000, 0, nil, time.Now())
		settleOrder(t, o, 400, time.Now())
		c := seedCourier(t, state, "Oleg", 0, nil)
		require.NoError(t, o.ClaimByCourier(c.ID()))

		h := commands.NewCancelOrderCommandHandler(newFakeUoWFactory(state))
		err := h.Handle(t.Context(),
			cancelCommand(t, o.ID(), "", commands.ActorRoleAdmin, nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}
