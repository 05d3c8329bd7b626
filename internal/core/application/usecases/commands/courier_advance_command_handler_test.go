package commands_test

import (
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advanceCommand(t *testing.T, orderID, courierID kernel.UUID, next order.Status) commands.CourierAdvanceCommand {
	t.Helper()
	cmd, err := commands.NewCourierAdvanceCommand(orderID, courierID, next)
	require.NoError(t, err)
	return cmd
}

func TestCourierAdvanceCommandHandler_Handle(t *testing.T) {
	t.Run("should start delivery for the assigned courier", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())
		c := seedCourier(t, state, "runner", 1, nil)
		require.NoError(t, o.AssignCourier(c.ID()))

		h := commands.NewCourierAdvanceCommandHandler(newFakeUoWFactory(state))
		require.NoError(t, h.Handle(t.Context(),
			advanceCommand(t, o.ID(), c.ID(), order.StatusDelivering)))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivering, stored.Status())
	})

	t.Run("should complete delivery and release the courier", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())
		c := seedCourier(t, state, "runner", 0, nil)
		require.NoError(t, o.ClaimByCourier(c.ID()))
		require.NoError(t, state.couriers.IncrementLoad(t.Context(), c.ID()))

		h := commands.NewCourierAdvanceCommandHandler(newFakeUoWFactory(state))
		require.NoError(t, h.Handle(t.Context(),
			advanceCommand(t, o.ID(), c.ID(), order.StatusCompleted)))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, stored.Status())
		assert.Nil(t, stored.Courier())
		require.NotNil(t, stored.FinishedAt())

		reloaded, err := state.couriers.Get(t.Context(), c.ID())
		require.NoError(t, err)
		assert.Equal(t, 0, reloaded.CurrentLoad())
	})

	t.Run("should forbid a courier the order is not assigned to", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())
		assigned := seedCourier(t, state, "assigned", 0, nil)
		other := seedCourier(t, state, "other", 0, nil)
		require.NoError(t, o.ClaimByCourier(assigned.ID()))

		h := commands.NewCourierAdvanceCommandHandler(newFakeUoWFactory(state))
		err := h.Handle(t.Context(),
			advanceCommand(t, o.ID(), other.ID(), order.StatusCompleted))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should reject a stage a courier may not set", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())
		c := seedCourier(t, state, "runner", 0, nil)
		require.NoError(t, o.ClaimByCourier(c.ID()))

		h := commands.NewCourierAdvanceCommandHandler(newFakeUoWFactory(state))
		err := h.Handle(t.Context(),
			advanceCommand(t, o.ID(), c.ID(), order.StatusCanceled))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}
