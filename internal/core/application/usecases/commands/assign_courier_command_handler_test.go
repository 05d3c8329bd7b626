package commands_test

import (
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignCommand(t *testing.T, orderID, courierID kernel.UUID) commands.AssignCourierCommand {
	t.Helper()
	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	require.NoError(t, err)
	return cmd
}

func TestAssignCourierCommandHandler_Handle(t *testing.T) {
	t.Run("should assign the courier and increment its load", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())
		c := seedCourier(t, state, "Dmitry", 0, nil)

		h := commands.NewAssignCourierCommandHandler(newFakeUoWFactory(state))
		require.NoError(t, h.Handle(t.Context(), assignCommand(t, o.ID(), c.ID())))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		require.NotNil(t, stored.Courier())
		assert.True(t, stored.Courier().IsEqual(c.ID()))

		reloaded, err := state.couriers.Get(t.Context(), c.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.CurrentLoad())
	})

	t.Run("should move the load when replacing the courier", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())
		first := seedCourier(t, state, "first", 1, nil)
		second := seedCourier(t, state, "second", 0, nil)
		require.NoError(t, o.AssignCourier(first.ID()))

		h := commands.NewAssignCourierCommandHandler(newFakeUoWFactory(state))
		require.NoError(t, h.Handle(t.Context(), assignCommand(t, o.ID(), second.ID())))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.True(t, stored.Courier().IsEqual(second.ID()))

		firstReloaded, err := state.couriers.Get(t.Context(), first.ID())
		require.NoError(t, err)
		assert.Equal(t, 0, firstReloaded.CurrentLoad())
		secondReloaded, err := state.couriers.Get(t.Context(), second.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, secondReloaded.CurrentLoad())
	})

	t.Run("should not double count when assigning the same courier twice", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())
		c := seedCourier(t, state, "same", 0, nil)

		h := commands.NewAssignCourierCommandHandler(newFakeUoWFactory(state))
		cmd := assignCommand(t, o.ID(), c.ID())
		require.NoError(t, h.Handle(t.Context(), cmd))
		require.NoError(t, h.Handle(t.Context(), cmd))

		reloaded, err := state.couriers.Get(t.Context(), c.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.CurrentLoad())
	})

	t.Run("should reject a disabled courier", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())
		c := seedCourier(t, state, "off", 0, nil)
		reloaded, err := state.couriers.Get(t.Context(), c.ID())
		require.NoError(t, err)
		reloaded.Disable()
		require.NoError(t, state.couriers.Update(t.Context(), reloaded))

		h := commands.NewAssignCourierCommandHandler(newFakeUoWFactory(state))
		err = h.Handle(t.Context(), assignCommand(t, o.ID(), c.ID()))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject an unsettled order", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		c := seedCourier(t, state, "ready", 0, nil)

		h := commands.NewAssignCourierCommandHandler(newFakeUoWFactory(state))
		err := h.Handle(t.Context(), assignCommand(t, o.ID(), c.ID()))
		require.Error(t, err)
	})

	t.Run("should fail for an unknown courier", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		settleOrder(t, o, 800, time.Now())

		h := commands.NewAssignCourierCommandHandler(newFakeUoWFactory(state))
		err := h.Handle(t.Context(), assignCommand(t, o.ID(), kernel.NewUUID()))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
