package commands_test

import (
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/payment"
	"takeout/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentModeFromString(t *testing.T) {
	mode, err := commands.AssignmentModeFromString("HALL")
	require.NoError(t, err)
	assert.Equal(t, commands.AssignmentModeHall, mode)

	mode, err = commands.AssignmentModeFromString("AUTO")
	require.NoError(t, err)
	assert.Equal(t, commands.AssignmentModeAuto, mode)

	_, err = commands.AssignmentModeFromString("push")
	require.Error(t, err)
}

func reconcileHandler(state *fakeState, cfg commands.ReconcileConfig) commands.ReconcileOrdersCommandHandler {
	factory := newFakeUoWFactory(state)
	assigner := commands.NewAutoAssignCourierCommandHandler(factory, services.NewCourierDispatcher(stubDistances{}))
	return commands.NewReconcileOrdersCommandHandler(factory, &assigner, cfg, discardLogger())
}

func TestReconcileOrdersCommandHandler_Handle(t *testing.T) {
	t.Run("should cancel unpaid orders past the payment timeout", func(t *testing.T) {
		state := newFakeState()
		stale := seedOrder(t, state, 5000, 0, nil, time.Now().Add(-16*time.Minute))
		fresh := seedOrder(t, state, 5000, 0, nil, time.Now())

		h := reconcileHandler(state, commands.ReconcileConfig{
			Mode:          commands.AssignmentModeHall,
			UnpaidTimeout: 15 * time.Minute,
		})
		require.NoError(t, h.Handle(t.Context(), commands.NewReconcileOrdersCommand()))

		staleStored, err := state.orders.Get(t.Context(), stale.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusCanceled, staleStored.Status())
		assert.Equal(t, "payment timeout — auto-canceled", staleStored.CancelReason())

		entries, err := state.ledger.GetByOrder(t.Context(), stale.ID())
		require.NoError(t, err)
		assert.Empty(t, entries)

		freshStored, err := state.orders.Get(t.Context(), fresh.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusCreated, freshStored.Status())
	})

	t.Run("should leave unpaid orders alone when the timeout is disabled", func(t *testing.T) {
		state := newFakeState()
		stale := seedOrder(t, state, 5000, 0, nil, time.Now().Add(-24*time.Hour))

		h := reconcileHandler(state, commands.ReconcileConfig{Mode: commands.AssignmentModeHall})
		require.NoError(t, h.Handle(t.Context(), commands.NewReconcileOrdersCommand()))

		stored, err := state.orders.Get(t.Context(), stale.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusCreated, stored.Status())
	})

	t.Run("should dispatch stuck hall orders and start their delivery", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now().Add(-time.Hour))
		settleOrder(t, o, 800, time.Now().Add(-10*time.Minute))
		c := seedCourier(t, state, "standby", 0, nil)

		h := reconcileHandler(state, commands.ReconcileConfig{
			Mode:            commands.AssignmentModeHall,
			AutoAssignDelay: 5 * time.Minute,
		})
		require.NoError(t, h.Handle(t.Context(), commands.NewReconcileOrdersCommand()))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivering, stored.Status())
		require.NotNil(t, stored.Courier())
		assert.True(t, stored.Courier().IsEqual(c.ID()))

		reloaded, err := state.couriers.Get(t.Context(), c.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.CurrentLoad())
	})

	t.Run("should keep a stuck order waiting when nobody can take it", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now().Add(-time.Hour))
		settleOrder(t, o, 800, time.Now().Add(-10*time.Minute))

		h := reconcileHandler(state, commands.ReconcileConfig{
			Mode:            commands.AssignmentModeHall,
			AutoAssignDelay: 5 * time.Minute,
		})
		require.NoError(t, h.Handle(t.Context(), commands.NewReconcileOrdersCommand()))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, stored.Status())
		assert.Nil(t, stored.Courier())
	})

	t.Run("should not dispatch in AUTO mode", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now().Add(-time.Hour))
		settleOrder(t, o, 800, time.Now().Add(-10*time.Minute))
		seedCourier(t, state, "standby", 0, nil)

		h := reconcileHandler(state, commands.ReconcileConfig{
			Mode:            commands.AssignmentModeAuto,
			AutoAssignDelay: 5 * time.Minute,
		})
		require.NoError(t, h.Handle(t.Context(), commands.NewReconcileOrdersCommand()))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Nil(t, stored.Courier())
	})

	t.Run("should cancel and refund orders no courier ever took", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 1000, nil, time.Now().Add(-2*time.Hour))
		settleOrder(t, o, 720, time.Now().Add(-time.Hour))

		h := reconcileHandler(state, commands.ReconcileConfig{
			Mode:                  commands.AssignmentModeHall,
			PaidUnassignedTimeout: 30 * time.Minute,
		})
		require.NoError(t, h.Handle(t.Context(), commands.NewReconcileOrdersCommand()))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusCanceled, stored.Status())
		assert.Equal(t, order.PayRefunded, stored.PayStatus())
		assert.Equal(t, "no courier available — auto-canceled and refunded", stored.CancelReason())

		entries, err := state.ledger.GetByOrder(t.Context(), o.ID())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, payment.EntryTypeRefund, entries[0].Type())
		assert.Equal(t, int64(9000), entries[0].Amount().Cents())
		assert.Equal(t, commands.ActorRoleSystem, entries[0].ActorRole())
		assert.Nil(t, entries[0].ActorID())
	})

	t.Run("should prefer dispatch over expiry when both sweeps match", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now().Add(-2*time.Hour))
		settleOrder(t, o, 800, time.Now().Add(-time.Hour))
		seedCourier(t, state, "standby", 0, nil)

		h := reconcileHandler(state, commands.ReconcileConfig{
			Mode:                  commands.AssignmentModeHall,
			AutoAssignDelay:       5 * time.Minute,
			PaidUnassignedTimeout: 30 * time.Minute,
		})
		require.NoError(t, h.Handle(t.Context(), commands.NewReconcileOrdersCommand()))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivering, stored.Status())
		assert.Equal(t, order.PayPaid, stored.PayStatus())
	})
}
