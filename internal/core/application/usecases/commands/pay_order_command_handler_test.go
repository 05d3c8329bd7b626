package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateSource struct {
	overrides map[string]kernel.Rate
	fallback  kernel.Rate
	err       error
}

func (f *fakeRateSource) RestaurantRate(_ context.Context, restaurantID kernel.UUID) (kernel.Rate, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	rate, ok := f.overrides[restaurantID.String()]
	return rate, ok, nil
}

func (f *fakeRateSource) PlatformDefaultRate() kernel.Rate { return f.fallback }

type recordingAssigner struct {
	calls []kernel.UUID
	err   error
}

func (r *recordingAssigner) Handle(_ context.Context, cmd commands.AutoAssignCourierCommand) error {
	r.calls = append(r.calls, cmd.OrderID())
	return r.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustRate(t *testing.T, basisPoints int64) kernel.Rate {
	t.Helper()
	rate, err := kernel.NewRate(basisPoints)
	require.NoError(t, err)
	return rate
}

func payCommand(t *testing.T, orderID kernel.UUID) commands.PayOrderCommand {
	t.Helper()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewPayOrderCommand(orderID, "card", "tx-42", commands.ActorRoleCustomer, &customerID)
	require.NoError(t, err)
	return cmd
}

func TestPayOrderCommandHandler_Handle(t *testing.T) {
	rates := func() *fakeRateSource {
		return &fakeRateSource{fallback: mustRate(t, 800)}
	}

	t.Run("should settle the order and write one ledger entry", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 1000, nil, time.Now())

		h := commands.NewPayOrderCommandHandler(
			newFakeUoWFactory(state), rates(), nil, commands.AssignmentModeHall, discardLogger())
		require.NoError(t, h.Handle(t.Context(), payCommand(t, o.ID())))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, stored.Status())
		assert.Equal(t, order.PayPaid, stored.PayStatus())
		require.NotNil(t, stored.CommissionAmount())
		// 8% of the 90.00 charged, rounded half-up.
		assert.Equal(t, int64(720), stored.CommissionAmount().Cents())
		assert.Equal(t, "card", stored.PayMethod())
		assert.Equal(t, "tx-42", stored.PayTransactionID())
		require.NotNil(t, stored.PaidAt())

		entries, err := state.ledger.GetByOrder(t.Context(), o.ID())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, payment.EntryTypePay, entries[0].Type())
		assert.Equal(t, int64(9000), entries[0].Amount().Cents())
		assert.Equal(t, payment.EntryStatusSuccess, entries[0].Status())
		assert.Equal(t, commands.ActorRoleCustomer, entries[0].ActorRole())
	})

	t.Run("should prefer the restaurant rate override", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())

		src := rates()
		src.overrides = map[string]kernel.Rate{o.RestaurantID().String(): mustRate(t, 1200)}

		h := commands.NewPayOrderCommandHandler(
			newFakeUoWFactory(state), src, nil, commands.AssignmentModeHall, discardLogger())
		require.NoError(t, h.Handle(t.Context(), payCommand(t, o.ID())))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		require.NotNil(t, stored.CommissionAmount())
		assert.Equal(t, int64(1200), stored.CommissionAmount().Cents())
	})

	t.Run("should be idempotent for an already settled order", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 1000, nil, time.Now())

		h := commands.NewPayOrderCommandHandler(
			newFakeUoWFactory(state), rates(), nil, commands.AssignmentModeHall, discardLogger())
		cmd := payCommand(t, o.ID())
		require.NoError(t, h.Handle(t.Context(), cmd))
		require.NoError(t, h.Handle(t.Context(), cmd))

		entries, err := state.ledger.GetByOrder(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("should fall back to the total when the pay amount is zero", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 10000, nil, time.Now())
		require.True(t, o.PayAmount().IsZero())

		h := commands.NewPayOrderCommandHandler(
			newFakeUoWFactory(state), rates(), nil, commands.AssignmentModeHall, discardLogger())
		require.NoError(t, h.Handle(t.Context(), payCommand(t, o.ID())))

		entries, err := state.ledger.GetByOrder(t.Context(), o.ID())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(10000), entries[0].Amount().Cents())
	})

	t.Run("should dispatch a courier after settlement in AUTO mode", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		assigner := &recordingAssigner{}

		h := commands.NewPayOrderCommandHandler(
			newFakeUoWFactory(state), rates(), assigner, commands.AssignmentModeAuto, discardLogger())
		require.NoError(t, h.Handle(t.Context(), payCommand(t, o.ID())))

		require.Len(t, assigner.calls, 1)
		assert.True(t, assigner.calls[0].IsEqual(o.ID()))
	})

	t.Run("should not dispatch in HALL mode", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		assigner := &recordingAssigner{}

		h := commands.NewPayOrderCommandHandler(
			newFakeUoWFactory(state), rates(), assigner, commands.AssignmentModeHall, discardLogger())
		require.NoError(t, h.Handle(t.Context(), payCommand(t, o.ID())))

		assert.Empty(t, assigner.calls)
	})

	t.Run("should keep the payment when auto-assignment fails", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		assigner := &recordingAssigner{err: errors.New("no couriers")}

		h := commands.NewPayOrderCommandHandler(
			newFakeUoWFactory(state), rates(), assigner, commands.AssignmentModeAuto, discardLogger())
		require.NoError(t, h.Handle(t.Context(), payCommand(t, o.ID())))

		stored, err := state.orders.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.PayPaid, stored.PayStatus())
	})

	t.Run("should not retry assignment for an already settled order", func(t *testing.T) {
		state := newFakeState()
		o := seedOrder(t, state, 10000, 0, nil, time.Now())
		assigner := &recordingAssigner{}

		h := commands.NewPayOrderCommandHandler(
			newFakeUoWFactory(state), rates(), assigner, commands.AssignmentModeAuto, discardLogger())
		cmd := payCommand(t, o.ID())
		require.NoError(t, h.Handle(t.Context(), cmd))
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Len(t, assigner.calls, 1)
	})

	t.Run("should fail for an unknown order", func(t *testing.T) {
		state := newFakeState()
		h := commands.NewPayOrderCommandHandler(
			newFakeUoWFactory(state), rates(), nil, commands.AssignmentModeHall, discardLogger())

		err := h.Handle(t.Context(), payCommand(t, kernel.NewUUID()))
		require.Error(t, err)
	})
}
