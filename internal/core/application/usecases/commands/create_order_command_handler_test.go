package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/payment"
	"takeout/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePromotionRepository struct {
	promotions []*payment.Promotion
	err        error
}

func (f *fakePromotionRepository) GetActiveFullReduction(
	_ context.Context, _ kernel.UUID, _ time.Time,
) ([]*payment.Promotion, error) {
	return f.promotions, f.err
}

func fullReduction(t *testing.T, restaurantID kernel.UUID, thresholdCents, discountCents int64) *payment.Promotion {
	t.Helper()
	now := time.Now()
	p, err := payment.NewPromotion(
		kernel.NewUUID(), restaurantID,
		mustMoney(t, thresholdCents), mustMoney(t, discountCents),
		now.Add(-time.Hour), now.Add(time.Hour), true,
	)
	require.NoError(t, err)
	return p
}

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should apply the best active promotion to the pay amount", func(t *testing.T) {
		state := newFakeState()
		factory := fakeOrderUoWFactory{inner: newFakeUoWFactory(state)}
		restaurantID := kernel.NewUUID()
		promos := &fakePromotionRepository{promotions: []*payment.Promotion{
			fullReduction(t, restaurantID, 8000, 1000),
			fullReduction(t, restaurantID, 20000, 3000),
		}}

		h := commands.NewCreateOrderCommandHandler(factory, promos, services.NewDiscountCalculator())
		orderID := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(
			orderID, kernel.NewUUID(), restaurantID,
			mustMoney(t, 10000), testDestination(t, nil),
		)
		require.NoError(t, err)

		require.NoError(t, h.Handle(t.Context(), cmd))

		stored, err := state.orders.Get(t.Context(), orderID)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), stored.TotalAmount().Cents())
		assert.Equal(t, int64(1000), stored.DiscountAmount().Cents())
		assert.Equal(t, int64(9000), stored.PayAmount().Cents())
	})

	t.Run("should create order without discount when no promotion applies", func(t *testing.T) {
		state := newFakeState()
		factory := fakeOrderUoWFactory{inner: newFakeUoWFactory(state)}
		promos := &fakePromotionRepository{}

		h := commands.NewCreateOrderCommandHandler(factory, promos, services.NewDiscountCalculator())
		orderID := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(
			orderID, kernel.NewUUID(), kernel.NewUUID(),
			mustMoney(t, 4500), testDestination(t, nil),
		)
		require.NoError(t, err)

		require.NoError(t, h.Handle(t.Context(), cmd))

		stored, err := state.orders.Get(t.Context(), orderID)
		require.NoError(t, err)
		assert.True(t, stored.DiscountAmount().IsZero())
		assert.Equal(t, int64(4500), stored.PayAmount().Cents())
	})

	t.Run("should reject a command built without the constructor", func(t *testing.T) {
		state := newFakeState()
		factory := fakeOrderUoWFactory{inner: newFakeUoWFactory(state)}
		h := commands.NewCreateOrderCommandHandler(factory, &fakePromotionRepository{}, services.NewDiscountCalculator())

		err := h.Handle(t.Context(), commands.CreateOrderCommand{})
		require.Error(t, err)
		assert.Empty(t, state.orders.orders)
	})

	t.Run("should fail when the promotion lookup fails", func(t *testing.T) {
		state := newFakeState()
		factory := fakeOrderUoWFactory{inner: newFakeUoWFactory(state)}
		promos := &fakePromotionRepository{err: errors.New("db down")}
		h := commands.NewCreateOrderCommandHandler(factory, promos, services.NewDiscountCalculator())

		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			mustMoney(t, 4500), testDestination(t, nil),
		)
		require.NoError(t, err)

		require.Error(t, h.Handle(t.Context(), cmd))
		assert.Empty(t, state.orders.orders)
	})
}
