package commands

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/services"
	"takeout/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves the best active full-reduction discount for the restaurant and
// creates the order in CREATED status awaiting payment.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	promotions ports.PromotionRepository
	discounts  services.DiscountCalculator
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and a promotion
// repository for discount resolution.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	promotions ports.PromotionRepository,
	discounts services.DiscountCalculator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		promotions: promotions,
		discounts:  discounts,
	}
}

// Handle processes the order creation command.
// Looks up the restaurant's active promotions, applies the single largest
// applicable discount and persists the order in CREATED status.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	promotions, err := h.promotions.GetActiveFullReduction(ctx, cmd.RestaurantID(), now)
	if err != nil {
		return err
	}
	discount := h.discounts.BestFullReduction(promotions, cmd.TotalAmount(), now)

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.TotalAmount(),
		discount,
		cmd.Destination(),
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
