package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// DefaultCancelReason is recorded when a cancellation carries no explicit
// reason.
const DefaultCancelReason = "canceled by operator"

// cancelReasonMaxLen bounds the stored cancellation reason.
const cancelReasonMaxLen = 255

// Order represents a takeout order in the system. It is the aggregate root
// that manages the order lifecycle from creation through payment, courier
// assignment and delivery to completion.
//
// Order tracks two independent axes of state:
//   - Status: the fulfillment stage (Created, Paid, Delivering, Completed,
//     Canceled)
//   - PayStatus: the money state (Unpaid, Paid, Refunded)
//
// Order follows these invariants:
//   - Must have valid identifiers for the order, customer and restaurant
//   - payAmount equals totalAmount minus discountAmount, never negative
//   - commissionAmount is absent until settlement and zeroed on refund
//   - A courier may only hold the order while payment is settled
//   - Terminal stages (Completed, Canceled) never change again
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated transition methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// restaurantID identifies the restaurant fulfilling the order
	restaurantID kernel.UUID

	// courierID is the assigned courier's ID (nil if unassigned)
	courierID *kernel.UUID

	// totalAmount is the pre-discount order total
	totalAmount kernel.Money

	// discountAmount is the promotion discount, capped at totalAmount
	discountAmount kernel.Money

	// payAmount is the amount actually charged (total minus discount)
	payAmount kernel.Money

	// commissionAmount is the platform commission, set at settlement
	commissionAmount *kernel.Money

	// status is the fulfillment stage
	status Status

	// payStatus is the money state
	payStatus PayStatus

	// destination is where the order is delivered
	destination Destination

	// cancelReason records why the order was canceled
	cancelReason string

	// payMethod is the payment channel recorded at settlement
	payMethod string

	// payTransactionID is the upstream payment reference
	payTransactionID string

	createdAt  time.Time
	paidAt     *time.Time
	finishedAt *time.Time
	refundedAt *time.Time

	guard kernel.ConstructorGuard
}

// NewOrder creates a new Order in the Created/Unpaid state.
//
// The discount is capped at the total so the charged amount never goes
// negative. All identifiers and the destination are validated.
func NewOrder(id, customerID, restaurantID kernel.UUID, totalAmount, discountAmount kernel.Money,
	destination Destination, now time.Time) (*Order, error) {
	order := &Order{
		status:    StatusCreated,
		payStatus: PayUnpaid,
		createdAt: now,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setRestaurantID(restaurantID),
		order.setDestination(destination),
	); err != nil {
		return nil, err
	}

	discount := discountAmount.Min(totalAmount)
	order.totalAmount = totalAmount
	order.discountAmount = discount
	order.payAmount = totalAmount.SubFloorZero(discount)

	return order, nil
}

// RestoreParams carries every persisted field of an Order for rehydration
// from storage.
type RestoreParams struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	RestaurantID     kernel.UUID
	CourierID        *kernel.UUID
	TotalAmount      kernel.Money
	DiscountAmount   kernel.Money
	PayAmount        kernel.Money
	CommissionAmount *kernel.Money
	Status           Status
	PayStatus        PayStatus
	Destination      Destination
	CancelReason     string
	PayMethod        string
	PayTransactionID string
	CreatedAt        time.Time
	PaidAt           *time.Time
	FinishedAt       *time.Time
	RefundedAt       *time.Time
}

// RestoreOrder reconstructs an Order from persistence. It validates
// identifiers and state enums but trusts the stored amounts, because an
// order's money fields may legitimately violate construction rules after
// refunds.
func RestoreOrder(params RestoreParams) (*Order, error) {
	order := &Order{
		courierID:        params.CourierID,
		totalAmount:      params.TotalAmount,
		discountAmount:   params.DiscountAmount,
		payAmount:        params.PayAmount,
		commissionAmount: params.CommissionAmount,
		cancelReason:     params.CancelReason,
		payMethod:        params.PayMethod,
		payTransactionID: params.PayTransactionID,
		createdAt:        params.CreatedAt,
		paidAt:           params.PaidAt,
		finishedAt:       params.FinishedAt,
		refundedAt:       params.RefundedAt,
		guard:            kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setCustomerID(params.CustomerID),
		order.setRestaurantID(params.RestaurantID),
		order.setDestination(params.Destination),
		params.Status.Validate(),
		params.PayStatus.Validate(),
	); err != nil {
		return nil, err
	}

	order.status = params.Status
	order.payStatus = params.PayStatus

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// TotalAmount returns the pre-discount order total.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// DiscountAmount returns the discount applied at creation.
func (o *Order) DiscountAmount() kernel.Money {
	return o.discountAmount
}

// PayAmount returns the amount charged to the customer.
func (o *Order) PayAmount() kernel.Money {
	return o.payAmount
}

// CommissionAmount returns the platform commission, or nil before settlement.
func (o *Order) CommissionAmount() *kernel.Money {
	return o.commissionAmount
}

// Status returns the current fulfillment stage.
func (o *Order) Status() Status {
	return o.status
}

// PayStatus returns the current money state.
func (o *Order) PayStatus() PayStatus {
	return o.payStatus
}

// Destination returns the delivery destination.
func (o *Order) Destination() Destination {
	return o.destination
}

// CancelReason returns the recorded cancellation reason, empty while the
// order is not canceled.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// PayMethod returns the payment channel recorded at settlement.
func (o *Order) PayMethod() string {
	return o.payMethod
}

// PayTransactionID returns the upstream payment reference.
func (o *Order) PayTransactionID() string {
	return o.payTransactionID
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PaidAt returns the settlement timestamp, nil while unpaid.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// FinishedAt returns the completion or cancellation timestamp.
func (o *Order) FinishedAt() *time.Time {
	return o.finishedAt
}

// RefundedAt returns the refund timestamp, nil unless refunded.
func (o *Order) RefundedAt() *time.Time {
	return o.refundedAt
}

// EnsurePayAmount resolves the amount to charge at settlement. A zero
// payAmount falls back to the order total; both zero means a free order.
// The resolved value is stored back so later reads agree with the charge.
func (o *Order) EnsurePayAmount() kernel.Money {
	if !o.payAmount.IsZero() {
		return o.payAmount
	}
	if !o.totalAmount.IsZero() {
		o.payAmount = o.totalAmount
		return o.payAmount
	}
	return kernel.Money(0)
}

// MarkPaid settles the order: CREATED/UNPAID becomes PAID/PAID.
//
// The commission is computed by the caller from the charged amount and the
// applicable rate. Settlement stamps paidAt and records the payment channel
// and upstream transaction reference.
//
// Callers wanting idempotent settlement must check PayStatus first; calling
// MarkPaid on an already paid order is a state conflict.
func (o *Order) MarkPaid(commission kernel.Money, method, transactionID string, now time.Time) error {
	if o.payStatus != PayUnpaid {
		return errs.NewConflictError(fmt.Sprintf("order %s is already settled", o.id))
	}
	if o.status != StatusCreated {
		return errs.NewConflictError(fmt.Sprintf("order %s cannot be paid in status %s", o.id, o.status))
	}

	o.status = StatusPaid
	o.payStatus = PayPaid
	o.commissionAmount = &commission
	o.payMethod = method
	o.payTransactionID = transactionID
	paidAt := now
	o.paidAt = &paidAt
	return nil
}

// AssignCourier assigns (or reassigns) a courier to the order. The order must
// be settled and not yet terminal; assignment alone does not start delivery.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.payStatus != PayPaid {
		return errs.NewConflictError(fmt.Sprintf("order %s is not paid, cannot assign a courier", o.id))
	}
	if o.status != StatusPaid && o.status != StatusDelivering {
		return errs.NewConflictError(fmt.Sprintf("order %s in status %s cannot take a courier", o.id, o.status))
	}

	o.courierID = &courierID
	return nil
}

// ClaimByCourier lets a courier take an unassigned, settled order in one step:
// the courier is assigned and delivery starts immediately.
func (o *Order) ClaimByCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return errs.NewConflictError("order already taken")
	}
	if o.payStatus != PayPaid || o.status != StatusPaid {
		return errs.NewConflictError(fmt.Sprintf("order %s is not available for pickup", o.id))
	}

	o.courierID = &courierID
	o.status = StatusDelivering
	return nil
}

// StartDelivery moves a settled, assigned order into active delivery.
func (o *Order) StartDelivery() error {
	if o.status != StatusPaid {
		return errs.NewConflictError(fmt.Sprintf("order %s in status %s cannot start delivery", o.id, o.status))
	}
	if o.courierID == nil {
		return errs.NewConflictError(fmt.Sprintf("order %s has no courier, cannot start delivery", o.id))
	}

	o.status = StatusDelivering
	return nil
}

// Complete finishes an active delivery. The courier reference is released;
// the caller is responsible for decrementing the courier's workload using the
// returned ID.
func (o *Order) Complete(now time.Time) (*kernel.UUID, error) {
	if o.status != StatusDelivering {
		return nil, errs.NewConflictError(fmt.Sprintf("order %s in status %s cannot be completed", o.id, o.status))
	}

	o.status = StatusCompleted
	finishedAt := now
	o.finishedAt = &finishedAt
	return o.releaseCourier(), nil
}

// Cancel cancels an order that has not started delivery. Canceling an
// already canceled order is a no-op success so retried cancellations stay
// idempotent. The reason is bounded and defaults to DefaultCancelReason.
//
// Cancel releases the courier reference and returns the released ID so the
// caller can decrement the courier's workload. Refunding a paid order is a
// separate step, see MarkRefunded.
func (o *Order) Cancel(reason string, now time.Time) (*kernel.UUID, error) {
	if o.status == StatusCanceled {
		return nil, nil
	}
	if o.status == StatusDelivering || o.status == StatusCompleted {
		return nil, errs.NewConflictError(fmt.Sprintf("order %s in status %s cannot be canceled", o.id, o.status))
	}

	o.status = StatusCanceled
	o.cancelReason = boundCancelReason(reason)
	finishedAt := now
	o.finishedAt = &finishedAt
	return o.releaseCourier(), nil
}

// MarkRefunded records the refund of a settled order: the pay status becomes
// Refunded, the commission is zeroed and refundedAt is stamped. Only a paid
// order can be refunded.
func (o *Order) MarkRefunded(now time.Time) error {
	if o.payStatus != PayPaid {
		return errs.NewConflictError(fmt.Sprintf("order %s in pay status %s cannot be refunded", o.id, o.payStatus))
	}

	o.payStatus = PayRefunded
	zero := kernel.Money(0)
	o.commissionAmount = &zero
	refundedAt := now
	o.refundedAt = &refundedAt
	return nil
}

// AdvanceByCourier applies the only two transitions a courier may drive:
// starting delivery of an order assigned to them, and completing a delivery
// they are running. Any other requested stage is rejected.
//
// The returned courier ID is non-nil only when the transition released the
// courier (completion).
func (o *Order) AdvanceByCourier(courierID kernel.UUID, next Status, now time.Time) (*kernel.UUID, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if o.courierID == nil || !o.courierID.IsEqual(courierID) {
		return nil, errs.NewForbiddenError("COURIER", "order is not assigned to this courier")
	}

	switch next {
	case StatusDelivering:
		return nil, o.StartDelivery()
	case StatusCompleted:
		return o.Complete(now)
	default:
		return nil, errs.NewValidationErrorWithCause("status",
			fmt.Errorf("courier cannot move an order to %s", next))
	}
}

// OverrideStatus forcibly sets the fulfillment stage. It is intended for
// operator intervention and bypasses the forward-only progression, subject
// to four rules:
//   - a terminal order never changes again
//   - a refunded order is pinned to Canceled
//   - Delivering requires an assigned courier
//   - a Delivering order cannot be forced to Canceled; an in-flight delivery
//     must be completed first
//
// Entering a terminal stage stamps finishedAt and releases the courier; the
// released ID is returned so the caller can decrement the courier's workload.
// Refund bookkeeping for a paid order forced to Canceled is the caller's
// responsibility.
func (o *Order) OverrideStatus(next Status, now time.Time) (*kernel.UUID, error) {
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if o.status.IsTerminal() {
		return nil, errs.NewConflictError(fmt.Sprintf("order %s is %s and cannot change status", o.id, o.status))
	}
	if o.payStatus == PayRefunded && next != StatusCanceled {
		return nil, errs.NewConflictError(fmt.Sprintf("order %s is refunded, only CANCELED is allowed", o.id))
	}
	if next == StatusDelivering && o.courierID == nil {
		return nil, errs.NewConflictError(fmt.Sprintf("order %s has no courier, cannot be set to DELIVERING", o.id))
	}
	if next == StatusCanceled && o.status == StatusDelivering {
		return nil, errs.NewConflictError(fmt.Sprintf("order %s is being delivered and cannot be canceled", o.id))
	}

	o.status = next
	if !next.IsTerminal() {
		return nil, nil
	}

	finishedAt := now
	o.finishedAt = &finishedAt
	if next == StatusCanceled && o.cancelReason == "" {
		o.cancelReason = DefaultCancelReason
	}
	return o.releaseCourier(), nil
}

// releaseCourier clears the courier reference and returns the previous value.
func (o *Order) releaseCourier() *kernel.UUID {
	released := o.courierID
	o.courierID = nil
	return released
}

// boundCancelReason trims, defaults and truncates a cancellation reason.
func boundCancelReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return DefaultCancelReason
	}
	if runes := []rune(reason); len(runes) > cancelReasonMaxLen {
		return string(runes[:cancelReasonMaxLen])
	}
	return reason
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setDestination(destination Destination) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}
