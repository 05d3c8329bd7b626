package order

import (
	"fmt"

	"takeout/internal/pkg/errs"
)

// Status represents the delivery/fulfillment stage of an order.
//
// State transitions:
//
//	Created ──> Paid ──> Delivering ──> Completed
//	   │          │
//	   └──────────┴──> Canceled
//
// Once an order is Delivering the only way forward is Completed; cancellation
// from Delivering is rejected. Completed and Canceled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusCreated is the initial stage: the order exists, payment pending.
	StatusCreated

	// StatusPaid means payment settled, waiting for a courier.
	StatusPaid

	// StatusDelivering means a courier has the order in active delivery.
	StatusDelivering

	// StatusCompleted means the order was delivered. Terminal.
	StatusCompleted

	// StatusCanceled means the order was canceled by an actor or by the
	// reconciliation sweep. Terminal.
	StatusCanceled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusCreated:    "CREATED",
		StatusPaid:       "PAID",
		StatusDelivering: "DELIVERING",
		StatusCompleted:  "COMPLETED",
		StatusCanceled:   "CANCELED",
	}
}

// StatusFromString parses the canonical upper-case representation.
// Returns a validation error for anything outside the five valid stages.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValidationErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that the value is one of the five valid stages.
func (s Status) Validate() error {
	if s < StatusCreated || s > StatusCanceled {
		return errs.NewValidationErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// rank orders the forward progression Created < Paid < Delivering < Completed.
// Canceled sits outside the progression and is reachable from any
// non-terminal stage except Delivering.
func (s Status) rank() int {
	switch s {
	case StatusCreated:
		return 0
	case StatusPaid:
		return 1
	case StatusDelivering:
		return 2
	case StatusCompleted:
		return 3
	default:
		return -1
	}
}

// PayStatus tracks the money state of an order, independent of Status.
//
//	Unpaid ──> Paid ──> Refunded
//
// Refunded is terminal and implies the order is Canceled.
type PayStatus int

const (
	// PayUnknown represents an invalid or undefined pay status.
	PayUnknown PayStatus = iota

	// PayUnpaid is the initial money state.
	PayUnpaid

	// PayPaid means settlement succeeded and commission was recorded.
	PayPaid

	// PayRefunded means the charged amount was returned. Terminal.
	PayRefunded
)

func payStatusStrings() map[PayStatus]string {
	return map[PayStatus]string{
		PayUnknown:  "UNKNOWN",
		PayUnpaid:   "UNPAID",
		PayPaid:     "PAID",
		PayRefunded: "REFUNDED",
	}
}

// Validate checks that the value is one of the three valid money states.
func (p PayStatus) Validate() error {
	if p < PayUnpaid || p > PayRefunded {
		return errs.NewValidationErrorWithCause("payStatus",
			fmt.Errorf("%d is not a valid pay status", p))
	}
	return nil
}

// String implements fmt.Stringer.
func (p PayStatus) String() string {
	if str, ok := payStatusStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}
