package payment

import (
	"errors"
	"fmt"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
)

// ErrLedgerEntryIsNotConstructed is returned when a LedgerEntry was not
// created through one of the constructor functions.
var ErrLedgerEntryIsNotConstructed = errors.New("LedgerEntry must be created via NewLedgerEntry constructor")

// EntryType distinguishes money moving in from money moving out.
type EntryType int

const (
	// EntryTypeUnknown represents an invalid or undefined entry type.
	EntryTypeUnknown EntryType = iota

	// EntryTypePay records a settlement charge.
	EntryTypePay

	// EntryTypeRefund records money returned to the customer.
	EntryTypeRefund
)

func entryTypeStrings() map[EntryType]string {
	return map[EntryType]string{
		EntryTypeUnknown: "UNKNOWN",
		EntryTypePay:     "PAY",
		EntryTypeRefund:  "REFUND",
	}
}

// EntryTypeFromString parses the canonical upper-case representation.
func EntryTypeFromString(s string) (EntryType, error) {
	for entryType, str := range entryTypeStrings() {
		if entryType != EntryTypeUnknown && str == s {
			return entryType, nil
		}
	}
	return EntryTypeUnknown, errs.NewValidationErrorWithCause("entryType",
		fmt.Errorf("%q is not a valid ledger entry type", s))
}

// Validate checks that the value is PAY or REFUND.
func (t EntryType) Validate() error {
	if t != EntryTypePay && t != EntryTypeRefund {
		return errs.NewValidationErrorWithCause("entryType",
			fmt.Errorf("%d is not a valid ledger entry type", t))
	}
	return nil
}

// String implements fmt.Stringer.
func (t EntryType) String() string {
	if str, ok := entryTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// EntryStatus records the outcome of the money movement.
type EntryStatus int

const (
	// EntryStatusUnknown represents an invalid or undefined entry status.
	EntryStatusUnknown EntryStatus = iota

	// EntryStatusSuccess means the movement completed.
	EntryStatusSuccess

	// EntryStatusFailed means the movement was attempted and rejected.
	EntryStatusFailed

	// EntryStatusPending means the movement awaits confirmation.
	EntryStatusPending
)

func entryStatusStrings() map[EntryStatus]string {
	return map[EntryStatus]string{
		EntryStatusUnknown: "UNKNOWN",
		EntryStatusSuccess: "SUCCESS",
		EntryStatusFailed:  "FAILED",
		EntryStatusPending: "PENDING",
	}
}

// EntryStatusFromString parses the canonical upper-case representation.
func EntryStatusFromString(s string) (EntryStatus, error) {
	for status, str := range entryStatusStrings() {
		if status != EntryStatusUnknown && str == s {
			return status, nil
		}
	}
	return EntryStatusUnknown, errs.NewValidationErrorWithCause("entryStatus",
		fmt.Errorf("%q is not a valid ledger entry status", s))
}

// Validate checks that the value is SUCCESS, FAILED or PENDING.
func (s EntryStatus) Validate() error {
	if s < EntryStatusSuccess || s > EntryStatusPending {
		return errs.NewValidationErrorWithCause("entryStatus",
			fmt.Errorf("%d is not a valid ledger entry status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s EntryStatus) String() string {
	if str, ok := entryStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// LedgerEntry is an immutable record of money moving for an order: one
// settlement charge or one refund. Entries are append-only; corrections are
// expressed as new entries, never as updates.
type LedgerEntry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	entryType EntryType
	amount    kernel.Money
	method    string
	actorRole string
	actorID   *kernel.UUID
	status    EntryStatus
	note      string
	createdAt time.Time
	guard     kernel.ConstructorGuard
}

// NewLedgerEntry records one money movement for an order. The actor ID is
// optional because system-driven movements (reconciliation refunds) have no
// acting person.
func NewLedgerEntry(id, orderID kernel.UUID, entryType EntryType, amount kernel.Money,
	method, actorRole string, actorID *kernel.UUID, status EntryStatus, note string,
	now time.Time) (*LedgerEntry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		entryType.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if actorRole == "" {
		return nil, errs.NewValidationError("actorRole")
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
	}

	return &LedgerEntry{
		id:        id,
		orderID:   orderID,
		entryType: entryType,
		amount:    amount,
		method:    method,
		actorRole: actorRole,
		actorID:   actorID,
		status:    status,
		note:      note,
		createdAt: now,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate checks if the LedgerEntry was properly constructed.
func (e *LedgerEntry) Validate() error {
	if e == nil {
		return ErrLedgerEntryIsNotConstructed
	}
	return e.guard.Validate(ErrLedgerEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *LedgerEntry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this entry belongs to.
func (e *LedgerEntry) OrderID() kernel.UUID {
	return e.orderID
}

// Type returns whether the entry is a charge or a refund.
func (e *LedgerEntry) Type() EntryType {
	return e.entryType
}

// Amount returns the moved amount.
func (e *LedgerEntry) Amount() kernel.Money {
	return e.amount
}

// Method returns the payment channel.
func (e *LedgerEntry) Method() string {
	return e.method
}

// ActorRole returns the role that triggered the movement, for example
// CUSTOMER, ADMIN or SYSTEM.
func (e *LedgerEntry) ActorRole() string {
	return e.actorRole
}

// ActorID returns the acting person's identifier, nil for system actions.
func (e *LedgerEntry) ActorID() *kernel.UUID {
	return e.actorID
}

// Status returns the outcome of the movement.
func (e *LedgerEntry) Status() EntryStatus {
	return e.status
}

// Note returns the free-form annotation.
func (e *LedgerEntry) Note() string {
	return e.note
}

// CreatedAt returns when the movement was recorded.
func (e *LedgerEntry) CreatedAt() time.Time {
	return e.createdAt
}
