package courier

import (
	"fmt"

	"takeout/internal/pkg/errs"
)

// Status describes whether a courier participates in dispatch.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusActive means the courier is eligible for assignment.
	StatusActive

	// StatusDisabled means the courier is excluded from dispatch. Orders
	// already in delivery are unaffected.
	StatusDisabled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "UNKNOWN",
		StatusActive:   "ACTIVE",
		StatusDisabled: "DISABLED",
	}
}

// StatusFromString parses the canonical upper-case representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValidationErrorWithCause("status",
		fmt.Errorf("%q is not a valid courier status", s))
}

// Validate checks that the value is ACTIVE or DISABLED.
func (s Status) Validate() error {
	if s != StatusActive && s != StatusDisabled {
		return errs.NewValidationErrorWithCause("status",
			fmt.Errorf("%d is not a valid courier status", s))
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
