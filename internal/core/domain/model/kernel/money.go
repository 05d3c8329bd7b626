package kernel

import (
	"fmt"

	"takeout/internal/pkg/errs"
)

// Money is an amount in minor currency units (cents). Using integer cents
// keeps commission and refund arithmetic exact; rounding happens in one place
// (MulRateHalfUp) and nowhere else.
//
// The zero value is a valid zero amount.
type Money int64

// Rate is a commission rate in basis points: 800 = 8.00%.
type Rate int64

// NewMoney creates a non-negative amount from cents.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return 0, errs.NewValidationErrorWithCause("amount",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money(cents), nil
}

// NewRate creates a commission rate from basis points.
// Rates above 100% are rejected as malformed configuration.
func NewRate(basisPoints int64) (Rate, error) {
	if basisPoints < 0 || basisPoints > 10000 {
		return 0, errs.NewValidationErrorWithCause("rate",
			fmt.Errorf("%d basis points is outside [0, 10000]", basisPoints))
	}
	return Rate(basisPoints), nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return int64(m)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m == 0
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// SubFloorZero returns m - other, floored at zero. The pay amount of an order
// never goes negative regardless of the discount applied.
func (m Money) SubFloorZero(other Money) Money {
	if other >= m {
		return 0
	}
	return m - other
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other < m {
		return other
	}
	return m
}

// MulRateHalfUp applies a basis-point rate with half-up rounding to the cent:
// result = round_half_up(m × rate / 10000). This mirrors a two-decimal
// percentage applied to a two-decimal amount.
func (m Money) MulRateHalfUp(rate Rate) Money {
	n := int64(m) * int64(rate)
	q := n / 10000
	if (n%10000)*2 >= 10000 {
		q++
	}
	return Money(q)
}

// String formats the amount as a decimal with two fraction digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
}

// Percent returns the rate as a human-readable percentage string.
func (r Rate) Percent() string {
	return fmt.Sprintf("%d.%02d%%", int64(r)/100, int64(r)%100)
}
