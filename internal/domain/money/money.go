package money

import "errors"

var ErrNegativeAmount = errors.New("amount cannot be negative")

// Money is an amount in minor currency units (paise).
type Money struct {
	minor int64
}

func New(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{minor: minor}, nil
}

// FromMinor skips validation; use for values read back from storage.
func FromMinor(minor int64) Money {
	return Money{minor: minor}
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) Add(other Money) Money {
	return Money{minor: m.minor + other.minor}
}

func (m Money) Sub(other Money) Money {
	return Money{minor: m.minor - other.minor}
}

func (m Money) Multiply(n int) Money {
	return Money{minor: m.minor * int64(n)}
}

func (m Money) IsZero() bool {
	return m.minor == 0
}
