package earnings

import (
	"errors"

	"vehicle-rental/internal/domain/money"
)

const (
	basisPointsDenominator = 10000
	DefaultFeeBasisPoints  = 1000
)

var ErrInvalidFeeRate = errors.New("fee rate must be between 0 and 10000 basis points")

// FeePolicy is a flat platform fee expressed in basis points of the gross amount.
type FeePolicy struct {
	rateBasisPoints int64
}

func NewFeePolicy(rateBasisPoints int) (FeePolicy, error) {
	if rateBasisPoints < 0 || rateBasisPoints > basisPointsDenominator {
		return FeePolicy{}, ErrInvalidFeeRate
	}
	return FeePolicy{rateBasisPoints: int64(rateBasisPoints)}, nil
}

func DefaultFeePolicy() FeePolicy {
	return FeePolicy{rateBasisPoints: DefaultFeeBasisPoints}
}

func (p FeePolicy) RateBasisPoints() int {
	return int(p.rateBasisPoints)
}

// Split rounds the fee half up to the nearest minor unit; fee + net == gross.
func (p FeePolicy) Split(gross money.Money) (fee, net money.Money) {
	f := (gross.Minor()*p.rateBasisPoints + basisPointsDenominator/2) / basisPointsDenominator
	fee = money.FromMinor(f)
	return fee, gross.Sub(fee)
}
