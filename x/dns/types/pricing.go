package types

import (
	sdkmath "cosmossdk.io/math"
)

// Cost prices a lease of duration milliseconds on a name of length bytes:
// duration * (LabelSize - length) * priceBase. Shorter names cost more.
func Cost(length int, duration, priceBase uint64) sdkmath.Int {
	if length < 0 || length >= LabelSize {
		return sdkmath.ZeroInt()
	}
	return sdkmath.NewIntFromUint64(duration).
		Mul(sdkmath.NewInt(int64(LabelSize - length))).
		Mul(sdkmath.NewIntFromUint64(priceBase))
}

// Cost applies the configured price base.
func (p Params) Cost(length int, duration uint64) sdkmath.Int {
	return Cost(length, duration, p.PriceBase)
}

// ValidateDuration enforces the registration lease bounds.
func (p Params) ValidateDuration(duration uint64) error {
	if duration < p.MinDuration {
		return ErrInvalidDuration.Wrapf("duration %d below minimum %d", duration, p.MinDuration)
	}
	if duration > p.MaxDuration {
		return ErrInvalidDuration.Wrapf("duration %d above maximum %d", duration, p.MaxDuration)
	}
	return nil
}

// ParseTopLabel is the strict parse used by registration: no dots and at
// least MinNameLength bytes.
func (p Params) ParseTopLabel(raw string) (Label, error) {
	l, err := ParseLabel(raw, false)
	if err != nil {
		return "", err
	}
	if l.Len() < int(p.MinNameLength) {
		return "", ErrInvalidName.Wrapf("name too short: %d < %d", l.Len(), p.MinNameLength)
	}
	return l, nil
}
