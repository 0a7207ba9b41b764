package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	// DefaultFeeDenom is the denom registration fees are charged in.
	DefaultFeeDenom = "unrg"
	// DefaultPriceBase scales the per-unit-time price of a name.
	DefaultPriceBase uint64 = 10
	// DefaultAllowAccountDeath lets a registration drain the payer to zero.
	DefaultAllowAccountDeath = true
)

type Params struct {
	MinDuration       uint64 `json:"min_duration"`
	MaxDuration       uint64 `json:"max_duration"`
	PriceBase         uint64 `json:"price_base"`
	MinNameLength     uint32 `json:"min_name_length"`
	FeeDenom          string `json:"fee_denom"`
	AllowAccountDeath bool   `json:"allow_account_death"`
}

func NewParams(
	minDuration uint64,
	maxDuration uint64,
	priceBase uint64,
	minNameLength uint32,
	feeDenom string,
	allowAccountDeath bool,
) Params {
	return Params{
		MinDuration:       minDuration,
		MaxDuration:       maxDuration,
		PriceBase:         priceBase,
		MinNameLength:     minNameLength,
		FeeDenom:          feeDenom,
		AllowAccountDeath: allowAccountDeath,
	}
}

func DefaultParams() Params {
	return NewParams(
		MinDuration,
		MaxDuration,
		DefaultPriceBase,
		DefaultMinNameLength,
		DefaultFeeDenom,
		DefaultAllowAccountDeath,
	)
}

func (p Params) Validate() error {
	if p.MinDuration == 0 {
		return fmt.Errorf("min_duration must be > 0")
	}
	if p.MaxDuration < p.MinDuration {
		return fmt.Errorf("max_duration %d below min_duration %d", p.MaxDuration, p.MinDuration)
	}
	if p.PriceBase == 0 {
		return fmt.Errorf("price_base must be > 0")
	}
	if p.MinNameLength == 0 || p.MinNameLength > LabelSize {
		return fmt.Errorf("min_name_length must be within [1,%d], got %d", LabelSize, p.MinNameLength)
	}
	if err := sdk.ValidateDenom(p.FeeDenom); err != nil {
		return fmt.Errorf("invalid fee_denom: %w", err)
	}
	return nil
}
