package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Authorization identifies who is driving a state transition: a signed
// account, or the module itself reclaiming an expired lease.
type Authorization struct {
	signer sdk.AccAddress
	system bool
}

func UserAuthorization(signer sdk.AccAddress) Authorization {
	return Authorization{signer: signer}
}

func SystemAuthorization() Authorization {
	return Authorization{system: true}
}

func (a Authorization) IsSystem() bool { return a.system }

func (a Authorization) Signer() sdk.AccAddress { return a.signer }

// Is reports whether a is the user authorization of addr.
func (a Authorization) Is(addr sdk.AccAddress) bool {
	return !a.system && len(a.signer) > 0 && a.signer.Equals(addr)
}
