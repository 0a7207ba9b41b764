package simulation

import (
	"math/rand"

	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	"namereg/x/dns/keeper"
	"namereg/x/dns/types"
)

// Operation picks a message to send against the committed state in ctx. A
// nil message with a comment is a no-op.
type Operation func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (types.Msg, string, error)

type WeightedOperation struct {
	Weight  int
	MsgType string
	Op      Operation
}

const (
	opWeightMsgRegister        = "op_weight_msg_register"
	opWeightMsgTransfer        = "op_weight_msg_transfer"
	opWeightMsgWithdraw        = "op_weight_msg_withdraw"
	opWeightMsgAddSubdomain    = "op_weight_msg_add_subdomain"
	opWeightMsgDeleteSubdomain = "op_weight_msg_delete_subdomain"
	opWeightMsgAddRecord       = "op_weight_msg_add_record"
	opWeightMsgDeleteRecord    = "op_weight_msg_delete_record"
	opWeightMsgCheckLease      = "op_weight_msg_check_lease"
)

// WeightedOperations returns every registry operation, weighted by params
// when they carry an override.
func WeightedOperations(appParams simtypes.AppParams, k keeper.Keeper) []WeightedOperation {
	weight := func(key string, def int) int {
		var w int
		appParams.GetOrGenerate(key, &w, nil, func(_ *rand.Rand) { w = def })
		return w
	}

	return []WeightedOperation{
		{weight(opWeightMsgRegister, 100), types.TypeMsgRegister, SimulateMsgRegister(k)},
		{weight(opWeightMsgTransfer, 30), types.TypeMsgTransfer, SimulateMsgTransfer(k)},
		{weight(opWeightMsgWithdraw, 15), types.TypeMsgWithdraw, SimulateMsgWithdraw(k)},
		{weight(opWeightMsgAddSubdomain, 60), types.TypeMsgAddSubdomain, SimulateMsgAddSubdomain(k)},
		{weight(opWeightMsgDeleteSubdomain, 20), types.TypeMsgDeleteSubdomain, SimulateMsgDeleteSubdomain(k)},
		{weight(opWeightMsgAddRecord, 60), types.TypeMsgAddRecord, SimulateMsgAddRecord(k)},
		{weight(opWeightMsgDeleteRecord, 20), types.TypeMsgDeleteRecord, SimulateMsgDeleteRecord(k)},
		{weight(opWeightMsgCheckLease, 25), types.TypeMsgCheckLease, SimulateMsgCheckLease(k)},
	}
}

func SimulateMsgRegister(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (types.Msg, string, error) {
		simAccount, _ := simtypes.RandomAcc(r, accs)
		params := k.GetParams(ctx)

		name := randomLabel(r)
		// collide with a taken name now and then
		if r.Intn(5) == 0 {
			if dom, _, found, err := pickRandomDomain(r, ctx, k, accs); err != nil {
				return nil, "", err
			} else if found {
				name = dom.Name
			}
		}
		span := params.MaxDuration - params.MinDuration
		if span > 2*params.MinDuration {
			span = 2 * params.MinDuration
		}
		duration := params.MinDuration + uint64(r.Int63n(int64(span)+1))

		return &types.MsgRegister{
			Creator:  simAccount.Address.String(),
			Name:     name,
			Duration: duration,
		}, "", nil
	}
}

func SimulateMsgTransfer(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (types.Msg, string, error) {
		dom, owner, found, err := pickRandomDomain(r, ctx, k, accs)
		if err != nil {
			return nil, "", err
		}
		if !found {
			return nil, "no domain owners found", nil
		}
		newOwner, _ := simtypes.RandomAcc(r, accs)
		if newOwner.Address.Equals(owner.Address) {
			return nil, "same owner", nil
		}
		return &types.MsgTransfer{
			Creator:  owner.Address.String(),
			Name:     dom.Name,
			NewOwner: newOwner.Address.String(),
		}, "", nil
	}
}

// SimulateMsgWithdraw withdraws as the owner, or as the admin (accs[0]) one
// time in four.
func SimulateMsgWithdraw(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (types.Msg, string, error) {
		dom, owner, found, err := pickRandomDomain(r, ctx, k, accs)
		if err != nil {
			return nil, "", err
		}
		if !found {
			return nil, "no domain owners found", nil
		}
		signer := owner
		if r.Intn(4) == 0 {
			signer = accs[0]
		}
		return &types.MsgWithdraw{Creator: signer.Address.String(), Name: dom.Name}, "", nil
	}
}

func SimulateMsgAddSubdomain(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (types.Msg, string, error) {
		dom, owner, found, err := pickRandomDomain(r, ctx, k, accs)
		if err != nil {
			return nil, "", err
		}
		if !found {
			return nil, "no domain owners found", nil
		}
		prefix := simtypes.RandStringOfLength(r, simtypes.RandIntBetween(r, 1, 6))
		name := prefix + "." + dom.Name
		if len(name) >= types.LabelSize {
			return nil, "subdomain too long", nil
		}
		return &types.MsgAddSubdomain{Creator: owner.Address.String(), Name: name}, "", nil
	}
}

func SimulateMsgDeleteSubdomain(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (types.Msg, string, error) {
		name, owner, found, err := pickRandomSubdomain(r, ctx, k, accs)
		if err != nil {
			return nil, "", err
		}
		if !found {
			return nil, "no subdomains", nil
		}
		return &types.MsgDeleteSubdomain{Creator: owner.Address.String(), Name: name}, "", nil
	}
}

func SimulateMsgAddRecord(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (types.Msg, string, error) {
		name, owner, found, err := pickRandomSubdomain(r, ctx, k, accs)
		if err != nil {
			return nil, "", err
		}
		if !found {
			return nil, "no subdomains", nil
		}
		rt, value := randomRecord(r)
		return &types.MsgAddRecord{
			Creator: owner.Address.String(),
			Name:    name,
			Type:    rt,
			Value:   value,
			TTL:     uint32(simtypes.RandIntBetween(r, 60, 86400)),
		}, "", nil
	}
}

func SimulateMsgDeleteRecord(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (types.Msg, string, error) {
		name, owner, found, err := pickRandomSubdomain(r, ctx, k, accs)
		if err != nil {
			return nil, "", err
		}
		if !found {
			return nil, "no subdomains", nil
		}
		records, err := k.RecordStore.Get(ctx, name)
		if err != nil || records.Empty() {
			return nil, "no records", nil
		}
		rec := records.Records[r.Intn(len(records.Records))]
		return &types.MsgDeleteRecord{
			Creator: owner.Address.String(),
			Name:    name,
			Type:    rec.Type,
			Value:   rec.Value,
		}, "", nil
	}
}

// SimulateMsgCheckLease pokes a random domain from a random account.
func SimulateMsgCheckLease(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (types.Msg, string, error) {
		dom, _, found, err := pickRandomDomain(r, ctx, k, accs)
		if err != nil {
			return nil, "", err
		}
		if !found {
			return nil, "no domain owners found", nil
		}
		caller, _ := simtypes.RandomAcc(r, accs)
		return &types.MsgCheckLease{Creator: caller.Address.String(), Name: dom.Name}, "", nil
	}
}
