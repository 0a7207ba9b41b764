package simulation_test

import (
	"encoding/json"
	"math/rand"
	"testing"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"
	"github.com/stretchr/testify/require"

	"namereg/app"
	"namereg/x/dns/simulation"
	"namereg/x/dns/types"
)

func newHost(t *testing.T) *app.App {
	t.Helper()
	cfg := app.DefaultConfig(t.TempDir())
	cfg.Invariants.CheckEveryBlock = true
	host, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), cfg)
	require.NoError(t, err)
	return host
}

func TestRunKeepsInvariants(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.Blocks = 30
	cfg.OpsPerBlock = 15

	report, err := simulation.Run(newHost(t), cfg)
	require.NoError(t, err)
	require.Equal(t, int64(cfg.Blocks+1), report.Height)
	require.Positive(t, report.Ops[types.TypeMsgRegister].OK)
	require.Positive(t, report.Events[types.EventTypeRegister])
	require.Contains(t, report.String(), types.TypeMsgRegister)
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.Blocks = 10
	cfg.OpsPerBlock = 10

	first, err := simulation.Run(newHost(t), cfg)
	require.NoError(t, err)
	second, err := simulation.Run(newHost(t), cfg)
	require.NoError(t, err)
	require.Equal(t, first.Ops, second.Ops)
}

func TestWeightOverrides(t *testing.T) {
	params := simtypes.AppParams{}
	zero, err := json.Marshal(0)
	require.NoError(t, err)
	for _, key := range []string{
		"op_weight_msg_transfer",
		"op_weight_msg_withdraw",
		"op_weight_msg_add_subdomain",
		"op_weight_msg_delete_subdomain",
		"op_weight_msg_add_record",
		"op_weight_msg_delete_record",
		"op_weight_msg_check_lease",
	} {
		params[key] = zero
	}

	cfg := simulation.DefaultConfig()
	cfg.Blocks = 3
	cfg.OpsPerBlock = 10
	cfg.Params = params

	report, err := simulation.Run(newHost(t), cfg)
	require.NoError(t, err)
	require.Len(t, report.Ops, 1)
	require.Contains(t, report.Ops, types.TypeMsgRegister)
}

func TestRandomGenesisValidates(t *testing.T) {
	cfg := simulation.DefaultConfig()
	accs := simtypes.RandomAccounts(rand.New(rand.NewSource(1)), 4)

	doc, err := simulation.RandomGenesis(cfg, accs)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	require.Len(t, doc.Accounts, 4)

	gs, err := doc.DNSState()
	require.NoError(t, err)
	require.Equal(t, accs[0].Address.String(), gs.Admin)

	_, err = simulation.RandomGenesis(cfg, nil)
	require.Error(t, err)
}
