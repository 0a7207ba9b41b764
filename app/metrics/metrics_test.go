package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCountersAdvance(t *testing.T) {
	before := testutil.ToFloat64(withdrawals.WithLabelValues("expired"))
	IncWithdrawals("expired")
	require.Equal(t, before+1, testutil.ToFloat64(withdrawals.WithLabelValues("expired")))

	before = testutil.ToFloat64(txResults.WithLabelValues("register", "ok"))
	ObserveTx("register", "ok", time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(txResults.WithLabelValues("register", "ok")))

	SetHeight(42)
	require.Equal(t, float64(42), testutil.ToFloat64(blockHeight))

	SetBlockOps(7)
	require.Equal(t, float64(7), testutil.ToFloat64(blockOps))

	before = testutil.ToFloat64(feesCollected)
	AddFees(250)
	require.Equal(t, before+250, testutil.ToFloat64(feesCollected))
}
