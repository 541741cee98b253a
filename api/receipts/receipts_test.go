// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package receipts_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/api/receipts"
	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/client"
	"github.com/corral-labs/corral/genesis"
	"github.com/corral-labs/corral/runtime"
	"github.com/corral-labs/corral/test/datagen"
	"github.com/corral-labs/corral/test/testchain"
)

func TestGetReceipt(t *testing.T) {
	tchain, err := testchain.NewDefault()
	require.NoError(t, err)
	t.Cleanup(tchain.Close)

	router := mux.NewRouter()
	receipts.New(tchain.LogDB()).Mount(router, "/receipts")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	c := client.New(ts.URL)

	alice := genesis.DevAccounts()[1].Address
	staked, err := tchain.Runtime().Execute(alice, "stake", func(c *runtime.Contracts) error {
		return c.StakeNFT.Stake(alice, uint256.NewInt(100))
	})
	require.NoError(t, err)

	receipt, err := c.Receipt(staked.ID())
	require.NoError(t, err)
	require.NotNil(t, receipt)
	want := utils.ConvertReceipt(staked)
	assert.Equal(t, want.ID, receipt.ID)
	assert.Equal(t, want.BlockNumber, receipt.BlockNumber)
	assert.Equal(t, want.Caller, receipt.Caller)
	assert.Equal(t, "stake", receipt.Method)
	assert.False(t, receipt.Reverted)
	require.Len(t, receipt.Events, len(want.Events))
	for i, ev := range receipt.Events {
		assert.Equal(t, want.Events[i].Name, ev.Name)
		assert.Equal(t, want.Events[i].Topics, ev.Topics)
	}

	// reverted invocations are recorded with their reason
	reverted, err := tchain.Runtime().Execute(alice, "unstake", func(c *runtime.Contracts) error {
		return c.StakeNFT.Unstake(alice, uint256.NewInt(100))
	})
	require.Error(t, err)
	receipt, err = c.Receipt(reverted.ID())
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, "Unstake period not met", receipt.RevertReason)
	assert.Empty(t, receipt.Events)

	receipt, err = c.Receipt(datagen.RandomHash())
	require.NoError(t, err)
	assert.Nil(t, receipt)

	_, status, err := c.RawHTTPGet("/receipts/0x1234")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}
