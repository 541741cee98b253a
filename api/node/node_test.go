// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/api/node"
	"github.com/corral-labs/corral/builtin"
	"github.com/corral-labs/corral/client"
	"github.com/corral-labs/corral/genesis"
	"github.com/corral-labs/corral/test/testchain"
)

func TestNodeInfo(t *testing.T) {
	tchain, err := testchain.NewDefault()
	require.NoError(t, err)
	t.Cleanup(tchain.Close)

	router := mux.NewRouter()
	node.New(tchain.Runtime(), tchain.Genesis().Name(), true).Mount(router, "/node")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	c := client.New(ts.URL)

	info, err := c.Node()
	require.NoError(t, err)
	assert.Equal(t, "devnet", info.Network)
	assert.Equal(t, genesis.DevAccounts()[0].Address, info.Owner)
	assert.Equal(t, uint32(0), info.BestBlock)
	assert.Equal(t, uint32(1), info.PendingBlock)
	assert.True(t, info.DevAPI)
	assert.Equal(t, node.Contracts{
		Params:     builtin.Params.Address,
		Collection: builtin.Collection.Address,
		Token:      builtin.Token.Address,
		StakeNFT:   builtin.StakeNFT.Address,
	}, info.Contracts)

	_, err = tchain.Runtime().Mine(3)
	require.NoError(t, err)
	info, err = c.Node()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), info.BestBlock)
	assert.Equal(t, uint32(4), info.PendingBlock)
}
