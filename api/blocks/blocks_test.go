// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/api/blocks"
	"github.com/corral-labs/corral/client"
	"github.com/corral-labs/corral/genesis"
	"github.com/corral-labs/corral/test/testchain"
)

func initBlocksServer(t *testing.T, devAPI bool, automine bool) *client.Client {
	tchain, err := testchain.New(genesis.NewDevnet(), automine)
	require.NoError(t, err)
	t.Cleanup(tchain.Close)

	router := mux.NewRouter()
	blocks.New(tchain.Runtime(), devAPI).Mount(router, "/blocks")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return client.New(ts.URL)
}

func TestMine(t *testing.T) {
	c := initBlocksServer(t, true, false)

	head, err := c.Mine(5)
	require.NoError(t, err)
	assert.Equal(t, blocks.Head{Number: 5, Pending: 6}, *head)

	// count defaults to one
	res, status, err := c.RawHTTPPost("/blocks/mine", []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(res, head))
	assert.Equal(t, uint32(6), head.Number)

	res, status, err = c.RawHTTPGet("/blocks/best")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(res, head))
	assert.Equal(t, blocks.Head{Number: 6, Pending: 7}, *head)

	_, status, err = c.RawHTTPPost("/blocks/mine", []byte(`{"count":0}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMineDisabled(t *testing.T) {
	c := initBlocksServer(t, false, true)

	_, err := c.Mine(1)
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}
