// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package collection_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/api/collection"
	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/client"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/genesis"
	"github.com/corral-labs/corral/test/testchain"
)

func initCollectionServer(t *testing.T, devAPI bool) *client.Client {
	tchain, err := testchain.NewDefault()
	require.NoError(t, err)
	t.Cleanup(tchain.Close)

	router := mux.NewRouter()
	collection.New(tchain.Runtime(), devAPI).Mount(router, "/collection")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return client.New(ts.URL)
}

func getItem(t *testing.T, c *client.Client, id string) (*collection.Item, int) {
	res, status, err := c.RawHTTPGet("/collection/" + id)
	require.NoError(t, err)
	if status != http.StatusOK {
		return nil, status
	}
	var item collection.Item
	require.NoError(t, json.Unmarshal(res, &item))
	return &item, status
}

func post(t *testing.T, c *client.Client, path string, body any) (*utils.Receipt, int) {
	res, status, err := c.RawHTTPPost(path, body)
	require.NoError(t, err)
	if status != http.StatusOK {
		return nil, status
	}
	var receipt utils.Receipt
	require.NoError(t, json.Unmarshal(res, &receipt))
	return &receipt, status
}

func TestGetItem(t *testing.T) {
	c := initCollectionServer(t, false)
	alice := genesis.DevAccounts()[1].Address

	item, status := getItem(t, c, "100")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, alice, item.Owner)
	assert.Nil(t, item.Approved)

	// hex ids are accepted
	item, status = getItem(t, c, "0x64")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, alice, item.Owner)

	_, status = getItem(t, c, "999")
	assert.Equal(t, http.StatusNotFound, status)

	_, status = getItem(t, c, "x")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestApprove(t *testing.T) {
	c := initCollectionServer(t, false)
	alice, bob := genesis.DevAccounts()[1], genesis.DevAccounts()[2]

	receipt, err := c.Approve(alice.PrivateKey, bob.Address, uint256.NewInt(100))
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "Approval", receipt.Events[0].Name)

	item, _ := getItem(t, c, "100")
	require.NotNil(t, item.Approved)
	assert.Equal(t, bob.Address, *item.Approved)

	// bob is neither owner nor operator of alice
	_, err = c.Approve(bob.PrivateKey, bob.Address, uint256.NewInt(101))
	var se *client.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)

	// nor can bob sign on behalf of alice
	approve := &collection.ApproveRequest{To: &bob.Address, ItemID: utils.Amount(uint256.NewInt(101))}
	require.NoError(t, approve.Sign(bob.PrivateKey, collection.MethodApprove, bob.Address, uint256.NewInt(101)))
	approve.Caller = &alice.Address
	_, status := post(t, c, "/collection/approve", approve)
	assert.Equal(t, http.StatusForbidden, status)

	receipt, err = c.SetApprovalForAll(alice.PrivateKey, bob.Address, true)
	require.NoError(t, err)
	assert.Equal(t, "ApprovalForAll", receipt.Events[0].Name)
	assert.Equal(t, true, receipt.Events[0].Args["approved"])

	// a zero to clears the approval
	_, err = c.Approve(alice.PrivateKey, corral.Address{}, uint256.NewInt(100))
	require.NoError(t, err)
	item, _ = getItem(t, c, "100")
	assert.Nil(t, item.Approved)

	// the approval is signed too
	all := &collection.ApprovalForAllRequest{Operator: &bob.Address, Approved: false}
	require.NoError(t, all.Sign(alice.PrivateKey, collection.MethodSetApprovalForAll, bob.Address, true))
	_, status = post(t, c, "/collection/approval-for-all", all)
	assert.Equal(t, http.StatusForbidden, status)

	all = &collection.ApprovalForAllRequest{Approved: true}
	require.NoError(t, all.Sign(alice.PrivateKey, collection.MethodSetApprovalForAll, corral.Address{}, true))
	_, status = post(t, c, "/collection/approval-for-all", all)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMint(t *testing.T) {
	c := initCollectionServer(t, false)
	bob := genesis.DevAccounts()[2].Address

	// the dev API is disabled
	_, status := post(t, c, "/collection/mint", map[string]any{"to": bob, "itemId": "7"})
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	c = initCollectionServer(t, true)
	receipt, status := post(t, c, "/collection/mint", map[string]any{"to": bob, "itemId": "7"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "mintItem", receipt.Method)

	item, _ := getItem(t, c, "7")
	assert.Equal(t, bob, item.Owner)

	_, status = post(t, c, "/collection/mint", map[string]any{"to": bob, "itemId": "7"})
	assert.Equal(t, http.StatusBadRequest, status)
}
