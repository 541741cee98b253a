// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/builtin/reverts"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/tx"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("itemId: invalid")), http.StatusBadRequest, "itemId: invalid\n"},
		{"not found", NotFound(errors.New("item not found")), http.StatusNotFound, "item not found\n"},
		{"forbidden", Forbidden(errors.New("limit exceeded")), http.StatusForbidden, "limit exceeded\n"},
		{"custom", HTTPError(errors.New("busy"), http.StatusServiceUnavailable), http.StatusServiceUnavailable, "busy\n"},
		{"revert", reverts.New("Item is not staked"), http.StatusBadRequest, "Item is not staked\n"},
		{"internal", errors.New("disk failure"), http.StatusInternalServerError, "disk failure\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestParseJSON(t *testing.T) {
	var v struct {
		Caller *corral.Address `json:"caller"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"caller":"0x0000000000000000000000000000000000000001"}`), &v))
	assert.Equal(t, corral.BytesToAddress([]byte{1}), *v.Caller)

	assert.Error(t, ParseJSON(strings.NewReader(`{"caller":"0x01","extra":1}`), &v))
	assert.Error(t, ParseJSON(strings.NewReader(`{"caller":`), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, M{"pending": Amount(uint256.NewInt(255))}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "{\"pending\":\"0xff\"}\n", rec.Body.String())
}

func TestParseItemID(t *testing.T) {
	id, err := ParseItemID("100")
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(100), id)

	id, err = ParseItemID("0x64")
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(100), id)

	// ParseBig256 reads an empty string as zero
	_, err = ParseItemID("")
	assert.EqualError(t, err, "empty item id")

	for _, s := range []string{"abc", "-1", "0x", "0x" + strings.Repeat("f", 65)} {
		_, err = ParseItemID(s)
		assert.Error(t, err, s)
	}
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, corral.BytesToAddress([]byte{1}), addr)

	_, err = ParseAddress(corral.Address{}.String())
	assert.Error(t, err)
	_, err = ParseAddress("0x01")
	assert.Error(t, err)

	_, err = RequireAddress("caller", nil)
	assert.Error(t, err)
	_, err = RequireAddress("caller", &corral.Address{})
	assert.Error(t, err)
	got, err := RequireAddress("caller", &addr)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestParseUint32(t *testing.T) {
	v, err := ParseUint32("", 7)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)

	v, err = ParseUint32("4294967295", 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), v)

	_, err = ParseUint32("4294967296", 0)
	assert.Error(t, err)
	_, err = ParseUint32("-1", 0)
	assert.Error(t, err)
}

func TestToUint256(t *testing.T) {
	_, err := ToUint256(nil)
	assert.Error(t, err)

	_, err = ToUint256((*math.HexOrDecimal256)(big.NewInt(-1)))
	assert.Error(t, err)

	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = ToUint256((*math.HexOrDecimal256)(tooBig))
	assert.Error(t, err)

	v, err := ToUint256((*math.HexOrDecimal256)(big.NewInt(1e9)))
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(1e9), v)
}

func TestSignedCall(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	id := uint256.NewInt(100)

	var signed Signed
	require.NoError(t, signed.Sign(key, "stake", id))
	require.NotNil(t, signed.Caller)
	assert.Equal(t, corral.Address(crypto.PubkeyToAddress(key.PublicKey)), *signed.Caller)

	// as sent over the wire
	data, err := json.Marshal(&signed)
	require.NoError(t, err)
	var received Signed
	require.NoError(t, ParseJSON(bytes.NewReader(data), &received))

	call, err := received.Call("stake", id)
	require.NoError(t, err)
	assert.NoError(t, call.Verify())

	call, err = received.Call("unstake", id)
	require.NoError(t, err)
	assert.ErrorIs(t, call.Verify(), tx.ErrInvalidSignature)

	call, err = received.Call("stake", uint256.NewInt(101))
	require.NoError(t, err)
	assert.ErrorIs(t, call.Verify(), tx.ErrInvalidSignature)

	// nonces differ between signings of the same call
	var again Signed
	require.NoError(t, again.Sign(key, "stake", id))
	assert.NotEqual(t, signed.Signature, again.Signature)

	_, err = (&Signed{}).Call("stake", id)
	assert.Error(t, err)
}
