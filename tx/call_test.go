// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/corral"
)

func TestCallSign(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := corral.Address(crypto.PubkeyToAddress(key.PublicKey))

	call := NewCall("stake", corral.Address{}, 7, uint256.NewInt(100))
	require.NoError(t, call.Sign(key))
	assert.Equal(t, addr, call.Caller)
	assert.Len(t, call.Signature, 65)

	signer, err := call.Signer()
	require.NoError(t, err)
	assert.Equal(t, addr, signer)
	assert.NoError(t, call.Verify())
}

func TestCallSigningHash(t *testing.T) {
	caller := corral.BytesToAddress([]byte("caller"))
	base, err := NewCall("stake", caller, 1, uint256.NewInt(100)).SigningHash()
	require.NoError(t, err)

	same, err := NewCall("stake", caller, 1, uint256.NewInt(100)).SigningHash()
	require.NoError(t, err)
	assert.Equal(t, base, same)

	for _, call := range []*Call{
		NewCall("unstake", caller, 1, uint256.NewInt(100)),
		NewCall("stake", caller, 2, uint256.NewInt(100)),
		NewCall("stake", caller, 1, uint256.NewInt(101)),
		NewCall("stake", corral.BytesToAddress([]byte("other")), 1, uint256.NewInt(100)),
	} {
		hash, err := call.SigningHash()
		require.NoError(t, err)
		assert.NotEqual(t, base, hash, call.Method)
	}

	// no args and empty args are the same call
	a, err := NewCall("claimRewards", caller, 1).SigningHash()
	require.NoError(t, err)
	b, err := (&Call{Method: "claimRewards", Caller: caller, Nonce: 1, Args: []any{}}).SigningHash()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCallVerify(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	// unsigned
	call := NewCall("pauseStaking", corral.BytesToAddress([]byte("owner")), 1)
	assert.ErrorIs(t, call.Verify(), ErrInvalidSignature)

	// signed by a key other than the caller
	require.NoError(t, call.Sign(other))
	call.Caller = corral.Address(crypto.PubkeyToAddress(key.PublicKey))
	assert.ErrorIs(t, call.Verify(), ErrInvalidSignature)

	// args changed after signing
	call = NewCall("updateRewardRate", corral.Address{}, 1, uint256.NewInt(5))
	require.NoError(t, call.Sign(key))
	call.Args = []any{uint256.NewInt(6)}
	assert.ErrorIs(t, call.Verify(), ErrInvalidSignature)

	// malformed signature
	call.Signature = make([]byte, 65)
	assert.ErrorIs(t, call.Verify(), ErrInvalidSignature)
}
