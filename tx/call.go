// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/corral"
)

// ErrInvalidSignature is returned when a call is unsigned or not signed by its caller.
var ErrInvalidSignature = errors.New("invalid signature")

// Call is an invocation request signed by its caller. The nonce is chosen
// freely by the caller and makes otherwise equal calls distinct.
type Call struct {
	Method    string
	Caller    corral.Address
	Nonce     uint64
	Args      []any
	Signature []byte
}

// NewCall creates an unsigned call of method with args.
// Args must be rlp encodable.
func NewCall(method string, caller corral.Address, nonce uint64, args ...any) *Call {
	return &Call{
		Method: method,
		Caller: caller,
		Nonce:  nonce,
		Args:   args,
	}
}

// SigningHash returns the hash to be signed by the caller. It also
// identifies the call.
func (c *Call) SigningHash() (corral.Bytes32, error) {
	args := c.Args
	if args == nil {
		args = []any{}
	}
	data, err := rlp.EncodeToBytes([]any{c.Method, c.Caller, c.Nonce, args})
	if err != nil {
		return corral.Bytes32{}, errors.Wrap(err, "encode call")
	}
	return corral.Blake2b(data), nil
}

// Sign signs the call with key, setting the caller to the address of key.
func (c *Call) Sign(key *ecdsa.PrivateKey) error {
	c.Caller = corral.Address(crypto.PubkeyToAddress(key.PublicKey))
	hash, err := c.SigningHash()
	if err != nil {
		return err
	}
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return fmt.Errorf("unable to sign call: %w", err)
	}
	c.Signature = sig
	return nil
}

// Signer recovers the address that signed the call.
func (c *Call) Signer() (corral.Address, error) {
	if len(c.Signature) != crypto.SignatureLength {
		return corral.Address{}, ErrInvalidSignature
	}
	hash, err := c.SigningHash()
	if err != nil {
		return corral.Address{}, err
	}
	pub, err := crypto.SigToPub(hash.Bytes(), c.Signature)
	if err != nil {
		return corral.Address{}, errors.WithMessage(ErrInvalidSignature, err.Error())
	}
	return corral.Address(crypto.PubkeyToAddress(*pub)), nil
}

// Verify checks that the call is signed by its caller.
func (c *Call) Verify() error {
	signer, err := c.Signer()
	if err != nil {
		return err
	}
	if signer != c.Caller {
		return ErrInvalidSignature
	}
	return nil
}
