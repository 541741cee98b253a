// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"crypto/ecdsa"
	"math/rand/v2"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/runtime"
	"github.com/corral-labs/corral/tx"
)

// Signed is embedded in the body of every request issued by a caller. The
// signature covers the method, caller, nonce and the arguments of the request.
type Signed struct {
	Caller    *corral.Address     `json:"caller"`
	Nonce     math.HexOrDecimal64 `json:"nonce"`
	Signature hexutil.Bytes       `json:"signature"`
}

// Call builds the call of method carrying args as requested.
func (s *Signed) Call(method string, args ...any) (*tx.Call, error) {
	caller, err := RequireAddress("caller", s.Caller)
	if err != nil {
		return nil, err
	}
	call := tx.NewCall(method, caller, uint64(s.Nonce), args...)
	call.Signature = s.Signature
	return call, nil
}

// Sign signs the call of method carrying args with key under a random nonce.
func (s *Signed) Sign(key *ecdsa.PrivateKey, method string, args ...any) error {
	call := tx.NewCall(method, corral.Address{}, rand.Uint64(), args...)
	if err := call.Sign(key); err != nil {
		return err
	}
	s.Caller = &call.Caller
	s.Nonce = math.HexOrDecimal64(call.Nonce)
	s.Signature = call.Signature
	return nil
}

// Invoke executes fn as the signed call and responds the receipt. A reverted
// invocation is responded as a bad request carrying the revert reason.
func Invoke(w http.ResponseWriter, rt *runtime.Runtime, call *tx.Call, fn func(*runtime.Contracts) error) error {
	receipt, err := rt.ExecuteCall(call, fn)
	if err != nil {
		switch {
		case errors.Is(err, tx.ErrInvalidSignature):
			return Forbidden(errors.WithMessage(err, "signature"))
		case errors.Is(err, runtime.ErrCallExecuted):
			return BadRequest(err)
		}
		return err
	}
	return WriteJSON(w, ConvertReceipt(receipt))
}

// InvokeUnsigned executes fn as caller without authentication. It serves the
// dev API only.
func InvokeUnsigned(
	w http.ResponseWriter,
	rt *runtime.Runtime,
	caller corral.Address,
	method string,
	fn func(*runtime.Contracts) error,
) error {
	receipt, err := rt.Execute(caller, method, fn)
	if err != nil {
		return err
	}
	return WriteJSON(w, ConvertReceipt(receipt))
}
