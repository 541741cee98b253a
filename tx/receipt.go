// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/binary"

	"github.com/corral-labs/corral/corral"
)

// Receipt represents the results of an invocation.
type Receipt struct {
	// block the invocation was executed in
	BlockNumber uint32
	// position of the invocation inside the block
	Index uint32
	// principal that issued the invocation
	Caller corral.Address
	// name of the invoked operation
	Method string
	// events emitted, empty if reverted
	Events Events
	// revert reason, empty on success
	Reverted     bool
	RevertReason string
}

// ID returns the identifier of the invocation, derived from its position in the chain.
func (r *Receipt) ID() corral.Bytes32 {
	var b [8]byte
	binary.BigEndian.PutUint32(b[:], r.BlockNumber)
	binary.BigEndian.PutUint32(b[4:], r.Index)
	return corral.Blake2b(b[:], r.Caller.Bytes(), []byte(r.Method))
}
