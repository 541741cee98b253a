// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corral-labs/corral/corral"
)

func TestEventJournal(t *testing.T) {
	var j EventJournal
	assert.Equal(t, 0, j.Len())

	for i := range 3 {
		j.Emit(&Event{Address: corral.BytesToAddress([]byte{byte(i)})})
	}
	assert.Equal(t, 3, j.Len())

	events := j.Events()
	j.Truncate(1)
	assert.Equal(t, 1, j.Len())
	assert.Len(t, events, 3, "returned slice is a copy")

	j.Truncate(5)
	assert.Equal(t, 1, j.Len())

	j.Emit(&Event{})
	assert.Equal(t, 2, j.Len())

	j.Reset()
	assert.Equal(t, 0, j.Len())
	assert.Empty(t, j.Events())
}

func TestReceiptID(t *testing.T) {
	caller := corral.BytesToAddress([]byte("caller"))
	r1 := &Receipt{BlockNumber: 1, Index: 0, Caller: caller, Method: "stake"}
	r2 := &Receipt{BlockNumber: 1, Index: 1, Caller: caller, Method: "stake"}
	r3 := &Receipt{BlockNumber: 1, Index: 0, Caller: caller, Method: "stake", Reverted: true}

	assert.NotEqual(t, r1.ID(), r2.ID())
	assert.Equal(t, r1.ID(), r3.ID())
	assert.False(t, r1.ID().IsZero())
}
