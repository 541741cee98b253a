// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corral-labs/corral/co"
)

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestSignal_BroadcastBeforeWaiter(t *testing.T) {
	var sig co.Signal
	sig.Broadcast()

	w := sig.NewWaiter()
	assert.False(t, closed(w.C()), "earlier broadcasts are not observed")
}

func TestSignal_BroadcastAfterWaiter(t *testing.T) {
	var sig co.Signal

	var ws []*co.Waiter
	for range 10 {
		ws = append(ws, sig.NewWaiter())
	}
	sig.Broadcast()

	for _, w := range ws {
		<-w.C()
	}
}

func TestSignal_Rearm(t *testing.T) {
	var sig co.Signal
	w := sig.NewWaiter()

	sig.Broadcast()
	assert.True(t, closed(w.C()))
	assert.False(t, closed(w.C()), "consumed broadcast")

	// a broadcast between two calls is not lost
	ch := w.C()
	sig.Broadcast()
	assert.True(t, closed(ch))
	assert.True(t, closed(w.C()))
}
