// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corral-labs/corral/abi"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/lvldb"
	"github.com/corral-labs/corral/state"
	"github.com/corral-labs/corral/test/datagen"
	"github.com/corral-labs/corral/tx"
)

type TestStruct struct {
	Field1 uint64
	Field2 uint64
	Addr1  corral.Address
	Bytes1 corral.Bytes32
}

// newTestContext returns a fresh Context over an in-memory db.
func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(corral.Address{1}, state.New(db), &tx.EventJournal{})
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[corral.Bytes32, *TestStruct](ctx, corral.Bytes32{1})

	key := datagen.RandomHash()
	v, err := m.Get(key)
	require.NoError(t, err)
	assert.NotNil(t, v, "pointer values are never nil")
	assert.Equal(t, TestStruct{}, *v)

	want := &TestStruct{100, 200, datagen.RandAddress(), datagen.RandomHash()}
	require.NoError(t, m.Set(key, want))

	v, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, v)

	// the same key under another base position is a different entry
	other := NewMapping[corral.Bytes32, *TestStruct](ctx, corral.Bytes32{2})
	v, err = other.Get(key)
	require.NoError(t, err)
	assert.Equal(t, TestStruct{}, *v)

	m.Delete(key)
	v, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, TestStruct{}, *v)
}

func TestMappingValueTypes(t *testing.T) {
	ctx := newTestContext(t)

	balances := NewMapping[corral.Address, *uint256.Int](ctx, corral.Bytes32{3})
	holder := datagen.RandAddress()
	require.NoError(t, balances.Set(holder, uint256.NewInt(1e18)))
	b, err := balances.Get(holder)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(1e18), b)

	flags := NewMapping[*uint256.Int, bool](ctx, corral.Bytes32{4})
	ok, err := flags.Get(uint256.NewInt(7))
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, flags.Set(uint256.NewInt(7), true))
	ok, err = flags.Get(uint256.NewInt(7))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMappingCorrupted(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[corral.Bytes32, uint64](ctx, corral.Bytes32{1})
	key := corral.Bytes32{9}

	ctx.state.SetRawStorage(ctx.address, m.position(key), rlp.RawValue{0xff})
	_, err := m.Get(key)
	assert.Error(t, err)
}

func TestRaw(t *testing.T) {
	ctx := newTestContext(t)
	r := NewRaw[[]corral.Bytes32](ctx, corral.BytesToBytes32([]byte("list")))

	v, err := r.Get()
	require.NoError(t, err)
	assert.Empty(t, v)

	list := []corral.Bytes32{{1}, {2}}
	require.NoError(t, r.Upsert(list))
	v, err = r.Get()
	require.NoError(t, err)
	assert.Equal(t, list, v)

	r.Clear()
	v, err = r.Get()
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, corral.BytesToBytes32([]byte("total")))

	v, err := u.Get()
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	require.NoError(t, u.Add(uint256.NewInt(10)))
	require.NoError(t, u.Sub(uint256.NewInt(3)))
	v, _ = u.Get()
	assert.Equal(t, uint256.NewInt(7), v)

	assert.ErrorIs(t, u.Sub(uint256.NewInt(8)), ErrUint256Underflow)
	v, _ = u.Get()
	assert.Equal(t, uint256.NewInt(7), v, "failed sub leaves value untouched")

	max := new(uint256.Int).SetAllOne()
	assert.ErrorIs(t, u.Add(max), ErrUint256Overflow)

	u.Set(max)
	v, _ = u.Get()
	assert.Equal(t, max, v)
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, corral.BytesToBytes32([]byte("owner")))

	v, err := a.Get()
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	addr := datagen.RandAddress()
	a.Set(addr)
	v, err = a.Get()
	require.NoError(t, err)
	assert.Equal(t, addr, v)

	assert.Equal(t, corral.Address{1}, ctx.Address())
	assert.NotNil(t, ctx.State())
}

func TestContextCheckpoint(t *testing.T) {
	ctx := newTestContext(t)
	ev := abi.MustNew([]byte(`[{"type":"event","name":"Ping","inputs":[{"name":"n","type":"uint256","indexed":false}]}]`)).
		MustEventByName("Ping")
	slot := NewUint256(ctx, corral.Bytes32{5})

	slot.Set(uint256.NewInt(1))
	require.NoError(t, ctx.Emit(ev, uint256.NewInt(1)))

	cp := ctx.NewCheckpoint()
	slot.Set(uint256.NewInt(2))
	require.NoError(t, ctx.Emit(ev, uint256.NewInt(2)))
	assert.Equal(t, 2, ctx.journal.Len())

	ctx.RevertTo(cp)
	v, _ := slot.Get()
	assert.Equal(t, uint256.NewInt(1), v)
	assert.Equal(t, 1, ctx.journal.Len())

	events := ctx.journal.Events()
	assert.Equal(t, ctx.Address(), events[0].Address)
	assert.Equal(t, ev.ID(), events[0].Topics[0])

	// a read only context drops events
	ro := NewContext(ctx.Address(), ctx.State(), nil)
	assert.NoError(t, ro.Emit(ev, uint256.NewInt(3)))
	ro.RevertTo(ro.NewCheckpoint())

	assert.Error(t, ctx.Emit(ev))
}
