// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corral-labs/corral/kv"
	"github.com/corral-labs/corral/lvldb"
)

func TestNewRangeWithBytesPrefix(t *testing.T) {
	tests := []struct {
		prefix []byte
		to     []byte
	}{
		{[]byte("a"), []byte("b")},
		{[]byte{0x01, 0xff}, []byte{0x02}},
		{[]byte{0xff, 0xff}, nil},
	}
	for _, tt := range tests {
		rng := kv.NewRangeWithBytesPrefix(tt.prefix)
		assert.Equal(t, tt.prefix, rng.From)
		assert.Equal(t, tt.to, rng.To)
	}
}

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer db.Close()

	a := kv.Bucket("a").NewGetPutter(db)
	b := kv.Bucket("b").NewGetPutter(db)

	assert.Nil(t, a.Put([]byte("k1"), []byte("v1")))
	assert.Nil(t, b.Put([]byte("k1"), []byte("v2")))

	v, err := a.Get([]byte("k1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), v)

	raw, err := db.Get([]byte("bk1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), raw)

	batch := a.NewBatch()
	assert.Nil(t, batch.Put([]byte("k2"), []byte("v3")))
	assert.Nil(t, batch.Delete([]byte("k1")))
	assert.Equal(t, 2, batch.Len())
	assert.Nil(t, batch.Write())

	has, err := a.Has([]byte("k1"))
	assert.Nil(t, err)
	assert.False(t, has)

	_, err = a.Get([]byte("k1"))
	assert.True(t, a.IsNotFound(err))

	it := a.NewIterator(kv.Range{})
	defer it.Release()
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Nil(t, it.Error())
	assert.Equal(t, []string{"k2"}, keys)
}
