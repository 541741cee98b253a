// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket provides logical bucket for kv store.
type Bucket string

func (b Bucket) key(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}

// NewGetPutter creates a bucket view of the source store.
func (b Bucket) NewGetPutter(src GetPutter) GetPutter {
	return &bucket{b, src}
}

type bucket struct {
	name Bucket
	src  GetPutter
}

func (bk *bucket) Get(key []byte) ([]byte, error) {
	return bk.src.Get(bk.name.key(key))
}
func (bk *bucket) Has(key []byte) (bool, error) {
	return bk.src.Has(bk.name.key(key))
}
func (bk *bucket) IsNotFound(err error) bool {
	return bk.src.IsNotFound(err)
}
func (bk *bucket) Put(key, value []byte) error {
	return bk.src.Put(bk.name.key(key), value)
}
func (bk *bucket) Delete(key []byte) error {
	return bk.src.Delete(bk.name.key(key))
}
func (bk *bucket) NewBatch() Batch {
	return &bucketBatch{bk.name, bk.src.NewBatch()}
}

// WrapBatch returns a batch putting keys of the bucket into batch.
func (b Bucket) WrapBatch(batch Batch) Batch {
	return &bucketBatch{b, batch}
}

func (bk *bucket) NewIterator(r Range) Iterator {
	rng := Range{From: bk.name.key(r.From)}
	if len(r.To) == 0 {
		rng.To = NewRangeWithBytesPrefix([]byte(bk.name)).To
	} else {
		rng.To = bk.name.key(r.To)
	}
	return &bucketIter{bk.src.NewIterator(rng), len(bk.name)}
}

type bucketBatch struct {
	name Bucket
	Batch
}

func (b *bucketBatch) Put(key, value []byte) error {
	return b.Batch.Put(b.name.key(key), value)
}
func (b *bucketBatch) Delete(key []byte) error {
	return b.Batch.Delete(b.name.key(key))
}

type bucketIter struct {
	Iterator
	n int
}

// Key strips the bucket prefix.
func (i *bucketIter) Key() []byte { return i.Iterator.Key()[i.n:] }
