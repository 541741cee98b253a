// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/kv"
	"github.com/corral-labs/corral/metrics"
	"github.com/corral-labs/corral/stackedmap"
)

// StorageBucket is the kv bucket holding committed storage slots.
const StorageBucket kv.Bucket = "s"

const storageCacheSize = 4096

var metricStorageAccess = metrics.LazyLoadCounterVec("state_storage_access_count", []string{"type", "hit"})

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr corral.Address
	key  corral.Bytes32
}

func (k storageKey) dbKey() []byte {
	return append(k.addr.Bytes(), k.key[:]...)
}

// State manages contract storage.
type State struct {
	src   kv.GetPutter
	db    kv.GetPutter
	cache *lru.Cache // committed slots
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object over the given kv store.
func New(db kv.GetPutter) *State {
	cache, _ := lru.New(storageCacheSize)
	s := &State{
		src:   db,
		db:    StorageBucket.NewGetPutter(db),
		cache: cache,
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New[storageKey, rlp.RawValue](s.committedGetter)
	// base level, holds writes not covered by any checkpoint
	s.sm.Push()
}

// committedGetter implements stackedmap.MapGetter.
func (s *State) committedGetter(k storageKey) (rlp.RawValue, bool, error) {
	if v, ok := s.cache.Get(k); ok {
		metricStorageAccess().AddWithLabel(1, map[string]string{"type": "read", "hit": "1"})
		return v.(rlp.RawValue), true, nil
	}
	metricStorageAccess().AddWithLabel(1, map[string]string{"type": "read", "hit": "0"})

	data, err := s.db.Get(k.dbKey())
	if err != nil {
		if !s.db.IsNotFound(err) {
			return nil, false, err
		}
		data = nil
	}
	s.cache.Add(k, rlp.RawValue(data))
	return data, true, nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr corral.Address, key corral.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr corral.Address, key corral.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr corral.Address, key corral.Bytes32) (corral.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return corral.Bytes32{}, err
	}
	if len(raw) == 0 {
		return corral.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return corral.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// customized storage value, identified by its hash
		return corral.Blake2b(raw), nil
	}
	return corral.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr corral.Address, key, value corral.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr corral.Address, key corral.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr corral.Address, key corral.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	// never drop the base level
	if revision < 1 {
		revision = 1
	}
	s.sm.PopTo(revision)
}

// Dirty returns the number of slots written since the last commit.
func (s *State) Dirty() int {
	n := 0
	s.sm.Journal(func(storageKey, rlp.RawValue) bool {
		n++
		return true
	})
	return n
}

// Discard drops every uncommitted change.
func (s *State) Discard() {
	s.reset()
}

// Commit flushes all journaled changes into the kv store in a single batch.
// Each stage func may add writes of its own to the batch, keyed in the
// underlying store. The journal is cleared once the batch is written.
func (s *State) Commit(stages ...func(kv.Batch) error) error {
	changes := make(map[storageKey]rlp.RawValue)
	var order []storageKey
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		if _, ok := changes[k]; !ok {
			order = append(order, k)
		}
		changes[k] = v
		return true
	})
	if len(order) == 0 && len(stages) == 0 {
		return nil
	}

	raw := s.src.NewBatch()
	for _, stage := range stages {
		if err := stage(raw); err != nil {
			return err
		}
	}
	batch := StorageBucket.WrapBatch(raw)
	for _, k := range order {
		v := changes[k]
		var err error
		if len(v) == 0 {
			err = batch.Delete(k.dbKey())
		} else {
			err = batch.Put(k.dbKey(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := raw.Write(); err != nil {
		return &Error{err}
	}
	metricStorageAccess().AddWithLabel(int64(len(order)), map[string]string{"type": "write", "hit": "0"})

	for _, k := range order {
		s.cache.Add(k, changes[k])
	}
	s.reset()
	return nil
}
