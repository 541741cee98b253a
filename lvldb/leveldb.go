// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/corral-labs/corral/kv"
)

var _ kv.GetPutCloser = (*LevelDB)(nil)

const minCacheMB = 16

// Options tunes the memory held by a main database. Values under 16 are raised to 16.
type Options struct {
	CacheSize              int // MiB, split between the block cache and the write buffers
	OpenFilesCacheCapacity int
}

func (o Options) leveldb() *opt.Options {
	cache := max(o.CacheSize, minCacheMB)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFilesCacheCapacity, minCacheMB),
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		// leveldb keeps two write buffers alive
		WriteBuffer: cache / 4 * opt.MiB,
		Filter:      filter.NewBloomFilter(10),
	}
}

var (
	readOpt  = &opt.ReadOptions{}
	writeOpt = &opt.WriteOptions{}
	// batches carry the committed ledger
	commitOpt = &opt.WriteOptions{Sync: true}
)

// LevelDB is the main key value store of a node.
type LevelDB struct {
	db *leveldb.DB
	// owns the file lock of a persistent store
	stg storage.Storage
}

// New opens the store under path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open storage")
	}
	ldb, err := open(stg, opts)
	if err != nil {
		stg.Close()
		return nil, err
	}
	return ldb, nil
}

// NewMem creates a store that lives in memory, for tests and the dev network.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	db, err := leveldb.Open(stg, opts.leveldb())
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db, stg}, nil
}

// Close closes the db and then releases its storage. The store is unusable afterwards.
func (ldb *LevelDB) Close() error {
	dbErr := ldb.db.Close()
	stgErr := ldb.stg.Close()
	if dbErr != nil {
		return errors.Wrap(dbErr, "close level db")
	}
	if stgErr != nil {
		return errors.Wrap(stgErr, "close storage")
	}
	return nil
}

// IsNotFound reports whether err is the missing key error of Get.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, readOpt)
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, readOpt)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, writeOpt)
}

func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, writeOpt)
}

// NewBatch starts an atomic write. Written batches are synced to disk.
func (ldb *LevelDB) NewBatch() kv.Batch {
	return &batch{ldb.db, new(leveldb.Batch)}
}

// NewIterator iterates keys in [r.From, r.To).
func (ldb *LevelDB) NewIterator(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator(&util.Range{Start: r.From, Limit: r.To}, readOpt)
}

type batch struct {
	db  *leveldb.DB
	ops *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.ops.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops.Delete(key)
	return nil
}

func (b *batch) Len() int { return b.ops.Len() }

func (b *batch) Write() error {
	return b.db.Write(b.ops, commitOpt)
}
