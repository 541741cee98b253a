// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testchain assembles an in-memory node for tests.
package testchain

import (
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/chain"
	"github.com/corral-labs/corral/genesis"
	"github.com/corral-labs/corral/kv"
	"github.com/corral-labs/corral/logdb"
	"github.com/corral-labs/corral/lvldb"
	"github.com/corral-labs/corral/runtime"
	"github.com/corral-labs/corral/state"
)

// Chain bundles the stores and the runtime of an in-memory node.
type Chain struct {
	db      *lvldb.LevelDB
	genesis *genesis.Genesis
	chain   *chain.Chain
	logDB   *logdb.LogDB
	rt      *runtime.Runtime
}

// New creates a node from gene. With automine every invocation seals its own block.
func New(gene *genesis.Genesis, automine bool) (*Chain, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	c, err := chain.New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		db.Close()
		return nil, err
	}
	rt := runtime.New(state.New(db), c, logDB, automine)
	if _, err := rt.Genesis(gene.Apply); err != nil {
		logDB.Close()
		db.Close()
		return nil, errors.Wrap(err, "apply genesis")
	}
	return &Chain{
		db:      db,
		genesis: gene,
		chain:   c,
		logDB:   logDB,
		rt:      rt,
	}, nil
}

// NewDefault creates an automining node from the dev genesis.
func NewDefault() (*Chain, error) {
	return New(genesis.NewDevnet(), true)
}

func (c *Chain) Genesis() *genesis.Genesis {
	return c.genesis
}

func (c *Chain) Database() kv.GetPutCloser {
	return c.db
}

func (c *Chain) Chain() *chain.Chain {
	return c.chain
}

func (c *Chain) LogDB() *logdb.LogDB {
	return c.logDB
}

func (c *Chain) Runtime() *runtime.Runtime {
	return c.rt
}

// Close releases the stores.
func (c *Chain) Close() {
	c.logDB.Close()
	c.db.Close()
}
