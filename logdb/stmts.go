// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"
)

// preparedStmts prepares each distinct query once. Filters build their
// query text from the criteria, so the set stays small.
type preparedStmts struct {
	db *sql.DB

	mu    sync.RWMutex
	stmts map[string]*sql.Stmt
}

func newPreparedStmts(db *sql.DB) *preparedStmts {
	return &preparedStmts{db: db, stmts: make(map[string]*sql.Stmt)}
}

func (p *preparedStmts) get(query string) (*sql.Stmt, error) {
	p.mu.RLock()
	stmt, ok := p.stmts[query]
	p.mu.RUnlock()
	if ok {
		return stmt, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if stmt, ok := p.stmts[query]; ok {
		return stmt, nil
	}
	stmt, err := p.db.Prepare(query)
	if err != nil {
		return nil, errors.Wrap(err, "prepare")
	}
	p.stmts[query] = stmt
	return stmt, nil
}

// closeAll closes and forgets every statement.
func (p *preparedStmts) closeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for query, stmt := range p.stmts {
		_ = stmt.Close()
		delete(p.stmts, query)
	}
}
