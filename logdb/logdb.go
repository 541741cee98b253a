// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/tx"
)

const schema = `
CREATE TABLE IF NOT EXISTS receipt (
	seq INTEGER PRIMARY KEY NOT NULL,
	id BLOB NOT NULL,
	caller BLOB NOT NULL,
	method TEXT NOT NULL,
	reverted INTEGER NOT NULL,
	reason TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS receipt_i0 ON receipt(id);

CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY NOT NULL,
	address BLOB NOT NULL,
	topic0 BLOB,
	topic1 BLOB,
	topic2 BLOB,
	topic3 BLOB,
	data BLOB
);
CREATE INDEX IF NOT EXISTS event_i0 ON event(topic0, topic1);
CREATE INDEX IF NOT EXISTS event_i1 ON event(address, topic0);
`

const (
	insertReceipt = "INSERT OR REPLACE INTO receipt(seq, id, caller, method, reverted, reason) VALUES(?, ?, ?, ?, ?, ?)"
	insertEvent   = "INSERT OR REPLACE INTO event(seq, address, topic0, topic1, topic2, topic3, data) VALUES(?, ?, ?, ?, ?, ?, ?)"
	selectReceipt = "SELECT seq, caller, method, reverted, reason FROM receipt WHERE id = ?"

	// events are joined with the receipt sharing the block and tx index
	selectEvents = `SELECT e.seq, r.id, r.caller, r.method, e.address, e.topic0, e.topic1, e.topic2, e.topic3, e.data
FROM event e JOIN receipt r ON r.seq = (e.seq >> 15) << 15`
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmts         *preparedStmts
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// sqlite serializes writers anyway, and an in-memory db lives in a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
		newPreparedStmts(db),
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmts.closeAll()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Write stores the receipt and its events in a single sql transaction.
func (db *LogDB) Write(receipt *tx.Receipt) error {
	if receipt.Index > MaxTxIndex {
		return errors.Errorf("receipt index %d out of range", receipt.Index)
	}
	if len(receipt.Events) > MaxEventIndex+1 {
		return errors.Errorf("too many events: %d", len(receipt.Events))
	}

	// statements are prepared before the transaction holds the only connection
	receiptStmt, err := db.stmts.get(insertReceipt)
	if err != nil {
		return err
	}
	eventStmt, err := db.stmts.get(insertEvent)
	if err != nil {
		return err
	}

	return db.execInTx(func(sqlTx *sql.Tx) error {
		id := receipt.ID()
		if _, err := sqlTx.Stmt(receiptStmt).Exec(
			newSequence(receipt.BlockNumber, receipt.Index, 0),
			id.Bytes(),
			receipt.Caller.Bytes(),
			receipt.Method,
			receipt.Reverted,
			receipt.RevertReason,
		); err != nil {
			return errors.Wrap(err, "insert receipt")
		}

		for i, txEvent := range receipt.Events {
			ev := newEvent(receipt, uint32(i), txEvent)
			if _, err := sqlTx.Stmt(eventStmt).Exec(
				newSequence(ev.BlockNumber, ev.TxIndex, ev.Index),
				ev.Address.Bytes(),
				topicValue(ev.Topics[0]),
				topicValue(ev.Topics[1]),
				topicValue(ev.Topics[2]),
				topicValue(ev.Topics[3]),
				ev.Data,
			); err != nil {
				return errors.Wrap(err, "insert event")
			}
		}
		metricWrittenEvents().Add(int64(len(receipt.Events)))
		return nil
	})
}

func (db *LogDB) execInTx(proc func(*sql.Tx) error) (err error) {
	sqlTx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(sqlTx); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

// GetReceipt returns the receipt with the given id, its events included.
func (db *LogDB) GetReceipt(ctx context.Context, id corral.Bytes32) (*tx.Receipt, error) {
	var (
		seq      sequence
		caller   []byte
		method   string
		reverted bool
		reason   string
	)
	if err := db.db.QueryRowContext(ctx, selectReceipt, id.Bytes()).Scan(&seq, &caller, &method, &reverted, &reason); err != nil {
		return nil, err
	}
	receipt := &tx.Receipt{
		BlockNumber:  seq.BlockNumber(),
		Index:        seq.TxIndex(),
		Caller:       corral.BytesToAddress(caller),
		Method:       method,
		Reverted:     reverted,
		RevertReason: reason,
	}
	events, err := db.queryEvents(ctx, selectEvents+" WHERE e.seq >= ? AND e.seq <= ? ORDER BY e.seq ASC",
		newSequence(receipt.BlockNumber, receipt.Index, 0),
		newSequence(receipt.BlockNumber, receipt.Index, MaxEventIndex),
	)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		receipt.Events = append(receipt.Events, ev.ToTxEvent())
	}
	return receipt, nil
}

// IsNotFound reports whether err means no rows matched.
func (db *LogDB) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, selectEvents+" ORDER BY e.seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := selectEvents + " WHERE 1"
	if filter.Range != nil {
		args = append(args, newSequence(filter.Range.From, 0, 0))
		stmt += " AND e.seq >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, newSequence(filter.Range.To, MaxTxIndex, MaxEventIndex))
			stmt += " AND e.seq <= ?"
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND e.address = ?"
		}
		for j, topic := range criteria.Topics {
			if topic != nil {
				args = append(args, topic.Bytes())
				stmt += fmt.Sprintf(" AND e.topic%v = ?", j)
			}
		}
		stmt += ")"
		if i == len(filter.CriteriaSet)-1 {
			stmt += ")"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY e.seq DESC"
	} else {
		stmt += " ORDER BY e.seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmts.get(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       sequence
			receiptID []byte
			caller    []byte
			method    string
			address   []byte
			topics    [4][]byte
			data      []byte
		)
		if err := rows.Scan(
			&seq,
			&receiptID,
			&caller,
			&method,
			&address,
			&topics[0],
			&topics[1],
			&topics[2],
			&topics[3],
			&data,
		); err != nil {
			return nil, err
		}
		event := &Event{
			BlockNumber: seq.BlockNumber(),
			TxIndex:     seq.TxIndex(),
			Index:       seq.EventIndex(),
			ReceiptID:   corral.BytesToBytes32(receiptID),
			Caller:      corral.BytesToAddress(caller),
			Method:      method,
			Address:     corral.BytesToAddress(address),
			Data:        data,
		}
		for i, topic := range topics {
			if len(topic) > 0 {
				h := corral.BytesToBytes32(topic)
				event.Topics[i] = &h
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func topicValue(topic *corral.Bytes32) []byte {
	if topic == nil {
		return nil
	}
	return topic.Bytes()
}
