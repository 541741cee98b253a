// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"
	"math"

	"github.com/corral-labs/corral/api/events"
	"github.com/corral-labs/corral/logdb"
)

const readBatchSize = 100

// eventReader pages through the events matching criteria in blocks from
// `from` on. The log is append only, so the number of events delivered so
// far is a stable cursor.
type eventReader struct {
	db        *logdb.LogDB
	criteria  *logdb.EventCriteria
	from      uint32
	delivered uint64
}

func newEventReader(db *logdb.LogDB, criteria *logdb.EventCriteria, from uint32) *eventReader {
	return &eventReader{
		db:       db,
		criteria: criteria,
		from:     from,
	}
}

// Read returns the next batch of events, empty when caught up.
func (r *eventReader) Read() ([]*events.FilteredEvent, error) {
	evs, err := r.db.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{r.criteria},
		Range:       &logdb.Range{From: r.from, To: math.MaxUint32},
		Options:     &logdb.Options{Offset: r.delivered, Limit: readBatchSize},
		Order:       logdb.ASC,
	})
	if err != nil {
		return nil, err
	}
	msgs := make([]*events.FilteredEvent, 0, len(evs))
	for _, ev := range evs {
		msgs = append(msgs, events.ConvertEvent(ev))
	}
	r.delivered += uint64(len(evs))
	return msgs, nil
}
