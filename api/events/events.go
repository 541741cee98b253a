// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/builtin"
	"github.com/corral-labs/corral/corral"
	"github.com/corral-labs/corral/logdb"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

func parseUint64(query url.Values, key string, def uint64) (uint64, error) {
	s := query.Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, key))
	}
	return v, nil
}

// ParseCriteria builds the criteria of the name, owner and address query
// parameters. The owner matches the first indexed argument of an event.
func ParseCriteria(query url.Values) (*logdb.EventCriteria, error) {
	criteria := &logdb.EventCriteria{}
	if name := query.Get("name"); name != "" {
		id, ok := builtin.EventID(name)
		if !ok {
			return nil, utils.BadRequest(errors.Errorf("name: unknown event %q", name))
		}
		criteria.Topics[0] = &id
	}
	if s := query.Get("owner"); s != "" {
		owner, err := corral.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "owner"))
		}
		topic := corral.BytesToBytes32(owner.Bytes())
		criteria.Topics[1] = &topic
	}
	if s := query.Get("address"); s != "" {
		addr, err := corral.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "address"))
		}
		criteria.Address = &addr
	}
	return criteria, nil
}

func (e *Events) parseFilter(query url.Values) (*logdb.EventFilter, error) {
	criteria, err := ParseCriteria(query)
	if err != nil {
		return nil, err
	}

	from, err := utils.ParseUint32(query.Get("from"), 0)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "from"))
	}
	to, err := utils.ParseUint32(query.Get("to"), math.MaxUint32)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "to"))
	}
	if from > to {
		return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
	}

	offset, err := parseUint64(query, "offset", 0)
	if err != nil {
		return nil, err
	}
	if offset > math.MaxInt64 {
		return nil, utils.BadRequest(fmt.Errorf("offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	limit, err := parseUint64(query, "limit", e.limit)
	if err != nil {
		return nil, err
	}
	if limit > e.limit {
		return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
	}

	order := logdb.ASC
	switch s := query.Get("order"); s {
	case "", string(logdb.ASC):
	case string(logdb.DESC):
		order = logdb.DESC
	default:
		return nil, utils.BadRequest(errors.Errorf("order: invalid value %q", s))
	}

	return &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{criteria},
		Range:       &logdb.Range{From: from, To: to},
		Options:     &logdb.Options{Offset: offset, Limit: limit},
		Order:       order,
	}, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req.URL.Query())
	if err != nil {
		return err
	}
	events, err := e.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	fes := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		fes[i] = ConvertEvent(ev)
	}
	return utils.WriteJSON(w, fes)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodGet).
		Name("events_filter").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
