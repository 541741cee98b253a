// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/events"
	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/log"
	"github.com/corral-labs/corral/logdb"
	"github.com/corral-labs/corral/runtime"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// peers must answer a ping within pongWait
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 7) / 10
)

type Subscriptions struct {
	rt       *runtime.Runtime
	logDB    *logdb.LogDB
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(rt *runtime.Runtime, logDB *logdb.LogDB, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		rt:    rt,
		logDB: logDB,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func (s *Subscriptions) handleSubject(w http.ResponseWriter, req *http.Request) error {
	s.wg.Add(1)
	defer s.wg.Done()

	query := req.URL.Query()
	criteria, err := events.ParseCriteria(query)
	if err != nil {
		return err
	}
	from, err := utils.ParseUint32(query.Get("from"), s.rt.Chain().PendingBlock())
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "from"))
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	// since the conn is hijacked here, no error should be returned in lines below
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}
	defer conn.Close()

	reader := newEventReader(s.logDB, criteria, from)
	if err := s.pipe(conn, reader); err != nil {
		logger.Debug("subscription failed", "err", err)
	}
	return nil
}

// pipe streams the events of reader into conn until either side closes.
func (s *Subscriptions) pipe(conn *websocket.Conn, reader *eventReader) error {
	closed := make(chan struct{})
	var wg sync.WaitGroup
	defer wg.Wait()

	// the reader drains control frames and detects the peer going away
	wg.Go(func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	})
	defer conn.Close()

	ticker := s.rt.NewTicker()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		msgs, err := reader.Read()
		if err != nil {
			msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return err
		}
		for _, msg := range msgs {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return nil
			}
		}
		if len(msgs) > 0 {
			// more may be pending
			continue
		}

		select {
		case <-s.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return nil
		case <-closed:
			return nil
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		case <-ticker.C():
		}
	}
}

// Close ends all subscriptions and waits for their handlers to return.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("subscriptions_event").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubject))
}
