// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/corral-labs/corral/api/utils"
	"github.com/corral-labs/corral/log"
)

type Request struct {
	Level string `json:"level"`
}

type Response struct {
	CurrentLevel string `json:"currentLevel"`
}

type LogLevel struct {
	logLevel *slog.LevelVar
}

func New(logLevel *slog.LevelVar) *LogLevel {
	return &LogLevel{
		logLevel: logLevel,
	}
}

func (l *LogLevel) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodGet).
		Name("admin_get_log_level").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetLogLevel))

	root.Path(pathPrefix).
		Methods(http.MethodPost).
		Name("admin_post_log_level").
		HandlerFunc(utils.WrapHandlerFunc(l.handlePostLogLevel))
}

func (l *LogLevel) handleGetLogLevel(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, Response{
		CurrentLevel: log.LevelString(l.logLevel.Level()),
	})
}

func (l *LogLevel) handlePostLogLevel(w http.ResponseWriter, r *http.Request) error {
	var req Request
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "Invalid request body"))
	}

	switch req.Level {
	case "debug":
		l.logLevel.Set(log.LevelDebug)
	case "info":
		l.logLevel.Set(log.LevelInfo)
	case "warn":
		l.logLevel.Set(log.LevelWarn)
	case "error":
		l.logLevel.Set(log.LevelError)
	case "trace":
		l.logLevel.Set(log.LevelTrace)
	case "crit":
		l.logLevel.Set(log.LevelCrit)
	default:
		return utils.BadRequest(errors.New("Invalid verbosity level"))
	}
	log.Info("log level updated", "pkg", "loglevel", "level", req.Level)

	return utils.WriteJSON(w, Response{
		CurrentLevel: log.LevelString(l.logLevel.Level()),
	})
}
