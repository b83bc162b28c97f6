package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
)

/*
Watch replays a stored solve run over a websocket. The protocol is a
line of text per request:

	g        summary of the run
	n        next move, "end" once the log is exhausted
	a        every remaining move in one batch
*/
func (s Solve) Watch(w http.ResponseWriter, r *http.Request) {
	solveRunId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	run, err := s.repo.FetchSolveRun(r.Context(), solveRunId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error("unable to fetch solve run", "error", err)
		return
	}

	session, err := run.Session()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error("db returned invalid solve_run.state", "error", err)
		return
	}

	c, err := s.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	dto := NewSolveRunDTO(run.SolveRunID, session)
	cursor := 0

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				s.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		var reply any
		switch strings.TrimSpace(string(message)) {
		case "g":
			reply = dto
		case "n":
			if cursor < len(dto.Moves) {
				reply = dto.Moves[cursor]
				cursor++
			} else {
				reply = map[string]string{"message": "end"}
			}
		case "a":
			reply = dto.Moves[cursor:]
			cursor = len(dto.Moves)
		default:
			reply = map[string]string{"error": "unknown command"}
		}

		if err := c.WriteJSON(reply); err != nil {
			s.logger.Warn("unable to write ws reply", slog.Any("error", err))
			return
		}
	}
}
