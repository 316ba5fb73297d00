package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/shershen08/playsync/internal/errmsg"
	"github.com/shershen08/playsync/internal/wire"
)

const (
	maxMessageSize = 64 << 10
	writeWait      = 10 * time.Second
	savedMessage   = "Playback state saved"
)

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}
	id := uuid.New().String()
	logger := s.logger.With("conn_id", id, "remote", r.RemoteAddr)

	s.track(id, conn)
	defer func() {
		s.untrack(id)
		conn.Close()
	}()

	logger.Info("websocket connection established")
	conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				logger.Warn("websocket read", "error", err)
			} else {
				logger.Info("websocket connection closed")
			}
			return
		}

		reply := s.process(r.Context(), logger, data)
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn("websocket write", "error", err)
			return
		}
	}
}

// process stores one update and builds the acknowledgement. Every inbound
// message gets exactly one reply.
func (s *Server) process(ctx context.Context, logger *slog.Logger, data []byte) wire.Reply {
	msg, err := wire.ParseSyncMessage(data)
	if err != nil {
		logger.Error("invalid playback state", "error", err)
		return wire.Reply{Status: wire.StatusError, Message: err.Error()}
	}
	logger.Debug("received playback state",
		"user_id", msg.UserID, "playlist_id", msg.QueueID, "track_id", msg.TrackID, "position_ms", msg.PositionMs)

	if s.playbacks == nil {
		logger.Warn("no playback store, state not persisted")
	} else if err := s.playbacks.SavePlayback(ctx, msg); err != nil {
		logger.Error("save playback state", "user_id", msg.UserID, "error", err)
		if errors.Is(err, context.Canceled) {
			err = errors.New("server shutting down")
		}
		return wire.Reply{Status: wire.StatusError, Message: errmsg.Format(errmsg.OpStateSave, err)}
	}

	echo, err := json.Marshal(msg)
	if err != nil {
		return wire.Reply{Status: wire.StatusError, Message: err.Error()}
	}
	return wire.Reply{Status: wire.StatusSuccess, Message: savedMessage, Data: echo}
}
