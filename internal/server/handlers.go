package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/shershen08/playsync/internal/errmsg"
	"github.com/shershen08/playsync/internal/wire"
)

const (
	minRandomTracks = 5
	maxRandomTracks = 10
)

// notFoundMessage is the body returned when no playback state is stored.
// Clients treat it as an empty snapshot.
const notFoundMessage = "No playback state found"

type messageBody struct {
	Message string `json:"message"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageBody{Message: "playsync reference server"})
}

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	id, ok := playlistID(w, r)
	if !ok {
		return
	}
	items, err := s.catalog.Tracks(r.Context())
	if err != nil {
		s.logger.Error("list tracks", "playlist_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, errmsg.Format(errmsg.OpQueueLoad, err))
		return
	}
	s.logger.Info("fetching tracks", "playlist_id", id, "count", len(items))
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleRandomTracks(w http.ResponseWriter, r *http.Request) {
	id, ok := playlistID(w, r)
	if !ok {
		return
	}
	items, err := s.catalog.Tracks(r.Context())
	if err != nil {
		s.logger.Error("list tracks", "playlist_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, errmsg.Format(errmsg.OpQueueLoad, err))
		return
	}
	n := minRandomTracks + s.intN(maxRandomTracks-minRandomTracks+1)
	picked := lo.Samples(items, n)
	s.logger.Info("fetching random tracks", "playlist_id", id, "count", len(picked))
	writeJSON(w, http.StatusOK, picked)
}

func (s *Server) handlePlayback(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "user_id parameter is required and cannot be empty")
		return
	}
	if s.playbacks == nil {
		writeJSON(w, http.StatusOK, messageBody{Message: notFoundMessage})
		return
	}
	p, found, err := s.playbacks.Playback(r.Context(), userID)
	if err != nil {
		s.logger.Error("read playback", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, errmsg.Format(errmsg.OpStateLoad, err))
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, messageBody{Message: notFoundMessage})
		return
	}
	writeJSON(w, http.StatusOK, p.Snapshot())
}

// playlistID validates the path id and writes a 400 when it is blank or not
// an integer.
func playlistID(w http.ResponseWriter, r *http.Request) (wire.QueueID, bool) {
	id := r.PathValue("playlist_id")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "playlist_id parameter is required and cannot be empty")
		return "", false
	}
	if !wire.QueueID(id).IsNumeric() {
		writeError(w, http.StatusBadRequest, "playlist_id must be a number")
		return "", false
	}
	return wire.QueueID(id), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}
