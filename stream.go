package main

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const writeWait = time.Second

// StreamMessage is one websocket frame of /watch: either a search event or
// the final result.
type StreamMessage struct {
	Type   string  `json:"type"` // "event" or "result"
	Event  *Event  `json:"event,omitempty"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// GET /watch?sr=&sc=&dr=&dc= - Upgrade to a websocket and stream the search
// events of one query followed by its result.
func (s *Server) watchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	coords, err := parseCoords([]string{q.Get("sr"), q.Get("sc"), q.Get("dr"), q.Get("dc")})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	src := Cell{Row: coords[0], Col: coords[1]}
	dst := Cell{Row: coords[2], Col: coords[3]}

	planner := s.current()
	if err := planner.Grid().Validate(src); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := planner.Grid().Validate(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("watch: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// the search cannot be interrupted, so after the first write error the
	// remaining events are dropped
	var writeErr error
	send := func(msg StreamMessage) {
		if writeErr != nil {
			return
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		writeErr = conn.WriteJSON(msg)
	}

	result, err := planner.Route(src, dst, WithObserver(func(ev Event) {
		send(StreamMessage{Type: "event", Event: &ev})
	}))

	final := StreamMessage{Type: "result", Result: &result}
	if err != nil {
		final.Error = err.Error()
	}
	send(final)

	if writeErr != nil {
		log.Warnf("watch %s: client went away: %v", result.ID, writeErr)
		return
	}
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "search complete"),
		time.Now().Add(writeWait))
	log.WithField("query", result.ID).Info("watch stream complete")
}
