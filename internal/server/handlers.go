package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	apperrors "github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/render/svg"
	"github.com/matzehuels/gitlanes/pkg/store"
)

// MessageType tags websocket pushes.
type MessageType string

const (
	MessageTypeGraph MessageType = "graph"
	MessageTypeStats MessageType = "stats"
)

// UpdateMessage is one websocket push.
type UpdateMessage struct {
	Type MessageType `json:"type"`
	Data any         `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// writeJSON writes v with the proper content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps application errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), map[string]string{
		"error": apperrors.UserMessage(err),
		"code":  string(apperrors.GetCode(err)),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.current().wire)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.current().stats)
}

func (s *Server) handleWarnings(w http.ResponseWriter, r *http.Request) {
	st := s.current()
	warnings := make([]map[string]string, 0, len(st.warnings))
	for _, e := range st.warnings {
		warnings = append(warnings, map[string]string{
			"kind":    string(e.Kind),
			"message": e.Message,
			"field":   e.Field,
		})
	}
	writeJSON(w, http.StatusOK, warnings)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	doc := svg.Render(s.current().layout, svg.Options{
		UseCurves: r.URL.Query().Get("curves") != "false",
		ShowRefs:  true,
	})
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(doc)
}

// handleWebSocket upgrades the connection and registers the client for
// graph pushes. The initial state is sent immediately so clients need no
// separate bootstrap request.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	st := s.current()
	_ = conn.WriteJSON(UpdateMessage{Type: MessageTypeGraph, Data: st.wire})
	_ = conn.WriteJSON(UpdateMessage{Type: MessageTypeStats, Data: st.stats})

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	// Drain reads to detect disconnects; the server never expects input.
	go func() {
		defer s.dropClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast pushes a message to every connected client, dropping clients
// whose connection fails.
func (s *Server) broadcast(msg UpdateMessage) {
	s.clientsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clientsMu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			s.dropClient(conn)
		}
	}
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()
	_ = conn.Close()
}

func (s *Server) handleSnapshotList(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot store not configured"))
		return
	}
	snaps, err := s.cfg.Store.List(r.Context(), s.cfg.RepoPath)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "list snapshots"))
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleSnapshotSave(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot store not configured"))
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
		_ = json.Unmarshal(body, &req)
	}

	snap := &store.Snapshot{
		Name:     req.Name,
		RepoPath: s.cfg.RepoPath,
		Layout:   s.current().wire,
	}
	if err := s.cfg.Store.Save(r.Context(), snap); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "save snapshot"))
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleSnapshotGet(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot store not configured"))
		return
	}
	snap, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err == store.ErrNotFound {
		writeError(w, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "no such snapshot"))
		return
	}
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "load snapshot"))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSnapshotDelete(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot store not configured"))
		return
	}
	err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err == store.ErrNotFound {
		writeError(w, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "no such snapshot"))
		return
	}
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete snapshot"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
