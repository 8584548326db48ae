package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"quiz-engine/internal/app"
	"quiz-engine/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type logRequest struct {
	PlayerID string `json:"playerId"`
}

type logPayload struct {
	PlayerID string           `json:"playerId"`
	Lines    []domain.LogLine `json:"lines"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// Register mounts the game routes on mux.
func (h *WSHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /leaderboard", h.ServeLeaderboard)
	mux.HandleFunc("GET /players/{id}/log", h.ServePlayerLog)
	mux.HandleFunc("/ws", h.ServeWS)
}

// ServeLeaderboard writes the current leaderboard as JSON.
func (h *WSHandler) ServeLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Leaderboard())
}

// ServePlayerLog writes one player's log, newest first.
func (h *WSHandler) ServePlayerLog(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.PlayerLog(r.Context(), r.PathValue("id"))
	if errors.Is(err, domain.ErrPlayerNotFound) {
		writeJSON(w, http.StatusNotFound, errorPayload{Message: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorPayload{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// ServeWS upgrades HTTP requests to websockets and streams leaderboard updates.
// Clients may ask for a player's log with {"type":"log","payload":{"playerId":"..."}}.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.service.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// single writer: gorilla connections do not support concurrent writes
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "leaderboard", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "log":
			var req logRequest
			if err := json.Unmarshal(inbound.Payload, &req); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid log payload"}}
				continue
			}
			lines, err := h.service.PlayerLog(r.Context(), req.PlayerID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "log", Payload: logPayload{PlayerID: req.PlayerID, Lines: lines}}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
