package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/KokserM/kazoot-quiz/internal/app"
	"github.com/KokserM/kazoot-quiz/internal/domain"
)

// WSHandler upgrades connections and translates websocket messages into game
// service calls. Each connection gets an opaque id that serves as its
// participant identity for the lifetime of the socket.
type WSHandler struct {
	hub      *Hub
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *Hub, service *app.GameService) *WSHandler {
	return &WSHandler{
		hub:     hub,
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

type joinPayload struct {
	SessionID string `json:"sessionId"`
	Username  string `json:"username"`
	IsCreator bool   `json:"isCreator"`
}

type answerPayload struct {
	AnswerIndex int `json:"answerIndex"`
}

func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	connectionID := uuid.NewString()
	send := h.hub.Register(connectionID)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Str("conn", connectionID).Msg("ws write error")
				return
			}
		}
	}()

	log.Debug().Str("conn", connectionID).Msg("client connected")

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(connectionID, inbound)
	}

	h.hub.Unregister(connectionID)
	h.service.RemoveConnection(r.Context(), connectionID)
	<-writerDone
	log.Debug().Str("conn", connectionID).Msg("client disconnected")
}

func (h *WSHandler) dispatch(connectionID string, inbound inboundMessage) {
	switch inbound.Type {
	case "join-game":
		var payload joinPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			h.sendError(connectionID, "invalid join payload")
			return
		}
		joined, err := h.service.Join(payload.SessionID, connectionID, payload.Username, payload.IsCreator)
		if err != nil {
			h.sendError(connectionID, err.Error())
			return
		}
		h.hub.JoinRoom(joined.SessionCode, connectionID)
		h.hub.SendTo(connectionID, domain.EventJoinedGame, joined)

	case "start-game":
		if err := h.service.Start(connectionID); err != nil {
			h.sendError(connectionID, err.Error())
		}

	case "submit-answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			h.sendError(connectionID, "invalid answer payload")
			return
		}
		if err := h.service.SubmitAnswer(connectionID, payload.AnswerIndex); err != nil {
			h.sendError(connectionID, err.Error())
			return
		}
		h.hub.SendTo(connectionID, domain.EventAnswerSubmitted, domain.AnswerSubmitted{Success: true})

	case "next-question":
		if err := h.service.Advance(connectionID); err != nil {
			h.sendError(connectionID, err.Error())
		}

	default:
		h.sendError(connectionID, "unsupported message type")
	}
}

func (h *WSHandler) sendError(connectionID, message string) {
	h.hub.SendTo(connectionID, domain.EventError, domain.ErrorEvent{Message: message})
}
