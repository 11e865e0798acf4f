package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"chat-server/usecases"
	"chat-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// chatEvent is the envelope clients send. Type selects the event; the other
// fields are filled per event.
type chatEvent struct {
	Type    string `json:"type"` // joinRoom | chatMessage
	RoomID  string `json:"roomId"`
	User    string `json:"user"`
	Message string `json:"message"`
}

// ChatWSHandler owns the relay: it ties the websocket endpoint to the
// broadcast groups and the room log.
type ChatWSHandler struct {
	mgr  *ws.Manager
	chat *usecases.ChatUseCase
}

func NewChatWSHandler(mgr *ws.Manager, chat *usecases.ChatUseCase) *ChatWSHandler {
	return &ChatWSHandler{mgr: mgr, chat: chat}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleChatWS upgrades to websocket and relays chat events until the client
// disconnects. No authentication is checked on this endpoint.
// GET /ws
func (h *ChatWSHandler) HandleChatWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(conn)
	go client.WritePump()
	log.Printf("chat client connected: %s", conn.RemoteAddr())

	// Leaving every joined group on exit keeps the broadcast maps from
	// accumulating dead connections.
	defer func() {
		h.mgr.Remove(client)
		client.Close()
		log.Printf("chat client disconnected: %s", conn.RemoteAddr())
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("client %s closed connection", conn.RemoteAddr())
			} else {
				log.Printf("read error from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var event chatEvent
		if err := json.Unmarshal(message, &event); err != nil {
			log.Printf("invalid json from %s: %v", conn.RemoteAddr(), err)
			continue
		}

		switch event.Type {
		case "joinRoom":
			h.handleJoinRoom(client, event)
		case "chatMessage":
			h.handleChatMessage(client, event)
		default:
			log.Printf("unknown event type from %s: %s", conn.RemoteAddr(), event.Type)
		}
	}
}

// handleJoinRoom adds the connection to the room's broadcast group, welcomes
// the joiner and announces the join to everyone else in the group.
func (h *ChatWSHandler) handleJoinRoom(client *ws.Client, event chatEvent) {
	if event.RoomID == "" {
		return
	}
	h.mgr.Join(event.RoomID, client)
	client.Send("Welcome to the chat room!")
	h.mgr.BroadcastExcept(event.RoomID, client, fmt.Sprintf("%s has joined the chat", event.User))
}

// handleChatMessage appends the message to the room's log and fans it out to
// the whole group, sender included. A persistence failure drops the message
// rather than broadcasting something that was never stored.
func (h *ChatWSHandler) handleChatMessage(client *ws.Client, event chatEvent) {
	if event.RoomID == "" {
		return
	}
	if _, err := h.chat.PostMessage(event.RoomID, event.User, event.Message); err != nil {
		log.Printf("failed to store message for room %s: %v", event.RoomID, err)
		return
	}
	h.mgr.Broadcast(event.RoomID, fmt.Sprintf("%s: %s", event.User, event.Message))
}
