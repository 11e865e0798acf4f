package handlers

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"chat-server/entities"
	"chat-server/repositories"
	"chat-server/usecases"
	"chat-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entities.User)}
}

func (r *memUserRepo) Create(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByEmail(email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) Update(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Email] = user
	return nil
}

type memRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]*entities.ChatRoom
}

func newMemRoomRepo() *memRoomRepo {
	return &memRoomRepo{rooms: make(map[string]*entities.ChatRoom)}
}

func (r *memRoomRepo) Create(room *entities.ChatRoom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.RoomID] = room
	return nil
}

func (r *memRoomRepo) GetByRoomID(roomID string) (*entities.ChatRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return room, nil
}

func (r *memRoomRepo) AddMember(chatRoomID, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.ID != chatRoomID {
			continue
		}
		for _, m := range room.Members {
			if m.Email == email {
				return false, nil
			}
		}
		room.Members = append(room.Members, entities.RoomMember{ChatRoomID: chatRoomID, Email: email})
		return true, nil
	}
	return false, repositories.ErrNotFound
}

func (r *memRoomRepo) AppendMessage(msg *entities.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.ID == msg.ChatRoomID {
			room.Messages = append(room.Messages, *msg)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memRoomRepo) messageCount(roomID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return 0
	}
	return len(room.Messages)
}

// newRelayServer starts an httptest server exposing only the websocket
// endpoint, backed by in-memory repositories with the given rooms seeded.
func newRelayServer(t *testing.T, rooms *memRoomRepo) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	chatUseCase := usecases.NewChatUseCase(rooms, newMemUserRepo())
	handler := NewChatWSHandler(ws.NewManager(), chatUseCase)

	r := gin.New()
	r.GET("/ws", handler.HandleChatWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialRelay(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, event map[string]string) {
	t.Helper()
	if err := conn.WriteJSON(event); err != nil {
		t.Fatalf("sending event: %v", err)
	}
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	return string(payload)
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, payload, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("expected no frame, received %q", payload)
	}
}

func seedRoom(rooms *memRoomRepo, internalID, roomID string) {
	rooms.rooms[roomID] = &entities.ChatRoom{ID: internalID, RoomID: roomID, Creator: "a@x.com"}
}

func TestRelayWelcomeAndAnnouncement(t *testing.T) {
	rooms := newMemRoomRepo()
	seedRoom(rooms, "internal-1", "123456")
	srv := newRelayServer(t, rooms)

	alice := dialRelay(t, srv)
	sendEvent(t, alice, map[string]string{"type": "joinRoom", "roomId": "123456", "user": "alice"})
	if got := readText(t, alice); got != "Welcome to the chat room!" {
		t.Fatalf("joiner received %q, want the welcome", got)
	}

	bob := dialRelay(t, srv)
	sendEvent(t, bob, map[string]string{"type": "joinRoom", "roomId": "123456", "user": "bob"})
	if got := readText(t, bob); got != "Welcome to the chat room!" {
		t.Fatalf("second joiner received %q, want the welcome", got)
	}
	// Alice was the sole member when she joined, so her next frame after the
	// welcome must be bob's announcement, not an announcement of her own.
	if got := readText(t, alice); got != "bob has joined the chat" {
		t.Fatalf("existing member received %q, want the join announcement", got)
	}
	// The announcement goes to everyone but the joiner.
	expectSilence(t, bob)
}

func TestRelayChatMessageBroadcastAndPersistence(t *testing.T) {
	rooms := newMemRoomRepo()
	seedRoom(rooms, "internal-1", "123456")
	srv := newRelayServer(t, rooms)

	alice := dialRelay(t, srv)
	sendEvent(t, alice, map[string]string{"type": "joinRoom", "roomId": "123456", "user": "alice"})
	readText(t, alice) // welcome

	bob := dialRelay(t, srv)
	sendEvent(t, bob, map[string]string{"type": "joinRoom", "roomId": "123456", "user": "bob"})
	readText(t, bob)   // welcome
	readText(t, alice) // announcement

	sendEvent(t, alice, map[string]string{"type": "chatMessage", "roomId": "123456", "user": "alice", "message": "hi"})

	if got := readText(t, alice); got != "alice: hi" {
		t.Errorf("sender received %q, want %q", got, "alice: hi")
	}
	if got := readText(t, bob); got != "alice: hi" {
		t.Errorf("other member received %q, want %q", got, "alice: hi")
	}

	if n := rooms.messageCount("123456"); n != 1 {
		t.Errorf("message log has %d entries, want 1", n)
	}
}

func TestRelayDoesNotLeakAcrossRooms(t *testing.T) {
	rooms := newMemRoomRepo()
	seedRoom(rooms, "internal-1", "123456")
	seedRoom(rooms, "internal-2", "654321")
	srv := newRelayServer(t, rooms)

	alice := dialRelay(t, srv)
	sendEvent(t, alice, map[string]string{"type": "joinRoom", "roomId": "123456", "user": "alice"})
	readText(t, alice)

	carol := dialRelay(t, srv)
	sendEvent(t, carol, map[string]string{"type": "joinRoom", "roomId": "654321", "user": "carol"})
	readText(t, carol)

	sendEvent(t, alice, map[string]string{"type": "chatMessage", "roomId": "123456", "user": "alice", "message": "hi"})
	readText(t, alice) // own broadcast

	expectSilence(t, carol)
	if n := rooms.messageCount("654321"); n != 0 {
		t.Errorf("other room's log has %d entries, want 0", n)
	}
}

func TestRelayDropsMessageForUnknownRoom(t *testing.T) {
	rooms := newMemRoomRepo()
	seedRoom(rooms, "internal-1", "123456")
	srv := newRelayServer(t, rooms)

	alice := dialRelay(t, srv)
	sendEvent(t, alice, map[string]string{"type": "joinRoom", "roomId": "123456", "user": "alice"})
	readText(t, alice)

	// Message addressed to a room nobody created: nothing stored, nothing
	// broadcast, connection stays usable. Events on one connection are
	// handled in order, so if the bad message had been broadcast it would
	// arrive before the good one.
	sendEvent(t, alice, map[string]string{"type": "chatMessage", "roomId": "000000", "user": "alice", "message": "void"})
	sendEvent(t, alice, map[string]string{"type": "chatMessage", "roomId": "123456", "user": "alice", "message": "hi"})
	if got := readText(t, alice); got != "alice: hi" {
		t.Errorf("received %q after bad event, want %q", got, "alice: hi")
	}
	if n := rooms.messageCount("123456"); n != 1 {
		t.Errorf("message log has %d entries, want 1", n)
	}
}
