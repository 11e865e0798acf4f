package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	chatLineStyle = lipgloss.NewStyle().
			PaddingLeft(1)
)

type step int

const (
	stepEnteringEmail step = iota
	stepEnteringPassword
	stepLoggingIn
	stepChoosingAction
	stepEnteringRoomID
	stepJoiningRoom
	stepConnecting
	stepChatting
)

var actions = []string{"Create a new room", "Join an existing room"}

type model struct {
	step         step
	serverURL    string
	cursor       int
	email        string
	password     string
	username     string
	token        string
	roomID       string
	currentInput string
	message      string
	chatLog      []string
	conn         *websocket.Conn
	incoming     chan string
	quitting     bool
}

type loginSuccessMsg struct {
	token    string
	username string
	email    string
}
type roomCreatedMsg struct{ roomID string }
type roomJoinedMsg struct{ status string }
type socketConnectedMsg struct {
	conn     *websocket.Conn
	incoming chan string
}
type incomingChatMsg string
type socketClosedMsg struct{}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func serverURL() string {
	if url := os.Getenv("CHAT_SERVER_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return "http://localhost:5000"
}

func initialModel() model {
	return model{
		step:      stepEnteringEmail,
		serverURL: serverURL(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func loginUser(baseURL, email, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"email":    email,
			"password": password,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", baseURL+"/auth/login", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("could not reach server: %w", err)}
		}
		defer resp.Body.Close()

		var result map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unreadable response from server")}
		}

		if resp.StatusCode != http.StatusOK {
			if msg, ok := result["error"].(string); ok {
				return errMsg{fmt.Errorf("%s", msg)}
			}
			return errMsg{fmt.Errorf("login failed (%d)", resp.StatusCode)}
		}

		token, _ := result["token"].(string)
		username, _ := result["username"].(string)
		userEmail, _ := result["email"].(string)
		if token == "" {
			return errMsg{fmt.Errorf("server did not return a token")}
		}
		return loginSuccessMsg{token: token, username: username, email: userEmail}
	}
}

func createRoom(baseURL, creator string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		jsonData, _ := json.Marshal(map[string]string{"creator": creator})
		req, _ := http.NewRequest("POST", baseURL+"/chat/create-room", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("could not reach server: %w", err)}
		}
		defer resp.Body.Close()

		var result map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unreadable response from server")}
		}
		if resp.StatusCode != http.StatusCreated {
			return errMsg{fmt.Errorf("room creation failed (%d)", resp.StatusCode)}
		}

		roomID, _ := result["roomId"].(string)
		if roomID == "" {
			return errMsg{fmt.Errorf("server did not return a room id")}
		}
		return roomCreatedMsg{roomID: roomID}
	}
}

func joinRoom(baseURL, roomID, email string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		jsonData, _ := json.Marshal(map[string]string{
			"roomId":    roomID,
			"userEmail": email,
		})
		req, _ := http.NewRequest("POST", baseURL+"/chat/join-room", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("could not reach server: %w", err)}
		}
		defer resp.Body.Close()

		var result map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unreadable response from server")}
		}
		if resp.StatusCode != http.StatusOK {
			if msg, ok := result["error"].(string); ok {
				return errMsg{fmt.Errorf("%s", msg)}
			}
			return errMsg{fmt.Errorf("join failed (%d)", resp.StatusCode)}
		}

		status, _ := result["message"].(string)
		return roomJoinedMsg{status: status}
	}
}

// connectSocket dials the relay, announces the join and starts pumping
// incoming frames into a channel the Update loop drains.
func connectSocket(baseURL, roomID, username string) tea.Cmd {
	return func() tea.Msg {
		wsURL := strings.Replace(baseURL, "https://", "wss://", 1)
		wsURL = strings.Replace(wsURL, "http://", "ws://", 1) + "/ws"

		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			return errMsg{fmt.Errorf("could not open socket: %w", err)}
		}

		join := map[string]string{"type": "joinRoom", "roomId": roomID, "user": username}
		if err := conn.WriteJSON(join); err != nil {
			conn.Close()
			return errMsg{fmt.Errorf("could not join room: %w", err)}
		}

		incoming := make(chan string, 64)
		go func() {
			defer close(incoming)
			for {
				_, payload, err := conn.ReadMessage()
				if err != nil {
					return
				}
				incoming <- string(payload)
			}
		}()

		return socketConnectedMsg{conn: conn, incoming: incoming}
	}
}

// waitForIncoming blocks on the incoming channel and turns the next frame
// into a tea message.
func waitForIncoming(incoming chan string) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-incoming
		if !ok {
			return socketClosedMsg{}
		}
		return incomingChatMsg(text)
	}
}

func sendChat(conn *websocket.Conn, roomID, username, text string) tea.Cmd {
	return func() tea.Msg {
		event := map[string]string{
			"type":    "chatMessage",
			"roomId":  roomID,
			"user":    username,
			"message": text,
		}
		if err := conn.WriteJSON(event); err != nil {
			return errMsg{fmt.Errorf("send failed: %w", err)}
		}
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			if m.conn != nil {
				m.conn.Close()
			}
			return m, tea.Quit

		case "up":
			if m.step == stepChoosingAction && m.cursor > 0 {
				m.cursor--
			}

		case "down":
			if m.step == stepChoosingAction && m.cursor < len(actions)-1 {
				m.cursor++
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		default:
			if m.step == stepEnteringEmail || m.step == stepEnteringPassword ||
				m.step == stepEnteringRoomID || m.step == stepChatting {
				m.currentInput += msg.String()
			}

		case "enter":
			switch m.step {
			case stepEnteringEmail:
				if m.currentInput != "" {
					m.email = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringPassword
				}

			case stepEnteringPassword:
				if m.currentInput != "" {
					m.password = m.currentInput
					m.currentInput = ""
					m.step = stepLoggingIn
					m.message = "Logging in..."
					return m, loginUser(m.serverURL, m.email, m.password)
				}

			case stepChoosingAction:
				if m.cursor == 0 {
					m.message = "Creating room..."
					return m, createRoom(m.serverURL, m.email)
				}
				m.step = stepEnteringRoomID

			case stepEnteringRoomID:
				if m.currentInput != "" {
					m.roomID = m.currentInput
					m.currentInput = ""
					m.step = stepJoiningRoom
					m.message = "Joining room " + m.roomID + "..."
					return m, joinRoom(m.serverURL, m.roomID, m.email)
				}

			case stepChatting:
				if m.currentInput != "" && m.conn != nil {
					text := m.currentInput
					m.currentInput = ""
					return m, sendChat(m.conn, m.roomID, m.username, text)
				}
			}
		}

	case loginSuccessMsg:
		m.token = msg.token
		m.username = msg.username
		if msg.email != "" {
			m.email = msg.email
		}
		m.step = stepChoosingAction
		m.message = successStyle.Render("Logged in as " + m.username)

	case roomCreatedMsg:
		m.roomID = msg.roomID
		m.step = stepJoiningRoom
		m.message = "Room " + m.roomID + " created, joining..."
		return m, joinRoom(m.serverURL, m.roomID, m.email)

	case roomJoinedMsg:
		m.step = stepConnecting
		m.message = msg.status
		return m, connectSocket(m.serverURL, m.roomID, m.username)

	case socketConnectedMsg:
		m.conn = msg.conn
		m.incoming = msg.incoming
		m.step = stepChatting
		return m, waitForIncoming(m.incoming)

	case incomingChatMsg:
		m.chatLog = append(m.chatLog, string(msg))
		if len(m.chatLog) > 100 {
			m.chatLog = m.chatLog[len(m.chatLog)-100:]
		}
		return m, waitForIncoming(m.incoming)

	case socketClosedMsg:
		m.message = errorStyle.Render("Connection closed by server")
		m.conn = nil
		m.step = stepChoosingAction

	case errMsg:
		m.message = errorStyle.Render(msg.err.Error())
		switch m.step {
		case stepLoggingIn:
			m.step = stepEnteringEmail
		case stepJoiningRoom, stepConnecting:
			m.step = stepChoosingAction
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Chat") + "\n")

	switch m.step {
	case stepEnteringEmail:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("*", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepLoggingIn, stepJoiningRoom, stepConnecting:
		s.WriteString(m.message + "\n")

	case stepChoosingAction:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("What next?\n\n"))
		for i, action := range actions {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(action)))
		}
		s.WriteString("\nUse up/down, Enter to select, ctrl+c to quit\n")

	case stepEnteringRoomID:
		s.WriteString(promptStyle.Render("Enter the 6-digit room code:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepChatting:
		s.WriteString(promptStyle.Render("Room "+m.roomID) + "\n\n")
		for _, line := range m.chatLog {
			s.WriteString(chatLineStyle.Render(line) + "\n")
		}
		s.WriteString("\n" + inputStyle.Render("> "+m.currentInput))
		s.WriteString("\n\nEnter to send, ctrl+c to quit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
