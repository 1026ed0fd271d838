package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/olwandejj/Quizzify/internal/app"
	"github.com/olwandejj/Quizzify/internal/auth"
	"github.com/olwandejj/Quizzify/internal/domain"
	"github.com/olwandejj/Quizzify/internal/infra/memory"
)

func TestWebSocketQuizFlow(t *testing.T) {
	server, timer := newTestServer(t)
	defer server.Close()

	conn := dialWS(t, server, "")
	defer conn.Close()

	if view := readScreen(t, conn); view.Screen != domain.ScreenLogin {
		t.Fatalf("expected initial login screen, got %v", view.Screen)
	}

	writeMessage(t, conn, "login", map[string]any{"name": "Alice"})
	token := readAuthAndLoading(t, conn)
	if token == "" {
		t.Fatalf("expected a reconnect token")
	}

	timer.fire(t)
	menu := readScreen(t, conn)
	if menu.Screen != domain.ScreenMenu || len(menu.Categories) != 3 {
		t.Fatalf("expected menu with 3 categories, got %+v", menu)
	}

	writeMessage(t, conn, "selectCategory", map[string]any{"category": "Math Quiz"})
	typ, payload := readNext(t, conn)
	if typ != "screen" {
		t.Fatalf("expected screen message, got %s", typ)
	}
	if strings.Contains(string(payload), "correctOption") {
		t.Fatalf("correct answer leaked to the client: %s", payload)
	}
	var quiz domain.ScreenView
	if err := json.Unmarshal(payload, &quiz); err != nil {
		t.Fatalf("unmarshal screen: %v", err)
	}
	if quiz.Screen != domain.ScreenQuiz || quiz.Question == nil {
		t.Fatalf("expected quiz screen with a question, got %+v", quiz)
	}
	if quiz.Question.Text != "What is 2 + 2?" || quiz.Question.Number != 1 || quiz.Question.Total != 10 {
		t.Fatalf("unexpected first question: %+v", quiz.Question)
	}

	writeMessage(t, conn, "answer", map[string]any{"option": 1})
	result, next := readAnswerAndScreen(t, conn)
	if !result.Correct || result.Score != 1 || result.Finished {
		t.Fatalf("expected correct first answer, got %+v", result)
	}
	if next.Question == nil || next.Question.Number != 2 || next.Question.Text != "Solve: 10 * 2" {
		t.Fatalf("expected second question, got %+v", next.Question)
	}

	writeMessage(t, conn, "quitQuiz", nil)
	if view := readScreen(t, conn); view.Screen != domain.ScreenMenu {
		t.Fatalf("expected menu after quitting, got %v", view.Screen)
	}

	writeMessage(t, conn, "logout", nil)
	if view := readScreen(t, conn); view.Screen != domain.ScreenLoading {
		t.Fatalf("expected loading after logout, got %v", view.Screen)
	}
	timer.fire(t)
	if view := readScreen(t, conn); view.Screen != domain.ScreenLogin {
		t.Fatalf("expected login after logout, got %v", view.Screen)
	}
}

func TestWebSocketResumesWithToken(t *testing.T) {
	server, timer := newTestServer(t)
	defer server.Close()

	conn := dialWS(t, server, "")
	if view := readScreen(t, conn); view.Screen != domain.ScreenLogin {
		t.Fatalf("expected initial login screen, got %v", view.Screen)
	}
	writeMessage(t, conn, "login", map[string]any{"name": "Bob"})
	token := readAuthAndLoading(t, conn)
	timer.fire(t)
	if view := readScreen(t, conn); view.Screen != domain.ScreenMenu {
		t.Fatalf("expected menu, got %v", view.Screen)
	}
	conn.Close()

	// A reconnect with the token lands on the same state, not a fresh login.
	resumed := dialWS(t, server, token)
	defer resumed.Close()
	view := readScreen(t, resumed)
	if view.Screen != domain.ScreenMenu || len(view.Categories) == 0 {
		t.Fatalf("expected resumed menu state, got %+v", view)
	}
}

func TestWebSocketRejectsInvalidToken(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?token=not-a-token"
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		conn.Close()
		t.Fatalf("expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 response, got %+v", resp)
	}
}

func TestWebSocketExitOnLoginBack(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	conn := dialWS(t, server, "")
	defer conn.Close()
	if view := readScreen(t, conn); view.Screen != domain.ScreenLogin {
		t.Fatalf("expected initial login screen, got %v", view.Screen)
	}

	writeMessage(t, conn, "back", nil)
	if typ, _ := readNext(t, conn); typ != "exit" {
		t.Fatalf("expected exit message, got %s", typ)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg json.RawMessage
	if err := conn.ReadJSON(&msg); err == nil {
		t.Fatalf("expected server to close the connection, read %s", msg)
	}
}

func TestWebSocketReportsErrors(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	conn := dialWS(t, server, "")
	defer conn.Close()
	readScreen(t, conn)

	writeMessage(t, conn, "selectCategory", map[string]any{"category": "Math Quiz"})
	if msg := readError(t, conn); msg != domain.ErrInvalidTransition.Error() {
		t.Fatalf("expected invalid transition error, got %q", msg)
	}

	writeMessage(t, conn, "login", map[string]any{"name": "  "})
	if msg := readError(t, conn); msg != domain.ErrDisplayNameRequired.Error() {
		t.Fatalf("expected display name error, got %q", msg)
	}

	writeRaw(t, conn, `{"type":"answer","payload":"nope"}`)
	if msg := readError(t, conn); msg != "invalid answer payload" {
		t.Fatalf("expected payload error, got %q", msg)
	}

	writeMessage(t, conn, "nonsense", nil)
	if msg := readError(t, conn); msg != "unsupported message type" {
		t.Fatalf("expected unsupported type error, got %q", msg)
	}
}

// manualTimer captures loading timers so tests decide when the pause ends.
type manualTimer struct {
	mu  sync.Mutex
	fns []func()
}

func (m *manualTimer) after(_ time.Duration, fn func()) {
	m.mu.Lock()
	m.fns = append(m.fns, fn)
	m.mu.Unlock()
}

// fire waits for a pending timer because the callback registers just after
// the loading screen is pushed to the socket.
func (m *manualTimer) fire(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		m.mu.Lock()
		fns := m.fns
		m.fns = nil
		m.mu.Unlock()
		if len(fns) > 0 {
			for _, fn := range fns {
				fn()
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected a pending loading timer")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *manualTimer) {
	t.Helper()
	timer := &manualTimer{}
	states := memory.NewStateStore()
	catalog := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(memory.BuiltinCategories()), 5*time.Minute)
	boards := memory.NewLeaderboard()
	service := app.NewQuizServiceWithAfter(states, catalog, boards, 1500*time.Millisecond, timer.after)
	tokens := auth.NewManager([]byte("test-secret"), time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", NewWSHandler(service, tokens).ServeWS)
	return httptest.NewServer(mux), timer
}

func dialWS(t *testing.T, server *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	if token != "" {
		u += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func writeMessage(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": msgType, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func writeRaw(t *testing.T, conn *websocket.Conn, raw string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
		t.Fatalf("write raw: %v", err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}

func readScreen(t *testing.T, conn *websocket.Conn) domain.ScreenView {
	t.Helper()
	typ, payload := readNext(t, conn)
	if typ != "screen" {
		t.Fatalf("expected screen message, got %s (%s)", typ, payload)
	}
	var view domain.ScreenView
	if err := json.Unmarshal(payload, &view); err != nil {
		t.Fatalf("unmarshal screen: %v", err)
	}
	return view
}

func readError(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	typ, payload := readNext(t, conn)
	if typ != "error" {
		t.Fatalf("expected error message, got %s (%s)", typ, payload)
	}
	var errMsg errorPayload
	if err := json.Unmarshal(payload, &errMsg); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	return errMsg.Message
}

// readAuthAndLoading consumes the login response pair. The auth token and the
// loading screen arrive in no particular order because the screen travels
// through the update pump.
func readAuthAndLoading(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	var token string
	var sawLoading bool
	for i := 0; i < 2; i++ {
		typ, payload := readNext(t, conn)
		switch typ {
		case "auth":
			var authMsg authPayload
			if err := json.Unmarshal(payload, &authMsg); err != nil {
				t.Fatalf("unmarshal auth: %v", err)
			}
			token = authMsg.Token
		case "screen":
			var view domain.ScreenView
			if err := json.Unmarshal(payload, &view); err != nil {
				t.Fatalf("unmarshal screen: %v", err)
			}
			if view.Screen != domain.ScreenLoading {
				t.Fatalf("expected loading screen, got %v", view.Screen)
			}
			sawLoading = true
		default:
			t.Fatalf("unexpected message %s (%s)", typ, payload)
		}
	}
	if token == "" || !sawLoading {
		t.Fatalf("expected auth and loading, got token=%q loading=%v", token, sawLoading)
	}
	return token
}

// readAnswerAndScreen consumes the answer response pair, order-insensitive.
func readAnswerAndScreen(t *testing.T, conn *websocket.Conn) (domain.AnswerResult, domain.ScreenView) {
	t.Helper()
	var result domain.AnswerResult
	var view domain.ScreenView
	var sawResult, sawScreen bool
	for i := 0; i < 2; i++ {
		typ, payload := readNext(t, conn)
		switch typ {
		case "answerResult":
			if err := json.Unmarshal(payload, &result); err != nil {
				t.Fatalf("unmarshal answer result: %v", err)
			}
			sawResult = true
		case "screen":
			if err := json.Unmarshal(payload, &view); err != nil {
				t.Fatalf("unmarshal screen: %v", err)
			}
			sawScreen = true
		default:
			t.Fatalf("unexpected message %s (%s)", typ, payload)
		}
	}
	if !sawResult || !sawScreen {
		t.Fatalf("expected answerResult and screen, got result=%v screen=%v", sawResult, sawScreen)
	}
	return result, view
}
