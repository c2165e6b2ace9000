package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatservice "github.com/feelbetterai/backend/internal/service/chat"
	"github.com/feelbetterai/backend/internal/store"
)

func setupServer(t *testing.T) (*httptest.Server, *chatservice.Service) {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	chatSvc := chatservice.NewService(st, nil)

	r := chi.NewRouter()
	New(chatSvc).RegisterRoutes(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, chatSvc
}

func dial(t *testing.T, server *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestConnectionRejectsUnknownSession(t *testing.T) {
	server, _ := setupServer(t)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail for unknown session")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 handshake response, got %+v", resp)
	}
}

func TestChatRoundTrip(t *testing.T) {
	server, chatSvc := setupServer(t)

	session, err := chatSvc.CreateSession(context.Background(), "user-1", "talk")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	conn := dial(t, server, session.ID)

	var hello map[string]string
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello["type"] != "connection_established" {
		t.Fatalf("expected connection_established, got %+v", hello)
	}

	if err := conn.WriteJSON(map[string]string{"type": "chat_message", "content": "hello there"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var reply struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read reply: %v", err)
	}
	if reply.Type != chatservice.ReplyChat {
		t.Fatalf("expected chat reply, got %q", reply.Type)
	}
	if reply.Message == "" {
		t.Fatal("expected a reply message")
	}
}

func TestCrisisFrameOverWebsocket(t *testing.T) {
	server, chatSvc := setupServer(t)

	session, _ := chatSvc.CreateSession(context.Background(), "user-1", "talk")
	conn := dial(t, server, session.ID)

	var hello map[string]string
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}

	if err := conn.WriteJSON(map[string]string{"type": "chat_message", "content": "I can't go on"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("read reply: %v", err)
	}

	var reply struct {
		Type     string `json:"type"`
		Severity string `json:"severity"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Type != chatservice.ReplyCrisis {
		t.Fatalf("expected crisis frame, got %q", reply.Type)
	}
	if reply.Severity != "high" {
		t.Fatalf("expected high severity, got %q", reply.Severity)
	}
}

func TestUnsupportedFrameType(t *testing.T) {
	server, chatSvc := setupServer(t)

	session, _ := chatSvc.CreateSession(context.Background(), "user-1", "talk")
	conn := dial(t, server, session.ID)

	var hello map[string]string
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}

	if err := conn.WriteJSON(map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var reply map[string]string
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read reply: %v", err)
	}
	if reply["type"] != "error" {
		t.Fatalf("expected error frame, got %+v", reply)
	}
}
