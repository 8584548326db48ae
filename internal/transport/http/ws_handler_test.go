package http

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"quiz-engine/internal/app"
	"quiz-engine/internal/dispatch"
	"quiz-engine/internal/domain"
	"quiz-engine/internal/id"
	"quiz-engine/internal/infra/memory"
	"quiz-engine/internal/question"
)

func TestWebSocketLeaderboardFlow(t *testing.T) {
	service, player := newTestGame(t)
	handler := NewWSHandler(service)

	mux := http.NewServeMux()
	handler.Register(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Expect the initial snapshot first.
	_, payload := readNext(conn, t, "leaderboard")
	if payload == nil {
		t.Fatalf("expected leaderboard payload, got nil")
	}

	if _, err := service.Dispatch(context.Background(), player.ID); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	_, payload = readNext(conn, t, "leaderboard")
	entries, _ := payload["entries"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %v", payload["entries"])
	}
	if score := entries[0].(map[string]any)["score"]; score != float64(10) {
		t.Fatalf("expected score 10, got %v", score)
	}

	request := map[string]any{
		"type":    "log",
		"payload": map[string]any{"playerId": player.ID},
	}
	if err := conn.WriteJSON(request); err != nil {
		t.Fatalf("write log request: %v", err)
	}
	_, payload = readNext(conn, t, "log")
	if lines, _ := payload["lines"].([]any); len(lines) != 1 {
		t.Fatalf("expected one log line, got %v", payload["lines"])
	}
}

func TestLeaderboardAndLogEndpoints(t *testing.T) {
	service, player := newTestGame(t)
	mux := http.NewServeMux()
	NewWSHandler(service).Register(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	if _, err := service.Dispatch(context.Background(), player.ID); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	resp, err := http.Get(server.URL + "/leaderboard")
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	var lb domain.Leaderboard
	if err := json.NewDecoder(resp.Body).Decode(&lb); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	resp.Body.Close()
	if len(lb.Entries) != 1 || lb.Entries[0].Score != 10 {
		t.Fatalf("unexpected leaderboard %+v", lb)
	}

	resp, err = http.Get(server.URL + "/players/" + player.ID + "/log")
	if err != nil {
		t.Fatalf("get log: %v", err)
	}
	var lines []domain.LogLine
	if err := json.NewDecoder(resp.Body).Decode(&lines); err != nil {
		t.Fatalf("decode log: %v", err)
	}
	resp.Body.Close()
	if len(lines) != 1 || lines[0].Result != domain.ResultCorrect {
		t.Fatalf("unexpected log %+v", lines)
	}

	resp, err = http.Get(server.URL + "/players/missing/log")
	if err != nil {
		t.Fatalf("get missing log: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

// newTestGame registers one player that always passes the warm-up.
func newTestGame(t *testing.T) (*app.GameService, *domain.Player) {
	t.Helper()
	playerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "alice")
	}))
	t.Cleanup(playerSrv.Close)

	env := question.Env{IDs: id.New(), Rand: question.NewRand(1)}
	service := app.NewGameService(memory.NewRoster(),
		dispatch.New(dispatch.WithLogger(log.New(io.Discard, "", 0))),
		id.New(), question.NewWarmupFactory(env), question.NewRoundFactory(env, nil))
	player, err := service.Register(context.Background(), "alice", playerSrv.URL)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return service, player
}
