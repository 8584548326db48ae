package memory

import (
	"context"
	"errors"
	"testing"

	"quiz-engine/internal/domain"
)

func TestRosterLifecycle(t *testing.T) {
	ctx := context.Background()
	roster := NewRoster()

	for _, id := range []string{"p1", "p2"} {
		player, err := domain.NewPlayer(id, "team-"+id, "http://localhost:9000")
		if err != nil {
			t.Fatalf("new player: %v", err)
		}
		if err := roster.Add(ctx, player); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	players := roster.List()
	if len(players) != 2 || players[0].ID != "p1" || players[1].ID != "p2" {
		t.Fatalf("expected registration order, got %v", players)
	}

	dup, _ := domain.NewPlayer("p1", "again", "http://localhost:9001")
	if err := roster.Add(ctx, dup); !errors.Is(err, domain.ErrInvalidPlayer) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}

	p1, _ := roster.Get("p1")
	line := domain.LogLine{QuestionID: "q1", Result: domain.ResultWrong}
	p1.LogResult(line)
	if err := roster.Record(ctx, p1, line); err != nil {
		t.Fatalf("record: %v", err)
	}
	log, err := roster.Log(ctx, "p1")
	if err != nil || len(log) != 1 {
		t.Fatalf("expected one log line, got %v (%v)", log, err)
	}
	if _, err := roster.Log(ctx, "missing"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}
