package memory

import (
	"context"
	"fmt"
	"sync"

	"quiz-engine/internal/domain"
)

// Roster is an in-memory implementation of app.Roster. Logs live on the
// players themselves.
type Roster struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
	order   []string
}

func NewRoster() *Roster {
	return &Roster{
		players: make(map[string]*domain.Player),
	}
}

func (r *Roster) Add(_ context.Context, player *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[player.ID]; ok {
		return fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidPlayer, player.ID)
	}
	r.players[player.ID] = player
	r.order = append(r.order, player.ID)
	return nil
}

func (r *Roster) Get(id string) (*domain.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[id]
	return player, ok
}

// List returns players in registration order.
func (r *Roster) List() []*domain.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// Record is a no-op: the dispatcher already appended the line to the player.
func (r *Roster) Record(context.Context, *domain.Player, domain.LogLine) error {
	return nil
}

func (r *Roster) Log(_ context.Context, id string) ([]domain.LogLine, error) {
	player, ok := r.Get(id)
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return player.Log(), nil
}
