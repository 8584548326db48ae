package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"quiz-engine/internal/domain"
)

// Roster is a Redis-aware implementation of app.Roster.
// Notes:
//   - Players and their logs stay in process so dispatch never waits on Redis.
//   - Every player is mirrored as HSET player:{id} name url, and every log line
//     is pushed with LPUSH player:{id}:log, so the list reads newest first.
//   - Log reads come from Redis, which lets another instance serve the leaderboard.
type Roster struct {
	client  *redis.Client
	mu      sync.RWMutex
	players map[string]*domain.Player
	order   []string
}

func NewRoster(client *redis.Client) *Roster {
	return &Roster{
		client:  client,
		players: make(map[string]*domain.Player),
	}
}

func (r *Roster) Add(ctx context.Context, player *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[player.ID]; ok {
		return fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidPlayer, player.ID)
	}
	if err := r.client.HSet(ctx, r.playerKey(player.ID), "name", player.Name, "url", player.URL).Err(); err != nil {
		return fmt.Errorf("store player: %w", err)
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

func (r *Roster) List() []*domain.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// Record mirrors a log line the dispatcher already appended to the player.
func (r *Roster) Record(ctx context.Context, player *domain.Player, line domain.LogLine) error {
	raw, err := json.Marshal(line)
	if err != nil {
		return err
	}
	return r.client.LPush(ctx, r.logKey(player.ID), raw).Err()
}

// Log reads the mirrored log, newest first.
func (r *Roster) Log(ctx context.Context, id string) ([]domain.LogLine, error) {
	if _, ok := r.Get(id); !ok {
		return nil, domain.ErrPlayerNotFound
	}
	raws, err := r.client.LRange(ctx, r.logKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	lines := make([]domain.LogLine, 0, len(raws))
	for _, raw := range raws {
		var line domain.LogLine
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			return nil, fmt.Errorf("decode log line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *Roster) playerKey(id string) string {
	return "player:" + id
}

func (r *Roster) logKey(id string) string {
	return "player:" + id + ":log"
}
