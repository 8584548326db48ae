package question

import (
	"context"
	"fmt"

	"quiz-engine/internal/domain"
)

// WarmupQuestion asks players for their own registered name.
type WarmupQuestion struct {
	base
	name string
}

func init() {
	register(Warmup, func(_ context.Context, env Env, player *domain.Player, _ *Params) (Question, error) {
		if player == nil {
			return nil, fmt.Errorf("%w: warm-up question needs a player", domain.ErrInvalidPlayer)
		}
		return &WarmupQuestion{base: newBase(env, Warmup), name: player.Name}, nil
	})
}

func (q *WarmupQuestion) AsText() string {
	return "what is your name"
}

func (q *WarmupQuestion) CorrectAnswer() string {
	return q.name
}
