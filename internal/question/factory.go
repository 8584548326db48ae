package question

import (
	"context"
	"fmt"
	"sync/atomic"

	"quiz-engine/internal/domain"
)

// Factory hands out the next question for a player.
type Factory interface {
	NextQuestion(ctx context.Context, player *domain.Player) (Question, error)
	AdvanceRound() error
	Round() int
}

// RoundFactory draws questions from a growing prefix of its catalogue.
type RoundFactory struct {
	env       Env
	catalogue []Variant
	round     atomic.Int64
}

// NewRoundFactory starts at round 1. A nil catalogue means DefaultCatalogue.
func NewRoundFactory(env Env, catalogue []Variant) *RoundFactory {
	if len(catalogue) == 0 {
		catalogue = DefaultCatalogue()
	}
	f := &RoundFactory{env: env, catalogue: catalogue}
	f.round.Store(1)
	return f
}

// WindowEnd is the last catalogue index eligible in round: 3*round-2,
// clamped to the catalogue.
func WindowEnd(round, size int) int {
	end := 3*round - 2
	if end > size-1 {
		end = size - 1
	}
	if end < 0 {
		end = 0
	}
	return end
}

func (f *RoundFactory) Round() int {
	return int(f.round.Load())
}

// Window returns the variants eligible this round, duplicates included.
func (f *RoundFactory) Window() []Variant {
	return f.catalogue[:WindowEnd(f.Round(), len(f.catalogue))+1]
}

func (f *RoundFactory) NextQuestion(ctx context.Context, player *domain.Player) (Question, error) {
	window := f.Window()
	v := window[f.env.Rand.Intn(len(window))]
	q, err := v.New(ctx, f.env, player, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s question: %w", v.Name, err)
	}
	return q, nil
}

// AdvanceRound widens the window. Rounds have no upper bound.
func (f *RoundFactory) AdvanceRound() error {
	f.round.Add(1)
	return nil
}

// WarmupFactory always asks players for their name. It has no rounds.
type WarmupFactory struct {
	env Env
}

func NewWarmupFactory(env Env) *WarmupFactory {
	return &WarmupFactory{env: env}
}

func (f *WarmupFactory) NextQuestion(ctx context.Context, player *domain.Player) (Question, error) {
	return registry[Warmup].New(ctx, f.env, player, nil)
}

// AdvanceRound always fails: the warm-up phase must be replaced by a
// RoundFactory, not advanced.
func (f *WarmupFactory) AdvanceRound() error {
	return fmt.Errorf("warm-up factory: %w", domain.ErrRoundAdvanceForbidden)
}

func (f *WarmupFactory) Round() int {
	return 0
}
