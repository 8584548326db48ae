package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"quiz-engine/internal/domain"
	"quiz-engine/internal/id"
	"quiz-engine/internal/question"
)

// Roster abstracts where players are kept (in-memory, Redis, etc).
type Roster interface {
	Add(ctx context.Context, player *domain.Player) error
	Get(id string) (*domain.Player, bool)
	List() []*domain.Player
	Record(ctx context.Context, player *domain.Player, line domain.LogLine) error
	Log(ctx context.Context, id string) ([]domain.LogLine, error)
}

// Dispatcher asks one question to one player.
type Dispatcher interface {
	Dispatch(ctx context.Context, q question.Question, player *domain.Player) (domain.Outcome, error)
}

// Phase is the game phase selecting the active question factory.
type Phase string

const (
	PhaseWarmup Phase = "warmup"
	PhaseMain   Phase = "main"
)

// GameService ties the question factories to the dispatcher and the roster.
type GameService struct {
	roster     Roster
	dispatcher Dispatcher
	ids        id.Generator
	warmup     question.Factory
	main       question.Factory
	now        func() time.Time

	mu          sync.RWMutex
	phase       Phase
	subscribers map[chan domain.Leaderboard]struct{}

	// publishMu orders snapshots so subscribers never see an older board
	// after a newer one.
	publishMu sync.Mutex
}

// NewGameService starts in the warm-up phase when warmup is non-nil,
// otherwise directly in the main phase.
func NewGameService(roster Roster, dispatcher Dispatcher, ids id.Generator, warmup, main question.Factory) *GameService {
	phase := PhaseMain
	if warmup != nil {
		phase = PhaseWarmup
	}
	return &GameService{
		roster:      roster,
		dispatcher:  dispatcher,
		ids:         ids,
		warmup:      warmup,
		main:        main,
		now:         time.Now,
		phase:       phase,
		subscribers: make(map[chan domain.Leaderboard]struct{}),
	}
}

// Register creates a player with a fresh token and adds it to the roster.
func (s *GameService) Register(ctx context.Context, name, endpoint string) (*domain.Player, error) {
	player, err := domain.NewPlayer(s.ids.NewID(), name, endpoint)
	if err != nil {
		return nil, err
	}
	if err := s.roster.Add(ctx, player); err != nil {
		return nil, err
	}
	s.broadcast()
	return player, nil
}

// Players lists the roster in registration order.
func (s *GameService) Players() []*domain.Player {
	return s.roster.List()
}

// Dispatch asks the player the next question of the active factory.
func (s *GameService) Dispatch(ctx context.Context, playerID string) (domain.Outcome, error) {
	player, ok := s.roster.Get(playerID)
	if !ok {
		return domain.Outcome{}, domain.ErrPlayerNotFound
	}

	q, err := s.factory().NextQuestion(ctx, player)
	if err != nil {
		return domain.Outcome{}, err
	}
	outcome, err := s.dispatcher.Dispatch(ctx, q, player)
	if err != nil {
		return domain.Outcome{}, err
	}

	line := domain.LogLine{
		QuestionID: outcome.QuestionID,
		Result:     outcome.Result,
		Points:     outcome.Points,
		Status:     outcome.Status,
		Answer:     outcome.Answer,
	}
	if err := s.roster.Record(ctx, player, line); err != nil {
		// the player's own log already holds the line
		return outcome, fmt.Errorf("record outcome for %s: %w", player.Name, err)
	}
	s.broadcast()
	return outcome, nil
}

// Phase reports the active phase.
func (s *GameService) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// StartMain leaves the warm-up phase. It is idempotent.
func (s *GameService) StartMain() {
	s.mu.Lock()
	changed := s.phase != PhaseMain
	s.phase = PhaseMain
	s.mu.Unlock()
	if changed {
		s.broadcast()
	}
}

// AdvanceRound advances the active factory. During warm-up this fails.
func (s *GameService) AdvanceRound() error {
	if err := s.factory().AdvanceRound(); err != nil {
		return err
	}
	s.broadcast()
	return nil
}

// Round is the active factory's round, 0 during warm-up.
func (s *GameService) Round() int {
	return s.factory().Round()
}

// PlayerLog returns one player's log, newest first.
func (s *GameService) PlayerLog(ctx context.Context, playerID string) ([]domain.LogLine, error) {
	return s.roster.Log(ctx, playerID)
}

func (s *GameService) factory() question.Factory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.phase == PhaseWarmup {
		return s.warmup
	}
	return s.main
}

// Leaderboard ranks players by score, then name.
func (s *GameService) Leaderboard() domain.Leaderboard {
	players := s.roster.List()
	entries := make([]domain.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, domain.LeaderboardEntry{
			PlayerID:   p.ID,
			Name:       p.Name,
			Score:      p.Score(),
			Answered:   len(p.Log()),
			LastResult: p.LastResult(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	return domain.Leaderboard{
		Phase:     string(s.Phase()),
		Round:     s.Round(),
		Entries:   entries,
		UpdatedAt: s.now(),
	}
}

// Subscribe returns a channel that receives leaderboard updates.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *GameService) Subscribe() (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	s.publishMu.Lock()
	ch <- s.Leaderboard()
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()
	s.publishMu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *GameService) broadcast() {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	lb := s.Leaderboard()

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- lb:
		default:
			// drop the stale update so slow clients never block dispatch
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}
