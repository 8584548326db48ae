package question

import (
	"context"
	"fmt"
	"sync"

	"quiz-engine/internal/domain"
)

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("q%d", s.n)
}

type staticBanks map[string]domain.Bank

func (b staticBanks) GetBank(_ context.Context, category string) (domain.Bank, error) {
	bank, ok := b[category]
	if !ok {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	return bank, nil
}

func testBanks() staticBanks {
	return staticBanks{
		domain.CategoryGeneralKnowledge: {
			Category: domain.CategoryGeneralKnowledge,
			Facts:    []domain.Fact{{Question: "which planet is known as the red planet", Answer: "Mars"}},
		},
		domain.CategoryAnagrams: {
			Category: domain.CategoryAnagrams,
			Anagrams: []domain.Anagram{{Word: "listen", Correct: "silent", Incorrect: []string{"enlists", "google", "inlets x"}}},
		},
		domain.CategoryPalindromes: {
			Category:       domain.CategoryPalindromes,
			Palindromes:    []string{"anna", "level", "radar", "kayak"},
			NonPalindromes: []string{"cloud", "banana", "zoo", "ruby"},
		},
		domain.CategoryScrabble: {
			Category: domain.CategoryScrabble,
			Words:    []string{"banana", "zoo"},
		},
	}
}

func testEnv(seed int64) Env {
	return Env{IDs: &sequenceIDs{}, Rand: NewRand(seed), Banks: testBanks()}
}

func newPlayer(name string) *domain.Player {
	p, err := domain.NewPlayer("p1", name, "http://localhost:9000")
	if err != nil {
		panic(err)
	}
	return p
}
