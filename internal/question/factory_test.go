package question

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"quiz-engine/internal/domain"
)

func TestWindowEnd(t *testing.T) {
	size := len(DefaultCatalogue())
	require.Equal(t, 1, WindowEnd(1, size))
	require.Equal(t, 4, WindowEnd(2, size))
	require.Equal(t, 7, WindowEnd(3, size))
	require.Equal(t, size-1, WindowEnd(100, size))

	prev := -1
	for round := 1; round < 20; round++ {
		end := WindowEnd(round, size)
		require.GreaterOrEqual(t, end, prev)
		require.GreaterOrEqual(t, end, 0)
		prev = end
	}
}

func TestRoundFactoryDrawsFromWindow(t *testing.T) {
	f := NewRoundFactory(testEnv(11), nil)
	require.Equal(t, 1, f.Round())

	player := newPlayer("alice")
	for round := 1; round <= 6; round++ {
		allowed := make(map[Name]bool)
		for _, v := range f.Window() {
			allowed[v.Name] = true
		}
		require.True(t, allowed[Addition], "round %d window must start at index 0", round)
		for i := 0; i < 100; i++ {
			q, err := f.NextQuestion(context.Background(), player)
			require.NoError(t, err)
			require.True(t, allowed[q.Variant()], "round %d drew %s", round, q.Variant())
		}
		require.NoError(t, f.AdvanceRound())
		require.Equal(t, round+1, f.Round())
	}
}

func TestRoundOneOnlyAsksAddition(t *testing.T) {
	f := NewRoundFactory(testEnv(2), nil)
	for i := 0; i < 50; i++ {
		q, err := f.NextQuestion(context.Background(), newPlayer("alice"))
		require.NoError(t, err)
		require.Equal(t, Addition, q.Variant())
	}
}

func TestQuestionsAreNeverReused(t *testing.T) {
	f := NewRoundFactory(testEnv(2), nil)
	a, err := f.NextQuestion(context.Background(), newPlayer("alice"))
	require.NoError(t, err)
	b, err := f.NextQuestion(context.Background(), newPlayer("bob"))
	require.NoError(t, err)
	require.NotEqual(t, a.ID(), b.ID())
}

func TestWarmupFactory(t *testing.T) {
	f := NewWarmupFactory(testEnv(1))
	q, err := f.NextQuestion(context.Background(), newPlayer("Alice"))
	require.NoError(t, err)
	require.Equal(t, Warmup, q.Variant())
	require.True(t, AnsweredCorrectly(q, "alice"))

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, f.AdvanceRound(), domain.ErrRoundAdvanceForbidden)
		require.Equal(t, 0, f.Round())
	}

	_, err = f.NextQuestion(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrInvalidPlayer)
}
