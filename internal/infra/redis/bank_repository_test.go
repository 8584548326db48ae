package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"quiz-engine/internal/domain"
	"quiz-engine/internal/infra/memory"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		BankLoader: memory.NewStaticBankLoader(map[string]domain.Bank{
			domain.CategoryScrabble: sampleBank(),
		}),
	}
	repo := NewBankRepository(client, loader, time.Minute)

	bank, err := repo.GetBank(context.Background(), domain.CategoryScrabble)
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("bank:scrabble") {
		t.Fatalf("expected bank cached in redis")
	}
	if ttl := mr.TTL("bank:scrabble"); ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("expected ttl with jitter, got %v", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, _ := repo.GetBank(context.Background(), domain.CategoryScrabble)
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(cached.Words) != len(bank.Words) {
		t.Fatalf("expected cached words %v, got %v", bank.Words, cached.Words)
	}
}

func TestBankRepositoryDoesNotCacheInvalidBanks(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewBankRepository(newClient(mr), memory.NewStaticBankLoader(map[string]domain.Bank{
		domain.CategoryScrabble: {Category: domain.CategoryScrabble},
	}), time.Minute)

	if _, err := repo.GetBank(context.Background(), domain.CategoryScrabble); !errors.Is(err, domain.ErrInvalidBank) {
		t.Fatalf("expected ErrInvalidBank, got %v", err)
	}
	if mr.Exists("bank:scrabble") {
		t.Fatalf("invalid bank must not be cached")
	}
}

type countingLoader struct {
	BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, category string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, category)
}

func sampleBank() domain.Bank {
	return domain.Bank{
		Category: domain.CategoryScrabble,
		Words:    []string{"banana", "zoo", "quiz"},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
