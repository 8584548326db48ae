package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"quiz-engine/internal/domain"
)

// BankLoader fetches question banks from a backing store (file, Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context, category string) (domain.Bank, error)
}

// BankRepository caches question banks in Redis and falls back to a loader on cache miss.
// Banks are stored as JSON: SET bank:{category} {json} EX ttl
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, category string) (domain.Bank, error) {
	if bank, ok := r.cached(ctx, category); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(category, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if bank, ok := r.cached(ctx, category); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(ctx, category)
		if err != nil {
			return domain.Bank{}, err
		}
		if err := bank.Validate(); err != nil {
			return domain.Bank{}, err
		}

		// best-effort: a failed write only costs another load
		if raw, err := json.Marshal(bank); err == nil {
			_ = r.client.Set(ctx, r.key(category), raw, r.ttlWithJitter()).Err()
		}
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

func (r *BankRepository) cached(ctx context.Context, category string) (domain.Bank, bool) {
	raw, err := r.client.Get(ctx, r.key(category)).Bytes()
	if err != nil {
		return domain.Bank{}, false
	}
	var bank domain.Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return domain.Bank{}, false
	}
	return bank, true
}

func (r *BankRepository) key(category string) string {
	return "bank:" + category
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
