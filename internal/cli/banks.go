package cli

import (
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"quiz-engine/internal/config"
	"quiz-engine/internal/infra/memory"
	pgloader "quiz-engine/internal/infra/postgres"
	redisrepo "quiz-engine/internal/infra/redis"
	"quiz-engine/internal/question"
)

// bankLoader picks where question banks come from: Postgres when
// connected, else the configured YAML file, else the built-in banks.
// Categories missing from Postgres are served from the file or built-in banks.
func bankLoader(cfg config.Config, pool *pgxpool.Pool) (memory.BankLoader, error) {
	local, err := fileOrDefaultBanks(cfg)
	if err != nil {
		return nil, err
	}
	if pool != nil {
		return memory.NewFallbackBankLoader(pgloader.NewBankLoader(pool), local), nil
	}
	return local, nil
}

func fileOrDefaultBanks(cfg config.Config) (*memory.StaticBankLoader, error) {
	if cfg.Banks.Path != "" {
		return memory.LoadBankFile(cfg.Banks.Path)
	}
	return memory.DefaultBankLoader()
}

// bankSource wraps the loader in a cache, shared through Redis when available.
func bankSource(cfg config.Config, loader memory.BankLoader, client *redis.Client) question.BankSource {
	ttl := config.TTLDuration(cfg.Banks.TTL, 10*time.Minute)
	if client != nil {
		return redisrepo.NewBankRepository(client, loader, ttl)
	}
	return memory.NewBankRepository(loader, ttl)
}
