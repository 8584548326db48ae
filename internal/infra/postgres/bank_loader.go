package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"quiz-engine/internal/domain"
)

// BankLoader loads question bank JSONB from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, category string) (domain.Bank, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE category=$1`, category).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Bank{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, category)
	}
	if err != nil {
		return domain.Bank{}, fmt.Errorf("load bank: %w", err)
	}
	var bank domain.Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("%w: unmarshal %s: %v", domain.ErrInvalidBank, category, err)
	}
	if bank.Category == "" {
		bank.Category = category
	}
	return bank, nil
}

// SaveBank upserts a bank; used to seed Postgres from the YAML banks.
func (l *BankLoader) SaveBank(ctx context.Context, bank domain.Bank) error {
	if err := bank.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(bank)
	if err != nil {
		return err
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO question_banks (category, data) VALUES ($1, $2::jsonb)
		 ON CONFLICT (category) DO UPDATE SET data=EXCLUDED.data, updated_at=now()`,
		bank.Category, string(data))
	if err != nil {
		return fmt.Errorf("save bank %s: %w", bank.Category, err)
	}
	return nil
}
