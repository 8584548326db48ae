package memory

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"quiz-engine/internal/domain"
)

//go:embed default_banks.yaml
var defaultBanksYAML []byte

// StaticBankLoader is a loader backed by an in-memory map (useful for tests/demos).
type StaticBankLoader struct {
	banks map[string]domain.Bank
}

func NewStaticBankLoader(banks map[string]domain.Bank) *StaticBankLoader {
	return &StaticBankLoader{banks: banks}
}

// DefaultBankLoader serves the banks shipped with the binary.
func DefaultBankLoader() (*StaticBankLoader, error) {
	banks, err := ParseBanks(defaultBanksYAML)
	if err != nil {
		return nil, fmt.Errorf("default banks: %w", err)
	}
	return NewStaticBankLoader(banks), nil
}

// LoadBankFile reads a YAML list of banks from path.
func LoadBankFile(path string) (*StaticBankLoader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	banks, err := ParseBanks(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewStaticBankLoader(banks), nil
}

// ParseBanks decodes and validates a YAML list of banks keyed by category.
func ParseBanks(data []byte) (map[string]domain.Bank, error) {
	var list []domain.Bank
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBank, err)
	}
	banks := make(map[string]domain.Bank, len(list))
	for _, bank := range list {
		if err := bank.Validate(); err != nil {
			return nil, err
		}
		if _, dup := banks[bank.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", domain.ErrInvalidBank, bank.Category)
		}
		banks[bank.Category] = bank
	}
	return banks, nil
}

func (l *StaticBankLoader) LoadBank(_ context.Context, category string) (domain.Bank, error) {
	if bank, ok := l.banks[category]; ok {
		return bank, nil
	}
	return domain.Bank{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, category)
}

// Banks lists every bank the loader holds.
func (l *StaticBankLoader) Banks() []domain.Bank {
	out := make([]domain.Bank, 0, len(l.banks))
	for _, bank := range l.banks {
		out = append(out, bank)
	}
	return out
}

// FallbackBankLoader asks primary first and serves categories primary does
// not hold from fallback. Other primary errors are returned as is.
type FallbackBankLoader struct {
	primary  BankLoader
	fallback BankLoader
}

func NewFallbackBankLoader(primary, fallback BankLoader) *FallbackBankLoader {
	return &FallbackBankLoader{primary: primary, fallback: fallback}
}

func (l *FallbackBankLoader) LoadBank(ctx context.Context, category string) (domain.Bank, error) {
	bank, err := l.primary.LoadBank(ctx, category)
	if errors.Is(err, domain.ErrBankNotFound) {
		return l.fallback.LoadBank(ctx, category)
	}
	return bank, err
}
