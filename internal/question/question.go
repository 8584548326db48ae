// Package question generates quiz questions, renders them as text and
// verifies answers. Every question fixes its parameters at construction, so
// the text and the correct answer always derive from the same values.
package question

import (
	"context"
	"fmt"
	"strings"

	"quiz-engine/internal/domain"
	"quiz-engine/internal/id"
)

// Question is one generated question, used for exactly one dispatch.
type Question interface {
	ID() string
	Variant() Name
	AsText() string
	CorrectAnswer() string
	Points() int
}

// BankSource supplies static question data keyed by category.
type BankSource interface {
	GetBank(ctx context.Context, category string) (domain.Bank, error)
}

// Env carries the injected services questions are built from.
type Env struct {
	IDs   id.Generator
	Rand  *Rand
	Banks BankSource
}

// Params are explicit question parameters. Variants read only the fields
// they need; a nil *Params means "draw everything from Env.Rand".
type Params struct {
	Numbers []int
	Words   []string
	Clock   string // "HH:MM"
}

// Normalize is the only tolerance applied to submitted answers.
func Normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// AnsweredCorrectly compares the normalized answer with the correct answer.
// Numbers are compared as text, so "07" does not match 7.
func AnsweredCorrectly(q Question, answer string) bool {
	return Normalize(answer) == Normalize(q.CorrectAnswer())
}

// Render is the wire form sent to players: "<id>: <text>".
func Render(q Question) string {
	return q.ID() + ": " + q.AsText()
}

type base struct {
	id      string
	variant Name
	points  int
}

func (b base) ID() string { return b.id }

func (b base) Variant() Name { return b.variant }

func (b base) Points() int { return b.points }

func newBase(env Env, v Name) base {
	return base{id: env.IDs.NewID(), variant: v, points: pointsFor(v)}
}

func invalidParams(v Name, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", domain.ErrInvalidParams, v, fmt.Sprintf(format, args...))
}

func joinInts(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
