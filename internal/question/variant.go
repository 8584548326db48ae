package question

import (
	"context"
	"fmt"

	"quiz-engine/internal/domain"
)

// Name identifies a question variant.
type Name string

const (
	Addition               Name = "addition"
	Subtraction            Name = "subtraction"
	Multiplication         Name = "multiplication"
	Power                  Name = "power"
	Fibonacci              Name = "fibonacci"
	AdditionAddition       Name = "addition_addition"
	AdditionMultiplication Name = "addition_multiplication"
	MultiplicationAddition Name = "multiplication_addition"
	Maximum                Name = "maximum"
	Palindrome             Name = "palindrome"
	Primes                 Name = "primes"
	SquareCube             Name = "square_cube"
	GeneralKnowledge       Name = "general_knowledge"
	Scrabble               Name = "scrabble"
	AnagramWord            Name = "anagram"
	ClockAngle             Name = "clock_angle"
	Warmup                 Name = "warmup"
)

// Points per variant. Single operations score lowest, then combined
// operations, selections, trivia and finally clock geometry.
var points = map[Name]int{
	Addition:               10,
	Subtraction:            10,
	Multiplication:         10,
	Power:                  20,
	Fibonacci:              20,
	AdditionAddition:       30,
	AdditionMultiplication: 40,
	MultiplicationAddition: 40,
	Maximum:                50,
	Palindrome:             50,
	Primes:                 60,
	SquareCube:             60,
	GeneralKnowledge:       70,
	Scrabble:               70,
	AnagramWord:            80,
	ClockAngle:             200,
	Warmup:                 10,
}

const defaultPoints = 10

func pointsFor(v Name) int {
	if p, ok := points[v]; ok {
		return p
	}
	return defaultPoints
}

type buildFunc func(ctx context.Context, env Env, player *domain.Player, p *Params) (Question, error)

// Variant constructs questions of one kind.
type Variant struct {
	Name  Name
	build buildFunc
}

// New builds a question. With nil params every value is drawn from env.Rand
// (and env.Banks for bank-backed variants).
func (v Variant) New(ctx context.Context, env Env, player *domain.Player, p *Params) (Question, error) {
	return v.build(ctx, env, player, p)
}

var registry = map[Name]Variant{}

func register(name Name, build buildFunc) Variant {
	v := Variant{Name: name, build: build}
	registry[name] = v
	return v
}

// Lookup returns the variant registered under name.
func Lookup(name Name) (Variant, error) {
	v, ok := registry[name]
	if !ok {
		return Variant{}, fmt.Errorf("unknown question variant %q", name)
	}
	return v, nil
}

// DefaultCatalogue is ordered by difficulty. Addition appears twice so it is
// drawn more often in the early rounds.
func DefaultCatalogue() []Variant {
	names := []Name{
		Addition,
		Addition,
		Maximum,
		Multiplication,
		Primes,
		SquareCube,
		Palindrome,
		Subtraction,
		Fibonacci,
		Power,
		AdditionAddition,
		AdditionMultiplication,
		MultiplicationAddition,
		AnagramWord,
		ClockAngle,
		Scrabble,
		GeneralKnowledge,
	}
	catalogue := make([]Variant, len(names))
	for i, n := range names {
		catalogue[i] = registry[n]
	}
	return catalogue
}
