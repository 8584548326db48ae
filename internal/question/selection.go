package question

import (
	"context"
	"math"
	"sort"
	"strings"

	"quiz-engine/internal/domain"
)

// Selection asks which numbers of a pool satisfy a property. The correct
// answer lists the qualifying numbers in the order they appear in the text.
// Generated pools are sorted ascending; explicit pools keep their order.
type Selection struct {
	base
	prompt    string
	numbers   []int
	qualifies func(x int, pool []int) bool
}

type selectionKind struct {
	prompt    string
	qualifies func(x int, pool []int) bool
	generate  func(r *Rand) []int
}

var selectionKinds = map[Name]selectionKind{
	Maximum: {
		prompt:    "which of the following numbers is the largest: ",
		qualifies: func(x int, pool []int) bool { return x == maxOf(pool) },
		generate:  generateMaximumPool,
	},
	Primes: {
		prompt:    "which of the following numbers are primes: ",
		qualifies: func(x int, _ []int) bool { return isPrime(x) },
		generate: func(r *Rand) []int {
			return mixPool(r, firstPrimes(100), func(x int) bool { return isPrime(x) })
		},
	},
	SquareCube: {
		prompt:    "which of the following numbers are both a square and a cube: ",
		qualifies: func(x int, _ []int) bool { return isSquare(x) && isCube(x) },
		generate: func(r *Rand) []int {
			return mixPool(r, sixthPowers(10), func(x int) bool { return isSquare(x) && isCube(x) })
		},
	},
}

func init() {
	for name, kind := range selectionKinds {
		register(name, buildSelection(name, kind))
	}
}

func buildSelection(name Name, kind selectionKind) buildFunc {
	return func(_ context.Context, env Env, _ *domain.Player, p *Params) (Question, error) {
		var numbers []int
		if p != nil {
			if len(p.Numbers) == 0 {
				return nil, invalidParams(name, "empty number pool")
			}
			numbers = append(numbers, p.Numbers...)
		} else {
			numbers = kind.generate(env.Rand)
			sort.Ints(numbers)
		}
		return &Selection{
			base:      newBase(env, name),
			prompt:    kind.prompt,
			numbers:   numbers,
			qualifies: kind.qualifies,
		}, nil
	}
}

// Numbers returns the candidate pool in display order.
func (q *Selection) Numbers() []int {
	return append([]int(nil), q.numbers...)
}

func (q *Selection) AsText() string {
	return q.prompt + joinInts(q.numbers)
}

func (q *Selection) CorrectAnswer() string {
	var selected []int
	for _, x := range q.numbers {
		if q.qualifies(x, q.numbers) {
			selected = append(selected, x)
		}
	}
	return joinInts(selected)
}

// mixPool draws one or two true positives from candidates and one or two
// distinct distractors below 1000 that fail the property.
func mixPool(r *Rand, candidates []int, qualifies func(int) bool) []int {
	pool := Sample(r, candidates, 1+r.Intn(2))
	seen := make(map[int]bool, 4)
	for _, x := range pool {
		seen[x] = true
	}
	for want := len(pool) + 1 + r.Intn(2); len(pool) < want; {
		x := r.Intn(1000)
		if seen[x] || qualifies(x) {
			continue
		}
		seen[x] = true
		pool = append(pool, x)
	}
	return pool
}

func generateMaximumPool(r *Rand) []int {
	size := 1 + r.Intn(2)
	seen := make(map[int]bool, 2*size)
	var pool []int
	add := func(draw func() int) {
		for {
			x := draw()
			if !seen[x] {
				seen[x] = true
				pool = append(pool, x)
				return
			}
		}
	}
	for i := 0; i < size; i++ {
		add(func() int { return r.Intn(1000) })
		add(func() int { return 1 + r.Intn(100) })
	}
	return pool
}

func maxOf(pool []int) int {
	m := math.MinInt
	for _, x := range pool {
		if x > m {
			m = x
		}
	}
	return m
}

func isPrime(x int) bool {
	if x < 2 {
		return false
	}
	for d := 2; d*d <= x; d++ {
		if x%d == 0 {
			return false
		}
	}
	return true
}

func firstPrimes(n int) []int {
	primes := make([]int, 0, n)
	for x := 2; len(primes) < n; x++ {
		if isPrime(x) {
			primes = append(primes, x)
		}
	}
	return primes
}

func sixthPowers(n int) []int {
	out := make([]int, n)
	for i := 1; i <= n; i++ {
		out[i-1] = i * i * i * i * i * i
	}
	return out
}

func isSquare(x int) bool {
	if x < 0 {
		return false
	}
	root := int(math.Round(math.Sqrt(float64(x))))
	return root*root == x
}

func isCube(x int) bool {
	root := int(math.Round(math.Cbrt(float64(x))))
	return root*root*root == x
}

func joinWords(words []string) string {
	return strings.Join(words, ", ")
}
