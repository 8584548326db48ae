package question

import (
	"context"
	"fmt"
	"math/big"

	"quiz-engine/internal/domain"
)

const operandRange = 20

// Arithmetic is a closed-form calculation over two or three operands.
type Arithmetic struct {
	base
	op      arithmeticOp
	numbers []int
}

type arithmeticOp struct {
	arity  int
	format string
	eval   func(n []*big.Int) *big.Int
}

var arithmeticOps = map[Name]arithmeticOp{
	Addition: {2, "what is %d plus %d", func(n []*big.Int) *big.Int {
		return new(big.Int).Add(n[0], n[1])
	}},
	Subtraction: {2, "what is %d minus %d", func(n []*big.Int) *big.Int {
		return new(big.Int).Sub(n[0], n[1])
	}},
	Multiplication: {2, "what is %d multiplied by %d", func(n []*big.Int) *big.Int {
		return new(big.Int).Mul(n[0], n[1])
	}},
	Power: {2, "what is %d to the power of %d", func(n []*big.Int) *big.Int {
		return new(big.Int).Exp(n[0], n[1], nil)
	}},
	AdditionAddition: {3, "what is %d plus %d plus %d", func(n []*big.Int) *big.Int {
		sum := new(big.Int).Add(n[0], n[1])
		return sum.Add(sum, n[2])
	}},
	AdditionMultiplication: {3, "what is %d plus %d multiplied by %d", func(n []*big.Int) *big.Int {
		product := new(big.Int).Mul(n[1], n[2])
		return product.Add(n[0], product)
	}},
	MultiplicationAddition: {3, "what is %d multiplied by %d plus %d", func(n []*big.Int) *big.Int {
		product := new(big.Int).Mul(n[0], n[1])
		return product.Add(product, n[2])
	}},
}

func init() {
	for name := range arithmeticOps {
		register(name, buildArithmetic(name))
	}
}

func buildArithmetic(name Name) buildFunc {
	op := arithmeticOps[name]
	return func(_ context.Context, env Env, _ *domain.Player, p *Params) (Question, error) {
		var numbers []int
		if p != nil {
			if len(p.Numbers) != op.arity {
				return nil, invalidParams(name, "want %d numbers, got %d", op.arity, len(p.Numbers))
			}
			if name == Power && p.Numbers[1] < 0 {
				return nil, invalidParams(name, "negative exponent %d", p.Numbers[1])
			}
			numbers = append(numbers, p.Numbers...)
		} else {
			numbers = make([]int, op.arity)
			for i := range numbers {
				numbers[i] = env.Rand.Intn(operandRange)
			}
		}
		return &Arithmetic{base: newBase(env, name), op: op, numbers: numbers}, nil
	}
}

// Numbers returns the operands in the order they appear in the text.
func (q *Arithmetic) Numbers() []int {
	return append([]int(nil), q.numbers...)
}

func (q *Arithmetic) AsText() string {
	args := make([]any, len(q.numbers))
	for i, n := range q.numbers {
		args[i] = n
	}
	return fmt.Sprintf(q.op.format, args...)
}

func (q *Arithmetic) CorrectAnswer() string {
	operands := make([]*big.Int, len(q.numbers))
	for i, n := range q.numbers {
		operands[i] = big.NewInt(int64(n))
	}
	return q.op.eval(operands).String()
}

// FibonacciQuestion asks for the n-th Fibonacci number, F(0) = 0.
type FibonacciQuestion struct {
	base
	n int
}

func init() {
	register(Fibonacci, func(_ context.Context, env Env, _ *domain.Player, p *Params) (Question, error) {
		var n int
		if p != nil {
			if len(p.Numbers) != 1 || p.Numbers[0] < 0 {
				return nil, invalidParams(Fibonacci, "want one non-negative position")
			}
			n = p.Numbers[0]
		} else {
			n = env.Rand.Intn(operandRange) + 4
		}
		return &FibonacciQuestion{base: newBase(env, Fibonacci), n: n}, nil
	})
}

func (q *FibonacciQuestion) AsText() string {
	return fmt.Sprintf("what is the %s number in the Fibonacci sequence", ordinal(q.n))
}

func (q *FibonacciQuestion) CorrectAnswer() string {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < q.n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a.String()
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
