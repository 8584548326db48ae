package question

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"quiz-engine/internal/domain"
)

func loadBank(ctx context.Context, env Env, category string) (domain.Bank, error) {
	if env.Banks == nil {
		return domain.Bank{}, fmt.Errorf("%w: no bank source for %s", domain.ErrBankNotFound, category)
	}
	bank, err := env.Banks.GetBank(ctx, category)
	if err != nil {
		return domain.Bank{}, err
	}
	if err := bank.Validate(); err != nil {
		return domain.Bank{}, err
	}
	return bank, nil
}

// PalindromeQuestion asks which words of a list are palindromes.
type PalindromeQuestion struct {
	base
	words []string
}

func init() {
	register(Palindrome, func(ctx context.Context, env Env, _ *domain.Player, p *Params) (Question, error) {
		var words []string
		if p != nil {
			if len(p.Words) == 0 {
				return nil, invalidParams(Palindrome, "empty word list")
			}
			words = append(words, p.Words...)
		} else {
			bank, err := loadBank(ctx, env, domain.CategoryPalindromes)
			if err != nil {
				return nil, err
			}
			words = append(Sample(env.Rand, bank.Palindromes, env.Rand.Between(3, 6)),
				Sample(env.Rand, bank.NonPalindromes, env.Rand.Between(3, 6))...)
			sort.Strings(words)
		}
		return &PalindromeQuestion{base: newBase(env, Palindrome), words: words}, nil
	})
}

func (q *PalindromeQuestion) AsText() string {
	return "which of the following words are palindromes: " + joinWords(q.words)
}

func (q *PalindromeQuestion) CorrectAnswer() string {
	var selected []string
	for _, w := range q.words {
		if domain.IsPalindrome(w) {
			selected = append(selected, w)
		}
	}
	return joinWords(selected)
}

// AnagramQuestion asks which option is an anagram of a word.
type AnagramQuestion struct {
	base
	word    string
	correct string
	options []string
}

func init() {
	register(AnagramWord, func(ctx context.Context, env Env, _ *domain.Player, p *Params) (Question, error) {
		var entry domain.Anagram
		var options []string
		if p != nil {
			if len(p.Words) < 3 {
				return nil, invalidParams(AnagramWord, "want word, correct option and at least one incorrect option")
			}
			entry = domain.Anagram{Word: p.Words[0], Correct: p.Words[1], Incorrect: p.Words[2:]}
			options = append([]string{entry.Correct}, entry.Incorrect...)
		} else {
			bank, err := loadBank(ctx, env, domain.CategoryAnagrams)
			if err != nil {
				return nil, err
			}
			entry = Sample(env.Rand, bank.Anagrams, 1)[0]
			options = append([]string{entry.Correct}, entry.Incorrect...)
			env.Rand.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
		}
		return &AnagramQuestion{
			base:    newBase(env, AnagramWord),
			word:    entry.Word,
			correct: entry.Correct,
			options: options,
		}, nil
	})
}

func (q *AnagramQuestion) AsText() string {
	return fmt.Sprintf("which of the following words is an anagram of %q: %s", q.word, joinWords(q.options))
}

func (q *AnagramQuestion) CorrectAnswer() string {
	return q.correct
}

// TriviaQuestion is a fact from the general knowledge bank.
type TriviaQuestion struct {
	base
	fact domain.Fact
}

func init() {
	register(GeneralKnowledge, func(ctx context.Context, env Env, _ *domain.Player, p *Params) (Question, error) {
		var fact domain.Fact
		if p != nil {
			if len(p.Words) != 2 {
				return nil, invalidParams(GeneralKnowledge, "want question and answer")
			}
			fact = domain.Fact{Question: p.Words[0], Answer: p.Words[1]}
		} else {
			bank, err := loadBank(ctx, env, domain.CategoryGeneralKnowledge)
			if err != nil {
				return nil, err
			}
			fact = Sample(env.Rand, bank.Facts, 1)[0]
		}
		return &TriviaQuestion{base: newBase(env, GeneralKnowledge), fact: fact}, nil
	})
}

func (q *TriviaQuestion) AsText() string {
	return q.fact.Question
}

func (q *TriviaQuestion) CorrectAnswer() string {
	return q.fact.Answer
}

// ScrabbleQuestion asks for the English Scrabble score of a word.
type ScrabbleQuestion struct {
	base
	word string
}

var letterScores = func() map[rune]int {
	scores := make(map[rune]int, 26)
	for letters, score := range map[string]int{
		"eaionrtlsu": 1,
		"dg":         2,
		"bcmp":       3,
		"fhvwy":      4,
		"k":          5,
		"jx":         8,
		"qz":         10,
	} {
		for _, l := range letters {
			scores[l] = score
		}
	}
	return scores
}()

func init() {
	register(Scrabble, func(ctx context.Context, env Env, _ *domain.Player, p *Params) (Question, error) {
		var word string
		if p != nil {
			if len(p.Words) != 1 {
				return nil, invalidParams(Scrabble, "want exactly one word")
			}
			word = p.Words[0]
		} else {
			bank, err := loadBank(ctx, env, domain.CategoryScrabble)
			if err != nil {
				return nil, err
			}
			word = Sample(env.Rand, bank.Words, 1)[0]
		}
		if word == "" || strings.IndexFunc(word, func(r rune) bool { return r > unicode.MaxASCII || !unicode.IsLetter(r) }) >= 0 {
			return nil, invalidParams(Scrabble, "%q is not a plain word", word)
		}
		return &ScrabbleQuestion{base: newBase(env, Scrabble), word: word}, nil
	})
}

func (q *ScrabbleQuestion) AsText() string {
	return "what is the english scrabble score of " + q.word
}

func (q *ScrabbleQuestion) CorrectAnswer() string {
	score := 0
	for _, l := range strings.ToLower(q.word) {
		score += letterScores[l]
	}
	return strconv.Itoa(score)
}
