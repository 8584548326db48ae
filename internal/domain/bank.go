package domain

import (
	"fmt"
	"strings"
)

// Question bank categories.
const (
	CategoryGeneralKnowledge = "general_knowledge"
	CategoryAnagrams         = "anagrams"
	CategoryPalindromes      = "palindromes"
	CategoryScrabble         = "scrabble"
)

// Fact is a trivia question with its expected answer.
type Fact struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Anagram lists one word, the option that is its anagram and options that are not.
type Anagram struct {
	Word      string   `json:"anagram" yaml:"anagram"`
	Correct   string   `json:"correct" yaml:"correct"`
	Incorrect []string `json:"incorrect" yaml:"incorrect"`
}

// Bank is static question data for one category. Only the fields the
// category uses are populated.
type Bank struct {
	Category       string    `json:"category" yaml:"category"`
	Facts          []Fact    `json:"facts,omitempty" yaml:"facts,omitempty"`
	Anagrams       []Anagram `json:"anagrams,omitempty" yaml:"anagrams,omitempty"`
	Palindromes    []string  `json:"palindromes,omitempty" yaml:"palindromes,omitempty"`
	NonPalindromes []string  `json:"nonPalindromes,omitempty" yaml:"non_palindromes,omitempty"`
	Words          []string  `json:"words,omitempty" yaml:"words,omitempty"`
}

// Validate checks the bank has usable data for its category.
func (b Bank) Validate() error {
	switch b.Category {
	case CategoryGeneralKnowledge:
		if len(b.Facts) == 0 {
			return fmt.Errorf("%w: %s has no facts", ErrInvalidBank, b.Category)
		}
		for i, f := range b.Facts {
			if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
				return fmt.Errorf("%w: fact %d is incomplete", ErrInvalidBank, i)
			}
		}
	case CategoryAnagrams:
		if len(b.Anagrams) == 0 {
			return fmt.Errorf("%w: %s has no entries", ErrInvalidBank, b.Category)
		}
		for i, a := range b.Anagrams {
			if a.Word == "" || a.Correct == "" || len(a.Incorrect) == 0 {
				return fmt.Errorf("%w: anagram %d is incomplete", ErrInvalidBank, i)
			}
		}
	case CategoryPalindromes:
		if len(b.Palindromes) == 0 || len(b.NonPalindromes) == 0 {
			return fmt.Errorf("%w: %s needs palindromes and non-palindromes", ErrInvalidBank, b.Category)
		}
		for _, w := range b.Palindromes {
			if !IsPalindrome(w) {
				return fmt.Errorf("%w: %q is not a palindrome", ErrInvalidBank, w)
			}
		}
		for _, w := range b.NonPalindromes {
			if IsPalindrome(w) {
				return fmt.Errorf("%w: %q is a palindrome", ErrInvalidBank, w)
			}
		}
	case CategoryScrabble:
		if len(b.Words) == 0 {
			return fmt.Errorf("%w: %s has no words", ErrInvalidBank, b.Category)
		}
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidBank, b.Category)
	}
	return nil
}

// IsPalindrome reports whether w reads the same backwards, ignoring case.
func IsPalindrome(w string) bool {
	r := []rune(strings.ToLower(w))
	if len(r) == 0 {
		return false
	}
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		if r[i] != r[j] {
			return false
		}
	}
	return true
}
