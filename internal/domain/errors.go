package domain

import "errors"

var (
	// ErrPlayerNotFound is returned when an operation references an unknown player.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrInvalidPlayer indicates a player has no name or an unusable endpoint.
	ErrInvalidPlayer = errors.New("invalid player")
	// ErrBankNotFound indicates no question bank exists for a category.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrInvalidBank indicates question bank data is malformed.
	ErrInvalidBank = errors.New("invalid question bank")
	// ErrInvalidParams is returned when explicit question parameters have the wrong shape.
	ErrInvalidParams = errors.New("invalid question parameters")
	// ErrRoundAdvanceForbidden is returned by factories that have no rounds (warm-up).
	ErrRoundAdvanceForbidden = errors.New("round advance not allowed")
)
