package poker

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a selection has the wrong shape
	// (hole card count, board size, player or trial counts).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCard is returned for malformed card codes or encodings.
	// It matches ErrInvalidInput under errors.Is.
	ErrInvalidCard = fmt.Errorf("%w: invalid card", ErrInvalidInput)

	// ErrDuplicateCard is returned when the same card appears twice in a selection.
	// It matches ErrInvalidInput under errors.Is.
	ErrDuplicateCard = fmt.Errorf("%w: duplicate card", ErrInvalidInput)

	// ErrIncompleteHand is returned when fewer than two cards are available to rank.
	ErrIncompleteHand = errors.New("incomplete hand")
)
