package deck

import (
	"errors"
	"fmt"
	"strings"
)

// MaxCards is the number of cards in a Clash Royale deck.
const MaxCards = 8

// ErrTooManyCards is returned by Validate for decks longer than MaxCards.
var ErrTooManyCards = errors.New("deck has more than 8 cards")

// Deck is an ordered list of card names. Names need not exist in any catalog.
type Deck []string

// Parse splits a comma-separated list of names, dropping blanks.
func Parse(s string) Deck {
	return Clean(strings.Split(s, ","))
}

// Clean trims names and drops empty entries.
func Clean(names []string) Deck {
	d := Deck{}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			d = append(d, n)
		}
	}
	return d
}

// Validate checks the deck size.
func (d Deck) Validate() error {
	if len(d) > MaxCards {
		return fmt.Errorf("%w: got %d", ErrTooManyCards, len(d))
	}
	return nil
}

// Default is the starter deck offered before the player picks cards.
func Default() Deck {
	return Deck{"Giant", "Witch", "Baby Dragon", "Valkyrie", "Log", "Zap", "Minions", "Skeletons"}
}
