package deck

import (
	"strconv"
	"strings"

	"github.com/youruser/crdeck/internal/cards"
)

const shareLinkBase = "https://link.clashroyale.com/deck/en?deck="

// ExportText renders the deck as one card per line, in deck order.
func ExportText(title string, d Deck) string {
	lines := []string{}
	if title != "" {
		lines = append(lines, "# "+title)
	}
	for i, name := range d {
		lines = append(lines, strconv.Itoa(i+1)+". "+name)
	}
	return strings.Join(lines, "\n")
}

// ShareLink builds the in-game deck link. It reports false unless every card
// resolves to a catalog entry with an official id.
func ShareLink(d Deck, catalog cards.Catalog) (string, bool) {
	if len(d) == 0 {
		return "", false
	}
	ids := make([]string, 0, len(d))
	for _, name := range d {
		c, ok := catalog.Lookup(name)
		if !ok || c.ID == 0 {
			return "", false
		}
		ids = append(ids, strconv.Itoa(c.ID))
	}
	return shareLinkBase + strings.Join(ids, ";"), true
}
