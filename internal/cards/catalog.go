package cards

import (
	"maps"
	"slices"
)

// Catalog is an immutable name -> card index. The zero value is an empty catalog.
type Catalog struct {
	byName map[string]Card
}

// NewCatalog indexes cs by name; later duplicates replace earlier ones.
func NewCatalog(cs []Card) Catalog {
	m := make(map[string]Card, len(cs))
	for _, c := range cs {
		if c.Name == "" {
			continue
		}
		m[c.Name] = c.clone()
	}
	return Catalog{byName: m}
}

// Lookup returns a copy of the card with the given name.
func (c Catalog) Lookup(name string) (Card, bool) {
	card, ok := c.byName[name]
	if !ok {
		return Card{}, false
	}
	return card.clone(), true
}

// Len returns the number of cards.
func (c Catalog) Len() int {
	return len(c.byName)
}

// Cards returns all cards sorted by name.
func (c Catalog) Cards() []Card {
	names := slices.Sorted(maps.Keys(c.byName))
	out := make([]Card, 0, len(names))
	for _, n := range names {
		out = append(out, c.byName[n].clone())
	}
	return out
}

// Merge returns a new catalog with overlay cards replacing same-named entries.
func (c Catalog) Merge(overlay []Card) Catalog {
	m := make(map[string]Card, len(c.byName)+len(overlay))
	for k, v := range c.byName {
		m[k] = v
	}
	for _, card := range overlay {
		if card.Name == "" {
			continue
		}
		m[card.Name] = card.clone()
	}
	return Catalog{byName: m}
}

// DefaultCatalog returns the built-in catalog used when the feed is unavailable.
// Each call builds a fresh value.
func DefaultCatalog() Catalog {
	builtin := []Card{
		{Name: "Giant", ElixirCost: 5, Roles: []Role{RoleWincon}, Tags: []string{"ground", "tank"}},
		{Name: "Witch", ElixirCost: 5, Roles: []Role{RoleSplash}, Tags: []string{"anti-swarm", "support"}},
		{Name: "Baby Dragon", ElixirCost: 4, Roles: []Role{RoleSplash, RoleAir}, Tags: []string{"air"}},
		{Name: "Valkyrie", ElixirCost: 4, Roles: []Role{RoleSplash}},
		{Name: "Log", ElixirCost: 2, Roles: []Role{RoleSpell}},
		{Name: "Zap", ElixirCost: 2, Roles: []Role{RoleSpell}},
		{Name: "Minions", ElixirCost: 3, Roles: []Role{RoleAir}, Tags: []string{"air"}},
		{Name: "Skeletons", ElixirCost: 1, Roles: []Role{RoleCycle}},
	}
	for i := range builtin {
		builtin[i].Roles = sortedRoles(builtin[i].Roles)
		builtin[i].Tags = sortedTags(builtin[i].Tags)
	}

	// Cards the advisories recommend, classified by the tagger.
	suggested := []Card{
		{Name: "Hog Rider", ElixirCost: 4},
		{Name: "Miner", ElixirCost: 3},
		{Name: "Royal Giant", ElixirCost: 6},
		{Name: "Mega Minion", ElixirCost: 3},
		{Name: "Musketeer", ElixirCost: 4},
		{Name: "Wizard", ElixirCost: 5},
		{Name: "Cannon", ElixirCost: 3},
		{Name: "Tesla", ElixirCost: 4},
		{Name: "Bomb Tower", ElixirCost: 4},
		{Name: "Inferno Tower", ElixirCost: 5},
		{Name: "Arrows", ElixirCost: 3},
		{Name: "Fireball", ElixirCost: 4},
	}
	return NewCatalog(append(builtin, ApplyTags(suggested)...))
}
