package cards

import (
	"slices"
	"strings"
)

// Role is a semantic role a card can play in a deck.
type Role string

const (
	RoleWincon   Role = "wincon"
	RoleBuilding Role = "building"
	RoleSpell    Role = "spell"
	RoleAir      Role = "air"
	RoleSplash   Role = "splash"
	RoleCycle    Role = "cycle"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleWincon, RoleBuilding, RoleSpell, RoleAir, RoleSplash, RoleCycle}

// ParseRole reports whether s names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(AllRoles, r) {
		return r, true
	}
	return "", false
}

// DefaultElixirCost is used when a source does not report a cost.
const DefaultElixirCost = 3

// Card is a normalized catalog record.
type Card struct {
	Name       string   `json:"name" yaml:"name"`
	ElixirCost int      `json:"elixir" yaml:"elixir"`
	Roles      []Role   `json:"role" yaml:"role"`
	Tags       []string `json:"tags" yaml:"tags"`
	ID         int      `json:"id,omitempty" yaml:"id,omitempty"`
	Key        string   `json:"key,omitempty" yaml:"key,omitempty"`
	IconURL    string   `json:"icon_url,omitempty" yaml:"icon_url,omitempty"`
}

// HasRole reports whether the card carries r.
func (c Card) HasRole(r Role) bool {
	return slices.Contains(c.Roles, r)
}

// clone returns a copy that shares no slices with c.
func (c Card) clone() Card {
	c.Roles = slices.Clone(c.Roles)
	c.Tags = slices.Clone(c.Tags)
	if c.Roles == nil {
		c.Roles = []Role{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}

func validCost(v int) bool {
	return v >= 1 && v <= 9
}

// sortedRoles de-duplicates roles and orders them as in AllRoles.
func sortedRoles(in []Role) []Role {
	out := []Role{}
	for _, r := range AllRoles {
		if slices.Contains(in, r) {
			out = append(out, r)
		}
	}
	return out
}

func sortedTags(in []string) []string {
	out := []string{}
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// splitRoles separates known roles from free-form labels, which become tags.
func splitRoles(labels []string) ([]Role, []string) {
	var roles []Role
	var extra []string
	for _, l := range labels {
		if r, ok := ParseRole(l); ok {
			roles = append(roles, r)
		} else if strings.TrimSpace(l) != "" {
			extra = append(extra, strings.TrimSpace(l))
		}
	}
	return roles, extra
}

// Slug converts a card name to the RoyaleAPI asset key, e.g. "Baby Dragon" -> "baby-dragon".
func Slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, ".", "")
	return strings.Join(strings.Fields(name), "-")
}
