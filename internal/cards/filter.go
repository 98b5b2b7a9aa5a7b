package cards

import (
	"slices"
	"strings"
)

// FilterOptions narrows a card list. Empty fields do not filter.
type FilterOptions struct {
	Roles     []Role   `json:"roles"`
	Costs     []int    `json:"costs"`
	MaxCost   int      `json:"max_cost"`
	Tags      []string `json:"tags"`
	FreeWords string   `json:"free_words"`
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}

// Filter returns the cards matching every set option. Roles match if the card has any of them.
func Filter(cs []Card, opt FilterOptions) []Card {
	out := []Card{}
	for _, c := range cs {
		if len(opt.Roles) > 0 {
			matched := false
			for _, r := range opt.Roles {
				if c.HasRole(r) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if len(opt.Costs) > 0 && !slices.Contains(opt.Costs, c.ElixirCost) {
			continue
		}
		if opt.MaxCost > 0 && c.ElixirCost > opt.MaxCost {
			continue
		}
		if len(opt.Tags) > 0 && !containsAny(c.Tags, opt.Tags) {
			continue
		}
		if opt.FreeWords != "" {
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				k = strings.ToLower(k)
				if !strings.Contains(strings.ToLower(c.Name), k) &&
					!strings.Contains(strings.ToLower(strings.Join(c.Tags, " ")), k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c.clone())
	}
	return out
}
