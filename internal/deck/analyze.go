package deck

import (
	"fmt"
	"math"

	"github.com/youruser/crdeck/internal/cards"
)

// Advisory texts, in check order.
const (
	AdviceNoWincon   = "No win condition. Add Hog, Giant, Miner, or Royal Giant."
	AdviceNoAir      = "No air defense. Add Minions, Mega Minion, Musketeer, or Baby Dragon."
	AdviceNoSplash   = "No splash unit. Add Valkyrie, Witch, Wizard, or Baby Dragon."
	AdviceNoBuilding = "No defensive building. Add Cannon, Tesla, Bomb Tower, or Inferno Tower."
	AdviceNoSpell    = "No spells. Add Zap, Log, Arrows, or Fireball."
	AdviceHeavy      = "Deck is heavy. Try to stay between 3.2 and 3.8 at 3.5–4k trophies."
	AdviceLight      = "Deck is very light. Make sure it still has a win condition."
	AdviceBalanced   = "Your deck looks balanced."
)

// Options tunes the threshold checks.
type Options struct {
	// Trophies is the player's trophy count, 0 if unknown.
	Trophies int
	// BuildingMinTrophies skips the building check below this count. 0 always checks.
	BuildingMinTrophies int
	// HeavyThreshold defaults to 4.0 when not positive.
	HeavyThreshold      float64
	LightThreshold      float64
	CheckLight          bool
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		HeavyThreshold: 4.0,
		LightThreshold: 2.8,
		CheckLight:     true,
	}
}

// Report is the result of Analyze.
type Report struct {
	AverageElixirCost float64            `json:"averageElixirCost" yaml:"averageElixirCost"`
	RoleCounts        map[cards.Role]int `json:"roleCounts" yaml:"roleCounts"`
	Advisories        []string           `json:"advisories" yaml:"advisories"`
	Resolved          int                `json:"resolved" yaml:"resolved"`
	Unresolved        []string           `json:"unresolved" yaml:"unresolved"`
}

// Analyze scores d against catalog. Names missing from the catalog are skipped
// and excluded from the average.
func Analyze(d Deck, catalog cards.Catalog, opt Options) Report {
	rep := Report{
		RoleCounts: make(map[cards.Role]int, len(cards.AllRoles)),
		Advisories: []string{},
		Unresolved: []string{},
	}
	for _, r := range cards.AllRoles {
		rep.RoleCounts[r] = 0
	}

	total := 0
	for _, name := range d {
		card, ok := catalog.Lookup(name)
		if !ok {
			rep.Unresolved = append(rep.Unresolved, name)
			continue
		}
		rep.Resolved++
		total += card.ElixirCost
		for _, r := range card.Roles {
			rep.RoleCounts[r]++
		}
	}
	if rep.Resolved > 0 {
		rep.AverageElixirCost = round2(float64(total) / float64(rep.Resolved))
	}

	add := func(cond bool, msg string) {
		if cond {
			rep.Advisories = append(rep.Advisories, msg)
		}
	}
	heavy := opt.HeavyThreshold
	if heavy <= 0 {
		heavy = DefaultOptions().HeavyThreshold
	}
	buildingChecked := opt.BuildingMinTrophies <= 0 || opt.Trophies >= opt.BuildingMinTrophies

	add(rep.RoleCounts[cards.RoleWincon] == 0, AdviceNoWincon)
	add(rep.RoleCounts[cards.RoleAir] == 0, AdviceNoAir)
	add(rep.RoleCounts[cards.RoleSplash] == 0, AdviceNoSplash)
	add(buildingChecked && rep.RoleCounts[cards.RoleBuilding] == 0, AdviceNoBuilding)
	add(rep.RoleCounts[cards.RoleSpell] == 0, AdviceNoSpell)
	add(rep.AverageElixirCost > heavy, AdviceHeavy)
	add(opt.CheckLight && rep.AverageElixirCost < opt.LightThreshold, AdviceLight)

	if len(rep.Advisories) == 0 {
		rep.Advisories = append(rep.Advisories, balanced(opt.Trophies))
	}
	return rep
}

func balanced(trophies int) string {
	if trophies > 0 {
		return fmt.Sprintf("Your deck looks balanced for ~%d trophies.", trophies)
	}
	return AdviceBalanced
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
