package cards

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// roleMembers maps each listed role to the card names that fill it.
// Lists may overlap; cycle is never listed, it is a fallback.
var roleMembers = map[Role]map[string]struct{}{
	RoleWincon: set(
		"Giant", "Hog Rider", "Miner", "Royal Giant", "Golem", "Balloon",
		"X-Bow", "Mortar", "Graveyard", "Goblin Barrel", "Ram Rider", "Battle Ram",
		"Lava Hound", "Elixir Golem", "Goblin Drill", "Wall Breakers", "Royal Hogs",
		"Goblin Giant", "Electro Giant", "Skeleton Barrel", "Three Musketeers",
	),
	RoleBuilding: set(
		"Cannon", "Tesla", "Bomb Tower", "Inferno Tower", "Goblin Cage", "Tombstone",
		"Furnace", "Goblin Hut", "Barbarian Hut", "Elixir Collector", "X-Bow", "Mortar",
		"Goblin Drill",
	),
	RoleSpell: set(
		"Zap", "Log", "The Log", "Arrows", "Fireball", "Poison", "Rocket", "Lightning",
		"Earthquake", "Giant Snowball", "Barbarian Barrel", "Tornado", "Freeze", "Rage",
		"Royal Delivery", "Clone", "Mirror", "Void", "Goblin Curse",
	),
	RoleAir: set(
		"Minions", "Minion Horde", "Mega Minion", "Baby Dragon", "Inferno Dragon",
		"Electro Dragon", "Skeleton Dragons", "Bats", "Phoenix", "Flying Machine",
		"Musketeer", "Archers", "Wizard", "Executioner", "Hunter", "Dart Goblin",
		"Princess", "Firecracker", "Magic Archer", "Electro Wizard", "Ice Wizard",
		"Archer Queen", "Three Musketeers", "Spear Goblins",
	),
	RoleSplash: set(
		"Valkyrie", "Witch", "Wizard", "Baby Dragon", "Bowler", "Executioner", "Bomber",
		"Dark Prince", "Mega Knight", "Magic Archer", "Firecracker", "Electro Dragon",
		"Skeleton Dragons", "Ice Wizard", "Princess", "Mother Witch", "Bomb Tower",
	),
}

var roleTags = map[Role]string{
	RoleAir:    "anti-air",
	RoleSplash: "anti-swarm",
}

// Tag derives roles and descriptive tags for a card from the static lists.
// A card with cost <= 2 that appears on no list is classified as cycle.
func Tag(name string, elixirCost int) ([]Role, []string) {
	var roles []Role
	var tags []string
	for _, r := range AllRoles {
		members, ok := roleMembers[r]
		if !ok {
			continue
		}
		if _, hit := members[name]; hit {
			roles = append(roles, r)
			if t, ok := roleTags[r]; ok {
				tags = append(tags, t)
			}
		}
	}
	if len(roles) == 0 && elixirCost <= 2 {
		roles = append(roles, RoleCycle)
	}
	switch {
	case elixirCost <= 2:
		tags = append(tags, "cheap")
	case elixirCost >= 6:
		tags = append(tags, "heavy")
	}
	return sortedRoles(roles), sortedTags(tags)
}

// ApplyTags fills in roles for cards the source did not classify.
// Cards that already carry roles keep them unchanged.
func ApplyTags(cs []Card) []Card {
	out := make([]Card, 0, len(cs))
	for _, c := range cs {
		c = c.clone()
		if len(c.Roles) == 0 {
			roles, tags := Tag(c.Name, c.ElixirCost)
			c.Roles = roles
			c.Tags = sortedTags(append(c.Tags, tags...))
		}
		out = append(out, c)
	}
	return out
}
