package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Builtins(t *testing.T) {
	cat := DefaultCatalog()

	giant, ok := cat.Lookup("Giant")
	require.True(t, ok)
	assert.Equal(t, 5, giant.ElixirCost)
	assert.Equal(t, []Role{RoleWincon}, giant.Roles)
	assert.Equal(t, []string{"ground", "tank"}, giant.Tags)

	bd, ok := cat.Lookup("Baby Dragon")
	require.True(t, ok)
	assert.Equal(t, []Role{RoleAir, RoleSplash}, bd.Roles)

	cannon, ok := cat.Lookup("Cannon")
	require.True(t, ok)
	assert.Equal(t, []Role{RoleBuilding}, cannon.Roles)

	assert.Equal(t, 20, cat.Len())
}

func TestDefaultCatalog_Independent(t *testing.T) {
	a := DefaultCatalog()
	card, _ := a.Lookup("Zap")
	card.Roles[0] = RoleWincon

	again, _ := a.Lookup("Zap")
	assert.Equal(t, []Role{RoleSpell}, again.Roles)

	b := DefaultCatalog()
	zap, _ := b.Lookup("Zap")
	assert.Equal(t, []Role{RoleSpell}, zap.Roles)
}

func TestCatalog_Merge(t *testing.T) {
	base := NewCatalog([]Card{{Name: "Giant", ElixirCost: 5}, {Name: "Zap", ElixirCost: 2}})
	merged := base.Merge([]Card{{Name: "Giant", ElixirCost: 6}, {Name: "Knight", ElixirCost: 3}, {Name: ""}})

	g, _ := merged.Lookup("Giant")
	assert.Equal(t, 6, g.ElixirCost)
	assert.Equal(t, 3, merged.Len())

	g, _ = base.Lookup("Giant")
	assert.Equal(t, 5, g.ElixirCost, "base must not change")
	assert.Equal(t, 2, base.Len())
}

func TestCatalog_CardsSorted(t *testing.T) {
	cat := NewCatalog([]Card{{Name: "Zap"}, {Name: "Arrows"}, {Name: "Miner"}})
	var names []string
	for _, c := range cat.Cards() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Arrows", "Miner", "Zap"}, names)
}

func TestCatalog_ZeroValue(t *testing.T) {
	var cat Catalog
	_, ok := cat.Lookup("Giant")
	assert.False(t, ok)
	assert.Equal(t, 0, cat.Len())
	assert.Empty(t, cat.Cards())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "baby-dragon", Slug("Baby Dragon"))
	assert.Equal(t, "pekka", Slug("P.E.K.K.A"))
	assert.Equal(t, "x-bow", Slug(" X-Bow "))
}
