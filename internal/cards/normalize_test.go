package cards

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope_Items(t *testing.T) {
	body := []byte(`{"items":[{"name":"Knight","id":26000000,"elixirCost":3,"iconUrls":{"medium":"https://x/knight.png"}},{"name":"Mirror"}]}`)
	raw, err := DecodeEnvelope(ShapeItems, body)
	require.NoError(t, err)
	require.Len(t, raw, 2)

	cs := Normalize(raw)
	want := []Card{
		{Name: "Knight", ElixirCost: 3, Roles: []Role{}, Tags: []string{}, ID: 26000000, IconURL: "https://x/knight.png"},
		{Name: "Mirror", ElixirCost: DefaultElixirCost, Roles: []Role{}, Tags: []string{}},
	}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEnvelope_Array(t *testing.T) {
	body := []byte(`[{"key":"knight","name":"Knight","elixir":3},{"key":"golem","name":"Golem","elixir":8}]`)
	raw, err := DecodeEnvelope(ShapeArray, body)
	require.NoError(t, err)

	cs := Normalize(raw)
	require.Len(t, cs, 2)
	assert.Equal(t, "knight", cs[0].Key)
	assert.Equal(t, 8, cs[1].ElixirCost)
}

func TestDecodeEnvelope_WrongShape(t *testing.T) {
	_, err := DecodeEnvelope(ShapeItems, []byte(`[]`))
	assert.Error(t, err)

	_, err = DecodeEnvelope(ShapeArray, []byte(`{"items":[]}`))
	assert.Error(t, err)

	_, err = DecodeEnvelope(Shape(9), []byte(`[]`))
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestDecodeEnvelope_MissingItems(t *testing.T) {
	raw, err := DecodeEnvelope(ShapeItems, []byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, Normalize(raw))
}

func TestNormalize_CostPrecedence(t *testing.T) {
	four, six := 4, 6
	zero, ten := 0, 10
	name := "Card"
	cs := Normalize([]RawCard{
		{Name: &name, ElixirCost: &four, Elixir: &six},
		{Name: &name, Elixir: &six},
		{Name: &name},
		{Name: &name, Elixir: &zero},
		{Name: &name, ElixirCost: &ten},
	})
	got := []int{}
	for _, c := range cs {
		got = append(got, c.ElixirCost)
	}
	assert.Equal(t, []int{4, 6, 3, 3, 3}, got)
}

func TestNormalize_DropsNameless(t *testing.T) {
	blank := "   "
	knight := " Knight "
	cs := Normalize([]RawCard{{}, {Name: &blank}, {Name: &knight}})
	require.Len(t, cs, 1)
	assert.Equal(t, "Knight", cs[0].Name)
}

func TestNormalize_SuppliedRoles(t *testing.T) {
	name := "Giant"
	cs := Normalize([]RawCard{{Name: &name, Role: []string{"wincon", "tank", "WINCON"}, Tags: []string{"ground"}}})
	require.Len(t, cs, 1)
	assert.Equal(t, []Role{RoleWincon}, cs[0].Roles)
	assert.Equal(t, []string{"ground", "tank"}, cs[0].Tags)
}

func TestDetectShape(t *testing.T) {
	s, err := DetectShape([]byte("  {\"items\":[]}"))
	require.NoError(t, err)
	assert.Equal(t, ShapeItems, s)

	s, err = DetectShape([]byte("\n[]"))
	require.NoError(t, err)
	assert.Equal(t, ShapeArray, s)

	_, err = DetectShape([]byte(`"nope"`))
	assert.ErrorIs(t, err, ErrUnknownShape)
	_, err = DetectShape(nil)
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestParseCatalogJSON_TagsCards(t *testing.T) {
	cs, err := ParseCatalogJSON([]byte(`[{"name":"Hog Rider","elixir":4},{"name":"Ice Spirit","elixir":1}]`))
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, []Role{RoleWincon}, cs[0].Roles)
	assert.Equal(t, []Role{RoleCycle}, cs[1].Roles)
}
