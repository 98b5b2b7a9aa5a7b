package cards

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Shape identifies the response envelope a source wraps its card list in.
type Shape int

const (
	// ShapeItems is an object with an "items" array (official API).
	ShapeItems Shape = iota
	// ShapeArray is a bare JSON array (RoyaleAPI data mirror).
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapeItems:
		return "items"
	case ShapeArray:
		return "array"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// RawCard is an upstream record before normalization. Every field is optional.
type RawCard struct {
	Name       *string  `json:"name"`
	ElixirCost *int     `json:"elixirCost"`
	Elixir     *int     `json:"elixir"`
	ID         int      `json:"id"`
	Key        string   `json:"key"`
	Role       []string `json:"role"`
	Roles      []string `json:"roles"`
	Tags       []string `json:"tags"`
	IconURLs   struct {
		Medium string `json:"medium"`
	} `json:"iconUrls"`
}

type itemsEnvelope struct {
	Items []RawCard `json:"items"`
}

// ErrUnknownShape is returned by DetectShape for bodies that are neither an object nor an array.
var ErrUnknownShape = errors.New("unrecognized card envelope")

// DecodeEnvelope unwraps body according to the envelope the source is known to use.
func DecodeEnvelope(shape Shape, body []byte) ([]RawCard, error) {
	switch shape {
	case ShapeItems:
		var env itemsEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode items envelope: %w", err)
		}
		return env.Items, nil
	case ShapeArray:
		var list []RawCard
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decode array envelope: %w", err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("decode envelope: %s: %w", shape, ErrUnknownShape)
}

// DetectShape inspects the first JSON token of body. Only meant for input of
// unknown origin such as local files; feed sources declare their shape.
func DetectShape(body []byte) (Shape, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return 0, ErrUnknownShape
	}
	switch trimmed[0] {
	case '{':
		return ShapeItems, nil
	case '[':
		return ShapeArray, nil
	}
	return 0, ErrUnknownShape
}

// Normalize converts raw records into cards with name and cost populated.
// Records without a name are dropped. Roles are kept only when the source
// supplied them; unknown role labels move into tags.
func Normalize(raw []RawCard) []Card {
	out := make([]Card, 0, len(raw))
	for _, r := range raw {
		if r.Name == nil {
			continue
		}
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			continue
		}
		cost := DefaultElixirCost
		switch {
		case r.ElixirCost != nil:
			cost = *r.ElixirCost
		case r.Elixir != nil:
			cost = *r.Elixir
		}
		if !validCost(cost) {
			cost = DefaultElixirCost
		}
		roles, extra := splitRoles(append(append([]string{}, r.Role...), r.Roles...))
		out = append(out, Card{
			Name:       name,
			ElixirCost: cost,
			Roles:      sortedRoles(roles),
			Tags:       sortedTags(append(extra, r.Tags...)),
			ID:         r.ID,
			Key:        r.Key,
			IconURL:    r.IconURLs.Medium,
		})
	}
	return out
}

// ParseCatalogJSON decodes a card list of either envelope, normalizes and tags it.
func ParseCatalogJSON(body []byte) ([]Card, error) {
	shape, err := DetectShape(body)
	if err != nil {
		return nil, err
	}
	raw, err := DecodeEnvelope(shape, body)
	if err != nil {
		return nil, err
	}
	return ApplyTags(Normalize(raw)), nil
}
