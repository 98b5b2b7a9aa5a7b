package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/youruser/crdeck/internal/cards"
)

const (
	tileW   = 215
	tileH   = 300
	gap     = 8
	margin  = 48
	qrSize  = 400
	pipSize = 18
)

var (
	background = color.NRGBA{R: 0x1e, G: 0x2a, B: 0x44, A: 0xff}
	elixirPink = color.NRGBA{R: 0xd8, G: 0x3b, B: 0xd2, A: 0xff}
	roleColors = map[cards.Role]color.NRGBA{
		cards.RoleWincon:   {R: 0xe0, G: 0x9f, B: 0x3e, A: 0xff},
		cards.RoleBuilding: {R: 0x8d, G: 0x8d, B: 0x8d, A: 0xff},
		cards.RoleSpell:    {R: 0x5b, G: 0x8d, B: 0xef, A: 0xff},
		cards.RoleAir:      {R: 0x6c, G: 0xd4, B: 0xff, A: 0xff},
		cards.RoleSplash:   {R: 0xe8, G: 0x5d, B: 0x5d, A: 0xff},
		cards.RoleCycle:    {R: 0x7b, G: 0xc9, B: 0x6f, A: 0xff},
	}
	unknownColor = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
)

// Tile is one deck slot. Icon may be nil, in which case a role-colored placeholder is drawn.
type Tile struct {
	Icon       image.Image
	ElixirCost int
	Roles      []cards.Role
}

// TileColor is the placeholder color for a card, keyed by its first role.
func TileColor(roles []cards.Role) color.NRGBA {
	for _, r := range cards.AllRoles {
		for _, have := range roles {
			if have == r {
				return roleColors[r]
			}
		}
	}
	return unknownColor
}

// ComposeDeckImage lays the tiles out in two rows of four with an elixir pip
// bar under each, and the QR code on the right when provided.
func ComposeDeckImage(tiles []Tile, qr image.Image) image.Image {
	const perRow = 4
	gridW := perRow*tileW + (perRow-1)*gap
	rowH := tileH + gap + pipSize + gap
	W := margin + gridW + margin
	if qr != nil {
		W += qrSize + margin
	}
	H := margin + 2*rowH + margin
	if H < qrSize+2*margin {
		H = qrSize + 2*margin
	}
	canvas := imaging.New(W, H, background)

	for i := 0; i < len(tiles) && i < 2*perRow; i++ {
		x := margin + (i%perRow)*(tileW+gap)
		y := margin + (i/perRow)*rowH

		var face image.Image
		if tiles[i].Icon != nil {
			face = imaging.Fit(tiles[i].Icon, tileW, tileH, imaging.Lanczos)
		} else {
			face = imaging.New(tileW, tileH, TileColor(tiles[i].Roles))
		}
		canvas = imaging.Paste(canvas, face, image.Pt(x, y))

		pip := imaging.New(pipSize, pipSize, elixirPink)
		for p := 0; p < tiles[i].ElixirCost && p < 9; p++ {
			canvas = imaging.Paste(canvas, pip, image.Pt(x+p*(pipSize+4), y+tileH+gap))
		}
	}

	if qr != nil {
		q := imaging.Resize(qr, qrSize, qrSize, imaging.NearestNeighbor)
		canvas = imaging.Paste(canvas, q, image.Pt(W-margin-qrSize, margin))
	}
	return canvas
}
