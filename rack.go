package tabletop

import "github.com/hajimehoshi/ebiten/v2"

// Rack geometry.
var (
	RackSize   = Vec2{650, 170}
	RackOffset = 250.0
)

// Rack is a player's hand: a fanned row of cards centred on the rack.
type Rack struct {
	Holder
}

// NewRack creates an empty rack. img may be nil.
func NewRack(img *ebiten.Image) *Rack {
	return &Rack{Holder: newHolder("rack", RackSize.X, RackSize.Y, RackOffset, CardSize.X, img, ColorRack)}
}

// Kind implements Object.
func (r *Rack) Kind() Kind { return KindRack }

// Clone returns an empty rack with the same geometry.
func (r *Rack) Clone() Object {
	return &Rack{Holder: r.cloneHolder("rack")}
}
