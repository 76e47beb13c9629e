package component

import "github.com/jakecoffman/cp"

// Body is a kinematic point mass. Drag is a per-second decay factor in (0, 1]
// calibrated to 60Hz; MaxForce bounds steering thrust.
type Body struct {
	Pos      cp.Vector
	Vel      cp.Vector
	Drag     float64
	MaxSpeed float64
	MaxForce float64
}

// Collider is the circular hit area around Body.Pos.
type Collider struct {
	Radius float64
}

// Body defaults shared by anything that does not configure its own.
const (
	DefaultDrag     = 0.98
	DefaultMaxSpeed = 400
	DefaultMaxForce = 800
)

func NewBody(pos cp.Vector) *Body {
	return &Body{Pos: pos, Drag: DefaultDrag, MaxSpeed: DefaultMaxSpeed, MaxForce: DefaultMaxForce}
}

var BodyComponent = NewComponent[Body]()
var ColliderComponent = NewComponent[Collider]()
