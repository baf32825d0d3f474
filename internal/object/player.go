package object

// PlayerRadius is the size of the player's circle.
const PlayerRadius = 15.0

// NewPlayer creates the static player circle at (x, y).
func NewPlayer(x, y float64) Shape {
	return Shape{
		Kind:   KindPlayer,
		X:      x,
		Y:      y,
		Radius: PlayerRadius,
		Color:  White,
		Alpha:  1,
	}
}
