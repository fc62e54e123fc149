package game

// EntityState is the base positional state shared by everything that moves
// on a map. The id equals the owning connection id.
type EntityState struct {
	ID   string
	Map  string
	X    float64
	Y    float64
	SpdX float64
	SpdY float64
}

// Integrate applies velocity over dt seconds. Positions are only ever
// changed here, on creation, or on teleport.
func (e *EntityState) Integrate(dt float64) {
	e.X += e.SpdX * dt
	e.Y += e.SpdY * dt
}
