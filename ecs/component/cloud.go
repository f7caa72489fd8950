package component

// Cloud is one drifting cloud. Speed is in pixels per tick and already carries
// the row's direction.
type Cloud struct {
	Row     int
	Col     int
	Speed   float64
	Scale   float64
	Reverse bool
}

var CloudComponent = NewComponent[Cloud]()
