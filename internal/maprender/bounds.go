package maprender

// Bounds is a latitude/longitude bounding box grown by Extend.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`

	empty bool
}

// NewBounds returns an empty bounding box.
func NewBounds() *Bounds {
	return &Bounds{empty: true}
}

// Extend grows the box to include the given coordinate.
func (b *Bounds) Extend(lat, lng float64) {
	if b.empty {
		b.North, b.South, b.East, b.West = lat, lat, lng, lng
		b.empty = false
		return
	}
	if lat > b.North {
		b.North = lat
	}
	if lat < b.South {
		b.South = lat
	}
	if lng > b.East {
		b.East = lng
	}
	if lng < b.West {
		b.West = lng
	}
}

// IsEmpty reports whether any coordinate has been added.
func (b *Bounds) IsEmpty() bool {
	return b.empty
}

// Center returns the midpoint of the box.
func (b *Bounds) Center() (lat, lng float64) {
	return (b.North + b.South) / 2, (b.East + b.West) / 2
}
