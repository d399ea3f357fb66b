// Package systemgen assembles full star systems from fitted property
// models and a zone mixture model.
package systemgen

// Star is the central body of a generated system. Mass is in solar masses,
// radius in AU, color as RGB 0-255.
type Star struct {
	Mass   float64    `json:"mass"`
	Radius float64    `json:"radius"`
	Color  [3]float64 `json:"color"`
}

// Planet is one generated body. Distances are in AU, mass in Earth masses,
// radius in Earth radii, temperature in Kelvin, density in g/cm³ and
// orbital velocity in AU per year.
type Planet struct {
	OrbitalDistance float64    `json:"orbital_distance"`
	Angle           float64    `json:"angle"`
	X               float64    `json:"x"`
	Y               float64    `json:"y"`
	OrbitalVelocity float64    `json:"orbital_velocity"`
	Mass            float64    `json:"mass"`
	Radius          float64    `json:"radius"`
	Temperature     float64    `json:"temperature"`
	Density         float64    `json:"density"`
	Color           [3]float64 `json:"color"`
}

// System is a star plus its planets, ordered by increasing orbital
// distance.
type System struct {
	Star    Star     `json:"star"`
	Planets []Planet `json:"planets"`
}
