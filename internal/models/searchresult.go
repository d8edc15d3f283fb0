package models

// SearchResult represents a single place returned by a forward geocoding search.
// Results are ephemeral: they live in the in-memory search cache and are never
// persisted.
type SearchResult struct {
	Lat         float64           // Lat is the latitude of the place.
	Lon         float64           // Lon is the longitude of the place.
	DisplayName string            // DisplayName is the human-readable place label.
	Properties  map[string]string // Properties holds the raw address components (street, city, ...).
}

// Coordinate returns the result's position as a rounded Coordinate.
func (sr SearchResult) Coordinate() Coordinate {
	return Coordinate{Lat: sr.Lat, Lng: sr.Lon}.Round()
}
