package types

import "fmt"

// LocationKey identifies a forecast location as a (longitude, latitude) pair
type LocationKey struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func NewLocationKey(longitude, latitude float64) LocationKey {
	return LocationKey{
		Longitude: longitude,
		Latitude:  latitude,
	}
}

func (k LocationKey) String() string {
	return fmt.Sprintf("(%g,%g)", k.Longitude, k.Latitude)
}
