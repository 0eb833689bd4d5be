package geo

import (
	"math"
	"sort"

	"github.com/naniedobe1/PoleBrothers/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Distance returns the great-circle distance between a and b in kilometers.
func Distance(a, b Point) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Latitude*math.Pi/180)*
			math.Cos(b.Latitude*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// SortByDistance reorders poles ascending by distance to ref. The sort is
// stable, so records at equal distance keep their incoming order.
func SortByDistance(poles []models.Pole, ref Point) {
	sort.SliceStable(poles, func(i, j int) bool {
		di := Distance(ref, Point{poles[i].Latitude, poles[i].Longitude})
		dj := Distance(ref, Point{poles[j].Latitude, poles[j].Longitude})
		return di < dj
	})
}
