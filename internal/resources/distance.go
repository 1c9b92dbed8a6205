package resources

import "math"

const earthRadiusMiles = 3958.8

// distanceMiles computes the haversine distance between two coordinates,
// rounded to two decimal places.
func distanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dLon/2), 2)
	d := earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(d*100) / 100
}
