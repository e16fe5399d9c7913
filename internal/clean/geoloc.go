package clean

import (
	"regexp"
	"strconv"

	"github.com/twpayne/go-geom"
)

var (
	// "POINT (-82.40426 40.06021)" — WKT form, lon first.
	geoPointRe = regexp.MustCompile(`(?i)^POINT\s*\(\s*(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)\s*\)$`)
	// "(40.06021, -82.40426)" — legacy form, lat first.
	geoPairRe = regexp.MustCompile(`^\(\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)$`)
)

// parseGeoLocation parses the raw GeoLocation column into a WGS84 point.
// Both portal formats are handled; anything else returns nil (the column is
// optional and the row survives without coordinates).
func parseGeoLocation(s string) *geom.Point {
	var lon, lat float64

	if m := geoPointRe.FindStringSubmatch(s); m != nil {
		lon, _ = strconv.ParseFloat(m[1], 64)
		lat, _ = strconv.ParseFloat(m[2], 64)
	} else if m := geoPairRe.FindStringSubmatch(s); m != nil {
		lat, _ = strconv.ParseFloat(m[1], 64)
		lon, _ = strconv.ParseFloat(m[2], 64)
	} else {
		return nil
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil
	}

	return geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(4326)
}
