package geocache

import (
	"fmt"
	"math"
	"strconv"
)

// Location is a position in signed decimal degrees. All string forms are
// derived from Lat and Lon.
type Location struct {
	Lat float64
	Lon float64
}

// LatString returns the latitude as a period-decimal string for URLs.
func (l Location) LatString() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64)
}

// LonString returns the longitude as a period-decimal string for URLs.
func (l Location) LonString() string {
	return strconv.FormatFloat(l.Lon, 'f', -1, 64)
}

// String formats the location in degrees and decimal minutes,
// e.g. "N 52° 31.123 E 013° 24.456".
func (l Location) String() string {
	latChar, latDeg, latMin, latFrac := dmParts(l.Lat, 'N', 'S')
	lonChar, lonDeg, lonMin, lonFrac := dmParts(l.Lon, 'E', 'W')

	return fmt.Sprintf("%c %02d° %02d.%03d %c %03d° %02d.%03d",
		latChar, latDeg, latMin, latFrac,
		lonChar, lonDeg, lonMin, lonFrac)
}

func dmParts(value float64, positive, negative rune) (rune, int, int, int) {
	hemisphere := positive
	if value < 0 {
		hemisphere = negative
	}

	abs := math.Abs(value)
	degrees := math.Trunc(abs)
	minutes := (abs - degrees) * 60.0
	wholeMinutes := math.Trunc(minutes)
	fraction := math.Round((minutes - wholeMinutes) * 1000.0)

	// 59.9996 rounds up to a full minute
	if fraction >= 1000 {
		fraction -= 1000
		wholeMinutes++
	}
	if wholeMinutes >= 60 {
		wholeMinutes -= 60
		degrees++
	}

	return hemisphere, int(degrees), int(wholeMinutes), int(fraction)
}
