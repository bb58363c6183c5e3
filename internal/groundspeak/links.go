package groundspeak

import "fmt"

// CoordInfoURL returns the short link for a GC or GL code.
func CoordInfoURL(code string) string {
	return "https://coord.info/" + code
}

// LogURL returns the coord.info link of the log with the given numeric id.
func LogURL(logID int64) (string, error) {
	code, err := Encode(logID, LogPrefix)
	if err != nil {
		return "", err
	}
	return CoordInfoURL(code), nil
}

// UserURL returns the profile page of a geocaching.com user id.
func UserURL(userID string) string {
	return "https://www.geocaching.com/p/default.aspx?id=" + userID
}

// GoogleMapsURL returns a map search link for decimal coordinates given as
// period-decimal strings.
// See https://stackoverflow.com/questions/1801732/how-do-i-link-to-google-maps-with-a-particular-longitude-and-latitude
func GoogleMapsURL(lat, lon string) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%s,%s", lat, lon)
}

// Log types that count as a find.
const (
	LogTypeFoundIt  = "Found it"
	LogTypeWebcam   = "Webcam Photo Taken"
	LogTypeAttended = "Attended"
)

// IsFoundLogType reports whether a log of this type records a find.
func IsFoundLogType(logType string) bool {
	switch logType {
	case LogTypeFoundIt, LogTypeWebcam, LogTypeAttended:
		return true
	default:
		return false
	}
}
