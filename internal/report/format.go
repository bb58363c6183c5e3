package report

import (
	"fmt"
	"html"
	"strconv"
	"time"
)

// DateLayout is the day-first date form used in every table cell.
const DateLayout = "02.01.2006"

// HTML is markup that is written to the document unchanged. Any other string
// value is escaped.
type HTML string

// Text escapes s for use inside element content or attribute values.
func Text(s string) HTML {
	return HTML(html.EscapeString(s))
}

// FormatValue renders one cell value.
//
// Floats use the shortest decimal form without exponent or trailing zeros,
// dates use DateLayout in their own location. HTML passes through, every
// other value is converted with its natural text form and escaped.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case HTML:
		return string(val)
	case string:
		return html.EscapeString(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format(DateLayout)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case fmt.Stringer:
		return html.EscapeString(val.String())
	default:
		return html.EscapeString(fmt.Sprint(val))
	}
}
