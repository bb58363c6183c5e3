// Package groundspeak holds the conventions of the geocaching.com platform:
// the base-31 GC/GL code scheme, the link targets used in reports and the
// log types that count as a find.
package groundspeak

import (
	"math"
	"strings"

	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
)

// Code calculation constants, see http://kryptografie.de/kryptografie/chiffre/gc-code.htm
const (
	// Alphabet omits I, L, O, S and U.
	Alphabet = "0123456789ABCDEFGHJKMNPQRTVWXYZ"
	Base     = int64(len(Alphabet))
	// IDOffset shifts numeric ids so that codes start in the 4-character range.
	IDOffset = int64(411120)
)

// Code prefixes.
const (
	CachePrefix = "GC"
	LogPrefix   = "GL"
)

// Encode converts a numeric id into its code and prepends prefix.
// id+IDOffset must not be negative.
func Encode(id int64, prefix string) (string, error) {
	if id > math.MaxInt64-IDOffset {
		return "", internalerrors.InvalidArgument("groundspeak.Encode", "id %d is above the encodable range", id)
	}
	value := id + IDOffset
	if value < 0 {
		return "", internalerrors.InvalidArgument("groundspeak.Encode", "id %d is below the encodable range", id)
	}

	var buf [16]byte
	pos := len(buf)
	for {
		pos--
		buf[pos] = Alphabet[value%Base]
		value /= Base
		if value == 0 {
			break
		}
	}

	return prefix + string(buf[pos:]), nil
}

// Decode converts a code back into its numeric id. prefix is removed when
// the code starts with it.
func Decode(code, prefix string) (int64, error) {
	value := strings.TrimPrefix(code, prefix)
	if value == "" {
		return 0, internalerrors.InvalidArgument("groundspeak.Decode", "empty code %q", code)
	}

	var result int64
	for i := 0; i < len(value); i++ {
		digit := strings.IndexByte(Alphabet, value[i])
		if digit < 0 {
			return 0, internalerrors.InvalidArgument("groundspeak.Decode", "character %q not in code alphabet", value[i])
		}
		if result > (math.MaxInt64-int64(digit))/Base {
			return 0, internalerrors.InvalidArgument("groundspeak.Decode", "code %q overflows", code)
		}
		result = result*Base + int64(digit)
	}

	return result - IDOffset, nil
}
