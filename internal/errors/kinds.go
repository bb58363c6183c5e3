package errors

import (
	stderrors "errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrStructural reports input that is not well-formed XML or lacks the
	// gpx root element. The whole parse is unusable.
	ErrStructural = stderrors.New("structural error")

	// ErrInvalidArgument reports a value a function cannot accept, such as a
	// negative id for the code codec.
	ErrInvalidArgument = stderrors.New("invalid argument")

	// ErrDuplicateKey reports a second report section under an existing anchor.
	ErrDuplicateKey = stderrors.New("duplicate key")
)

// Error carries an error kind together with the failing operation.
type Error struct {
	Kind error  // one of the Err* kinds above
	Op   string // operation that failed, e.g. "gpx.Parse"
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Structural builds an ErrStructural error.
func Structural(op string, cause error, format string, args ...interface{}) error {
	return &Error{Kind: ErrStructural, Op: op, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// InvalidArgument builds an ErrInvalidArgument error.
func InvalidArgument(op, format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidArgument, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// DuplicateKey builds an ErrDuplicateKey error for key.
func DuplicateKey(op, key string) error {
	return &Error{Kind: ErrDuplicateKey, Op: op, Msg: fmt.Sprintf("%q already registered", key)}
}
