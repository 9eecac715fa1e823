package lite3

import "fmt"

//============================================= Lite3 Errors


// Kind is the discriminant carried by every Error surfaced across the
// Lite3 boundary. Callers should switch on Kind rather than matching on
// the message text.
type Kind uint8

const (
	// InvalidArgument covers an uninitialized handle, a wrong root type
	// for the requested operation, or an unsupported runtime type
	// passed to Set.
	InvalidArgument Kind = iota
	// NoBufferSpace is returned when an operation would grow the arena
	// past 2^32-1 bytes.
	NoBufferSpace
	// KeyNotFound is reserved for callers; the core itself returns the
	// absent sentinel from reads instead of raising this.
	KeyNotFound
	// BadMessage marks corruption detected during descent or decode:
	// tree height exceeded, an out-of-range type tag, or a length field
	// pointing past the end of the buffer.
	BadMessage
	// OutOfBounds marks an offset that points outside the used region
	// of the buffer.
	OutOfBounds
)

// String renders the Kind for error messages and test failures.
func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case NoBufferSpace:
		return "no_buffer_space"
	case KeyNotFound:
		return "key_not_found"
	case BadMessage:
		return "bad_message"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// Error is the value-typed error surfaced across the Lite3 boundary. It
// carries a Kind discriminant and a short human message.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("lite3: %s: %s", e.Kind, e.Message)
}

// newErr builds an *Error, matching the teacher's practice of wrapping
// low-level failures into a typed value at exported-call boundaries.
func newErr(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// recoverAsBadMessage turns a panic (out-of-range slice access during
// descent or decode) into a *bad_message* error. In the read paths
// (btreeFind, readValue) the buffer is left untouched because the fault
// is detected before any write; in btreeInsert a panic can follow a
// split that has already been written.
func recoverAsBadMessage(err *error) {
	if r := recover(); r != nil {
		*err = newErr(BadMessage, "corruption detected: %v", r)
	}
}
