/*
Package tabfunc implements tabulated functions: functions represented by a
finite, strictly ordered set of points with piecewise-linear interpolation
between them.

Two interchangeable containers implement TabulatedFunction. ArrayTable keeps
its points in a contiguous buffer, ListTable in a circular doubly-linked list.
Both are created through a small registry keyed by Kind.

Any Function, tabulated or not, may be wrapped by the combinators (Shift,
Scale, Power, Sum, Mult, Composition) and integrated with Integrate.

A point outside a function's domain has no value. This is signalled by NaN,
which propagates through interpolation and combinators; only Integrate turns
it into an error.
*/
package tabfunc

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// Epsilon is the tolerance for comparing coordinates: the gap between 1.0 and
// the next representable float64.
var Epsilon = math.Nextafter(1, 2) - 1

// tracer traces with key 'tabfunc'
func tracer() tracing.Trace {
	return tracing.Select("tabfunc")
}

// Error is the error type of package tabfunc.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrInvalidArgument is flagged for bad construction parameters, unordered or
// colliding points, and integration requests outside a function's domain.
const ErrInvalidArgument = Error("invalid argument")

// ErrIndexOutOfRange is flagged whenever a point index is not in [0, Len()).
const ErrIndexOutOfRange = Error("index out of range")

// ErrInvalidState is flagged when deleting a point would leave fewer than two.
const ErrInvalidState = Error("invalid state")

// ErrMalformed is flagged when serialized input cannot be decoded.
const ErrMalformed = Error("malformed input")
