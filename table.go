package tabfunc

import (
	"fmt"
	"iter"
	"math"
	"strings"
)

// TabulatedFunction is a Function given by at least two points with strictly
// increasing X. Between points it interpolates linearly.
//
// Every mutating method validates its arguments before touching the receiver;
// on error the function is left unchanged.
type TabulatedFunction interface {
	Function
	Kind() Kind
	Len() int
	Point(i int) (Point, error)
	SetPoint(i int, p Point) error
	PointX(i int) (float64, error)
	SetPointX(i int, x float64) error
	PointY(i int) (float64, error)
	SetPointY(i int, y float64) error
	AddPoint(p Point) error
	DeletePoint(i int) error
	// Points yields copies of the points in ascending X. The sequence may be
	// ranged over any number of times; it must not be used across mutations.
	Points() iter.Seq[Point]
	Clone() TabulatedFunction
	Equal(other TabulatedFunction) bool
	Hash() uint64
	String() string
}

// Equal reports whether two tabulated functions have the same number of points
// and pairwise Equal points, regardless of their kinds.
//
// A typed nil pointer counts as nil.
func Equal(a, b TabulatedFunction) bool {
	an, bn := isNil(a), isNil(b)
	if an || bn {
		return an && bn
	}
	if a.Len() != b.Len() {
		return false
	}
	next, stop := iter.Pull(b.Points())
	defer stop()
	for p := range a.Points() {
		q, ok := next()
		if !ok || !p.Equal(q) {
			return false
		}
	}
	return true
}

func isNil(f TabulatedFunction) bool {
	switch t := f.(type) {
	case nil:
		return true
	case *ArrayTable:
		return t == nil
	case *ListTable:
		return t == nil
	}
	return false
}

func hashPoints(n int, points iter.Seq[Point]) uint64 {
	h := uint64(n)
	for p := range points {
		h ^= p.Hash()
	}
	return h
}

func formatPoints(points iter.Seq[Point]) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for p := range points {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(p.String())
	}
	b.WriteByte('}')
	return b.String()
}

// --- Validation -------------------------------------------------------------

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

func checkBounds(left, right float64, count int) error {
	if count < 2 {
		return fmt.Errorf("%w: %d points, need at least 2", ErrInvalidArgument, count)
	}
	if err := checkX(left); err != nil {
		return err
	}
	if err := checkX(right); err != nil {
		return err
	}
	if !(right > left) {
		return fmt.Errorf("%w: right border %v not greater than left border %v",
			ErrInvalidArgument, right, left)
	}
	// large borders may round neighbouring abscissas onto the same float
	prev := left
	for i := 1; i < count; i++ {
		x := uniformX(left, right, count, i)
		if x-Epsilon <= prev {
			return fmt.Errorf("%w: %d points do not fit into [%v, %v]",
				ErrInvalidArgument, count, left, right)
		}
		prev = x
	}
	return nil
}

func checkX(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: x=%v is not finite", ErrInvalidArgument, x)
	}
	return nil
}

// checkOrdered verifies that there are at least 2 points, with finite X
// increasing by more than Epsilon from one point to the next.
func checkOrdered(points []Point) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: %d points, need at least 2", ErrInvalidArgument, len(points))
	}
	for i := range points {
		if err := checkX(points[i].X); err != nil {
			return err
		}
		if i > 0 && points[i].X-Epsilon <= points[i-1].X {
			return fmt.Errorf("%w: point %d at x=%v does not follow x=%v",
				ErrInvalidArgument, i, points[i].X, points[i-1].X)
		}
	}
	return nil
}

// checkBetween verifies that x may replace the X of a point lying between prev
// and next. hasPrev/hasNext are false at the borders.
func checkBetween(x float64, prev Point, hasPrev bool, next Point, hasNext bool) error {
	if err := checkX(x); err != nil {
		return err
	}
	if hasPrev && x-Epsilon <= prev.X {
		return fmt.Errorf("%w: x=%v not right of neighbour x=%v", ErrInvalidArgument, x, prev.X)
	}
	if hasNext && x+Epsilon >= next.X {
		return fmt.Errorf("%w: x=%v not left of neighbour x=%v", ErrInvalidArgument, x, next.X)
	}
	return nil
}

func collides(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// uniformX returns the i-th of count equidistant abscissas in [left, right].
// The last one is right itself.
func uniformX(left, right float64, count, i int) float64 {
	if i == count-1 {
		return right
	}
	return left + float64(i)*(right-left)/float64(count-1)
}

// interpolate returns the linear interpolation between p and q at x, or NaN if
// either end has no value.
func interpolate(p, q Point, x float64) float64 {
	if math.IsNaN(p.Y) || math.IsNaN(q.Y) {
		return math.NaN()
	}
	return p.Y + (q.Y-p.Y)*(x-p.X)/(q.X-p.X)
}
