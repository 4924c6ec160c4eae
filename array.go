package tabfunc

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"
)

// ArrayTable is a TabulatedFunction backed by a contiguous buffer of points.
// Indexed access is O(1); inserting and deleting shift the tail.
type ArrayTable struct {
	p []Point // len(p) is the number of points, cap(p) the buffer capacity
}

var _ TabulatedFunction = (*ArrayTable)(nil)

// NewArrayTable creates count points spread evenly over [left, right], all
// with Y = 0.
func NewArrayTable(left, right float64, count int) (*ArrayTable, error) {
	if err := checkBounds(left, right, count); err != nil {
		return nil, err
	}
	t := &ArrayTable{p: make([]Point, count, count*2)}
	for i := range t.p {
		t.p[i].X = uniformX(left, right, count, i)
	}
	return t, nil
}

// NewArrayTableFromValues spreads len(values) points evenly over [left, right]
// and assigns them the given values in order.
func NewArrayTableFromValues(left, right float64, values []float64) (*ArrayTable, error) {
	if err := checkBounds(left, right, len(values)); err != nil {
		return nil, err
	}
	t := &ArrayTable{p: make([]Point, len(values), len(values)*2)}
	for i, y := range values {
		t.p[i] = Point{X: uniformX(left, right, len(values), i), Y: y}
	}
	return t, nil
}

// NewArrayTableFromPoints copies points, which must be ordered by X.
func NewArrayTableFromPoints(points []Point) (*ArrayTable, error) {
	if err := checkOrdered(points); err != nil {
		return nil, err
	}
	return newArrayTable(points), nil
}

func newArrayTable(points []Point) *ArrayTable {
	t := &ArrayTable{p: make([]Point, len(points), max(4, len(points)*2))}
	copy(t.p, points)
	return t
}

func (t *ArrayTable) Kind() Kind { return KindArray }

func (t *ArrayTable) LeftBorder() float64 {
	return t.p[0].X
}

func (t *ArrayTable) RightBorder() float64 {
	return t.p[len(t.p)-1].X
}

// search returns the position of the first point with X >= x.
func (t *ArrayTable) search(x float64) int {
	k, _ := slices.BinarySearchFunc(t.p, x, func(p Point, x float64) int {
		return cmp.Compare(p.X, x)
	})
	return k
}

// Value returns the stored Y for a sampled x, and interpolates linearly
// between the two bracketing points otherwise.
func (t *ArrayTable) Value(x float64) float64 {
	if math.IsNaN(x) || x < t.LeftBorder() || x > t.RightBorder() {
		return math.NaN()
	}
	k := t.search(x)
	if collides(t.p[k].X, x) {
		return t.p[k].Y
	}
	if k == 0 {
		return t.p[0].Y
	}
	if collides(t.p[k-1].X, x) {
		return t.p[k-1].Y
	}
	return interpolate(t.p[k-1], t.p[k], x)
}

func (t *ArrayTable) Len() int {
	return len(t.p)
}

func (t *ArrayTable) Point(i int) (Point, error) {
	if err := checkIndex(i, len(t.p)); err != nil {
		return Point{}, err
	}
	return t.p[i], nil
}

// SetPoint replaces point i. The new X must stay strictly between the X of
// its neighbours.
func (t *ArrayTable) SetPoint(i int, p Point) error {
	if err := t.checkMove(i, p.X); err != nil {
		return err
	}
	t.p[i] = p
	return nil
}

func (t *ArrayTable) PointX(i int) (float64, error) {
	if err := checkIndex(i, len(t.p)); err != nil {
		return 0, err
	}
	return t.p[i].X, nil
}

func (t *ArrayTable) SetPointX(i int, x float64) error {
	if err := t.checkMove(i, x); err != nil {
		return err
	}
	t.p[i].X = x
	return nil
}

func (t *ArrayTable) PointY(i int) (float64, error) {
	if err := checkIndex(i, len(t.p)); err != nil {
		return 0, err
	}
	return t.p[i].Y, nil
}

func (t *ArrayTable) SetPointY(i int, y float64) error {
	if err := checkIndex(i, len(t.p)); err != nil {
		return err
	}
	t.p[i].Y = y
	return nil
}

func (t *ArrayTable) checkMove(i int, x float64) error {
	n := len(t.p)
	if err := checkIndex(i, n); err != nil {
		return err
	}
	var prev, next Point
	if i > 0 {
		prev = t.p[i-1]
	}
	if i < n-1 {
		next = t.p[i+1]
	}
	return checkBetween(x, prev, i > 0, next, i < n-1)
}

// AddPoint inserts p at its place in X order. The buffer doubles when full.
func (t *ArrayTable) AddPoint(p Point) error {
	if err := checkX(p.X); err != nil {
		return err
	}
	n := len(t.p)
	k := t.search(p.X)
	if (k < n && collides(t.p[k].X, p.X)) || (k > 0 && collides(t.p[k-1].X, p.X)) {
		return fmt.Errorf("%w: a point at x=%v already exists", ErrInvalidArgument, p.X)
	}
	if n == cap(t.p) {
		grown := make([]Point, n, max(4, cap(t.p)*2))
		copy(grown, t.p)
		t.p = grown
		tracer().Debugf("array table grown to capacity %d", cap(t.p))
	}
	t.p = slices.Insert(t.p, k, p)
	return nil
}

// DeletePoint removes point i. A table never shrinks below two points.
func (t *ArrayTable) DeletePoint(i int) error {
	if err := checkIndex(i, len(t.p)); err != nil {
		return err
	}
	if len(t.p) <= 2 {
		return fmt.Errorf("%w: cannot delete from a table of %d points", ErrInvalidState, len(t.p))
	}
	t.p = slices.Delete(t.p, i, i+1)
	return nil
}

func (t *ArrayTable) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, p := range t.p {
			if !yield(p) {
				return
			}
		}
	}
}

func (t *ArrayTable) Clone() TabulatedFunction {
	return newArrayTable(t.p)
}

func (t *ArrayTable) Equal(other TabulatedFunction) bool {
	if o, ok := other.(*ArrayTable); ok && o != nil {
		return slices.EqualFunc(t.p, o.p, Point.Equal)
	}
	return Equal(t, other)
}

func (t *ArrayTable) Hash() uint64 {
	return hashPoints(len(t.p), t.Points())
}

func (t *ArrayTable) String() string {
	return formatPoints(t.Points())
}
