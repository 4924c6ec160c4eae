package tabfunc

import (
	"fmt"
	"iter"
	"math"
)

// ListTable is a TabulatedFunction backed by a circular doubly-linked list.
//
// Nodes live in an arena and refer to each other by index, so the list holds
// no pointer cycles. The node before head is the last point. Freed slots are
// reused by later insertions.
type ListTable struct {
	nodes []listNode
	free  []int
	head  int
	count int
}

type listNode struct {
	p          Point
	prev, next int
}

var _ TabulatedFunction = (*ListTable)(nil)

// NewListTable creates count points spread evenly over [left, right], all
// with Y = 0.
func NewListTable(left, right float64, count int) (*ListTable, error) {
	if err := checkBounds(left, right, count); err != nil {
		return nil, err
	}
	points := make([]Point, count)
	for i := range points {
		points[i].X = uniformX(left, right, count, i)
	}
	return newListTable(points), nil
}

// NewListTableFromValues spreads len(values) points evenly over [left, right]
// and assigns them the given values in order.
func NewListTableFromValues(left, right float64, values []float64) (*ListTable, error) {
	if err := checkBounds(left, right, len(values)); err != nil {
		return nil, err
	}
	points := make([]Point, len(values))
	for i, y := range values {
		points[i] = Point{X: uniformX(left, right, len(values), i), Y: y}
	}
	return newListTable(points), nil
}

// NewListTableFromPoints copies points, which must be ordered by X.
func NewListTableFromPoints(points []Point) (*ListTable, error) {
	if err := checkOrdered(points); err != nil {
		return nil, err
	}
	return newListTable(points), nil
}

func newListTable(points []Point) *ListTable {
	n := len(points)
	t := &ListTable{nodes: make([]listNode, n), count: n}
	for i, p := range points {
		t.nodes[i] = listNode{p: p, prev: (i + n - 1) % n, next: (i + 1) % n}
	}
	return t
}

func (t *ListTable) Kind() Kind { return KindList }

func (t *ListTable) tail() int {
	return t.nodes[t.head].prev
}

func (t *ListTable) LeftBorder() float64 {
	return t.nodes[t.head].p.X
}

func (t *ListTable) RightBorder() float64 {
	return t.nodes[t.tail()].p.X
}

// nodeAt walks from head to the i-th node.
func (t *ListTable) nodeAt(i int) (int, error) {
	if err := checkIndex(i, t.count); err != nil {
		return -1, err
	}
	k := t.head
	for range i {
		k = t.nodes[k].next
	}
	return k, nil
}

func (t *ListTable) Value(x float64) float64 {
	if math.IsNaN(x) || x < t.LeftBorder() || x > t.RightBorder() {
		return math.NaN()
	}
	k := t.head
	for i := 0; i < t.count; i++ {
		cur := t.nodes[k].p
		if collides(cur.X, x) {
			return cur.Y
		}
		next := t.nodes[t.nodes[k].next].p
		if i < t.count-1 && x < next.X && !collides(next.X, x) {
			return interpolate(cur, next, x)
		}
		k = t.nodes[k].next
	}
	return math.NaN()
}

func (t *ListTable) Len() int {
	return t.count
}

func (t *ListTable) Point(i int) (Point, error) {
	k, err := t.nodeAt(i)
	if err != nil {
		return Point{}, err
	}
	return t.nodes[k].p, nil
}

func (t *ListTable) SetPoint(i int, p Point) error {
	k, err := t.checkMove(i, p.X)
	if err != nil {
		return err
	}
	t.nodes[k].p = p
	return nil
}

func (t *ListTable) PointX(i int) (float64, error) {
	p, err := t.Point(i)
	return p.X, err
}

func (t *ListTable) SetPointX(i int, x float64) error {
	k, err := t.checkMove(i, x)
	if err != nil {
		return err
	}
	t.nodes[k].p.X = x
	return nil
}

func (t *ListTable) PointY(i int) (float64, error) {
	p, err := t.Point(i)
	return p.Y, err
}

func (t *ListTable) SetPointY(i int, y float64) error {
	k, err := t.nodeAt(i)
	if err != nil {
		return err
	}
	t.nodes[k].p.Y = y
	return nil
}

func (t *ListTable) checkMove(i int, x float64) (int, error) {
	k, err := t.nodeAt(i)
	if err != nil {
		return -1, err
	}
	prev := t.nodes[t.nodes[k].prev].p
	next := t.nodes[t.nodes[k].next].p
	return k, checkBetween(x, prev, i > 0, next, i < t.count-1)
}

// AddPoint inserts p at its place in X order.
func (t *ListTable) AddPoint(p Point) error {
	if err := checkX(p.X); err != nil {
		return err
	}
	pos, at := 0, t.head
	for pos < t.count && t.nodes[at].p.X < p.X {
		if collides(t.nodes[at].p.X, p.X) {
			break
		}
		at = t.nodes[at].next
		pos++
	}
	if pos < t.count && collides(t.nodes[at].p.X, p.X) {
		return fmt.Errorf("%w: a point at x=%v already exists", ErrInvalidArgument, p.X)
	}
	n := t.alloc(p)
	switch {
	case pos == 0: // new head
		t.linkBefore(n, t.head)
		t.head = n
	case pos == t.count: // new tail, between the old tail and head
		t.linkBefore(n, t.head)
	default:
		t.linkBefore(n, at)
	}
	t.count++
	return nil
}

// linkBefore splices the detached node n in front of node at.
func (t *ListTable) linkBefore(n, at int) {
	prev := t.nodes[at].prev
	t.nodes[n].prev = prev
	t.nodes[n].next = at
	t.nodes[prev].next = n
	t.nodes[at].prev = n
}

// DeletePoint removes point i. A table never shrinks below two points.
func (t *ListTable) DeletePoint(i int) error {
	k, err := t.nodeAt(i)
	if err != nil {
		return err
	}
	if t.count <= 2 {
		return fmt.Errorf("%w: cannot delete from a table of %d points", ErrInvalidState, t.count)
	}
	if k == t.head {
		t.head = t.nodes[k].next
	}
	prev, next := t.nodes[k].prev, t.nodes[k].next
	t.nodes[prev].next = next
	t.nodes[next].prev = prev
	t.release(k)
	t.count--
	return nil
}

func (t *ListTable) alloc(p Point) int {
	if n := len(t.free); n > 0 {
		k := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[k] = listNode{p: p}
		return k
	}
	t.nodes = append(t.nodes, listNode{p: p})
	return len(t.nodes) - 1
}

func (t *ListTable) release(k int) {
	t.nodes[k] = listNode{prev: -1, next: -1}
	t.free = append(t.free, k)
	tracer().Debugf("list table slot %d released, %d free", k, len(t.free))
}

func (t *ListTable) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		k := t.head
		for range t.count {
			if !yield(t.nodes[k].p) {
				return
			}
			k = t.nodes[k].next
		}
	}
}

func (t *ListTable) Clone() TabulatedFunction {
	points := make([]Point, 0, t.count)
	for p := range t.Points() {
		points = append(points, p)
	}
	return newListTable(points)
}

func (t *ListTable) Equal(other TabulatedFunction) bool {
	return Equal(t, other)
}

func (t *ListTable) Hash() uint64 {
	return hashPoints(t.count, t.Points())
}

func (t *ListTable) String() string {
	return formatPoints(t.Points())
}

// verify checks the circular linkage and the X order of the list.
func (t *ListTable) verify() error {
	if t.count < 2 {
		return fmt.Errorf("%w: list holds %d points", ErrInvalidState, t.count)
	}
	k := t.head
	for i := 0; i < t.count; i++ {
		next := t.nodes[k].next
		if t.nodes[next].prev != k {
			return fmt.Errorf("%w: broken back link at position %d", ErrInvalidState, i)
		}
		if i < t.count-1 && !(t.nodes[k].p.X < t.nodes[next].p.X) {
			return fmt.Errorf("%w: unordered at position %d", ErrInvalidState, i)
		}
		k = next
	}
	if k != t.head {
		return fmt.Errorf("%w: list does not close after %d nodes", ErrInvalidState, t.count)
	}
	return nil
}
