package tabfunc

import "math"

// Function is a real function of one variable defined on [LeftBorder, RightBorder].
//
// Value returns NaN for x outside the domain, and wherever the function has no
// value. Implementations never return an error for such points.
type Function interface {
	LeftBorder() float64
	RightBorder() float64
	Value(x float64) float64
}

// inDomain reports whether [left, right] lies within f's domain, allowing an
// overshoot of Epsilon on either side.
func inDomain(f Function, left, right float64) bool {
	return !(left+Epsilon < f.LeftBorder() || right-Epsilon > f.RightBorder())
}

// Shift moves a function by dx along the x axis and by dy along the y axis.
type Shift struct {
	f      Function
	dx, dy float64
}

// NewShift returns x ↦ f(x+dx)+dy.
func NewShift(f Function, dx, dy float64) *Shift {
	return &Shift{f: f, dx: dx, dy: dy}
}

func (s *Shift) LeftBorder() float64  { return s.f.LeftBorder() - s.dx }
func (s *Shift) RightBorder() float64 { return s.f.RightBorder() - s.dx }

func (s *Shift) Value(x float64) float64 {
	v := s.f.Value(x + s.dx)
	if math.IsNaN(v) {
		return math.NaN()
	}
	return v + s.dy
}

// Scale stretches a function along both axes.
type Scale struct {
	f      Function
	sx, sy float64
}

// NewScale returns x ↦ sy·f(sx·x). A zero sx makes a constant function on the
// whole real line.
func NewScale(f Function, sx, sy float64) *Scale {
	return &Scale{f: f, sx: sx, sy: sy}
}

func (s *Scale) LeftBorder() float64 {
	switch {
	case s.sx == 0:
		return math.Inf(-1)
	case s.sx > 0:
		return s.f.LeftBorder() / s.sx
	}
	return s.f.RightBorder() / s.sx
}

func (s *Scale) RightBorder() float64 {
	switch {
	case s.sx == 0:
		return math.Inf(1)
	case s.sx > 0:
		return s.f.RightBorder() / s.sx
	}
	return s.f.LeftBorder() / s.sx
}

func (s *Scale) Value(x float64) float64 {
	v := s.f.Value(s.sx * x)
	if math.IsNaN(v) {
		return math.NaN()
	}
	return s.sy * v
}

// Power raises a function to a constant power.
type Power struct {
	f Function
	p float64
}

// NewPower returns x ↦ f(x)^p.
func NewPower(f Function, p float64) *Power {
	return &Power{f: f, p: p}
}

func (pw *Power) LeftBorder() float64  { return pw.f.LeftBorder() }
func (pw *Power) RightBorder() float64 { return pw.f.RightBorder() }

func (pw *Power) Value(x float64) float64 {
	v := pw.f.Value(x)
	if math.IsNaN(v) {
		return math.NaN()
	}
	return math.Pow(v, pw.p)
}

// Sum adds two functions on the intersection of their domains.
type Sum struct {
	f, g Function
}

// NewSum returns x ↦ f(x)+g(x).
func NewSum(f, g Function) *Sum {
	return &Sum{f: f, g: g}
}

func (s *Sum) LeftBorder() float64  { return math.Max(s.f.LeftBorder(), s.g.LeftBorder()) }
func (s *Sum) RightBorder() float64 { return math.Min(s.f.RightBorder(), s.g.RightBorder()) }

func (s *Sum) Value(x float64) float64 {
	a, b := s.f.Value(x), s.g.Value(x)
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	return a + b
}

// Mult multiplies two functions on the intersection of their domains.
type Mult struct {
	f, g Function
}

// NewMult returns x ↦ f(x)·g(x).
func NewMult(f, g Function) *Mult {
	return &Mult{f: f, g: g}
}

func (m *Mult) LeftBorder() float64  { return math.Max(m.f.LeftBorder(), m.g.LeftBorder()) }
func (m *Mult) RightBorder() float64 { return math.Min(m.f.RightBorder(), m.g.RightBorder()) }

func (m *Mult) Value(x float64) float64 {
	a, b := m.f.Value(x), m.g.Value(x)
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	return a * b
}

// Composition applies outer to the result of inner. Its domain is the domain
// of inner; outer yields NaN where inner's range leaves outer's domain.
type Composition struct {
	outer, inner Function
}

// NewComposition returns x ↦ outer(inner(x)).
func NewComposition(outer, inner Function) *Composition {
	return &Composition{outer: outer, inner: inner}
}

func (c *Composition) LeftBorder() float64  { return c.inner.LeftBorder() }
func (c *Composition) RightBorder() float64 { return c.inner.RightBorder() }

func (c *Composition) Value(x float64) float64 {
	v := c.inner.Value(x)
	if math.IsNaN(v) {
		return math.NaN()
	}
	return c.outer.Value(v)
}
