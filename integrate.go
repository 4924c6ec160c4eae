package tabfunc

import (
	"fmt"
	"math"
)

// Integrate computes the integral of f over [left, right] by the composite
// trapezoidal rule. x advances by step; the last sub-step is shortened so that
// the final sample is taken exactly at right.
//
// [left, right] must lie within f's domain (up to Epsilon), and f must have a
// value at every sample. Otherwise ErrInvalidArgument is returned.
func Integrate(f Function, left, right, step float64) (float64, error) {
	if f == nil {
		return 0, fmt.Errorf("%w: no function to integrate", ErrInvalidArgument)
	}
	if !(step > 0) {
		return 0, fmt.Errorf("%w: step %v is not positive", ErrInvalidArgument, step)
	}
	if !(right > left) {
		return 0, fmt.Errorf("%w: empty interval [%v, %v]", ErrInvalidArgument, left, right)
	}
	if !inDomain(f, left, right) {
		return 0, fmt.Errorf("%w: [%v, %v] exceeds domain [%v, %v]", ErrInvalidArgument,
			left, right, f.LeftBorder(), f.RightBorder())
	}
	// borders may overshoot the domain by Epsilon; sample at the border then
	lb, rb := f.LeftBorder(), f.RightBorder()
	sample := func(x float64) float64 {
		return f.Value(math.Min(math.Max(x, lb), rb))
	}
	x := left
	prev := sample(x)
	if math.IsNaN(prev) {
		return 0, fmt.Errorf("%w: no value at x=%v", ErrInvalidArgument, x)
	}
	var sum float64
	var n int
	for x < right {
		next := math.Min(x+step, right)
		if next <= x {
			return 0, fmt.Errorf("%w: step %v does not advance beyond x=%v", ErrInvalidArgument, step, x)
		}
		v := sample(next)
		if math.IsNaN(v) {
			return 0, fmt.Errorf("%w: no value at x=%v", ErrInvalidArgument, next)
		}
		// trapezoid (next-x)·(f(x)+f(next))/2
		sum += (next - x) * (prev + v) * 0.5
		x, prev = next, v
		n++
	}
	tracer().Debugf("integrated [%v, %v] in %d steps of %v: %v", left, right, n, step, sum)
	return sum, nil
}

// Tabulate samples f at count equidistant points of [left, right] and builds
// a tabulated function of the default kind from the samples.
func Tabulate(f Function, left, right float64, count int) (TabulatedFunction, error) {
	return tabulate(defaultFactory(), f, left, right, count)
}

// TabulateKind is like Tabulate, building a tabulated function of the given kind.
func TabulateKind(kind Kind, f Function, left, right float64, count int) (TabulatedFunction, error) {
	factory, err := FactoryFor(kind)
	if err != nil {
		return nil, err
	}
	return tabulate(factory, f, left, right, count)
}

func tabulate(factory Factory, f Function, left, right float64, count int) (TabulatedFunction, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: no function to tabulate", ErrInvalidArgument)
	}
	if err := checkBounds(left, right, count); err != nil {
		return nil, err
	}
	if !inDomain(f, left, right) {
		return nil, fmt.Errorf("%w: [%v, %v] exceeds domain [%v, %v]", ErrInvalidArgument,
			left, right, f.LeftBorder(), f.RightBorder())
	}
	lb, rb := f.LeftBorder(), f.RightBorder()
	values := make([]float64, count)
	for i := range values {
		x := uniformX(left, right, count, i)
		values[i] = f.Value(math.Min(math.Max(x, lb), rb))
	}
	return factory.FromValues(left, right, values)
}
