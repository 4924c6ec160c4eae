// Package basic provides elementary functions implementing tabfunc.Function.
package basic

import (
	"math"

	"github.com/Maxime2/tabfunc"
)

var (
	_ tabfunc.Function = Exp{}
	_ tabfunc.Function = Log{}
	_ tabfunc.Function = Sin{}
	_ tabfunc.Function = Cos{}
)

// Exp is e^x on the whole real line.
type Exp struct{}

func (Exp) LeftBorder() float64  { return math.Inf(-1) }
func (Exp) RightBorder() float64 { return math.Inf(1) }

func (Exp) Value(x float64) float64 {
	return math.Exp(x)
}

// Log is the logarithm to a given base, defined for x > 0.
type Log struct {
	Base float64
}

// NaturalLog returns the logarithm to base e.
func NaturalLog() Log {
	return Log{Base: math.E}
}

func (Log) LeftBorder() float64  { return 0 }
func (Log) RightBorder() float64 { return math.Inf(1) }

func (l Log) Value(x float64) float64 {
	if x <= 0 || math.IsNaN(x) {
		return math.NaN()
	}
	if math.Abs(x-1) <= tabfunc.Epsilon {
		return 0
	}
	return math.Log(x) / math.Log(l.Base)
}

// Sin is the sine on the whole real line.
type Sin struct{}

func (Sin) LeftBorder() float64  { return math.Inf(-1) }
func (Sin) RightBorder() float64 { return math.Inf(1) }

func (Sin) Value(x float64) float64 {
	return math.Sin(x)
}

// Cos is the cosine on the whole real line.
type Cos struct{}

func (Cos) LeftBorder() float64  { return math.Inf(-1) }
func (Cos) RightBorder() float64 { return math.Inf(1) }

func (Cos) Value(x float64) float64 {
	return math.Cos(x)
}
