package basic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Maxime2/tabfunc"
)

func TestLog(t *testing.T) {
	l := Log{Base: 2}
	assert.Equal(t, 0.0, l.LeftBorder())
	assert.True(t, math.IsInf(l.RightBorder(), 1))
	assert.InDelta(t, 3, l.Value(8), 1e-15)
	assert.Equal(t, 0.0, l.Value(1))
	assert.Equal(t, 0.0, l.Value(1+tabfunc.Epsilon))
	assert.True(t, math.IsNaN(l.Value(0)))
	assert.True(t, math.IsNaN(l.Value(-1)))
	assert.InDelta(t, 1, NaturalLog().Value(math.E), 1e-15)
}

func TestTrigonometry(t *testing.T) {
	assert.InDelta(t, 1, Sin{}.Value(math.Pi/2), 1e-15)
	assert.InDelta(t, -1, Cos{}.Value(math.Pi), 1e-15)
	assert.True(t, math.IsInf(Sin{}.LeftBorder(), -1))
	assert.True(t, math.IsInf(Cos{}.RightBorder(), 1))
}

func TestExp(t *testing.T) {
	assert.Equal(t, 1.0, Exp{}.Value(0))
	assert.InDelta(t, math.E, Exp{}.Value(1), 1e-15)
}
