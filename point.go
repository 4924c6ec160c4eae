package tabfunc

import (
	"encoding/json"
	"math"
	"math/bits"
	"strconv"
)

// Point is a single sample (X, Y) of a tabulated function. A NaN Y marks a
// point without a value and is encoded as a JSON null.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Equal reports whether both coordinates differ by less than Epsilon.
func (p Point) Equal(q Point) bool {
	return math.Abs(p.X-q.X) < Epsilon && math.Abs(p.Y-q.Y) < Epsilon
}

// Hash combines the bit patterns of X and Y. Points that are Equal but differ
// below Epsilon may hash differently.
func (p Point) Hash() uint64 {
	return math.Float64bits(p.X) ^ bits.RotateLeft64(math.Float64bits(p.Y), 32)
}

func (p Point) String() string {
	return "(" + formatFloat(p.X) + "; " + formatFloat(p.Y) + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type pointJSON struct {
	X float64  `json:"x"`
	Y *float64 `json:"y"`
}

func (p Point) MarshalJSON() ([]byte, error) {
	v := pointJSON{X: p.X}
	if !math.IsNaN(p.Y) {
		v.Y = &p.Y
	}
	return json.Marshal(v)
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var v pointJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.X, p.Y = v.X, math.NaN()
	if v.Y != nil {
		p.Y = *v.Y
	}
	return nil
}
