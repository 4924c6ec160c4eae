package tabfunc

import (
	"bufio"
	"cmp"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
)

// Dump is a serializable representation of a TabulatedFunction.
type Dump struct {
	Kind   Kind    `json:"kind,omitempty"`
	Points []Point `json:"points"`
}

// DumpOf generates a serializable dump for a tabulated function.
func DumpOf(f TabulatedFunction) *Dump {
	d := &Dump{Kind: f.Kind(), Points: make([]Point, 0, f.Len())}
	for p := range f.Points() {
		d.Points = append(d.Points, p)
	}
	return d
}

// FromDump restores a tabulated function from a dump, using the default kind
// if the dump names none. The points are sorted by X first, as they may come
// from an untrusted source; duplicates are still rejected.
func FromDump(d *Dump) (TabulatedFunction, error) {
	kind := d.Kind
	if kind == "" {
		kind = Default()
	}
	return CreateKindFromPoints(kind, sortedPoints(d.Points))
}

func sortedPoints(points []Point) []Point {
	points = slices.Clone(points)
	slices.SortFunc(points, func(a, b Point) int {
		return cmp.Compare(a.X, b.X)
	})
	return points
}

// MarshalJSON implements the json.Marshaler interface for ArrayTable.
func (t *ArrayTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(DumpOf(t))
}

// UnmarshalJSON implements the json.Unmarshaler interface for ArrayTable.
func (t *ArrayTable) UnmarshalJSON(bytes []byte) error {
	var dump Dump
	if err := json.Unmarshal(bytes, &dump); err != nil {
		return err
	}
	points := sortedPoints(dump.Points)
	if err := checkOrdered(points); err != nil {
		return err
	}
	*t = *newArrayTable(points)
	return nil
}

// MarshalJSON implements the json.Marshaler interface for ListTable.
func (t *ListTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(DumpOf(t))
}

// UnmarshalJSON implements the json.Unmarshaler interface for ListTable.
func (t *ListTable) UnmarshalJSON(bytes []byte) error {
	var dump Dump
	if err := json.Unmarshal(bytes, &dump); err != nil {
		return err
	}
	points := sortedPoints(dump.Points)
	if err := checkOrdered(points); err != nil {
		return err
	}
	*t = *newListTable(points)
	return nil
}

// --- Text format ------------------------------------------------------------

// WriteText writes the number of points on the first line, followed by one
// line "x y" per point.
func WriteText(w io.Writer, f TabulatedFunction) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(f.Len()))
	bw.WriteByte('\n')
	for p := range f.Points() {
		bw.WriteString(formatFloat(p.X))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(p.Y))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadText reads the format written by WriteText and creates a tabulated
// function of the default kind. Tokens may be separated by any white space.
func ReadText(r io.Reader) (TabulatedFunction, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	token := func(what string) (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: missing %s", ErrMalformed, what)
	}
	tok, err := token("point count")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: point count %q", ErrMalformed, tok)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: point count %d", ErrMalformed, n)
	}
	var points []Point
	for i := range n {
		var c [2]float64
		for j := range c {
			if tok, err = token(fmt.Sprintf("coordinate %d of point %d", j, i)); err != nil {
				return nil, err
			}
			if c[j], err = strconv.ParseFloat(tok, 64); err != nil {
				return nil, fmt.Errorf("%w: coordinate %q", ErrMalformed, tok)
			}
		}
		points = append(points, Point{X: c[0], Y: c[1]})
	}
	return CreateFromPoints(points)
}

// --- Binary format ----------------------------------------------------------

// WriteBinary writes a big-endian int32 point count followed by the points as
// pairs of big-endian IEEE-754 float64 values (x, y).
func WriteBinary(w io.Writer, f TabulatedFunction) error {
	n := f.Len()
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: %d points do not fit the binary format", ErrInvalidArgument, n)
	}
	buf := make([]byte, 4, 4+16*n)
	binary.BigEndian.PutUint32(buf, uint32(int32(n)))
	for p := range f.Points() {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(p.X))
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(p.Y))
	}
	_, err := w.Write(buf)
	return err
}

// ReadBinary reads the format written by WriteBinary and creates a tabulated
// function of the default kind.
func ReadBinary(r io.Reader) (TabulatedFunction, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("%w: point count: %w", ErrMalformed, err)
	}
	n := int32(binary.BigEndian.Uint32(head[:]))
	if n < 2 {
		return nil, fmt.Errorf("%w: point count %d", ErrMalformed, n)
	}
	var points []Point
	var rec [16]byte
	for i := range int(n) {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("%w: point %d of %d: %w", ErrMalformed, i, n, err)
		}
		points = append(points, Point{
			X: math.Float64frombits(binary.BigEndian.Uint64(rec[:8])),
			Y: math.Float64frombits(binary.BigEndian.Uint64(rec[8:])),
		})
	}
	return CreateFromPoints(points)
}
