package tabfunc

import (
	"fmt"
	"sync"
)

// Kind names an implementation of TabulatedFunction.
type Kind string

const (
	KindArray Kind = "array"
	KindList  Kind = "list"
)

// Factory creates tabulated functions of one kind.
type Factory interface {
	FromCount(left, right float64, count int) (TabulatedFunction, error)
	FromValues(left, right float64, values []float64) (TabulatedFunction, error)
	FromPoints(points []Point) (TabulatedFunction, error)
}

type arrayFactory struct{}

func (arrayFactory) FromCount(left, right float64, count int) (TabulatedFunction, error) {
	return wrap[*ArrayTable](NewArrayTable(left, right, count))
}

func (arrayFactory) FromValues(left, right float64, values []float64) (TabulatedFunction, error) {
	return wrap[*ArrayTable](NewArrayTableFromValues(left, right, values))
}

func (arrayFactory) FromPoints(points []Point) (TabulatedFunction, error) {
	return wrap[*ArrayTable](NewArrayTableFromPoints(points))
}

type listFactory struct{}

func (listFactory) FromCount(left, right float64, count int) (TabulatedFunction, error) {
	return wrap[*ListTable](NewListTable(left, right, count))
}

func (listFactory) FromValues(left, right float64, values []float64) (TabulatedFunction, error) {
	return wrap[*ListTable](NewListTableFromValues(left, right, values))
}

func (listFactory) FromPoints(points []Point) (TabulatedFunction, error) {
	return wrap[*ListTable](NewListTableFromPoints(points))
}

// wrap keeps a typed nil pointer out of the interface on error.
func wrap[T TabulatedFunction](t T, err error) (TabulatedFunction, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}

var factories = map[Kind]Factory{
	KindArray: arrayFactory{},
	KindList:  listFactory{},
}

var registry = struct {
	sync.RWMutex
	kind Kind
}{kind: KindArray}

// Kinds lists the registered kinds.
func Kinds() []Kind {
	return []Kind{KindArray, KindList}
}

// ParseKind maps a kind name to a registered Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if _, ok := factories[k]; !ok {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, name)
	}
	return k, nil
}

// FactoryFor returns the factory registered for kind.
func FactoryFor(kind Kind) (Factory, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, kind)
	}
	return f, nil
}

// SetDefault selects the kind used by Create, CreateFromValues,
// CreateFromPoints, Tabulate, ReadText and ReadBinary.
func SetDefault(kind Kind) error {
	if _, err := FactoryFor(kind); err != nil {
		return err
	}
	registry.Lock()
	defer registry.Unlock()
	tracer().Debugf("default tabulated function kind %s -> %s", registry.kind, kind)
	registry.kind = kind
	return nil
}

// Default returns the currently selected default kind.
func Default() Kind {
	registry.RLock()
	defer registry.RUnlock()
	return registry.kind
}

func defaultFactory() Factory {
	return factories[Default()]
}

func Create(left, right float64, count int) (TabulatedFunction, error) {
	return defaultFactory().FromCount(left, right, count)
}

func CreateFromValues(left, right float64, values []float64) (TabulatedFunction, error) {
	return defaultFactory().FromValues(left, right, values)
}

func CreateFromPoints(points []Point) (TabulatedFunction, error) {
	return defaultFactory().FromPoints(points)
}

func CreateKind(kind Kind, left, right float64, count int) (TabulatedFunction, error) {
	f, err := FactoryFor(kind)
	if err != nil {
		return nil, err
	}
	return f.FromCount(left, right, count)
}

func CreateKindFromValues(kind Kind, left, right float64, values []float64) (TabulatedFunction, error) {
	f, err := FactoryFor(kind)
	if err != nil {
		return nil, err
	}
	return f.FromValues(left, right, values)
}

func CreateKindFromPoints(kind Kind, points []Point) (TabulatedFunction, error) {
	f, err := FactoryFor(kind)
	if err != nil {
		return nil, err
	}
	return f.FromPoints(points)
}
