// Package inspect classifies declared config field types into the shapes
// the parser registry knows how to produce. Classification is a pure
// function of the reflect type: it never touches the environment.
package inspect

import (
	"encoding"
	"reflect"
)

type Shape int

const (
	ShapeUnknown Shape = iota
	ShapePrimitive
	ShapeEnum     // implements encoding.TextUnmarshaler
	ShapeMapping  // map, parsed from JSON text
	ShapeSet      // map[T]struct{}, parsed from a delimited list
	ShapeSequence // slice
	ShapeTuple    // fixed-size array
	ShapeStruct   // nested config candidate
)

func (s Shape) String() string {
	switch s {
	case ShapePrimitive:
		return "primitive"
	case ShapeEnum:
		return "enum"
	case ShapeMapping:
		return "mapping"
	case ShapeSet:
		return "set"
	case ShapeSequence:
		return "sequence"
	case ShapeTuple:
		return "tuple"
	case ShapeStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Info is the classification of one declared type.
type Info struct {
	// Type is the declared type with the nullable wrapper stripped.
	Type reflect.Type
	// Shape tells which producer family applies.
	Shape Shape
	// Kind identifies the primitive parser for ShapePrimitive.
	Kind KindEnum
	// Elem is the element type of a sequence, set or tuple.
	Elem reflect.Type
	// Nullable is set when a pointer wrapper was stripped.
	Nullable bool
}

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	emptyStructType     = reflect.TypeOf(struct{}{})
)

// Inspect classifies t. With ignoreNullable set, exactly one pointer level
// is stripped first, so "optional T" classifies as T.
func Inspect(t reflect.Type, ignoreNullable bool) Info {
	info := Info{Type: t}

	if ignoreNullable && t.Kind() == reflect.Pointer {
		t = t.Elem()
		info.Type = t
		info.Nullable = true
	}

	// Registered value types win over everything. time.Time implements
	// TextUnmarshaler and time.Duration is a named int64, so the exact
	// match has to come first.
	if k := fromExactType(t); k != 0 {
		info.Shape, info.Kind = ShapePrimitive, k
		return info
	}

	if t.Implements(textUnmarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		info.Shape = ShapeEnum
		return info
	}

	if k := fromPrimitiveKind(t); k != 0 {
		info.Shape, info.Kind = ShapePrimitive, k
		return info
	}

	switch t.Kind() {
	case reflect.Map:
		if t.Elem() == emptyStructType {
			info.Shape, info.Elem = ShapeSet, t.Key()
		} else {
			info.Shape = ShapeMapping
		}
	case reflect.Slice:
		info.Shape, info.Elem = ShapeSequence, t.Elem()
	case reflect.Array:
		info.Shape, info.Elem = ShapeTuple, t.Elem()
	case reflect.Struct:
		info.Shape = ShapeStruct
	}

	return info
}
