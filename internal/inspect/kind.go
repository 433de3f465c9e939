package inspect

import (
	"reflect"
	"time"

	"github.com/vadimtitov/envarify/types"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDate
	KindDuration
	KindSecret
	KindURL
	KindHTTPURL
	KindHTTPSURL
	KindAnyHTTPURL

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

// FromReflectType maps a reflect type to its primitive kind, or 0 when the
// type is not a primitive.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	if k := fromExactType(rtype); k != 0 {
		return k
	}

	return fromPrimitiveKind(rtype)
}

// fromExactType recognizes the registered value types. These must win over
// the reflect.Kind fallback: time.Duration is a named int64 and the URL
// family are named strings.
func fromExactType(rtype reflect.Type) KindEnum {
	switch rtype {
	case reflect.TypeOf(time.Time{}):
		return KindTime
	case reflect.TypeOf(types.Date{}):
		return KindDate
	case reflect.TypeOf(time.Duration(0)):
		return KindDuration
	case reflect.TypeOf(types.SecretString{}):
		return KindSecret
	case reflect.TypeOf(types.URL("")):
		return KindURL
	case reflect.TypeOf(types.HTTPURL("")):
		return KindHTTPURL
	case reflect.TypeOf(types.HTTPSURL("")):
		return KindHTTPSURL
	case reflect.TypeOf(types.AnyHTTPURL("")):
		return KindAnyHTTPURL
	}

	return 0
}

// fromPrimitiveKind classifies by the underlying kind, so named primitive
// types (e.g. "type Port int") parse like their base type.
func fromPrimitiveKind(rtype reflect.Type) KindEnum {
	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	}
}
