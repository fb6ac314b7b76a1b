package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// AppendValue appends the text rendering of the field's value to dst
// and returns the extended slice, in the style of strconv's Append
// functions, so formatters can render fields without intermediate
// string allocations.
func (f Field) AppendValue(dst []byte) []byte {
	switch f.Type {
	case StringType, ErrorType:
		return append(dst, f.Str...)
	case IntType, Int64Type:
		return strconv.AppendInt(dst, f.Int64, 10)
	case Float64Type:
		return strconv.AppendFloat(dst, f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.AppendBool(dst, f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).AppendFormat(dst, time.RFC3339)
	case DurationType:
		return append(dst, time.Duration(f.Int64).String()...)
	case AnyType:
		return fmt.Appendf(dst, "%v", f.Any)
	default:
		return dst
	}
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	return string(f.AppendValue(nil))
}

// Constructors for the common field types.

// String creates a string field
func String(key, val string) Field {
	return Field{Key: key, Type: StringType, Str: val}
}

// Int creates an int field
func Int(key string, val int) Field {
	return Field{Key: key, Type: IntType, Int64: int64(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) Field {
	return Field{Key: key, Type: Int64Type, Int64: val}
}

// Float64 creates a float64 field
func Float64(key string, val float64) Field {
	return Field{Key: key, Type: Float64Type, Float64: val}
}

// Bool creates a bool field
func Bool(key string, val bool) Field {
	var i int64
	if val {
		i = 1
	}
	return Field{Key: key, Type: BoolType, Int64: i}
}

// Time creates a time field
func Time(key string, val time.Time) Field {
	return Field{Key: key, Type: TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Type: DurationType, Int64: int64(val)}
}

// Err creates an error field with the fixed key "error"
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Type: ErrorType, Str: ""}
	}
	return Field{Key: "error", Type: ErrorType, Str: err.Error()}
}

// Any creates a field holding an arbitrary value
func Any(key string, val interface{}) Field {
	return Field{Key: key, Type: AnyType, Any: val}
}
