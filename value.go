package statspipe

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ValueType is an enumeration representing the underlying type of a metric
// value.
type ValueType int

const (
	// Null is the type of the zero-value of Value.
	Null ValueType = iota

	// Int is the type of values holding a signed integer.
	Int

	// Float is the type of values holding a floating point number.
	Float

	// String is the type of values holding a string, used by set members and
	// event texts.
	String
)

// Value is a tagged union carrying the value of a metric, which depending on
// the metric kind is either numeric (counters, gauges, timings...) or a
// string (set members, event texts).
type Value struct {
	typ ValueType
	int int64
	num float64
	str string
}

// ValueOf constructs a Value from v, supporting all numeric types, strings,
// booleans, and time.Duration (carried as milliseconds, the unit of statsd
// timings).
func ValueOf(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case bool:
		if x {
			return intValue(1)
		}
		return intValue(0)
	case int:
		return intValue(int64(x))
	case int8:
		return intValue(int64(x))
	case int16:
		return intValue(int64(x))
	case int32:
		return intValue(int64(x))
	case int64:
		return intValue(x)
	case uint:
		return intValue(int64(x))
	case uint8:
		return intValue(int64(x))
	case uint16:
		return intValue(int64(x))
	case uint32:
		return intValue(int64(x))
	case uint64:
		return intValue(int64(x))
	case float32:
		return floatValue(float64(x))
	case float64:
		return floatValue(x)
	case time.Duration:
		return floatValue(float64(x) / float64(time.Millisecond))
	case string:
		return stringValue(x)
	case Value:
		return x
	default:
		panic(fmt.Sprintf("statspipe.ValueOf: %T is not a supported metric value type", v))
	}
}

func intValue(i int64) Value { return Value{typ: Int, int: i} }

func floatValue(f float64) Value { return Value{typ: Float, num: f} }

func stringValue(s string) Value { return Value{typ: String, str: s} }

// Type returns the underlying type of the value.
func (v Value) Type() ValueType { return v.typ }

// Int returns the value as an int64, or zero for non-integer values.
func (v Value) Int() int64 { return v.int }

// Float returns the value as a float64, or zero for string values. Integer
// magnitudes beyond 2^53 lose exactness in the conversion; Int does not.
func (v Value) Float() float64 {
	if v.typ == Int {
		return float64(v.int)
	}
	return v.num
}

// Text returns the value as a string for string values, or the empty string
// otherwise.
func (v Value) Text() string { return v.str }

// String satisfies the fmt.Stringer interface, producing the value as it
// appears on the wire.
func (v Value) String() string {
	return string(v.appendTo(nil))
}

// appendTo appends the wire representation of the value to b.
//
// Integers keep their exact representation, floats use the shortest
// round-trippable form, which is also what the collectors parse back.
func (v Value) appendTo(b []byte) []byte {
	switch v.typ {
	case Int:
		return strconv.AppendInt(b, v.int, 10)
	case Float:
		return strconv.AppendFloat(b, normalizeFloat(v.num), 'g', -1, 64)
	case String:
		return appendSanitized(b, v.str)
	}
	return append(b, '0')
}

func normalizeFloat(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0.0
	case math.IsInf(f, +1):
		return +math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	default:
		return f
	}
}
