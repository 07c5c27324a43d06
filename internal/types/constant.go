package types

import (
	"math"
	"strconv"
)

// ConstUnion is one scalar literal value. Kind selects the live field.
type ConstUnion struct {
	Kind Basic
	I    int64
	U    uint64
	F    float64
	B    bool
	S    string
}

func ConstInt(v int64) ConstUnion     { return ConstUnion{Kind: Int, I: v} }
func ConstUint(v uint64) ConstUnion   { return ConstUnion{Kind: Uint, U: v} }
func ConstFloat(v float64) ConstUnion { return ConstUnion{Kind: Float, F: v} }
func ConstDouble(v float64) ConstUnion {
	return ConstUnion{Kind: Double, F: v}
}
func ConstBool(v bool) ConstUnion     { return ConstUnion{Kind: Bool, B: v} }
func ConstString(v string) ConstUnion { return ConstUnion{Kind: String, S: v} }

// Float64 reads the value as a float.
func (c ConstUnion) Float64() float64 {
	switch c.Kind {
	case Float, Double:
		return c.F
	case Int, Int64:
		return float64(c.I)
	case Uint, Uint64:
		return float64(c.U)
	case Bool:
		if c.B {
			return 1
		}
	}
	return 0
}

// Int64 reads the value as a signed integer, truncating floats.
func (c ConstUnion) Int64() int64 {
	switch c.Kind {
	case Int, Int64:
		return c.I
	case Uint, Uint64:
		return int64(c.U)
	case Float, Double:
		return int64(c.F)
	case Bool:
		if c.B {
			return 1
		}
	}
	return 0
}

// Uint64 reads the value as an unsigned integer.
func (c ConstUnion) Uint64() uint64 {
	switch c.Kind {
	case Uint, Uint64:
		return c.U
	case Int, Int64:
		return uint64(c.I)
	case Float, Double:
		return uint64(int64(c.F))
	case Bool:
		if c.B {
			return 1
		}
	}
	return 0
}

// Truth reads the value as a boolean.
func (c ConstUnion) Truth() bool {
	switch c.Kind {
	case Bool:
		return c.B
	case Float, Double:
		return c.F != 0
	case Int, Int64:
		return c.I != 0
	case Uint, Uint64:
		return c.U != 0
	}
	return false
}

// Convert returns the value converted to kind to with C conversion rules
// (int wraps to 32 bits, float narrows to float32 precision).
func (c ConstUnion) Convert(to Basic) ConstUnion {
	switch to {
	case Int:
		return ConstInt(int64(int32(c.Int64())))
	case Int64:
		return ConstUnion{Kind: Int64, I: c.Int64()}
	case Uint:
		return ConstUint(uint64(uint32(c.Uint64())))
	case Uint64:
		return ConstUnion{Kind: Uint64, U: c.Uint64()}
	case Float:
		return ConstFloat(float64(float32(c.Float64())))
	case Double:
		return ConstDouble(c.Float64())
	case Bool:
		return ConstBool(c.Truth())
	}
	return c
}

// Equal compares kind and value.
func (c ConstUnion) Equal(o ConstUnion) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case Int, Int64:
		return c.I == o.I
	case Uint, Uint64:
		return c.U == o.U
	case Float, Double:
		return c.F == o.F || (math.IsNaN(c.F) && math.IsNaN(o.F))
	case Bool:
		return c.B == o.B
	case String:
		return c.S == o.S
	}
	return true
}

func (c ConstUnion) String() string {
	switch c.Kind {
	case Int, Int64:
		return strconv.FormatInt(c.I, 10)
	case Uint, Uint64:
		return strconv.FormatUint(c.U, 10)
	case Float, Double:
		return strconv.FormatFloat(c.F, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(c.B)
	case String:
		return strconv.Quote(c.S)
	}
	return "?"
}
