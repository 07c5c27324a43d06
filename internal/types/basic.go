package types

import "fmt"

// Basic is the base kind of a type descriptor.
type Basic uint8

const (
	Void Basic = iota
	Float
	Double
	Int
	Uint
	Int64
	Uint64
	Bool
	String
	SamplerKind // texture, image, pure sampler and combined sampler objects
	Struct
	Block // cbuffer, tbuffer, structured buffers
)

var basicNames = [...]string{
	Void:        "void",
	Float:       "float",
	Double:      "double",
	Int:         "int",
	Uint:        "uint",
	Int64:       "int64_t",
	Uint64:      "uint64_t",
	Bool:        "bool",
	String:      "string",
	SamplerKind: "sampler",
	Struct:      "struct",
	Block:       "block",
}

func (b Basic) String() string {
	if int(b) < len(basicNames) {
		return basicNames[b]
	}
	return fmt.Sprintf("Basic(%d)", b)
}

// IsFloat reports float or double.
func (b Basic) IsFloat() bool { return b == Float || b == Double }

// IsInteger reports any signed or unsigned integer kind.
func (b Basic) IsInteger() bool { return b == Int || b == Uint || b == Int64 || b == Uint64 }

// IsUnsigned reports uint or uint64.
func (b Basic) IsUnsigned() bool { return b == Uint || b == Uint64 }

// Is64 reports the 64-bit integer kinds and double.
func (b Basic) Is64() bool { return b == Int64 || b == Uint64 || b == Double }

// IsNumeric reports kinds that take part in arithmetic (bool included, as in HLSL).
func (b Basic) IsNumeric() bool { return b.IsFloat() || b.IsInteger() || b == Bool }

// Rank is the conversion domain of a scalar kind:
// bool < int/uint < int64/uint64 < float < double.
// Non-numeric kinds return -1.
func (b Basic) Rank() int {
	switch b {
	case Bool:
		return 0
	case Int, Uint:
		return 1
	case Int64, Uint64:
		return 2
	case Float:
		return 3
	case Double:
		return 4
	default:
		return -1
	}
}

// Size returns the byte size of one scalar component (0 for non-scalars).
func (b Basic) Size() int {
	switch b {
	case Float, Int, Uint, Bool:
		return 4
	case Double, Int64, Uint64:
		return 8
	default:
		return 0
	}
}
