package layout

// Rules selects a packing scheme.
type Rules uint8

const (
	// RulesCBuffer is the constant-buffer scheme: 16-byte registers, no
	// member straddles a register, arrays/structs/matrices start a register.
	RulesCBuffer Rules = iota
	// RulesScalar is the tight scheme of structured and byte-address buffers.
	RulesScalar
)

func (r Rules) String() string {
	switch r {
	case RulesCBuffer:
		return "cbuffer"
	case RulesScalar:
		return "scalar"
	default:
		return "rules?"
	}
}

// RegisterSize is the size of one constant register in bytes.
const RegisterSize = 16

// PackOffset converts packoffset(c<reg>.<comp>) into a byte offset:
// c3.y is 3*16 + 4.
func PackOffset(reg, comp int) int { return reg*RegisterSize + comp*4 }

func roundUp(v, align int) int {
	if align <= 1 {
		return v
	}
	return (v + align - 1) / align * align
}
