package types

import (
	"fmt"
	"strings"
)

// Mangle appends the signature spelling of t used in mangled function names.
func (t *Type) Mangle(sb *strings.Builder) {
	if t.IsMatrix() {
		sb.WriteByte('m')
	} else if t.VectorSize > 1 || t.Vector1 {
		sb.WriteByte('v')
	}
	switch t.Basic {
	case Float:
		sb.WriteByte('f')
	case Double:
		sb.WriteByte('d')
	case Int:
		sb.WriteByte('i')
	case Uint:
		sb.WriteByte('u')
	case Int64:
		sb.WriteString("i64")
	case Uint64:
		sb.WriteString("u64")
	case Bool:
		sb.WriteByte('b')
	case String:
		sb.WriteString("str")
	case Void:
		sb.WriteByte('x')
	case SamplerKind:
		sb.WriteString(t.Sampler.mangle())
	case Struct, Block:
		sb.WriteString("struct-")
		sb.WriteString(t.TypeName)
		for _, m := range t.Struct.Members {
			sb.WriteByte('-')
			m.Type.Mangle(sb)
		}
	}
	switch {
	case t.IsMatrix():
		fmt.Fprintf(sb, "%d%d", t.MatrixCols, t.MatrixRows)
	case t.VectorSize > 1 || t.Vector1:
		fmt.Fprintf(sb, "%d", t.VectorSize)
	}
	if t.IsArray() {
		for _, d := range t.Arrays.Dims {
			fmt.Fprintf(sb, "[%d]", d.Size)
		}
	}
	sb.WriteByte(';')
}

func (s Sampler) mangle() string {
	var sb strings.Builder
	switch {
	case s.Pure:
		sb.WriteByte('p')
	case s.Image:
		sb.WriteByte('I')
	case s.Combined:
		sb.WriteByte('s')
	default:
		sb.WriteByte('t')
	}
	switch s.Type {
	case Int:
		sb.WriteByte('i')
	case Uint:
		sb.WriteByte('u')
	case Double:
		sb.WriteByte('d')
	}
	sb.WriteString(s.Dim.String())
	if s.MS {
		sb.WriteString("MS")
	}
	if s.Arrayed {
		sb.WriteByte('A')
	}
	if s.Shadow {
		sb.WriteByte('S')
	}
	if s.VectorSize > 0 {
		fmt.Fprintf(&sb, "%d", s.VectorSize)
	}
	return sb.String()
}

// MangledName returns name followed by "(" and the mangled parameter types.
func MangledName(name string, params []*Type) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for _, p := range params {
		p.Mangle(&sb)
	}
	return sb.String()
}
