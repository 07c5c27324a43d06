package layout

import (
	"hlslc/internal/types"
)

type placed struct {
	name       string
	start, end int
}

func (e *LayoutEngine) computeStruct(def *types.StructDef, rules Rules) (TypeLayout, *LayoutError) {
	out := TypeLayout{
		Align:          1,
		FieldOffsets:   make([]int, len(def.Members)),
		StartsRegister: rules == RulesCBuffer,
	}
	if rules == RulesCBuffer {
		out.Align = RegisterSize
	}
	var taken []placed
	offset := 0
	for i, m := range def.Members {
		ml, err := e.layoutOf(m.Type, rules, m.Name)
		if err != nil {
			return out, err
		}
		if explicit, ok := m.Type.Qualifier.Layout(types.LayOffset); ok {
			if explicit%4 != 0 {
				return out, &LayoutError{Kind: LayoutErrMisaligned, Member: m.Name, Offset: explicit}
			}
			if rules == RulesCBuffer && !ml.StartsRegister && explicit%RegisterSize+ml.Size > RegisterSize {
				return out, &LayoutError{Kind: LayoutErrStraddle, Member: m.Name, Offset: explicit}
			}
			if rules == RulesCBuffer && ml.StartsRegister && explicit%RegisterSize != 0 {
				return out, &LayoutError{Kind: LayoutErrMisaligned, Member: m.Name, Offset: explicit}
			}
			offset = explicit
		} else {
			offset = place(offset, ml, rules)
		}
		for _, p := range taken {
			if offset < p.end && p.start < offset+ml.Size {
				return out, &LayoutError{Kind: LayoutErrOverlap, Member: m.Name, Offset: offset, Other: p.name}
			}
		}
		taken = append(taken, placed{name: m.Name, start: offset, end: offset + ml.Size})
		out.FieldOffsets[i] = offset
		out.Align = max(out.Align, ml.Align)
		offset += ml.Size
		out.Size = max(out.Size, offset)
	}
	if rules == RulesScalar {
		out.Size = roundUp(out.Size, out.Align)
	}
	return out, nil
}

// place returns the offset of the next member under rules.
func place(offset int, ml TypeLayout, rules Rules) int {
	if rules == RulesScalar {
		return roundUp(offset, ml.Align)
	}
	if ml.StartsRegister {
		return roundUp(offset, RegisterSize)
	}
	offset = roundUp(offset, ml.Align)
	if offset%RegisterSize+ml.Size > RegisterSize {
		offset = roundUp(offset, RegisterSize)
	}
	return offset
}
