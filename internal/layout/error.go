package layout

import (
	"fmt"
)

// LayoutErrorKind enumerates types of layout calculation errors.
type LayoutErrorKind uint8

const (
	// LayoutErrUnsized indicates an implicitly sized array inside a block.
	LayoutErrUnsized LayoutErrorKind = iota + 1
	LayoutErrOpaque
	LayoutErrOverlap
	LayoutErrStraddle
	LayoutErrMisaligned
	LayoutErrTooLarge
)

// LayoutError represents an error during block layout.
type LayoutError struct {
	Kind   LayoutErrorKind
	Member string
	Offset int
	Other  string // overlapped member for LayoutErrOverlap
	Err    error  // for LayoutErrTooLarge
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrUnsized:
		return fmt.Sprintf("member '%s' has an implicitly sized array type", e.Member)
	case LayoutErrOpaque:
		return fmt.Sprintf("member '%s' has an opaque type and cannot be placed in a buffer", e.Member)
	case LayoutErrOverlap:
		return fmt.Sprintf("member '%s' at offset %d overlaps member '%s'", e.Member, e.Offset, e.Other)
	case LayoutErrStraddle:
		return fmt.Sprintf("member '%s' at offset %d crosses a register boundary", e.Member, e.Offset)
	case LayoutErrMisaligned:
		return fmt.Sprintf("member '%s' offset %d is not aligned", e.Member, e.Offset)
	case LayoutErrTooLarge:
		if e.Err != nil {
			return fmt.Sprintf("member '%s' is too large: %v", e.Member, e.Err)
		}
		return fmt.Sprintf("member '%s' is too large", e.Member)
	default:
		return fmt.Sprintf("layout error kind=%d member '%s'", e.Kind, e.Member)
	}
}
