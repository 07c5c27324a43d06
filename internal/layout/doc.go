// Package layout computes member offsets of cbuffer, tbuffer and buffer
// blocks and validates packoffset placements.
package layout
