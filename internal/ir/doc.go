// Package ir is the language-neutral tree the HLSL front-end produces:
// typed nodes over canonical operators, a Builder that applies implicit
// conversions and constant folding, and the module-level shader-stage
// configuration.
package ir
