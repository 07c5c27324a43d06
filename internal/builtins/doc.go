// Package builtins generates HLSL intrinsic prototypes and describes the
// methods of texture, buffer and stream objects.
//
// Prototypes are produced per name on first lookup from compact templates
// and cached for the process; symbols.Table pulls them in through its
// builtin loader.
package builtins
