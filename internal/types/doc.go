// Package types describes HLSL types as the IR sees them: the type
// descriptor, its qualifier record, opaque object descriptors, array sizes
// and scalar constant values.
package types
