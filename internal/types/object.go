package types

// ObjectKind marks HLSL object templates that are not textures: buffers
// modelled as blocks, stream-output and patch wrappers.
type ObjectKind uint8

const (
	ObjNone ObjectKind = iota
	ObjStructuredBuffer
	ObjRWStructuredBuffer
	ObjAppendStructuredBuffer
	ObjConsumeStructuredBuffer
	ObjByteAddressBuffer
	ObjRWByteAddressBuffer
	ObjConstantBuffer
	ObjTextureBuffer
	ObjPointStream
	ObjLineStream
	ObjTriangleStream
	ObjInputPatch
	ObjOutputPatch
)

var objectNames = [...]string{
	ObjNone:                    "",
	ObjStructuredBuffer:        "StructuredBuffer",
	ObjRWStructuredBuffer:      "RWStructuredBuffer",
	ObjAppendStructuredBuffer:  "AppendStructuredBuffer",
	ObjConsumeStructuredBuffer: "ConsumeStructuredBuffer",
	ObjByteAddressBuffer:       "ByteAddressBuffer",
	ObjRWByteAddressBuffer:     "RWByteAddressBuffer",
	ObjConstantBuffer:          "ConstantBuffer",
	ObjTextureBuffer:           "TextureBuffer",
	ObjPointStream:             "PointStream",
	ObjLineStream:              "LineStream",
	ObjTriangleStream:          "TriangleStream",
	ObjInputPatch:              "InputPatch",
	ObjOutputPatch:             "OutputPatch",
}

func (k ObjectKind) String() string {
	if int(k) < len(objectNames) {
		return objectNames[k]
	}
	return "object?"
}

// IsStructBuffer reports the structured and byte-address buffer family.
func (k ObjectKind) IsStructBuffer() bool {
	return k >= ObjStructuredBuffer && k <= ObjRWByteAddressBuffer
}

// IsWritable reports buffers that accept stores.
func (k ObjectKind) IsWritable() bool {
	switch k {
	case ObjRWStructuredBuffer, ObjAppendStructuredBuffer, ObjRWByteAddressBuffer:
		return true
	}
	return false
}

// HasCounter reports buffers with a hidden counter (append/consume and RW structured).
func (k ObjectKind) HasCounter() bool {
	switch k {
	case ObjRWStructuredBuffer, ObjAppendStructuredBuffer, ObjConsumeStructuredBuffer:
		return true
	}
	return false
}

// IsStream reports geometry stream-output objects.
func (k ObjectKind) IsStream() bool { return k >= ObjPointStream && k <= ObjTriangleStream }

// IsByteAddress reports raw buffers.
func (k ObjectKind) IsByteAddress() bool {
	return k == ObjByteAddressBuffer || k == ObjRWByteAddressBuffer
}
