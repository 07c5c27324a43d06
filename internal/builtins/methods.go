package builtins

import (
	"hlslc/internal/ir"
	"hlslc/internal/types"
)

// Object classifies the receiver of a method call.
type Object uint16

const (
	OnTexture Object = 1 << iota
	OnTextureMS
	OnRWTexture // RW textures and RW typed buffers
	OnBuffer    // Buffer<T>
	OnStructured
	OnRWStructured
	OnAppend
	OnConsume
	OnByteAddress
	OnRWByteAddress
	OnStream

	onAnyTexture = OnTexture | OnTextureMS | OnRWTexture | OnBuffer
	onRawBuffers = OnByteAddress | OnRWByteAddress
	onStructured = OnStructured | OnRWStructured | OnAppend | OnConsume
)

// Method describes one object method and its argument count range.
type Method struct {
	Name    string
	Op      ir.Op
	MinArgs int
	MaxArgs int
	On      Object
}

var methods = map[string]Method{}

func method(name string, op ir.Op, minArgs, maxArgs int, on Object) {
	methods[name] = Method{Name: name, Op: op, MinArgs: minArgs, MaxArgs: maxArgs, On: on}
}

func init() {
	method("Sample", ir.OpMethodSample, 2, 4, OnTexture)
	method("SampleBias", ir.OpMethodSampleBias, 3, 5, OnTexture)
	method("SampleCmp", ir.OpMethodSampleCmp, 3, 5, OnTexture)
	method("SampleCmpLevelZero", ir.OpMethodSampleCmpLevelZero, 3, 4, OnTexture)
	method("SampleGrad", ir.OpMethodSampleGrad, 4, 6, OnTexture)
	method("SampleLevel", ir.OpMethodSampleLevel, 3, 4, OnTexture)
	method("Load", ir.OpMethodLoad, 1, 3, onAnyTexture|onRawBuffers|OnStructured|OnRWStructured)
	method("Load2", ir.OpMethodLoad2, 1, 1, onRawBuffers)
	method("Load3", ir.OpMethodLoad3, 1, 1, onRawBuffers)
	method("Load4", ir.OpMethodLoad4, 1, 1, onRawBuffers)
	method("Store", ir.OpMethodStore, 2, 2, OnRWByteAddress)
	method("Store2", ir.OpMethodStore2, 2, 2, OnRWByteAddress)
	method("Store3", ir.OpMethodStore3, 2, 2, OnRWByteAddress)
	method("Store4", ir.OpMethodStore4, 2, 2, OnRWByteAddress)
	method("GetDimensions", ir.OpMethodGetDimensions, 1, 6, onAnyTexture|onRawBuffers|onStructured)
	method("GetSamplePosition", ir.OpMethodGetSamplePosition, 1, 1, OnTextureMS)
	method("Gather", ir.OpMethodGather, 2, 3, OnTexture)
	method("GatherRed", ir.OpMethodGatherRed, 2, 6, OnTexture)
	method("GatherGreen", ir.OpMethodGatherGreen, 2, 6, OnTexture)
	method("GatherBlue", ir.OpMethodGatherBlue, 2, 6, OnTexture)
	method("GatherAlpha", ir.OpMethodGatherAlpha, 2, 6, OnTexture)
	method("GatherCmp", ir.OpMethodGatherCmp, 3, 4, OnTexture)
	method("GatherCmpRed", ir.OpMethodGatherCmpRed, 3, 7, OnTexture)
	method("GatherCmpGreen", ir.OpMethodGatherCmpGreen, 3, 7, OnTexture)
	method("GatherCmpBlue", ir.OpMethodGatherCmpBlue, 3, 7, OnTexture)
	method("GatherCmpAlpha", ir.OpMethodGatherCmpAlpha, 3, 7, OnTexture)
	method("CalculateLevelOfDetail", ir.OpMethodCalculateLevelOfDetail, 2, 2, OnTexture)
	method("CalculateLevelOfDetailUnclamped", ir.OpMethodCalculateLevelOfDetailUnclamped, 2, 2, OnTexture)
	method("IncrementCounter", ir.OpMethodIncrementCounter, 0, 0, OnRWStructured)
	method("DecrementCounter", ir.OpMethodDecrementCounter, 0, 0, OnRWStructured)
	method("Consume", ir.OpMethodConsume, 0, 0, OnConsume)
	method("Append", ir.OpMethodAppend, 1, 1, OnAppend|OnStream)
	method("RestartStrip", ir.OpMethodRestartStrip, 0, 0, OnStream)
	method("InterlockedAdd", ir.OpMethodInterlockedAdd, 2, 3, OnRWByteAddress)
	method("InterlockedAnd", ir.OpMethodInterlockedAnd, 2, 3, OnRWByteAddress)
	method("InterlockedCompareExchange", ir.OpMethodInterlockedCompareExchange, 4, 4, OnRWByteAddress)
	method("InterlockedCompareStore", ir.OpMethodInterlockedCompareStore, 3, 3, OnRWByteAddress)
	method("InterlockedExchange", ir.OpMethodInterlockedExchange, 3, 3, OnRWByteAddress)
	method("InterlockedMax", ir.OpMethodInterlockedMax, 2, 3, OnRWByteAddress)
	method("InterlockedMin", ir.OpMethodInterlockedMin, 2, 3, OnRWByteAddress)
	method("InterlockedOr", ir.OpMethodInterlockedOr, 2, 3, OnRWByteAddress)
	method("InterlockedXor", ir.OpMethodInterlockedXor, 2, 3, OnRWByteAddress)
}

// LookupMethod finds an object method by name.
func LookupMethod(name string) (Method, bool) {
	m, ok := methods[name]
	return m, ok
}

// ObjectOf classifies t as a method receiver; zero means t has no methods.
func ObjectOf(t *types.Type) Object {
	if t == nil || t.IsArray() {
		return 0
	}
	switch t.Object {
	case types.ObjStructuredBuffer:
		return OnStructured
	case types.ObjRWStructuredBuffer:
		return OnRWStructured
	case types.ObjAppendStructuredBuffer:
		return OnAppend
	case types.ObjConsumeStructuredBuffer:
		return OnConsume
	case types.ObjByteAddressBuffer:
		return OnByteAddress
	case types.ObjRWByteAddressBuffer:
		return OnRWByteAddress
	case types.ObjPointStream, types.ObjLineStream, types.ObjTriangleStream:
		return OnStream
	}
	if t.Basic != types.SamplerKind {
		return 0
	}
	s := t.Sampler
	switch {
	case s.Image:
		return OnRWTexture
	case s.Dim == types.DimBuffer:
		return OnBuffer
	case s.MS:
		return OnTextureMS
	case s.IsTexture():
		return OnTexture
	}
	return 0
}

// Accepts reports whether m can be called on an object of type t.
func (m Method) Accepts(t *types.Type) bool { return ObjectOf(t)&m.On != 0 }
