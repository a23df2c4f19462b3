// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

// IntrinsicClass groups built-in intrinsics that share code-generation
// requirements.
type IntrinsicClass uint8

const (
	// IntrinsicNone means the name is not a classified intrinsic.
	IntrinsicNone IntrinsicClass = iota

	// IntrinsicInterlocked covers the atomic memory operations.
	IntrinsicInterlocked
)

// String returns a human-readable representation of the intrinsic class.
func (c IntrinsicClass) String() string {
	switch c {
	case IntrinsicInterlocked:
		return "interlocked"
	default:
		return "none"
	}
}

// intrinsicClasses maps recognized intrinsic names to their class.
// Built once at process start and never mutated; lookup is case-sensitive.
var intrinsicClasses = map[string]IntrinsicClass{
	"InterlockedAdd":             IntrinsicInterlocked,
	"InterlockedAnd":             IntrinsicInterlocked,
	"InterlockedOr":              IntrinsicInterlocked,
	"InterlockedXor":             IntrinsicInterlocked,
	"InterlockedMin":             IntrinsicInterlocked,
	"InterlockedMax":             IntrinsicInterlocked,
	"InterlockedCompareExchange": IntrinsicInterlocked,
	"InterlockedExchange":        IntrinsicInterlocked,
}

// ClassifyIntrinsic returns the class for the given intrinsic name, or
// IntrinsicNone when the name is not recognized.
func ClassifyIntrinsic(name string) IntrinsicClass {
	return intrinsicClasses[name]
}
