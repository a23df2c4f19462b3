// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import "fmt"

// ShaderTarget identifies the shader stage being translated.
// In the decoration pass the target is pass-through configuration for
// downstream code generation; only the entry-point name drives behavior.
type ShaderTarget uint8

// Supported shader targets.
const (
	TargetVertex ShaderTarget = iota
	TargetFragment
	TargetGeometry
	TargetTessControl
	TargetTessEvaluation
	TargetCompute
)

// String returns a human-readable representation of the shader target.
func (t ShaderTarget) String() string {
	switch t {
	case TargetVertex:
		return "vertex"
	case TargetFragment:
		return "fragment"
	case TargetGeometry:
		return "geometry"
	case TargetTessControl:
		return "tess-control"
	case TargetTessEvaluation:
		return "tess-evaluation"
	case TargetCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// ParseTarget parses a target name as written in CLI flags and project files.
func ParseTarget(s string) (ShaderTarget, error) {
	switch s {
	case "vertex":
		return TargetVertex, nil
	case "fragment", "pixel":
		return TargetFragment, nil
	case "geometry":
		return TargetGeometry, nil
	case "tess-control", "hull":
		return TargetTessControl, nil
	case "tess-evaluation", "domain":
		return TargetTessEvaluation, nil
	case "compute":
		return TargetCompute, nil
	default:
		return 0, fmt.Errorf("unknown shader target %q", s)
	}
}

// GLSLVersion identifies the GLSL version targeted by code generation.
// The numeric value is the version number times 100 (e.g. 330 for GLSL 3.30).
type GLSLVersion uint16

// Supported GLSL versions.
const (
	Version110 GLSLVersion = 110
	Version120 GLSLVersion = 120
	Version130 GLSLVersion = 130
	Version140 GLSLVersion = 140
	Version150 GLSLVersion = 150
	Version330 GLSLVersion = 330
	Version400 GLSLVersion = 400
	Version410 GLSLVersion = 410
	Version420 GLSLVersion = 420
	Version430 GLSLVersion = 430
	Version440 GLSLVersion = 440
	Version450 GLSLVersion = 450
)

// String returns a human-readable representation of the version.
// Example: "GLSL 3.30"
func (v GLSLVersion) String() string {
	return fmt.Sprintf("GLSL %d.%02d", v/100, v%100)
}

// Valid reports whether v is one of the supported versions.
func (v GLSLVersion) Valid() bool {
	switch v {
	case Version110, Version120, Version130, Version140, Version150,
		Version330, Version400, Version410, Version420, Version430,
		Version440, Version450:
		return true
	}
	return false
}

// ParseVersion parses a version number as written in CLI flags and project
// files, e.g. "330".
func ParseVersion(s string) (GLSLVersion, error) {
	var n uint16
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid GLSL version %q", s)
	}
	v := GLSLVersion(n)
	if !v.Valid() {
		return 0, fmt.Errorf("unsupported GLSL version %q", s)
	}
	return v, nil
}
