// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"testing"
)

func TestShaderTarget_String(t *testing.T) {
	tests := []struct {
		target ShaderTarget
		want   string
	}{
		{TargetVertex, "vertex"},
		{TargetFragment, "fragment"},
		{TargetGeometry, "geometry"},
		{TargetTessControl, "tess-control"},
		{TargetTessEvaluation, "tess-evaluation"},
		{TargetCompute, "compute"},
		{ShaderTarget(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.target.String(); got != tt.want {
			t.Errorf("ShaderTarget(%d).String() = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		input string
		want  ShaderTarget
	}{
		{"vertex", TargetVertex},
		{"fragment", TargetFragment},
		{"pixel", TargetFragment},
		{"hull", TargetTessControl},
		{"domain", TargetTessEvaluation},
		{"compute", TargetCompute},
	}

	for _, tt := range tests {
		got, err := ParseTarget(tt.input)
		if err != nil {
			t.Errorf("ParseTarget(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTarget(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseTarget("raygen"); err == nil {
		t.Error("ParseTarget accepted an unknown target")
	}
}

func TestGLSLVersion_String(t *testing.T) {
	if got := Version330.String(); got != "GLSL 3.30" {
		t.Errorf("Version330.String() = %q, want %q", got, "GLSL 3.30")
	}
	if got := Version110.String(); got != "GLSL 1.10" {
		t.Errorf("Version110.String() = %q, want %q", got, "GLSL 1.10")
	}
}

func TestParseVersion(t *testing.T) {
	got, err := ParseVersion("450")
	if err != nil {
		t.Fatalf("ParseVersion error: %v", err)
	}
	if got != Version450 {
		t.Errorf("ParseVersion(\"450\") = %v, want Version450", got)
	}

	if _, err := ParseVersion("460"); err == nil {
		t.Error("ParseVersion accepted an unsupported version")
	}
	if _, err := ParseVersion("abc"); err == nil {
		t.Error("ParseVersion accepted a non-numeric version")
	}
}
