package main

import (
	"testing"
)

func TestDiagnosticBody(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{`context error (3:5) : buffer type "tbuffer" currently not supported`,
			` (3:5) : buffer type "tbuffer" currently not supported`},
		{"context error : missing variable type", " : missing variable type"},
		{"something else entirely", "something else entirely"},
	}

	for _, tt := range tests {
		if got := diagnosticBody(tt.msg); got != tt.want {
			t.Errorf("diagnosticBody(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}
