// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"fmt"

	"github.com/gogpu/hlslt/hlsl"
)

// ErrorKind classifies the error conditions recorded during decoration.
type ErrorKind uint8

const (
	// DuplicateSymbol is a registration conflict the override predicate
	// did not accept.
	DuplicateSymbol ErrorKind = iota

	// UnsupportedBufferKind is a buffer declaration of a kind other than
	// cbuffer.
	UnsupportedBufferKind

	// MissingVariableType is a variable type with neither a named base
	// type nor an inline structure.
	MissingVariableType
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case DuplicateSymbol:
		return "duplicate symbol"
	case UnsupportedBufferKind:
		return "unsupported buffer kind"
	case MissingVariableType:
		return "missing variable type"
	default:
		return "unknown"
	}
}

// Diagnostic is one error recorded during a decoration run. Line and Column
// are zero when no source position is available.
type Diagnostic struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

// String formats the diagnostic for the reporter sink.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("context error (%d:%d) : %s", d.Line, d.Column, d.Message)
	}
	return "context error : " + d.Message
}

// Reporter receives formatted diagnostic messages. It is an optional
// collaborator: a nil Reporter silently drops messages while the errors are
// still recorded and still fail the run.
type Reporter interface {
	Error(msg string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(msg string)

// Error implements Reporter.
func (f ReporterFunc) Error(msg string) { f(msg) }

// error records a diagnostic and forwards it to the reporter when one is
// present.
func (a *Analyzer) error(kind ErrorKind, msg string, pos hlsl.Span) {
	diag := Diagnostic{
		Kind:    kind,
		Message: msg,
		Line:    pos.Start.Line,
		Column:  pos.Start.Column,
	}
	a.diags = append(a.diags, diag)
	if a.reporter != nil {
		a.reporter.Error(diag.String())
	}
}
