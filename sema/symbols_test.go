// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"errors"
	"testing"

	"github.com/gogpu/hlslt/hlsl"
)

func TestSymbolTable_RegisterAndFetch(t *testing.T) {
	table := NewSymbolTable()
	table.OpenScope()

	structure := &hlsl.Structure{Name: "Light"}
	if err := table.Register("Light", structure, nil); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if got := table.Fetch("Light"); got != hlsl.Node(structure) {
		t.Errorf("Fetch returned %v, want the registered structure", got)
	}
}

func TestSymbolTable_FetchNotFound(t *testing.T) {
	table := NewSymbolTable()
	table.OpenScope()

	if got := table.Fetch("missing"); got != nil {
		t.Errorf("Fetch on unregistered name returned %v, want nil", got)
	}
}

func TestSymbolTable_FetchSearchesOuterScopes(t *testing.T) {
	table := NewSymbolTable()
	table.OpenScope()

	outer := &hlsl.Structure{Name: "Light"}
	if err := table.Register("Light", outer, nil); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	table.OpenScope()
	if got := table.Fetch("Light"); got != hlsl.Node(outer) {
		t.Error("inner scope lookup did not find outer binding")
	}
}

func TestSymbolTable_InnermostShadowsOuter(t *testing.T) {
	table := NewSymbolTable()
	table.OpenScope()

	outer := &hlsl.Structure{Name: "Light"}
	inner := &hlsl.Structure{Name: "Light"}
	if err := table.Register("Light", outer, nil); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	table.OpenScope()
	if err := table.Register("Light", inner, nil); err != nil {
		t.Fatalf("Register in inner scope error: %v", err)
	}

	if got := table.Fetch("Light"); got != hlsl.Node(inner) {
		t.Error("Fetch did not return the innermost binding")
	}

	table.CloseScope()
	if got := table.Fetch("Light"); got != hlsl.Node(outer) {
		t.Error("Fetch after CloseScope did not return the outer binding")
	}
}

func TestSymbolTable_DuplicateRejected(t *testing.T) {
	table := NewSymbolTable()
	table.OpenScope()

	first := &hlsl.Structure{Name: "Light"}
	second := &hlsl.Structure{Name: "Light"}
	if err := table.Register("Light", first, nil); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	reject := func(prev hlsl.Node) bool { return false }
	err := table.Register("Light", second, reject)
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}

	var dup *DuplicateSymbolError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateSymbolError, got %T", err)
	}
	if dup.Name != "Light" {
		t.Errorf("error names %q, want Light", dup.Name)
	}
	if dup.Prev != hlsl.Node(first) {
		t.Error("error does not reference the conflicting binding")
	}

	// the original binding survives
	if got := table.Fetch("Light"); got != hlsl.Node(first) {
		t.Error("rejected registration replaced the existing binding")
	}
}

func TestSymbolTable_OverrideReplaces(t *testing.T) {
	table := NewSymbolTable()
	table.OpenScope()

	forward := &hlsl.FunctionDecl{Name: "F"}
	definition := &hlsl.FunctionDecl{Name: "F"}
	if err := table.Register("F", forward, nil); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	acceptFunctions := func(prev hlsl.Node) bool {
		_, ok := prev.(*hlsl.FunctionDecl)
		return ok
	}
	if err := table.Register("F", definition, acceptFunctions); err != nil {
		t.Fatalf("override Register error: %v", err)
	}

	if got := table.Fetch("F"); got != hlsl.Node(definition) {
		t.Error("accepted override did not replace the binding")
	}
}

func TestSymbolTable_EmptyNameIsNoOp(t *testing.T) {
	table := NewSymbolTable()
	table.OpenScope()

	if err := table.Register("", &hlsl.Structure{}, nil); err != nil {
		t.Fatalf("Register with empty name returned error: %v", err)
	}
	if got := table.Fetch(""); got != nil {
		t.Error("empty name was entered into the table")
	}
}

func TestSymbolTable_CloseScopeEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("CloseScope on empty scope stack did not panic")
		}
	}()

	table := NewSymbolTable()
	table.CloseScope()
}
