// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"fmt"

	"github.com/gogpu/hlslt/hlsl"
)

// OverrideFunc decides whether a new binding may replace an existing one in
// the same scope. It receives the previously registered node; returning true
// replaces the binding (modeling forward-declare-then-define), returning
// false rejects the registration.
type OverrideFunc func(prev hlsl.Node) bool

// DuplicateSymbolError reports a registration conflict that the override
// predicate did not accept.
type DuplicateSymbolError struct {
	Name string
	Prev hlsl.Node // the conflicting binding
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("identifier %q already declared in this scope", e.Name)
}

// SymbolTable maps names to AST nodes across a stack of lexical scopes.
// The references it holds are non-owning; the AST tree owns its nodes.
type SymbolTable struct {
	scopes []map[string]hlsl.Node
}

// NewSymbolTable creates an empty symbol table with no open scopes.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// OpenScope pushes a new innermost scope.
func (t *SymbolTable) OpenScope() {
	t.scopes = append(t.scopes, make(map[string]hlsl.Node))
}

// CloseScope pops the innermost scope, removing its bindings from lookup.
// Closing with no open scope is a programming error and panics.
func (t *SymbolTable) CloseScope() {
	if len(t.scopes) == 0 {
		panic("sema: CloseScope called with no open scope")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Register binds name to node in the current innermost scope. An empty name
// is a no-op (anonymous declarations are not entered into the table). If the
// name is already bound in the innermost scope, override decides whether the
// new binding replaces the old one; a rejected conflict returns a
// *DuplicateSymbolError.
func (t *SymbolTable) Register(name string, node hlsl.Node, override OverrideFunc) error {
	if name == "" {
		return nil
	}
	if len(t.scopes) == 0 {
		panic("sema: Register called with no open scope")
	}

	scope := t.scopes[len(t.scopes)-1]
	if prev, ok := scope[name]; ok {
		if override == nil || !override(prev) {
			return &DuplicateSymbolError{Name: name, Prev: prev}
		}
	}
	scope[name] = node
	return nil
}

// Fetch searches scopes from innermost to outermost and returns the first
// binding for name, or nil when the name is not bound anywhere. An absent
// name is not an error; callers decide whether it matters.
func (t *SymbolTable) Fetch(name string) hlsl.Node {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if node, ok := t.scopes[i][name]; ok {
			return node
		}
	}
	return nil
}
