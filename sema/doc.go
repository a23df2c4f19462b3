// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package sema implements the semantic decoration pass over a parsed HLSL
// program.
//
// The pass runs a single depth-first traversal that mutates the AST in
// place: it resolves type names against declared symbols through a scoped
// SymbolTable, marks the configured entry function and its interface
// structures, and records which intrinsic families the program uses so a
// code generator can emit the matching support code.
//
// Errors are accumulated, not fatal: the traversal always runs to completion
// so one pass surfaces as many independent errors as possible, and Decorate
// reports false iff at least one error was recorded.
//
// The package deliberately stops short of type checking: expression type
// compatibility and intrinsic argument arity are left to later stages.
package sema
