// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sema

import (
	"fmt"

	"github.com/gogpu/hlslt/hlsl"
)

// Analyzer performs the semantic decoration pass over a parsed HLSL program:
// it resolves identifier references against declared symbols, tracks lexical
// scope, identifies the entry function, marks its interface structures as
// shader inputs/outputs, and records which intrinsic families the program
// uses.
//
// An Analyzer is constructed once and may decorate any number of programs,
// one at a time. It is not safe for concurrent use; decorate different
// programs from different Analyzers instead.
type Analyzer struct {
	reporter   Reporter
	intrinsics map[string]IntrinsicClass

	// per-run state
	program          *hlsl.Program
	symbols          *SymbolTable
	entryPoint       string
	target           ShaderTarget
	version          GLSLVersion
	insideEntryPoint bool
	diags            []Diagnostic
}

// NewAnalyzer creates an analyzer. The reporter receives formatted error
// messages and may be nil, in which case messages are dropped while the
// errors are still recorded.
func NewAnalyzer(reporter Reporter) *Analyzer {
	return &Analyzer{
		reporter:   reporter,
		intrinsics: intrinsicClasses,
	}
}

// Decorate runs the decoration pass over program, mutating flag bitsets and
// symbol references in place. entryPoint names the shader's entry function;
// target and version are stored for downstream stages and do not affect this
// pass. It returns true iff no errors were recorded during the run. A nil
// program fails immediately with no mutation.
func (a *Analyzer) Decorate(program *hlsl.Program, entryPoint string, target ShaderTarget, version GLSLVersion) bool {
	if program == nil {
		return false
	}

	a.program = program
	a.entryPoint = entryPoint
	a.target = target
	a.version = version
	a.insideEntryPoint = false
	a.diags = a.diags[:0]

	a.symbols = NewSymbolTable()
	a.symbols.OpenScope()
	defer a.symbols.CloseScope()

	a.visitProgram(program)

	return len(a.diags) == 0
}

// Diagnostics returns the errors recorded by the most recent Decorate call.
func (a *Analyzer) Diagnostics() []Diagnostic {
	return a.diags
}

// Target returns the configured shader target of the most recent run.
func (a *Analyzer) Target() ShaderTarget { return a.target }

// Version returns the configured GLSL version of the most recent run.
func (a *Analyzer) Version() GLSLVersion { return a.version }

// register binds a name in the current scope, converting a registration
// conflict into a recorded diagnostic at the given position.
func (a *Analyzer) register(name string, node hlsl.Node, pos hlsl.Span, override OverrideFunc) {
	if err := a.symbols.Register(name, node, override); err != nil {
		a.error(DuplicateSymbol, err.Error(), pos)
	}
}

// Traversal

func (a *Analyzer) visitProgram(program *hlsl.Program) {
	for _, decl := range program.GlobalDecls {
		a.visitGlobalDecl(decl)
	}
}

func (a *Analyzer) visitGlobalDecl(decl hlsl.GlobalDecl) {
	switch d := decl.(type) {
	case *hlsl.FunctionDecl:
		a.visitFunctionDecl(d)
	case *hlsl.BufferDecl:
		a.visitBufferDecl(d)
	case *hlsl.StructDecl:
		a.visitStructure(d.Struct)
	case *hlsl.VarDeclStmt:
		a.visitVarDeclStmt(d)
	}
}

func (a *Analyzer) visitFunctionDecl(fn *hlsl.FunctionDecl) {
	// Redeclaration is accepted only over a previous function declaration
	// (forward declarations).
	a.register(fn.Name, fn, fn.Pos(), func(prev hlsl.Node) bool {
		_, ok := prev.(*hlsl.FunctionDecl)
		return ok
	})

	for _, attrib := range fn.Attribs {
		a.visitAttribute(attrib)
	}

	a.visitVarType(fn.ReturnType)
	for _, param := range fn.Params {
		a.visitVarDeclStmt(param)
	}

	isEntryPoint := fn.Name == a.entryPoint
	if isEntryPoint {
		fn.Flags.Set(hlsl.FlagIsEntryPoint)
		fn.Flags.Set(hlsl.FlagIsUsed)

		// The return value is the shader output interface, the
		// parameters are its input interface.
		a.decorateEntryInOutType(fn.ReturnType, false)
		for _, param := range fn.Params {
			a.decorateEntryInOutStmt(param, true)
		}
	}

	a.insideEntryPoint = isEntryPoint
	if fn.Body != nil {
		a.visitCodeBlock(fn.Body)
	}
	a.insideEntryPoint = false
}

func (a *Analyzer) visitBufferDecl(buffer *hlsl.BufferDecl) {
	if buffer.BufferKind != "cbuffer" {
		a.error(UnsupportedBufferKind,
			fmt.Sprintf("buffer type %q currently not supported", buffer.BufferKind),
			buffer.Pos())
	}

	// members are analyzed even when the buffer kind is unsupported
	for _, member := range buffer.Members {
		a.visitVarDeclStmt(member)
	}
}

func (a *Analyzer) visitStructure(structure *hlsl.Structure) {
	if structure == nil {
		return
	}

	if structure.Name != "" {
		// Struct forward declarations are not supported, so any
		// rebinding of the name is a conflict.
		a.register(structure.Name, structure, structure.Pos(), nil)
	}

	for _, member := range structure.Members {
		a.visitVarDeclStmt(member)
	}
}

func (a *Analyzer) visitCodeBlock(block *hlsl.CodeBlock) {
	a.symbols.OpenScope()
	defer a.symbols.CloseScope()

	for _, stmt := range block.Stmts {
		a.visitStmt(stmt)
	}
}

func (a *Analyzer) visitStmt(stmt hlsl.Stmt) {
	switch s := stmt.(type) {
	case *hlsl.VarDeclStmt:
		a.visitVarDeclStmt(s)
	case *hlsl.CodeBlockStmt:
		a.visitCodeBlock(s.Block)
	case *hlsl.ReturnStmt:
		a.visitExpr(s.Value)
	case *hlsl.IfStmt:
		a.visitExpr(s.Cond)
		a.visitStmt(s.Body)
		a.visitStmt(s.Else)
	case *hlsl.ForStmt:
		a.visitStmt(s.Init)
		a.visitExpr(s.Cond)
		a.visitExpr(s.Iter)
		a.visitStmt(s.Body)
	case *hlsl.WhileStmt:
		a.visitExpr(s.Cond)
		a.visitStmt(s.Body)
	case *hlsl.DoWhileStmt:
		a.visitStmt(s.Body)
		a.visitExpr(s.Cond)
	case *hlsl.CtrlTransferStmt:
		// no decoration
	case *hlsl.ExprStmt:
		a.visitExpr(s.Expr)
	}
}

func (a *Analyzer) visitVarDeclStmt(stmt *hlsl.VarDeclStmt) {
	if stmt == nil {
		return
	}

	a.visitVarType(stmt.VarType)
	for _, varDecl := range stmt.Vars {
		a.visitVarDecl(varDecl)
	}

	// Inside the entry function, declaring a variable of an output
	// structure's type binds that variable's name as the interface block
	// alias, once.
	if a.insideEntryPoint {
		if structure, ok := stmt.VarType.SymbolRef.(*hlsl.Structure); ok {
			if structure.Flags.Has(hlsl.FlagIsShaderOutput) &&
				structure.AliasName == "" && len(stmt.Vars) > 0 {
				structure.AliasName = stmt.Vars[0].Name
			}
		}
	}
}

func (a *Analyzer) visitVarType(varType *hlsl.VarType) {
	if varType == nil {
		return
	}

	switch {
	case varType.BaseType != "":
		// An unresolvable name is left unresolved without an error:
		// built-in scalar and vector type names are never registered.
		if symbol := a.symbols.Fetch(varType.BaseType); symbol != nil {
			varType.SymbolRef = symbol
		}
	case varType.Struct != nil:
		a.visitStructure(varType.Struct)
	default:
		a.error(MissingVariableType, "missing variable type", varType.Pos())
	}
}

func (a *Analyzer) visitVarDecl(varDecl *hlsl.VarDecl) {
	for _, dim := range varDecl.ArrayDims {
		a.visitExpr(dim)
	}
	for _, semantic := range varDecl.Semantics {
		a.visitVarSemantic(semantic)
	}
	a.visitExpr(varDecl.Initializer)
}

func (a *Analyzer) visitVarIdent(ident *hlsl.VarIdent) {
	if ident == nil {
		return
	}
	for _, index := range ident.ArrayIndices {
		a.visitExpr(index)
	}
	a.visitVarIdent(ident.Next)
}

func (a *Analyzer) visitVarSemantic(_ *hlsl.VarSemantic) {
	// no decoration
}

func (a *Analyzer) visitAttribute(attrib *hlsl.Attribute) {
	for _, arg := range attrib.Args {
		a.visitExpr(arg)
	}
}

func (a *Analyzer) visitExpr(expr hlsl.Expr) {
	switch e := expr.(type) {
	case *hlsl.LiteralExpr:
		// no decoration
	case *hlsl.VarAccessExpr:
		a.visitVarIdent(e.Ident)
		a.visitExpr(e.AssignExpr)
	case *hlsl.CallExpr:
		a.visitCallExpr(e)
	case *hlsl.BinaryExpr:
		a.visitExpr(e.Left)
		a.visitExpr(e.Right)
	case *hlsl.UnaryExpr:
		a.visitExpr(e.Operand)
	case *hlsl.TernaryExpr:
		a.visitExpr(e.Cond)
		a.visitExpr(e.Then)
		a.visitExpr(e.Else)
	case *hlsl.BracketExpr:
		a.visitExpr(e.Inner)
	case *hlsl.CastExpr:
		a.visitVarType(e.Type)
		a.visitExpr(e.Expr)
	case *hlsl.InitializerExpr:
		for _, sub := range e.Exprs {
			a.visitExpr(sub)
		}
	}
}

func (a *Analyzer) visitCallExpr(call *hlsl.CallExpr) {
	name := call.Name.Full()

	// Record which intrinsic families the program uses.
	if name == "mul" {
		a.program.Flags.Set(hlsl.FlagMulIntrinsicUsed)
	} else if a.intrinsics[name] == IntrinsicInterlocked {
		a.program.Flags.Set(hlsl.FlagInterlockedIntrinsicsUsed)
	}

	// Intrinsic recognition never short-circuits argument analysis.
	for _, arg := range call.Args {
		a.visitExpr(arg)
	}
}

// Entry interface decoration

// decorateEntryInOutStmt marks a parameter declaration of the entry function
// as part of the shader interface. When the declaration names a variable of
// a registered structure type, that variable's name becomes the structure's
// interface block alias, first writer wins.
func (a *Analyzer) decorateEntryInOutStmt(stmt *hlsl.VarDeclStmt, isInput bool) {
	structFlag := hlsl.FlagIsShaderOutput
	if isInput {
		structFlag = hlsl.FlagIsShaderInput
	}

	stmt.Flags.Set(structFlag)

	if stmt.VarType.Struct != nil {
		stmt.VarType.Struct.Flags.Set(structFlag)
	}

	if structure, ok := stmt.VarType.SymbolRef.(*hlsl.Structure); ok {
		structure.Flags.Set(structFlag)
		if len(stmt.Vars) > 0 && structure.AliasName == "" {
			structure.AliasName = stmt.Vars[0].Name
		}
	}
}

// decorateEntryInOutType marks the entry function's return type as part of
// the shader interface.
func (a *Analyzer) decorateEntryInOutType(varType *hlsl.VarType, isInput bool) {
	if varType == nil {
		return
	}

	structFlag := hlsl.FlagIsShaderOutput
	if isInput {
		structFlag = hlsl.FlagIsShaderInput
	}

	if varType.Struct != nil {
		varType.Struct.Flags.Set(structFlag)
	}

	if structure, ok := varType.SymbolRef.(*hlsl.Structure); ok {
		structure.Flags.Set(structFlag)
	}
}
