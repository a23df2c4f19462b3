// Package hlsl provides lexing and parsing for a subset of HLSL
// (High-Level Shading Language).
//
// The pipeline is:
//
//  1. Lexer tokenizes HLSL source into a token stream
//  2. Parser builds an AST (Program) from the tokens
//
// The AST carries the decoration state consumed and produced by the sema
// package: per-node flag bitsets (Flags) and non-owning resolved symbol
// references (VarType.SymbolRef). The parser never sets either; semantic
// decoration does.
//
// Example:
//
//	lexer := hlsl.NewLexer(source)
//	tokens, err := lexer.Tokenize()
//	if err != nil {
//	    return err
//	}
//	parser := hlsl.NewParser(tokens)
//	program, err := parser.Parse()
package hlsl
