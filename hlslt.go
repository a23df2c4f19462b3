// Package hlslt provides a pure Go HLSL shader front-end.
//
// hlslt parses a subset of HLSL source code and runs the semantic decoration
// pass that prepares the AST for code generation: it resolves identifiers
// against declared symbols, identifies the shader entry point, marks its
// interface structures as shader inputs/outputs, and records which intrinsic
// families the program uses.
//
// Example usage:
//
//	source := `
//	struct PSOutput { float4 color : SV_Target; };
//	PSOutput main() {
//	    PSOutput output;
//	    return output;
//	}
//	`
//	program, err := hlslt.Check(source, hlslt.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For more control, use the individual Parse and Decorate functions, or the
// hlsl and sema packages directly.
package hlslt

import (
	"fmt"

	"github.com/gogpu/hlslt/hlsl"
	"github.com/gogpu/hlslt/sema"
)

// Options configures semantic decoration.
type Options struct {
	// EntryPoint is the name of the shader's entry function (default: main).
	EntryPoint string

	// Target is the shader stage, stored for downstream code generation.
	Target sema.ShaderTarget

	// Version is the GLSL version targeted by downstream code generation.
	Version sema.GLSLVersion

	// Reporter receives formatted diagnostic messages; nil drops them.
	Reporter sema.Reporter
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		EntryPoint: "main",
		Target:     sema.TargetFragment,
		Version:    sema.Version330,
	}
}

// Parse parses HLSL source code into an AST rooted at a Program node.
//
// The AST is purely syntactic: no symbol references are resolved and no
// decoration flags are set until Decorate runs.
func Parse(source string) (*hlsl.Program, error) {
	// Tokenize
	lexer := hlsl.NewLexer(source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("tokenization error: %w", err)
	}

	// Parse to AST
	parser := hlsl.NewParser(tokens)
	program, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return program, nil
}

// Decorate runs the semantic decoration pass over an already-parsed program,
// mutating it in place. It returns true iff no errors were recorded.
func Decorate(program *hlsl.Program, opts Options) bool {
	analyzer := sema.NewAnalyzer(opts.Reporter)
	return analyzer.Decorate(program, opts.EntryPoint, opts.Target, opts.Version)
}

// Check parses source and runs semantic decoration in one step. On success
// it returns the decorated program, ready for code generation.
func Check(source string, opts Options) (*hlsl.Program, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}

	analyzer := sema.NewAnalyzer(opts.Reporter)
	if !analyzer.Decorate(program, opts.EntryPoint, opts.Target, opts.Version) {
		return nil, fmt.Errorf("semantic analysis failed with %d error(s)", len(analyzer.Diagnostics()))
	}

	return program, nil
}
