package hlsl

import (
	"errors"
	"testing"
)

// Helper function to parse source code
func parseSource(t *testing.T, source string) *Program {
	t.Helper()
	lexer := NewLexer(source)
	tokens, lexErr := lexer.Tokenize()
	if lexErr != nil {
		t.Fatalf("Lexer error: %v", lexErr)
	}
	parser := NewParser(tokens)
	program, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return program
}

// Helper function to try parsing (may return error)
func tryParseSource(t *testing.T, source string) (*Program, error) {
	t.Helper()
	lexer := NewLexer(source)
	tokens, lexErr := lexer.Tokenize()
	if lexErr != nil {
		return nil, lexErr
	}
	parser := NewParser(tokens)
	return parser.Parse()
}

func TestParseStructDeclaration(t *testing.T) {
	source := `struct VertexOutput {
    float4 position : SV_Position;
    float2 uv : TEXCOORD0;
};`

	program := parseSource(t, source)

	if len(program.GlobalDecls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(program.GlobalDecls))
	}

	decl, ok := program.GlobalDecls[0].(*StructDecl)
	if !ok {
		t.Fatalf("expected *StructDecl, got %T", program.GlobalDecls[0])
	}

	s := decl.Struct
	if s.Name != "VertexOutput" {
		t.Errorf("expected struct name 'VertexOutput', got %q", s.Name)
	}

	if len(s.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(s.Members))
	}

	first := s.Members[0]
	if first.VarType.BaseType != "float4" {
		t.Errorf("expected member type 'float4', got %q", first.VarType.BaseType)
	}
	if len(first.Vars) != 1 || first.Vars[0].Name != "position" {
		t.Fatalf("expected single member 'position', got %+v", first.Vars)
	}
	if len(first.Vars[0].Semantics) != 1 || first.Vars[0].Semantics[0].Semantic != "SV_Position" {
		t.Errorf("expected semantic 'SV_Position', got %+v", first.Vars[0].Semantics)
	}
}

func TestParseAnonymousStructVariable(t *testing.T) {
	source := `struct {
    float4 color;
} pixel;`

	program := parseSource(t, source)

	if len(program.GlobalDecls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(program.GlobalDecls))
	}

	stmt, ok := program.GlobalDecls[0].(*VarDeclStmt)
	if !ok {
		t.Fatalf("expected *VarDeclStmt, got %T", program.GlobalDecls[0])
	}

	if stmt.VarType.Struct == nil {
		t.Fatal("expected inline struct type, got nil")
	}
	if stmt.VarType.Struct.Name != "" {
		t.Errorf("expected anonymous struct, got name %q", stmt.VarType.Struct.Name)
	}
	if len(stmt.Vars) != 1 || stmt.Vars[0].Name != "pixel" {
		t.Fatalf("expected declared variable 'pixel', got %+v", stmt.Vars)
	}
}

func TestParseConstantBuffer(t *testing.T) {
	source := `cbuffer Matrices : register(b0) {
    float4x4 worldMatrix;
    float4x4 viewMatrix;
};`

	program := parseSource(t, source)

	if len(program.GlobalDecls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(program.GlobalDecls))
	}

	buffer, ok := program.GlobalDecls[0].(*BufferDecl)
	if !ok {
		t.Fatalf("expected *BufferDecl, got %T", program.GlobalDecls[0])
	}

	if buffer.BufferKind != "cbuffer" {
		t.Errorf("expected kind 'cbuffer', got %q", buffer.BufferKind)
	}
	if buffer.Name != "Matrices" {
		t.Errorf("expected name 'Matrices', got %q", buffer.Name)
	}
	if buffer.RegisterName != "b0" {
		t.Errorf("expected register 'b0', got %q", buffer.RegisterName)
	}
	if len(buffer.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(buffer.Members))
	}
}

func TestParseTextureBuffer(t *testing.T) {
	// tbuffer parses fine; rejecting it is a later concern
	source := `tbuffer Data {
    float4 values;
};`

	program := parseSource(t, source)

	buffer, ok := program.GlobalDecls[0].(*BufferDecl)
	if !ok {
		t.Fatalf("expected *BufferDecl, got %T", program.GlobalDecls[0])
	}
	if buffer.BufferKind != "tbuffer" {
		t.Errorf("expected kind 'tbuffer', got %q", buffer.BufferKind)
	}
}

func TestParseFunction(t *testing.T) {
	source := `float4 main(float4 pos : SV_Position, float2 uv : TEXCOORD0) : SV_Target {
    return pos;
}`

	program := parseSource(t, source)

	fn, ok := program.GlobalDecls[0].(*FunctionDecl)
	if !ok {
		t.Fatalf("expected *FunctionDecl, got %T", program.GlobalDecls[0])
	}

	if fn.Name != "main" {
		t.Errorf("expected function name 'main', got %q", fn.Name)
	}
	if fn.ReturnType.BaseType != "float4" {
		t.Errorf("expected return type 'float4', got %q", fn.ReturnType.BaseType)
	}
	if fn.Semantic != "SV_Target" {
		t.Errorf("expected return semantic 'SV_Target', got %q", fn.Semantic)
	}

	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
	param := fn.Params[1]
	if param.VarType.BaseType != "float2" {
		t.Errorf("expected parameter type 'float2', got %q", param.VarType.BaseType)
	}
	if param.Vars[0].Name != "uv" {
		t.Errorf("expected parameter name 'uv', got %q", param.Vars[0].Name)
	}

	if fn.Body == nil {
		t.Fatal("expected function body, got nil")
	}
	if len(fn.Body.Stmts) != 1 {
		t.Errorf("expected 1 statement, got %d", len(fn.Body.Stmts))
	}
}

func TestParseForwardDeclaration(t *testing.T) {
	source := `float4 shade(float4 color);`

	program := parseSource(t, source)

	fn, ok := program.GlobalDecls[0].(*FunctionDecl)
	if !ok {
		t.Fatalf("expected *FunctionDecl, got %T", program.GlobalDecls[0])
	}
	if fn.Body != nil {
		t.Error("expected nil body for forward declaration")
	}
}

func TestParseFunctionAttributes(t *testing.T) {
	source := `[numthreads(8, 8, 1)]
void main() {
}`

	program := parseSource(t, source)

	fn, ok := program.GlobalDecls[0].(*FunctionDecl)
	if !ok {
		t.Fatalf("expected *FunctionDecl, got %T", program.GlobalDecls[0])
	}

	if len(fn.Attribs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(fn.Attribs))
	}
	attr := fn.Attribs[0]
	if attr.Name != "numthreads" {
		t.Errorf("expected attribute 'numthreads', got %q", attr.Name)
	}
	if len(attr.Args) != 3 {
		t.Errorf("expected 3 attribute arguments, got %d", len(attr.Args))
	}
}

func TestParseGlobalVariable(t *testing.T) {
	source := `static const float PI = 3.14159f;`

	program := parseSource(t, source)

	stmt, ok := program.GlobalDecls[0].(*VarDeclStmt)
	if !ok {
		t.Fatalf("expected *VarDeclStmt, got %T", program.GlobalDecls[0])
	}

	if len(stmt.Modifiers) != 2 || stmt.Modifiers[0] != "static" || stmt.Modifiers[1] != "const" {
		t.Errorf("expected modifiers [static const], got %v", stmt.Modifiers)
	}
	if stmt.VarType.BaseType != "float" {
		t.Errorf("expected type 'float', got %q", stmt.VarType.BaseType)
	}
	if stmt.Vars[0].Initializer == nil {
		t.Error("expected initializer, got nil")
	}
}

func TestParseMultipleDeclarators(t *testing.T) {
	source := `float a, b, c;`

	program := parseSource(t, source)

	stmt := program.GlobalDecls[0].(*VarDeclStmt)
	if len(stmt.Vars) != 3 {
		t.Fatalf("expected 3 declared variables, got %d", len(stmt.Vars))
	}
	for i, name := range []string{"a", "b", "c"} {
		if stmt.Vars[i].Name != name {
			t.Errorf("variable %d: expected %q, got %q", i, name, stmt.Vars[i].Name)
		}
	}
}

func TestParseArrayDimensions(t *testing.T) {
	source := `float4 lights[4][2];
float weights[];`

	program := parseSource(t, source)

	first := program.GlobalDecls[0].(*VarDeclStmt)
	if len(first.Vars[0].ArrayDims) != 2 {
		t.Fatalf("expected 2 dimensions, got %d", len(first.Vars[0].ArrayDims))
	}
	if first.Vars[0].ArrayDims[0] == nil {
		t.Error("expected sized dimension expression, got nil")
	}

	second := program.GlobalDecls[1].(*VarDeclStmt)
	if len(second.Vars[0].ArrayDims) != 1 {
		t.Fatalf("expected 1 dimension, got %d", len(second.Vars[0].ArrayDims))
	}
	if second.Vars[0].ArrayDims[0] != nil {
		t.Error("expected unsized dimension to be nil")
	}
}

func TestParsePackOffset(t *testing.T) {
	source := `cbuffer Params {
    float4 color : packoffset(c0.x);
};`

	program := parseSource(t, source)

	buffer := program.GlobalDecls[0].(*BufferDecl)
	varDecl := buffer.Members[0].Vars[0]
	if len(varDecl.Semantics) != 1 {
		t.Fatalf("expected 1 semantic, got %d", len(varDecl.Semantics))
	}

	sem := varDecl.Semantics[0]
	if sem.Offset == nil {
		t.Fatal("expected packoffset, got nil")
	}
	if sem.Offset.RegisterName != "c0" {
		t.Errorf("expected register 'c0', got %q", sem.Offset.RegisterName)
	}
	if sem.Offset.VectorComponent != "x" {
		t.Errorf("expected component 'x', got %q", sem.Offset.VectorComponent)
	}
}

func TestParseStatements(t *testing.T) {
	source := `void main() {
    float x = 1.0;
    if (x > 0.5) {
        x = 0.0;
    } else {
        discard;
    }
    for (int i = 0; i < 4; i++) {
        x += 1.0;
    }
    while (x < 10.0) {
        x *= 2.0;
    }
    do {
        x -= 1.0;
    } while (x > 0.0);
    return;
}`

	program := parseSource(t, source)

	fn := program.GlobalDecls[0].(*FunctionDecl)
	stmts := fn.Body.Stmts
	if len(stmts) != 6 {
		t.Fatalf("expected 6 statements, got %d", len(stmts))
	}

	if _, ok := stmts[0].(*VarDeclStmt); !ok {
		t.Errorf("statement 0: expected *VarDeclStmt, got %T", stmts[0])
	}
	ifStmt, ok := stmts[1].(*IfStmt)
	if !ok {
		t.Fatalf("statement 1: expected *IfStmt, got %T", stmts[1])
	}
	if ifStmt.Else == nil {
		t.Error("expected else branch, got nil")
	}
	if _, ok := stmts[2].(*ForStmt); !ok {
		t.Errorf("statement 2: expected *ForStmt, got %T", stmts[2])
	}
	if _, ok := stmts[3].(*WhileStmt); !ok {
		t.Errorf("statement 3: expected *WhileStmt, got %T", stmts[3])
	}
	if _, ok := stmts[4].(*DoWhileStmt); !ok {
		t.Errorf("statement 4: expected *DoWhileStmt, got %T", stmts[4])
	}
	if _, ok := stmts[5].(*ReturnStmt); !ok {
		t.Errorf("statement 5: expected *ReturnStmt, got %T", stmts[5])
	}
}

func TestParseLocalStructDeclaration(t *testing.T) {
	source := `void main() {
    struct Local {
        float v;
    } l;
}`

	program := parseSource(t, source)

	fn := program.GlobalDecls[0].(*FunctionDecl)
	stmt, ok := fn.Body.Stmts[0].(*VarDeclStmt)
	if !ok {
		t.Fatalf("expected *VarDeclStmt, got %T", fn.Body.Stmts[0])
	}
	if stmt.VarType.Struct == nil || stmt.VarType.Struct.Name != "Local" {
		t.Errorf("expected inline struct 'Local', got %+v", stmt.VarType)
	}
	if len(stmt.Vars) != 1 || stmt.Vars[0].Name != "l" {
		t.Errorf("expected declared variable 'l', got %+v", stmt.Vars)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	source := `void main() {
    float x = 1.0 + 2.0 * 3.0;
}`

	program := parseSource(t, source)

	fn := program.GlobalDecls[0].(*FunctionDecl)
	stmt := fn.Body.Stmts[0].(*VarDeclStmt)
	init, ok := stmt.Vars[0].Initializer.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected *BinaryExpr, got %T", stmt.Vars[0].Initializer)
	}

	if init.Op != TokenPlus {
		t.Errorf("expected top-level +, got %v", init.Op)
	}
	right, ok := init.Right.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected multiplication on the right, got %T", init.Right)
	}
	if right.Op != TokenStar {
		t.Errorf("expected *, got %v", right.Op)
	}
}

func TestParseTernary(t *testing.T) {
	source := `void main() {
    float x = a > b ? 1.0 : 0.0;
}`

	program := parseSource(t, source)

	fn := program.GlobalDecls[0].(*FunctionDecl)
	stmt := fn.Body.Stmts[0].(*VarDeclStmt)
	if _, ok := stmt.Vars[0].Initializer.(*TernaryExpr); !ok {
		t.Fatalf("expected *TernaryExpr, got %T", stmt.Vars[0].Initializer)
	}
}

func TestParseCallAndMemberChain(t *testing.T) {
	source := `void main() {
    output.color = mul(worldMatrix, lights[i].position);
}`

	program := parseSource(t, source)

	fn := program.GlobalDecls[0].(*FunctionDecl)
	exprStmt, ok := fn.Body.Stmts[0].(*ExprStmt)
	if !ok {
		t.Fatalf("expected *ExprStmt, got %T", fn.Body.Stmts[0])
	}

	access, ok := exprStmt.Expr.(*VarAccessExpr)
	if !ok {
		t.Fatalf("expected *VarAccessExpr, got %T", exprStmt.Expr)
	}
	if access.Ident.Full() != "output.color" {
		t.Errorf("expected target 'output.color', got %q", access.Ident.Full())
	}
	if access.AssignOp != TokenEqual {
		t.Errorf("expected = assignment, got %v", access.AssignOp)
	}

	call, ok := access.AssignExpr.(*CallExpr)
	if !ok {
		t.Fatalf("expected *CallExpr, got %T", access.AssignExpr)
	}
	if call.Name.Full() != "mul" {
		t.Errorf("expected call to 'mul', got %q", call.Name.Full())
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}

	arg, ok := call.Args[1].(*VarAccessExpr)
	if !ok {
		t.Fatalf("expected *VarAccessExpr argument, got %T", call.Args[1])
	}
	if arg.Ident.Name != "lights" || len(arg.Ident.ArrayIndices) != 1 {
		t.Errorf("expected indexed 'lights', got %+v", arg.Ident)
	}
	if arg.Ident.Next == nil || arg.Ident.Next.Name != "position" {
		t.Errorf("expected member 'position', got %+v", arg.Ident.Next)
	}
}

func TestParseCast(t *testing.T) {
	source := `void main() {
    float x = (float)value;
}`

	program := parseSource(t, source)

	fn := program.GlobalDecls[0].(*FunctionDecl)
	stmt := fn.Body.Stmts[0].(*VarDeclStmt)
	cast, ok := stmt.Vars[0].Initializer.(*CastExpr)
	if !ok {
		t.Fatalf("expected *CastExpr, got %T", stmt.Vars[0].Initializer)
	}
	if cast.Type.BaseType != "float" {
		t.Errorf("expected cast to 'float', got %q", cast.Type.BaseType)
	}
}

func TestParseParenthesizedExpression(t *testing.T) {
	// "(x)" alone is grouping, not a cast
	source := `void main() {
    float y = (x);
}`

	program := parseSource(t, source)

	fn := program.GlobalDecls[0].(*FunctionDecl)
	stmt := fn.Body.Stmts[0].(*VarDeclStmt)
	if _, ok := stmt.Vars[0].Initializer.(*BracketExpr); !ok {
		t.Fatalf("expected *BracketExpr, got %T", stmt.Vars[0].Initializer)
	}
}

func TestParseInitializerList(t *testing.T) {
	source := `float2 corners[2] = { { 0.0, 0.0 }, { 1.0, 1.0 } };`

	program := parseSource(t, source)

	stmt := program.GlobalDecls[0].(*VarDeclStmt)
	init, ok := stmt.Vars[0].Initializer.(*InitializerExpr)
	if !ok {
		t.Fatalf("expected *InitializerExpr, got %T", stmt.Vars[0].Initializer)
	}
	if len(init.Exprs) != 2 {
		t.Fatalf("expected 2 nested initializers, got %d", len(init.Exprs))
	}
	if _, ok := init.Exprs[0].(*InitializerExpr); !ok {
		t.Errorf("expected nested *InitializerExpr, got %T", init.Exprs[0])
	}
}

func TestParseErrorRecovery(t *testing.T) {
	// the bad declaration is skipped, the good one still parses
	source := `float4 broken = ;
float4 ok = 1.0;`

	program, err := tryParseSource(t, source)
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}
	if program == nil {
		t.Fatal("expected partial program, got nil")
	}

	found := false
	for _, decl := range program.GlobalDecls {
		if stmt, ok := decl.(*VarDeclStmt); ok && len(stmt.Vars) > 0 && stmt.Vars[0].Name == "ok" {
			found = true
		}
	}
	if !found {
		t.Error("parser did not recover past the bad declaration")
	}
}

func TestParseErrorPosition(t *testing.T) {
	source := "float4 broken = ;"

	_, err := tryParseSource(t, source)
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}

	var errs ParseErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ParseErrors, got %T", err)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Token.Line != 1 {
		t.Errorf("expected error on line 1, got %d", errs[0].Token.Line)
	}
}
