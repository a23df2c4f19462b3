package hlsl

// Flags is a bitset of decoration flags attached to AST nodes.
// The legal bits depend on the node kind: program usage flags live on Program,
// entry-point flags on FunctionDecl, shader interface flags on Structure and
// VarDeclStmt.
type Flags uint16

const (
	// Program flags
	FlagMulIntrinsicUsed Flags = 1 << iota
	FlagInterlockedIntrinsicsUsed

	// FunctionDecl flags
	FlagIsEntryPoint
	FlagIsUsed

	// Structure and VarDeclStmt flags
	FlagIsShaderInput
	FlagIsShaderOutput
)

// Set sets the given flag bit.
func (f *Flags) Set(flag Flags) { *f |= flag }

// Has reports whether the given flag bit is set.
func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Span
}

// GlobalDecl is the interface for global declarations.
type GlobalDecl interface {
	Node
	globalDeclNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of an HLSL translation unit.
// It owns its global declarations; Flags carries program-wide usage bits
// set during semantic decoration.
type Program struct {
	GlobalDecls []GlobalDecl
	Flags       Flags
	Span        Span
}

func (p *Program) Pos() Span { return p.Span }

// FunctionDecl represents a function declaration.
// A forward declaration has a nil Body.
type FunctionDecl struct {
	Attribs    []*Attribute
	ReturnType *VarType
	Name       string
	Params     []*VarDeclStmt
	Semantic   string // return value semantic, e.g. SV_Target
	Body       *CodeBlock
	Flags      Flags
	Span       Span
}

func (f *FunctionDecl) Pos() Span { return f.Span }
func (f *FunctionDecl) globalDeclNode() {}

// BufferDecl represents a constant buffer declaration (cbuffer/tbuffer).
type BufferDecl struct {
	BufferKind   string // "cbuffer" or "tbuffer"
	Name         string
	RegisterName string
	Members      []*VarDeclStmt
	Span         Span
}

func (b *BufferDecl) Pos() Span { return b.Span }
func (b *BufferDecl) globalDeclNode() {}

// StructDecl represents a global structure declaration.
type StructDecl struct {
	Struct *Structure
	Span   Span
}

func (s *StructDecl) Pos() Span { return s.Span }
func (s *StructDecl) globalDeclNode() {}

// Structure represents a structure type, either declared globally (wrapped in
// a StructDecl) or written inline in a VarType. Name may be empty for
// anonymous structures. AliasName labels the interface block instance when
// the structure is used as a shader input or output; it is set at most once.
type Structure struct {
	Name      string
	Members   []*VarDeclStmt
	AliasName string
	Flags     Flags
	Span      Span
}

func (s *Structure) Pos() Span { return s.Span }

// Attribute represents a function attribute, e.g. [numthreads(8, 8, 1)].
type Attribute struct {
	Name string
	Args []Expr
	Span Span
}

func (a *Attribute) Pos() Span { return a.Span }

// CodeBlock represents a braced statement list. Each code block introduces a
// new lexical scope during semantic decoration.
type CodeBlock struct {
	Stmts []Stmt
	Span  Span
}

func (c *CodeBlock) Pos() Span { return c.Span }

// Statements

// VarDeclStmt represents a variable declaration statement: optional
// modifiers, a type, and one or more declared variables. It doubles as a
// global declaration, a local statement, a struct/buffer member, and a
// function parameter.
type VarDeclStmt struct {
	Modifiers []string // storage/interp modifiers: const, static, in, out, ...
	VarType   *VarType
	Vars      []*VarDecl
	Flags     Flags
	Span      Span
}

func (v *VarDeclStmt) Pos() Span { return v.Span }
func (v *VarDeclStmt) globalDeclNode() {}
func (v *VarDeclStmt) stmtNode() {}

// CodeBlockStmt represents a nested braced block used as a statement.
type CodeBlockStmt struct {
	Block *CodeBlock
	Span  Span
}

func (c *CodeBlockStmt) Pos() Span { return c.Span }
func (c *CodeBlockStmt) stmtNode() {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr // nil for bare return
	Span  Span
}

func (r *ReturnStmt) Pos() Span { return r.Span }
func (r *ReturnStmt) stmtNode() {}

// IfStmt represents an if statement.
type IfStmt struct {
	Cond Expr
	Body Stmt
	Else Stmt // nil, *IfStmt, or any Stmt
	Span Span
}

func (i *IfStmt) Pos() Span { return i.Span }
func (i *IfStmt) stmtNode() {}

// ForStmt represents a for loop.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Iter Expr
	Body Stmt
	Span Span
}

func (f *ForStmt) Pos() Span { return f.Span }
func (f *ForStmt) stmtNode() {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Span Span
}

func (w *WhileStmt) Pos() Span { return w.Span }
func (w *WhileStmt) stmtNode() {}

// DoWhileStmt represents a do-while loop.
type DoWhileStmt struct {
	Body Stmt
	Cond Expr
	Span Span
}

func (d *DoWhileStmt) Pos() Span { return d.Span }
func (d *DoWhileStmt) stmtNode() {}

// CtrlTransferStmt represents break, continue, or discard.
type CtrlTransferStmt struct {
	Transfer string // "break", "continue", "discard"
	Span     Span
}

func (c *CtrlTransferStmt) Pos() Span { return c.Span }
func (c *CtrlTransferStmt) stmtNode() {}

// ExprStmt represents an expression statement.
type ExprStmt struct {
	Expr Expr
	Span Span
}

func (e *ExprStmt) Pos() Span { return e.Span }
func (e *ExprStmt) stmtNode() {}

// Variables

// VarType represents a variable type: either a named base type (e.g. float4,
// or a structure name) or an inline structure. SymbolRef is a non-owning
// reference to the declaring node resolved during semantic decoration; the
// referenced node stays owned by the tree it was declared in.
type VarType struct {
	BaseType  string
	Struct    *Structure
	SymbolRef Node
	Span      Span
}

func (v *VarType) Pos() Span { return v.Span }

// VarDecl represents a single declared variable within a VarDeclStmt.
type VarDecl struct {
	Name        string
	ArrayDims   []Expr
	Semantics   []*VarSemantic
	Initializer Expr // nil when absent
	Span        Span
}

func (v *VarDecl) Pos() Span { return v.Span }

// VarIdent represents a (possibly chained) variable identifier with optional
// array indices, e.g. lights[i].color.
type VarIdent struct {
	Name         string
	ArrayIndices []Expr
	Next         *VarIdent // next member-access segment, nil at chain end
	Span         Span
}

func (v *VarIdent) Pos() Span { return v.Span }

// Full returns the fully-qualified dotted name of the identifier chain.
func (v *VarIdent) Full() string {
	name := v.Name
	for next := v.Next; next != nil; next = next.Next {
		name += "." + next.Name
	}
	return name
}

// VarSemantic represents a semantic annotation, e.g. ": SV_Target" or
// ": packoffset(c0.x)".
type VarSemantic struct {
	Semantic string
	Offset   *PackOffset // nil when the annotation is not a packoffset
	Span     Span
}

func (v *VarSemantic) Pos() Span { return v.Span }

// PackOffset represents a packoffset annotation.
type PackOffset struct {
	RegisterName    string
	VectorComponent string
	Span            Span
}

func (p *PackOffset) Pos() Span { return p.Span }

// Expressions

// LiteralExpr represents a literal value.
type LiteralExpr struct {
	Kind  TokenKind // TokenIntLiteral, TokenFloatLiteral, TokenTrue, TokenFalse
	Value string
	Span  Span
}

func (l *LiteralExpr) Pos() Span { return l.Span }
func (l *LiteralExpr) exprNode() {}

// VarAccessExpr represents a variable access, optionally with a trailing
// assignment (HLSL folds assignment into the access, e.g. "x += 1").
type VarAccessExpr struct {
	Ident      *VarIdent
	AssignOp   TokenKind // TokenEOF when no assignment
	AssignExpr Expr      // nil when no assignment
	Span       Span
}

func (v *VarAccessExpr) Pos() Span { return v.Span }
func (v *VarAccessExpr) exprNode() {}

// CallExpr represents a function call.
type CallExpr struct {
	Name *VarIdent
	Args []Expr
	Span Span
}

func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) exprNode() {}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Left  Expr
	Op    TokenKind
	Right Expr
	Span  Span
}

func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) exprNode() {}

// UnaryExpr represents a unary expression.
type UnaryExpr struct {
	Op      TokenKind
	Operand Expr
	Span    Span
}

func (u *UnaryExpr) Pos() Span { return u.Span }
func (u *UnaryExpr) exprNode() {}

// TernaryExpr represents a conditional expression: cond ? then : else.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Span Span
}

func (t *TernaryExpr) Pos() Span { return t.Span }
func (t *TernaryExpr) exprNode() {}

// BracketExpr represents a parenthesized expression.
type BracketExpr struct {
	Inner Expr
	Span  Span
}

func (b *BracketExpr) Pos() Span { return b.Span }
func (b *BracketExpr) exprNode() {}

// CastExpr represents a C-style cast: (type)expr.
type CastExpr struct {
	Type *VarType
	Expr Expr
	Span Span
}

func (c *CastExpr) Pos() Span { return c.Span }
func (c *CastExpr) exprNode() {}

// InitializerExpr represents a braced initializer list: { a, b, c }.
type InitializerExpr struct {
	Exprs []Expr
	Span  Span
}

func (i *InitializerExpr) Pos() Span { return i.Span }
func (i *InitializerExpr) exprNode() {}
