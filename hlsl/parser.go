package hlsl

import (
	"fmt"
)

// Parser parses HLSL tokens into an AST.
type Parser struct {
	tokens  []Token
	current int
	errors  []ParseError
}

// NewParser creates a new parser for the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
	}
}

// Parse parses the tokens and returns a Program AST.
func (p *Parser) Parse() (*Program, error) {
	program := &Program{}

	for !p.isAtEnd() {
		decl, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, *err)
			p.synchronize()
			continue
		}
		if decl != nil {
			program.GlobalDecls = append(program.GlobalDecls, decl)
		}
	}

	if len(p.errors) > 0 {
		return program, fmt.Errorf("parsing failed with %d error(s): %w", len(p.errors), ParseErrors(p.errors))
	}

	return program, nil
}

// declaration parses a top-level declaration.
func (p *Parser) declaration() (GlobalDecl, *ParseError) {
	attrs := p.attributes()

	switch {
	case p.check(TokenStruct):
		return p.structOrVarDecl()
	case p.check(TokenCBuffer), p.check(TokenTBuffer):
		return p.bufferDecl()
	case p.check(TokenEOF):
		p.advance()
		return nil, nil
	case p.check(TokenSemicolon):
		// stray semicolon
		p.advance()
		return nil, nil
	default:
		return p.functionOrVarDecl(attrs)
	}
}

// attributes parses a list of attributes ([unroll], [numthreads(8, 8, 1)], ...).
func (p *Parser) attributes() []*Attribute {
	var attrs []*Attribute

	for p.check(TokenLeftBracket) {
		start := p.peek()
		p.advance() // consume [

		if !p.check(TokenIdent) {
			continue
		}

		name := p.advance()
		attr := &Attribute{
			Name: name.Lexeme,
			Span: spanAt(start),
		}

		if p.match(TokenLeftParen) {
			for !p.check(TokenRightParen) && !p.isAtEnd() {
				arg, err := p.expression()
				if err != nil {
					break
				}
				attr.Args = append(attr.Args, arg)

				if !p.match(TokenComma) {
					break
				}
			}
			p.match(TokenRightParen)
		}

		p.match(TokenRightBracket)
		attrs = append(attrs, attr)
	}

	return attrs
}

// structOrVarDecl parses a global structure declaration, or a global variable
// declaration whose type is an inline structure.
func (p *Parser) structOrVarDecl() (GlobalDecl, *ParseError) {
	start := p.peek()
	structure, err := p.structure()
	if err != nil {
		return nil, err
	}

	if p.check(TokenIdent) {
		// "struct { ... } name;" declares a variable of the inline type
		return p.varDeclStmtWithType(&VarType{Struct: structure, Span: structure.Span}, nil, start)
	}

	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &StructDecl{Struct: structure, Span: spanAt(start)}, nil
}

// structure parses "struct [name] { members }".
func (p *Parser) structure() (*Structure, *ParseError) {
	start := p.peek()
	if !p.match(TokenStruct) {
		return nil, &ParseError{Message: "expected 'struct'", Token: p.peek()}
	}

	var name string
	if p.check(TokenIdent) {
		name = p.advance().Lexeme
	}

	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	var members []*VarDeclStmt
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		member, err := p.varDeclStmt()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}

	return &Structure{
		Name:    name,
		Members: members,
		Span:    spanAt(start),
	}, nil
}

// bufferDecl parses "cbuffer|tbuffer [name] [: register(reg)] { members } [;]".
func (p *Parser) bufferDecl() (*BufferDecl, *ParseError) {
	start := p.advance() // cbuffer or tbuffer

	buffer := &BufferDecl{
		BufferKind: start.Lexeme,
		Span:       spanAt(start),
	}

	if p.check(TokenIdent) {
		buffer.Name = p.advance().Lexeme
	}

	if p.match(TokenColon) {
		if err := p.expect(TokenRegister); err != nil {
			return nil, err
		}
		if err := p.expect(TokenLeftParen); err != nil {
			return nil, err
		}
		if !p.check(TokenIdent) {
			return nil, &ParseError{Message: "expected register name", Token: p.peek()}
		}
		buffer.RegisterName = p.advance().Lexeme
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
	}

	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		member, err := p.varDeclStmt()
		if err != nil {
			return nil, err
		}
		buffer.Members = append(buffer.Members, member)
	}

	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}
	p.match(TokenSemicolon)

	return buffer, nil
}

// functionOrVarDecl parses a declaration that starts with modifiers and a
// type: a function when the declared name is followed by '(', otherwise a
// global variable declaration statement.
func (p *Parser) functionOrVarDecl(attrs []*Attribute) (GlobalDecl, *ParseError) {
	start := p.peek()
	modifiers := p.modifiers()

	varType, err := p.varType()
	if err != nil {
		return nil, err
	}

	if p.check(TokenIdent) && p.checkAt(1, TokenLeftParen) {
		return p.functionDecl(attrs, varType, start)
	}

	return p.varDeclStmtWithType(varType, modifiers, start)
}

// functionDecl parses a function declaration after its return type.
// A trailing ';' instead of a body makes it a forward declaration.
func (p *Parser) functionDecl(attrs []*Attribute, returnType *VarType, start Token) (*FunctionDecl, *ParseError) {
	name := p.advance()

	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	params := make([]*VarDeclStmt, 0, 4) // most functions have few params
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		param, err := p.parameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		if !p.match(TokenComma) {
			break
		}
	}

	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	// Return value semantic (optional)
	var semantic string
	if p.match(TokenColon) {
		if !p.check(TokenIdent) {
			return nil, &ParseError{Message: "expected return semantic", Token: p.peek()}
		}
		semantic = p.advance().Lexeme
	}

	fn := &FunctionDecl{
		Attribs:    attrs,
		ReturnType: returnType,
		Name:       name.Lexeme,
		Params:     params,
		Semantic:   semantic,
		Span:       spanAt(start),
	}

	if p.match(TokenSemicolon) {
		// forward declaration
		return fn, nil
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	fn.Body = body

	return fn, nil
}

// parameter parses a single function parameter as a variable declaration
// statement with exactly one declared variable.
func (p *Parser) parameter() (*VarDeclStmt, *ParseError) {
	start := p.peek()
	modifiers := p.modifiers()

	varType, err := p.varType()
	if err != nil {
		return nil, err
	}

	if !p.check(TokenIdent) {
		return nil, &ParseError{Message: "expected parameter name", Token: p.peek()}
	}
	varDecl, err := p.varDecl()
	if err != nil {
		return nil, err
	}

	return &VarDeclStmt{
		Modifiers: modifiers,
		VarType:   varType,
		Vars:      []*VarDecl{varDecl},
		Span:      spanAt(start),
	}, nil
}

// varDeclStmt parses "modifiers type var (, var)* ;".
func (p *Parser) varDeclStmt() (*VarDeclStmt, *ParseError) {
	start := p.peek()
	modifiers := p.modifiers()

	varType, err := p.varType()
	if err != nil {
		return nil, err
	}

	return p.varDeclStmtWithType(varType, modifiers, start)
}

// varDeclStmtWithType parses the declared variables after an already-parsed
// type.
func (p *Parser) varDeclStmtWithType(varType *VarType, modifiers []string, start Token) (*VarDeclStmt, *ParseError) {
	stmt := &VarDeclStmt{
		Modifiers: modifiers,
		VarType:   varType,
		Span:      spanAt(start),
	}

	for p.check(TokenIdent) {
		varDecl, err := p.varDecl()
		if err != nil {
			return nil, err
		}
		stmt.Vars = append(stmt.Vars, varDecl)

		if !p.match(TokenComma) {
			break
		}
	}

	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return stmt, nil
}

// varDecl parses "name [dims] (: semantic)* [= initializer]".
func (p *Parser) varDecl() (*VarDecl, *ParseError) {
	name := p.advance()
	varDecl := &VarDecl{
		Name: name.Lexeme,
		Span: spanAt(name),
	}

	for p.match(TokenLeftBracket) {
		// runtime-unsized dims ("float x[]") carry a nil expression
		if !p.check(TokenRightBracket) {
			dim, err := p.expression()
			if err != nil {
				return nil, err
			}
			varDecl.ArrayDims = append(varDecl.ArrayDims, dim)
		} else {
			varDecl.ArrayDims = append(varDecl.ArrayDims, nil)
		}
		if err := p.expect(TokenRightBracket); err != nil {
			return nil, err
		}
	}

	for p.match(TokenColon) {
		semantic, err := p.varSemantic()
		if err != nil {
			return nil, err
		}
		varDecl.Semantics = append(varDecl.Semantics, semantic)
	}

	if p.match(TokenEqual) {
		init, err := p.initializer()
		if err != nil {
			return nil, err
		}
		varDecl.Initializer = init
	}

	return varDecl, nil
}

// varSemantic parses the annotation after ':' in a variable declaration:
// a plain semantic name, a register binding, or a packoffset.
func (p *Parser) varSemantic() (*VarSemantic, *ParseError) {
	start := p.peek()

	switch {
	case p.match(TokenPackOffset):
		if err := p.expect(TokenLeftParen); err != nil {
			return nil, err
		}
		if !p.check(TokenIdent) {
			return nil, &ParseError{Message: "expected packoffset register", Token: p.peek()}
		}
		offset := &PackOffset{
			RegisterName: p.advance().Lexeme,
			Span:         spanAt(start),
		}
		if p.match(TokenDot) {
			if !p.check(TokenIdent) {
				return nil, &ParseError{Message: "expected packoffset component", Token: p.peek()}
			}
			offset.VectorComponent = p.advance().Lexeme
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return &VarSemantic{Semantic: "packoffset", Offset: offset, Span: spanAt(start)}, nil

	case p.match(TokenRegister):
		if err := p.expect(TokenLeftParen); err != nil {
			return nil, err
		}
		if !p.check(TokenIdent) {
			return nil, &ParseError{Message: "expected register name", Token: p.peek()}
		}
		name := p.advance().Lexeme
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return &VarSemantic{Semantic: name, Span: spanAt(start)}, nil

	case p.check(TokenIdent):
		name := p.advance()
		return &VarSemantic{Semantic: name.Lexeme, Span: spanAt(name)}, nil

	default:
		return nil, &ParseError{Message: "expected semantic name", Token: p.peek()}
	}
}

// initializer parses either a braced initializer list or an expression.
func (p *Parser) initializer() (Expr, *ParseError) {
	if p.check(TokenLeftBrace) {
		start := p.advance()
		init := &InitializerExpr{Span: spanAt(start)}
		for !p.check(TokenRightBrace) && !p.isAtEnd() {
			expr, err := p.initializer()
			if err != nil {
				return nil, err
			}
			init.Exprs = append(init.Exprs, expr)
			if !p.match(TokenComma) {
				break
			}
		}
		if err := p.expect(TokenRightBrace); err != nil {
			return nil, err
		}
		return init, nil
	}
	return p.expression()
}

// varType parses a type: a named base type or an inline structure.
func (p *Parser) varType() (*VarType, *ParseError) {
	start := p.peek()

	if p.check(TokenStruct) {
		structure, err := p.structure()
		if err != nil {
			return nil, err
		}
		return &VarType{Struct: structure, Span: spanAt(start)}, nil
	}

	if !p.check(TokenIdent) {
		return nil, &ParseError{Message: fmt.Sprintf("unexpected token %s, expected type", p.peek().Kind), Token: p.peek()}
	}
	name := p.advance()
	return &VarType{BaseType: name.Lexeme, Span: spanAt(name)}, nil
}

// typeModifiers is the set of storage and interpolation modifiers accepted
// before a type.
var typeModifiers = map[string]bool{
	"const":           true,
	"static":          true,
	"uniform":         true,
	"extern":          true,
	"volatile":        true,
	"groupshared":     true,
	"shared":          true,
	"precise":         true,
	"row_major":       true,
	"column_major":    true,
	"in":              true,
	"out":             true,
	"inout":           true,
	"linear":          true,
	"centroid":        true,
	"nointerpolation": true,
	"noperspective":   true,
	"sample":          true,
}

// modifiers consumes leading storage/interpolation modifiers.
func (p *Parser) modifiers() []string {
	var mods []string
	for p.check(TokenIdent) && typeModifiers[p.peek().Lexeme] {
		mods = append(mods, p.advance().Lexeme)
	}
	return mods
}

// Statements

// block parses "{ statements }".
func (p *Parser) block() (*CodeBlock, *ParseError) {
	start := p.peek()
	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	blk := &CodeBlock{Span: spanAt(start)}
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			blk.Stmts = append(blk.Stmts, stmt)
		}
	}

	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}
	return blk, nil
}

// statement parses a single statement.
func (p *Parser) statement() (Stmt, *ParseError) {
	start := p.peek()

	switch {
	case p.check(TokenLeftBrace):
		blk, err := p.block()
		if err != nil {
			return nil, err
		}
		return &CodeBlockStmt{Block: blk, Span: spanAt(start)}, nil

	case p.match(TokenReturn):
		stmt := &ReturnStmt{Span: spanAt(start)}
		if !p.check(TokenSemicolon) {
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			stmt.Value = value
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return stmt, nil

	case p.match(TokenIf):
		return p.ifStmt(start)

	case p.match(TokenFor):
		return p.forStmt(start)

	case p.match(TokenWhile):
		if err := p.expect(TokenLeftParen); err != nil {
			return nil, err
		}
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		body, err := p.statement()
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Cond: cond, Body: body, Span: spanAt(start)}, nil

	case p.match(TokenDo):
		body, err := p.statement()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenWhile); err != nil {
			return nil, err
		}
		if err := p.expect(TokenLeftParen); err != nil {
			return nil, err
		}
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return &DoWhileStmt{Body: body, Cond: cond, Span: spanAt(start)}, nil

	case p.check(TokenBreak), p.check(TokenContinue), p.check(TokenDiscard):
		transfer := p.advance()
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return &CtrlTransferStmt{Transfer: transfer.Lexeme, Span: spanAt(transfer)}, nil

	case p.check(TokenSemicolon):
		p.advance()
		return nil, nil

	case p.check(TokenStruct):
		return p.varDeclStmt()

	case p.check(TokenIdent) && (typeModifiers[p.peek().Lexeme] || p.checkAt(1, TokenIdent)):
		return p.varDeclStmt()

	default:
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return &ExprStmt{Expr: expr, Span: spanAt(start)}, nil
	}
}

func (p *Parser) ifStmt(start Token) (*IfStmt, *ParseError) {
	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Cond: cond, Body: body, Span: spanAt(start)}
	if p.match(TokenElse) {
		elseStmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseStmt
	}
	return stmt, nil
}

func (p *Parser) forStmt(start Token) (*ForStmt, *ParseError) {
	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	stmt := &ForStmt{Span: spanAt(start)}

	// init
	if !p.match(TokenSemicolon) {
		init, err := p.statement() // consumes the ';'
		if err != nil {
			return nil, err
		}
		stmt.Init = init
	}

	// condition
	if !p.check(TokenSemicolon) {
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	// iteration
	if !p.check(TokenRightParen) {
		iter, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Iter = iter
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body

	return stmt, nil
}

// Expressions

func (p *Parser) expression() (Expr, *ParseError) {
	return p.ternary()
}

func (p *Parser) ternary() (Expr, *ParseError) {
	cond, err := p.logicalOr()
	if err != nil {
		return nil, err
	}

	if p.check(TokenQuestion) {
		start := p.advance()
		then, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		elseExpr, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &TernaryExpr{Cond: cond, Then: then, Else: elseExpr, Span: spanAt(start)}, nil
	}

	return cond, nil
}

func (p *Parser) logicalOr() (Expr, *ParseError) {
	return p.binaryExpr(p.logicalAnd, TokenPipePipe)
}

func (p *Parser) logicalAnd() (Expr, *ParseError) {
	return p.binaryExpr(p.bitOr, TokenAmpAmp)
}

func (p *Parser) bitOr() (Expr, *ParseError) {
	return p.binaryExpr(p.bitXor, TokenPipe)
}

func (p *Parser) bitXor() (Expr, *ParseError) {
	return p.binaryExpr(p.bitAnd, TokenCaret)
}

func (p *Parser) bitAnd() (Expr, *ParseError) {
	return p.binaryExpr(p.equality, TokenAmpersand)
}

func (p *Parser) equality() (Expr, *ParseError) {
	return p.binaryExpr(p.comparison, TokenEqualEqual, TokenBangEqual)
}

func (p *Parser) comparison() (Expr, *ParseError) {
	return p.binaryExpr(p.shift, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual)
}

func (p *Parser) shift() (Expr, *ParseError) {
	return p.binaryExpr(p.term, TokenLessLess, TokenGreaterGreater)
}

func (p *Parser) term() (Expr, *ParseError) {
	return p.binaryExpr(p.factor, TokenPlus, TokenMinus)
}

func (p *Parser) factor() (Expr, *ParseError) {
	return p.binaryExpr(p.unary, TokenStar, TokenSlash, TokenPercent)
}

// binaryExpr parses a left-associative binary expression level.
func (p *Parser) binaryExpr(next func() (Expr, *ParseError), ops ...TokenKind) (Expr, *ParseError) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		matched := false
		for _, op := range ops {
			if p.check(op) {
				opTok := p.advance()
				right, err := next()
				if err != nil {
					return nil, err
				}
				left = &BinaryExpr{Left: left, Op: opTok.Kind, Right: right, Span: spanAt(opTok)}
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
	}
}

func (p *Parser) unary() (Expr, *ParseError) {
	switch {
	case p.check(TokenBang), p.check(TokenMinus), p.check(TokenPlus),
		p.check(TokenTilde), p.check(TokenPlusPlus), p.check(TokenMinusMinus):
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op.Kind, Operand: operand, Span: spanAt(op)}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (Expr, *ParseError) {
	start := p.peek()

	switch {
	case p.check(TokenIntLiteral), p.check(TokenFloatLiteral),
		p.check(TokenTrue), p.check(TokenFalse):
		tok := p.advance()
		return &LiteralExpr{Kind: tok.Kind, Value: tok.Lexeme, Span: spanAt(tok)}, nil

	case p.check(TokenLeftParen):
		// "(name)operand" is a cast when name is a lone identifier and an
		// expression follows the closing paren
		if p.checkAt(1, TokenIdent) && p.checkAt(2, TokenRightParen) && p.startsExprAt(3) {
			p.advance() // (
			varType, err := p.varType()
			if err != nil {
				return nil, err
			}
			p.advance() // )
			operand, err := p.unary()
			if err != nil {
				return nil, err
			}
			return &CastExpr{Type: varType, Expr: operand, Span: spanAt(start)}, nil
		}

		p.advance() // (
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return &BracketExpr{Inner: inner, Span: spanAt(start)}, nil

	case p.check(TokenIdent):
		ident, err := p.varIdent()
		if err != nil {
			return nil, err
		}

		if p.match(TokenLeftParen) {
			call := &CallExpr{Name: ident, Span: spanAt(start)}
			for !p.check(TokenRightParen) && !p.isAtEnd() {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
				if !p.match(TokenComma) {
					break
				}
			}
			if err := p.expect(TokenRightParen); err != nil {
				return nil, err
			}
			return call, nil
		}

		access := &VarAccessExpr{Ident: ident, AssignOp: TokenEOF, Span: spanAt(start)}
		switch {
		case p.check(TokenEqual), p.check(TokenPlusEqual), p.check(TokenMinusEqual),
			p.check(TokenStarEqual), p.check(TokenSlashEqual), p.check(TokenPercentEqual):
			op := p.advance()
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			access.AssignOp = op.Kind
			access.AssignExpr = value
		case p.check(TokenPlusPlus), p.check(TokenMinusMinus):
			op := p.advance()
			return &UnaryExpr{Op: op.Kind, Operand: access, Span: spanAt(op)}, nil
		}
		return access, nil

	default:
		return nil, &ParseError{
			Message: fmt.Sprintf("unexpected token %s, expected expression", start.Kind),
			Token:   start,
		}
	}
}

// varIdent parses an identifier chain with optional array indices:
// "lights[i].color".
func (p *Parser) varIdent() (*VarIdent, *ParseError) {
	if !p.check(TokenIdent) {
		return nil, &ParseError{Message: "expected identifier", Token: p.peek()}
	}
	name := p.advance()

	ident := &VarIdent{Name: name.Lexeme, Span: spanAt(name)}

	for p.match(TokenLeftBracket) {
		index, err := p.expression()
		if err != nil {
			return nil, err
		}
		ident.ArrayIndices = append(ident.ArrayIndices, index)
		if err := p.expect(TokenRightBracket); err != nil {
			return nil, err
		}
	}

	if p.match(TokenDot) {
		next, err := p.varIdent()
		if err != nil {
			return nil, err
		}
		ident.Next = next
	}

	return ident, nil
}

// Helpers

// startsExprAt reports whether the token at the given offset can begin an
// expression. Used for cast disambiguation.
func (p *Parser) startsExprAt(offset int) bool {
	switch p.peekAt(offset).Kind {
	case TokenIdent, TokenIntLiteral, TokenFloatLiteral, TokenTrue, TokenFalse,
		TokenLeftParen, TokenMinus, TokenPlus, TokenBang, TokenTilde:
		return true
	}
	return false
}

func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.peek().Kind == TokenSemicolon {
			p.advance()
			return
		}
		if p.peek().Kind == TokenRightBrace {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) Token {
	if p.current+offset >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.current+offset]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkAt(offset int, kind TokenKind) bool {
	return p.peekAt(offset).Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) *ParseError {
	if p.match(kind) {
		return nil
	}
	return &ParseError{
		Message: fmt.Sprintf("expected %s, found %s", kind, p.peek().Kind),
		Token:   p.peek(),
	}
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.peek().Kind == TokenEOF
}

func spanAt(tok Token) Span {
	return Span{Start: Position{Line: tok.Line, Column: tok.Column}}
}
