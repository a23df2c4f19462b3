package hlsl

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes HLSL source code.
type Lexer struct {
	source string
	pos    int
	line   int
	column int

	// start of the token being scanned
	startPos    int
	startLine   int
	startColumn int

	tokens []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, len(source)/6+16), // ~1 token per 6 chars
	}
}

// Tokenize returns all tokens from the source. Unrecognized characters become
// TokenError tokens rather than aborting the scan.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		l.skipTrivia()
		if l.isAtEnd() {
			break
		}
		l.mark()
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenEOF,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

// skipTrivia consumes whitespace and comments between tokens.
func (l *Lexer) skipTrivia() {
	for !l.isAtEnd() {
		switch {
		case l.peek() == ' ' || l.peek() == '\t' || l.peek() == '\r' || l.peek() == '\n':
			l.advance()
		case l.peek() == '/' && l.peekNext() == '/':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		case l.peek() == '/' && l.peekNext() == '*':
			l.advance()
			l.advance()
			l.blockComment()
		default:
			return
		}
	}
}

// blockComment consumes a block comment body; the opening marker has already
// been consumed. Block comments nest.
func (l *Lexer) blockComment() {
	depth := 1
	for depth > 0 && !l.isAtEnd() {
		switch {
		case l.peek() == '/' && l.peekNext() == '*':
			l.advance()
			l.advance()
			depth++
		case l.peek() == '*' && l.peekNext() == '/':
			l.advance()
			l.advance()
			depth--
		default:
			l.advance()
		}
	}
}

func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '(':
		l.emit(TokenLeftParen)
	case ')':
		l.emit(TokenRightParen)
	case '{':
		l.emit(TokenLeftBrace)
	case '}':
		l.emit(TokenRightBrace)
	case '[':
		l.emit(TokenLeftBracket)
	case ']':
		l.emit(TokenRightBracket)
	case ',':
		l.emit(TokenComma)
	case '.':
		l.emit(TokenDot)
	case ':':
		l.emit(TokenColon)
	case ';':
		l.emit(TokenSemicolon)
	case '?':
		l.emit(TokenQuestion)
	case '~':
		l.emit(TokenTilde)
	case '^':
		l.emit(TokenCaret)

	case '*':
		l.opEq(TokenStarEqual, TokenStar)
	case '/':
		// comments were consumed as trivia
		l.opEq(TokenSlashEqual, TokenSlash)
	case '%':
		l.opEq(TokenPercentEqual, TokenPercent)
	case '=':
		l.opEq(TokenEqualEqual, TokenEqual)
	case '!':
		l.opEq(TokenBangEqual, TokenBang)

	case '+':
		switch {
		case l.match('+'):
			l.emit(TokenPlusPlus)
		case l.match('='):
			l.emit(TokenPlusEqual)
		default:
			l.emit(TokenPlus)
		}
	case '-':
		switch {
		case l.match('-'):
			l.emit(TokenMinusMinus)
		case l.match('='):
			l.emit(TokenMinusEqual)
		default:
			l.emit(TokenMinus)
		}
	case '<':
		switch {
		case l.match('<'):
			l.emit(TokenLessLess)
		case l.match('='):
			l.emit(TokenLessEqual)
		default:
			l.emit(TokenLess)
		}
	case '>':
		switch {
		case l.match('>'):
			l.emit(TokenGreaterGreater)
		case l.match('='):
			l.emit(TokenGreaterEqual)
		default:
			l.emit(TokenGreater)
		}

	case '&':
		if l.match('&') {
			l.emit(TokenAmpAmp)
		} else {
			l.emit(TokenAmpersand)
		}
	case '|':
		if l.match('|') {
			l.emit(TokenPipePipe)
		} else {
			l.emit(TokenPipe)
		}

	default:
		switch {
		case isDigit(r):
			l.number()
		case isIdentStart(r):
			l.identifier()
		default:
			l.emit(TokenError)
		}
	}
}

// number scans an integer or float literal. The first digit has already been
// consumed.
func (l *Lexer) number() {
	// hex literal
	if l.source[l.startPos] == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.advance()
		for isHexDigit(l.peek()) {
			l.advance()
		}
		l.emit(TokenIntLiteral)
		return
	}

	l.digits()

	isFloat := false

	// Fractional part. HLSL allows "1." as a float literal, but "1.x" is
	// swizzle access on the int literal 1.
	if l.peek() == '.' && !isIdentStart(l.peekNext()) {
		isFloat = true
		l.advance()
		l.digits()
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.digits()
	}

	switch l.peek() {
	case 'f', 'F', 'h', 'H':
		isFloat = true
		l.advance()
	case 'u', 'U', 'l', 'L':
		if !isFloat {
			l.advance()
		}
	}

	if isFloat {
		l.emit(TokenFloatLiteral)
	} else {
		l.emit(TokenIntLiteral)
	}
}

func (l *Lexer) digits() {
	for isDigit(l.peek()) {
		l.advance()
	}
}

var keywords = map[string]TokenKind{
	"break":      TokenBreak,
	"cbuffer":    TokenCBuffer,
	"continue":   TokenContinue,
	"discard":    TokenDiscard,
	"do":         TokenDo,
	"else":       TokenElse,
	"false":      TokenFalse,
	"for":        TokenFor,
	"if":         TokenIf,
	"packoffset": TokenPackOffset,
	"register":   TokenRegister,
	"return":     TokenReturn,
	"struct":     TokenStruct,
	"tbuffer":    TokenTBuffer,
	"true":       TokenTrue,
	"while":      TokenWhile,
}

func (l *Lexer) identifier() {
	for isIdentStart(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	if kind, ok := keywords[l.lexeme()]; ok {
		l.emit(kind)
		return
	}
	l.emit(TokenIdent)
}

// mark records the start of the next token.
func (l *Lexer) mark() {
	l.startPos = l.pos
	l.startLine = l.line
	l.startColumn = l.column
}

func (l *Lexer) lexeme() string {
	return l.source[l.startPos:l.pos]
}

func (l *Lexer) emit(kind TokenKind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: l.lexeme(),
		Line:   l.startLine,
		Column: l.startColumn,
	})
}

// opEq emits eqKind when '=' follows, otherwise kind.
func (l *Lexer) opEq(eqKind, kind TokenKind) {
	if l.match('=') {
		l.emit(eqKind)
	} else {
		l.emit(kind)
	}
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.pos >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
