package hlsl

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral

	// Operators
	TokenPlus           // +
	TokenMinus          // -
	TokenStar           // *
	TokenSlash          // /
	TokenPercent        // %
	TokenAmpersand      // &
	TokenPipe           // |
	TokenCaret          // ^
	TokenTilde          // ~
	TokenBang           // !
	TokenEqual          // =
	TokenLess           // <
	TokenGreater        // >
	TokenDot            // .
	TokenComma          // ,
	TokenColon          // :
	TokenSemicolon      // ;
	TokenQuestion       // ?
	TokenPlusPlus       // ++
	TokenMinusMinus     // --
	TokenEqualEqual     // ==
	TokenBangEqual      // !=
	TokenLessEqual      // <=
	TokenGreaterEqual   // >=
	TokenAmpAmp         // &&
	TokenPipePipe       // ||
	TokenLessLess       // <<
	TokenGreaterGreater // >>
	TokenPlusEqual      // +=
	TokenMinusEqual     // -=
	TokenStarEqual      // *=
	TokenSlashEqual     // /=
	TokenPercentEqual   // %=

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Keywords
	TokenBreak
	TokenCBuffer
	TokenContinue
	TokenDiscard
	TokenDo
	TokenElse
	TokenFalse
	TokenFor
	TokenIf
	TokenPackOffset
	TokenRegister
	TokenReturn
	TokenStruct
	TokenTBuffer
	TokenTrue
	TokenWhile
)

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "Error"
	case TokenIdent:
		return "Ident"
	case TokenIntLiteral:
		return "IntLiteral"
	case TokenFloatLiteral:
		return "FloatLiteral"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenEqual:
		return "="
	case TokenDot:
		return "."
	case TokenComma:
		return ","
	case TokenColon:
		return ":"
	case TokenSemicolon:
		return ";"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenLeftBracket:
		return "["
	case TokenRightBracket:
		return "]"
	case TokenStruct:
		return "struct"
	case TokenCBuffer:
		return "cbuffer"
	case TokenTBuffer:
		return "tbuffer"
	case TokenRegister:
		return "register"
	case TokenPackOffset:
		return "packoffset"
	case TokenReturn:
		return "return"
	case TokenIf:
		return "if"
	case TokenElse:
		return "else"
	case TokenFor:
		return "for"
	case TokenWhile:
		return "while"
	case TokenDo:
		return "do"
	case TokenBreak:
		return "break"
	case TokenContinue:
		return "continue"
	case TokenDiscard:
		return "discard"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}

// Span represents a source code location span.
type Span struct {
	Start Position
	End   Position
}

// Position represents a position in source code.
type Position struct {
	Line   int
	Column int
	Offset int
}
