package assembler

import "fmt"

// TokenKind defines the type of a lexed token.
type TokenKind int

const (
	// TokenIdent is an identifier: a mnemonic, register, directive or symbol name.
	TokenIdent TokenKind = iota
	// TokenNumber is a decimal, hexadecimal (#) or binary (%) literal.
	TokenNumber
	// TokenString is a double-quoted string literal.
	TokenString
	// TokenColon terminates a label definition.
	TokenColon
	// TokenComma separates operands.
	TokenComma
	// TokenLBracket opens the indirect register form [i].
	TokenLBracket
	// TokenRBracket closes the indirect register form [i].
	TokenRBracket
	// TokenNewline ends a statement.
	TokenNewline
	// TokenEOF marks the end of the token stream.
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenColon:
		return ":"
	case TokenComma:
		return ","
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenNewline:
		return "newline"
	case TokenEOF:
		return "end of input"
	}
	return "invalid"
}

// Position locates a token or diagnostic in the source.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Token is one lexical element of the source. Identifiers are stored
// lowercased; the assembly is case-insensitive throughout.
type Token struct {
	Kind  TokenKind
	Text  string // identifier text, or the raw literal as written
	Value uint16 // numeric value for TokenNumber
	Bytes []byte // decoded bytes for TokenString, escapes applied
	Pos   Position
}

func (t Token) describe() string {
	switch t.Kind {
	case TokenIdent, TokenNumber:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
