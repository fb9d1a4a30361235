package assembler

import (
	"strconv"
	"strings"
)

// scanner tokenises one source file. Errors do not stop it: the offending
// character or literal is skipped and scanning continues, so a single run
// reports every lexical problem in the file.
type scanner struct {
	src    string
	file   string
	start  int
	cur    int
	line   int
	tokens []Token
	errs   []error
}

// scanTokens converts raw source text into a token stream ending in a
// TokenEOF. Comments (';' to end of line) are discarded; newlines are kept
// as statement terminators.
func scanTokens(src, file string) ([]Token, []error) {
	s := &scanner{src: src, file: file, line: 1}
	for !s.atEnd() {
		s.start = s.cur
		s.scanToken()
	}
	s.add(Token{Kind: TokenEOF})
	return s.tokens, s.errs
}

func (s *scanner) atEnd() bool { return s.cur >= len(s.src) }

func (s *scanner) pos() Position { return Position{File: s.file, Line: s.line} }

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.cur]
}

func (s *scanner) advance() byte {
	c := s.src[s.cur]
	s.cur++
	return c
}

func (s *scanner) add(t Token) {
	t.Pos = s.pos()
	s.tokens = append(s.tokens, t)
}

func (s *scanner) fail(err error) {
	s.errs = append(s.errs, err)
}

func (s *scanner) scanToken() {
	c := s.advance()
	switch {
	case c == ';':
		for !s.atEnd() && s.peek() != '\n' {
			s.advance()
		}
	case c == '\n':
		s.add(Token{Kind: TokenNewline})
		s.line++
	case c == ' ' || c == '\t' || c == '\r':
	case c == ':':
		s.add(Token{Kind: TokenColon})
	case c == ',':
		s.add(Token{Kind: TokenComma})
	case c == '[':
		s.add(Token{Kind: TokenLBracket})
	case c == ']':
		s.add(Token{Kind: TokenRBracket})
	case c == '"':
		s.scanString()
	case c == '#':
		s.scanNumber(16, isHexDigit)
	case c == '%':
		s.scanNumber(2, isBinDigit)
	case c >= '0' && c <= '9':
		s.cur-- // the first digit is part of the body
		s.scanNumber(10, isDecDigit)
	case isIdentStart(c):
		s.scanIdent()
	default:
		s.fail(&UnexpectedCharacterError{Position: s.pos(), Char: rune(c)})
	}
}

// scanString consumes a double-quoted literal, applying the supported
// escapes. The opening quote has already been consumed.
func (s *scanner) scanString() {
	var b []byte
	for {
		if s.atEnd() || s.peek() == '\n' {
			s.fail(&UnterminatedStringError{Position: s.pos()})
			return
		}
		c := s.advance()
		if c == '"' {
			break
		}
		if c != '\\' {
			b = append(b, c)
			continue
		}
		if s.atEnd() || s.peek() == '\n' {
			s.fail(&UnterminatedStringError{Position: s.pos()})
			return
		}
		switch e := s.advance(); e {
		case '"':
			b = append(b, '"')
		case '\\':
			b = append(b, '\\')
		case 'e':
			b = append(b, 0x1B)
		case 'r':
			b = append(b, '\r')
		case 'n':
			b = append(b, '\n')
		default:
			s.fail(&InvalidEscapeError{Position: s.pos(), Escape: rune(e)})
		}
	}
	s.add(Token{Kind: TokenString, Text: s.src[s.start:s.cur], Bytes: b})
}

// scanNumber consumes the body of a numeric literal. For hex and binary the
// prefix character has already been consumed and is not part of the body.
func (s *scanner) scanNumber(base int, digit func(byte) bool) {
	body := s.cur
	for !s.atEnd() && digit(s.peek()) {
		s.advance()
	}
	// a literal that runs straight into identifier characters is malformed:
	// %12 or #FFZZ should not silently split into two tokens
	if !s.atEnd() && (isIdentChar(s.peek()) || digitOfAnyBase(s.peek())) {
		bad := s.peek()
		for !s.atEnd() && (isIdentChar(s.peek()) || digitOfAnyBase(s.peek())) {
			s.advance()
		}
		s.fail(&UnexpectedCharacterError{Position: s.pos(), Char: rune(bad)})
		return
	}
	text := s.src[s.start:s.cur]
	if s.cur == body {
		s.fail(&InvalidLiteralError{Position: s.pos(), Literal: text})
		return
	}
	v, err := strconv.ParseUint(s.src[body:s.cur], base, 16)
	if err != nil {
		s.fail(&InvalidLiteralError{Position: s.pos(), Literal: text})
		return
	}
	s.add(Token{Kind: TokenNumber, Text: text, Value: uint16(v)})
}

func (s *scanner) scanIdent() {
	for !s.atEnd() && isIdentChar(s.peek()) {
		s.advance()
	}
	s.add(Token{Kind: TokenIdent, Text: strings.ToLower(s.src[s.start:s.cur])})
}

func isDecDigit(c byte) bool { return c >= '0' && c <= '9' }

func isBinDigit(c byte) bool { return c == '0' || c == '1' }

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func digitOfAnyBase(c byte) bool { return isHexDigit(c) }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
