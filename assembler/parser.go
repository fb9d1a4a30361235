package assembler

import "chasm/chip8"

// parser groups the preprocessed token stream into statements. On a
// malformed statement it records a diagnostic and resynchronises at the
// next newline, so one run reports every parse error in the program.
type parser struct {
	tokens []Token
	cur    int
	stmts  []*Statement
	errs   []error
}

func parse(tokens []Token) ([]*Statement, []error) {
	p := &parser{tokens: tokens}
	for !p.atEnd() {
		p.parseStatement()
	}
	return p.stmts, p.errs
}

func (p *parser) atEnd() bool {
	return p.cur >= len(p.tokens) || p.tokens[p.cur].Kind == TokenEOF
}

func (p *parser) peek() Token {
	if p.cur >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.cur]
}

func (p *parser) advance() Token {
	t := p.peek()
	if !p.atEnd() {
		p.cur++
	}
	return t
}

func (p *parser) fail(err error) {
	p.errs = append(p.errs, err)
	p.synchronize()
}

// synchronize skips to the start of the next line.
func (p *parser) synchronize() {
	for !p.atEnd() {
		if p.advance().Kind == TokenNewline {
			return
		}
	}
}

// endOfStatement consumes the newline terminating the current statement.
// A label may share a line with the statement it precedes, so after a
// label definition anything but a newline simply starts the next statement.
func (p *parser) endOfStatement() {
	switch p.peek().Kind {
	case TokenNewline:
		p.advance()
	case TokenEOF:
	default:
		p.fail(&UnexpectedTokenError{Position: p.peek().Pos, Expected: "end of line", Got: p.peek().describe()})
	}
}

func (p *parser) parseStatement() {
	tok := p.peek()
	switch tok.Kind {
	case TokenNewline:
		p.advance()
	case TokenIdent:
		switch tok.Text {
		case "db":
			p.parseBytes()
		case "dw":
			p.parseWords()
		case "text":
			p.parseText()
		case "offset":
			p.parseOffset()
		default:
			if _, ok := encodings[tok.Text]; ok {
				p.parseInstruction()
				return
			}
			p.parseLabel()
		}
	default:
		p.fail(&UnexpectedTokenError{Position: tok.Pos, Expected: "statement", Got: tok.describe()})
	}
}

// label → IDENTIFIER ":"
func (p *parser) parseLabel() {
	name := p.advance()
	if _, ok := chip8.ParseRegister(name.Text); ok {
		p.fail(&UnexpectedTokenError{Position: name.Pos, Expected: "statement", Got: name.describe()})
		return
	}
	colon := p.advance()
	if colon.Kind != TokenColon {
		p.fail(&UnexpectedTokenError{Position: name.Pos, Expected: "':' after label name", Got: colon.describe()})
		return
	}
	p.stmts = append(p.stmts, &Statement{Kind: StatementLabel, Name: name.Text, Pos: name.Pos})
	// no endOfStatement: an instruction may follow on the same line
}

// instruction → MNEMONIC (operand ("," operand)*)?
func (p *parser) parseInstruction() {
	mn := p.advance()
	stmt := &Statement{Kind: StatementInstruction, Mnemonic: mn.Text, Pos: mn.Pos}
	if k := p.peek().Kind; k != TokenNewline && k != TokenEOF {
		for {
			op, ok := p.parseOperand()
			if !ok {
				return
			}
			stmt.Operands = append(stmt.Operands, op)
			if p.peek().Kind != TokenComma {
				break
			}
			p.advance()
		}
	}
	p.stmts = append(p.stmts, stmt)
	p.endOfStatement()
}

// parseOperand classifies one operand token. Registers and the special
// register names win over label references; any other identifier is a
// label reference carrying just the name until pass 2.
func (p *parser) parseOperand() (Operand, bool) {
	tok := p.advance()
	switch tok.Kind {
	case TokenNumber:
		return Operand{Kind: OperandImmediate, Value: tok.Value, Pos: tok.Pos}, true
	case TokenIdent:
		if reg, ok := chip8.ParseRegister(tok.Text); ok {
			return Operand{Kind: OperandRegister, Reg: reg, Pos: tok.Pos}, true
		}
		switch tok.Text {
		case "i":
			return Operand{Kind: OperandIndex, Pos: tok.Pos}, true
		case "dt":
			return Operand{Kind: OperandDelayTimer, Pos: tok.Pos}, true
		case "st":
			return Operand{Kind: OperandSoundTimer, Pos: tok.Pos}, true
		case "k":
			return Operand{Kind: OperandKey, Pos: tok.Pos}, true
		case "f":
			return Operand{Kind: OperandFont, Pos: tok.Pos}, true
		case "b":
			return Operand{Kind: OperandBCD, Pos: tok.Pos}, true
		}
		return Operand{Kind: OperandLabel, Symbol: tok.Text, Pos: tok.Pos}, true
	case TokenLBracket:
		inner := p.advance()
		if inner.Kind != TokenIdent || inner.Text != "i" {
			p.fail(&UnexpectedTokenError{Position: inner.Pos, Expected: "i inside brackets", Got: inner.describe()})
			return Operand{}, false
		}
		if close := p.advance(); close.Kind != TokenRBracket {
			p.fail(&UnexpectedTokenError{Position: close.Pos, Expected: "']'", Got: close.describe()})
			return Operand{}, false
		}
		return Operand{Kind: OperandIndirect, Pos: tok.Pos}, true
	default:
		p.fail(&UnexpectedTokenError{Position: tok.Pos, Expected: "operand", Got: tok.describe()})
		return Operand{}, false
	}
}

// db → "db" number ("," number)*
func (p *parser) parseBytes() {
	kw := p.advance()
	stmt := &Statement{Kind: StatementBytes, Pos: kw.Pos}
	for {
		tok := p.advance()
		if tok.Kind != TokenNumber {
			p.fail(&UnexpectedTokenError{Position: tok.Pos, Expected: "byte literal", Got: tok.describe()})
			return
		}
		if tok.Value > 0xFF {
			p.errs = append(p.errs, &OversizedLiteralError{Position: tok.Pos, Value: tok.Value, Bits: 8})
		}
		stmt.Bytes = append(stmt.Bytes, byte(tok.Value))
		if p.peek().Kind != TokenComma {
			break
		}
		p.advance()
	}
	p.stmts = append(p.stmts, stmt)
	p.endOfStatement()
}

// dw → "dw" number ("," number)*
func (p *parser) parseWords() {
	kw := p.advance()
	stmt := &Statement{Kind: StatementWords, Pos: kw.Pos}
	for {
		tok := p.advance()
		if tok.Kind != TokenNumber {
			p.fail(&UnexpectedTokenError{Position: tok.Pos, Expected: "word literal", Got: tok.describe()})
			return
		}
		stmt.Words = append(stmt.Words, tok.Value)
		if p.peek().Kind != TokenComma {
			break
		}
		p.advance()
	}
	p.stmts = append(p.stmts, stmt)
	p.endOfStatement()
}

// text → "text" STRING, emitted as the string bytes plus one zero byte
func (p *parser) parseText() {
	kw := p.advance()
	tok := p.advance()
	if tok.Kind != TokenString {
		p.fail(&UnexpectedTokenError{Position: tok.Pos, Expected: "string after text", Got: tok.describe()})
		return
	}
	data := make([]byte, 0, len(tok.Bytes)+1)
	data = append(data, tok.Bytes...)
	data = append(data, 0)
	p.stmts = append(p.stmts, &Statement{Kind: StatementText, Bytes: data, Pos: kw.Pos})
	p.endOfStatement()
}

// offset → "offset" number
func (p *parser) parseOffset() {
	kw := p.advance()
	tok := p.advance()
	if tok.Kind != TokenNumber {
		p.fail(&UnexpectedTokenError{Position: tok.Pos, Expected: "address after offset", Got: tok.describe()})
		return
	}
	p.stmts = append(p.stmts, &Statement{Kind: StatementOffset, Offset: tok.Value, Pos: kw.Pos})
	p.endOfStatement()
}
