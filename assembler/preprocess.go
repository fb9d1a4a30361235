package assembler

import (
	"path/filepath"

	"chasm/chip8"
)

// define is a compile-time binding: either a numeric constant or a general
// register alias. The replacement token was resolved when the define was
// declared, so substitution is single-level.
type define struct {
	token Token
	pos   Position
}

// preprocessor rewrites the token stream before parsing: it consumes
// `define` declarations, substitutes bound names in place, and splices
// included files. The inclusion stack holds the files currently being
// processed and is the cycle guard.
type preprocessor struct {
	readFile func(string) ([]byte, error)
	defines  map[string]define
	seen     map[string]Position
	stack    []string
	errs     []error
}

// preprocess runs the preprocessing stage over a lexed file. The returned
// define table is kept so the resolver can reject labels shadowing defines.
func preprocess(tokens []Token, file string, readFile func(string) ([]byte, error)) ([]Token, map[string]define, []error) {
	p := &preprocessor{
		readFile: readFile,
		defines:  make(map[string]define),
		seen:     make(map[string]Position),
		stack:    []string{filepath.Clean(file)},
	}
	out := p.run(tokens)
	return out, p.defines, p.errs
}

func (p *preprocessor) fail(err error) {
	p.errs = append(p.errs, err)
}

func (p *preprocessor) run(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != TokenIdent {
			out = append(out, tok)
			continue
		}
		switch tok.Text {
		case "define":
			i += p.declare(tokens[i:])
		case "include":
			spliced, skip := p.include(tokens[i:])
			out = append(out, spliced...)
			i += skip
		default:
			if d, ok := p.defines[tok.Text]; ok {
				sub := d.token
				sub.Pos = tok.Pos
				out = append(out, sub)
				continue
			}
			if _, ok := p.seen[tok.Text]; !ok {
				p.seen[tok.Text] = tok.Pos
			}
			out = append(out, tok)
		}
	}
	return out
}

// declare handles `define <name> <number|register|bound-define>`. It
// returns how many tokens past the keyword were consumed.
func (p *preprocessor) declare(tokens []Token) int {
	kw := tokens[0]
	if len(tokens) < 2 || tokens[1].Kind != TokenIdent {
		got := "end of line"
		if len(tokens) > 1 {
			got = tokens[1].describe()
		}
		p.fail(&UnexpectedTokenError{Position: kw.Pos, Expected: "identifier after define", Got: got})
		return 0
	}
	name := tokens[1]
	skip := 1
	if len(tokens) >= 3 && tokens[2].Kind != TokenNewline && tokens[2].Kind != TokenEOF {
		skip = 2
	}
	if _, ok := chip8.ParseRegister(name.Text); ok {
		p.fail(&UnexpectedTokenError{Position: name.Pos, Expected: "non-register identifier", Got: name.describe()})
		return skip
	}
	if _, ok := p.defines[name.Text]; ok {
		p.fail(&DuplicateDefineError{Position: name.Pos, Name: name.Text})
		return skip
	}
	// defines never resolve forward: a use before this point is an error
	if use, ok := p.seen[name.Text]; ok {
		p.fail(&UndefinedDefineError{Position: use, Name: name.Text})
	}
	if len(tokens) < 3 {
		p.fail(&UnexpectedTokenError{Position: name.Pos, Expected: "define value", Got: "end of line"})
		return 1
	}
	value := tokens[2]
	switch value.Kind {
	case TokenNumber:
		p.defines[name.Text] = define{token: value, pos: name.Pos}
	case TokenIdent:
		if _, ok := chip8.ParseRegister(value.Text); ok {
			p.defines[name.Text] = define{token: value, pos: name.Pos}
			break
		}
		// value must itself already be bound; this also rejects the
		// self-referential `define x x` without looping
		if d, ok := p.defines[value.Text]; ok {
			p.defines[name.Text] = define{token: d.token, pos: name.Pos}
			break
		}
		p.fail(&UndefinedDefineError{Position: value.Pos, Name: value.Text})
	default:
		p.fail(&UnexpectedTokenError{Position: value.Pos, Expected: "number or register", Got: value.describe()})
	}
	return 2
}

// include splices the preprocessed token stream of the named file at the
// current point. The path is resolved relative to the including file.
func (p *preprocessor) include(tokens []Token) ([]Token, int) {
	kw := tokens[0]
	if len(tokens) < 2 || tokens[1].Kind != TokenString {
		got := "end of line"
		if len(tokens) > 1 {
			got = tokens[1].describe()
		}
		p.fail(&UnexpectedTokenError{Position: kw.Pos, Expected: "string after include", Got: got})
		return nil, 0
	}
	name := string(tokens[1].Bytes)
	path := filepath.Clean(filepath.Join(filepath.Dir(kw.Pos.File), name))
	for _, active := range p.stack {
		if active == path {
			p.fail(&CyclicIncludeError{Position: kw.Pos, Path: name})
			return nil, 1
		}
	}
	data, err := p.readFile(path)
	if err != nil {
		p.fail(&FileNotFoundError{Position: kw.Pos, Path: name, Err: err})
		return nil, 1
	}
	toks, lexErrs := scanTokens(string(data), path)
	p.errs = append(p.errs, lexErrs...)

	p.stack = append(p.stack, path)
	spliced := p.run(toks)
	p.stack = p.stack[:len(p.stack)-1]

	// the included stream ends in EOF; a newline keeps the statement
	// boundary intact at the splice point
	if n := len(spliced); n > 0 && spliced[n-1].Kind == TokenEOF {
		spliced[n-1].Kind = TokenNewline
	}
	return spliced, 1
}
