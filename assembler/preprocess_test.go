package assembler

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runPreprocess lexes src as main.asm and preprocesses it with the given
// in-memory filesystem behind include directives.
func runPreprocess(t *testing.T, src string, files map[string]string) ([]Token, map[string]define, []error) {
	t.Helper()
	tokens, errs := scanTokens(src, "main.asm")
	require.Empty(t, errs)
	read := func(path string) ([]byte, error) {
		s, ok := files[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return []byte(s), nil
	}
	return preprocess(tokens, "main.asm", read)
}

func kindsOf(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestDefineSubstitution(t *testing.T) {
	tokens, defines, errs := runPreprocess(t, "define speed #4\nld v0, speed", nil)
	require.Empty(t, errs)
	require.Contains(t, defines, "speed")

	// the define line collapses to its newline; the use becomes the number
	want := []TokenKind{TokenNewline, TokenIdent, TokenIdent, TokenComma, TokenNumber, TokenEOF}
	require.Equal(t, want, kindsOf(tokens))
	num := tokens[4]
	assert.Equal(t, uint16(4), num.Value)
	// the substituted token reports the use site, not the declaration
	assert.Equal(t, Position{File: "main.asm", Line: 2}, num.Pos)
}

func TestDefineRegisterAlias(t *testing.T) {
	tokens, _, errs := runPreprocess(t, "define temp v5\nld temp, #1", nil)
	require.Empty(t, errs)
	require.Equal(t, TokenIdent, tokens[2].Kind)
	assert.Equal(t, "v5", tokens[2].Text)
}

func TestDefineChainsResolveAtDeclaration(t *testing.T) {
	_, defines, errs := runPreprocess(t, "define a #7\ndefine b a", nil)
	require.Empty(t, errs)
	assert.Equal(t, uint16(7), defines["b"].token.Value)
}

func TestDefineErrors(t *testing.T) {
	tests := []struct {
		name, src string
		want      error
	}{
		{"RegisterName", "define v1 #4", &UnexpectedTokenError{}},
		{"Duplicate", "define a #1\ndefine a #2", &DuplicateDefineError{}},
		{"UseBeforeDefine", "ld v0, speed\ndefine speed #4", &UndefinedDefineError{}},
		{"SelfReferential", "define x x", &UndefinedDefineError{}},
		{"UnboundValue", "define a b", &UndefinedDefineError{}},
		{"MissingName", "define", &UnexpectedTokenError{}},
		{"MissingValue", "define a", &UnexpectedTokenError{}},
		{"StringValue", `define a "x"`, &UnexpectedTokenError{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, errs := runPreprocess(t, tc.src, nil)
			require.NotEmpty(t, errs)
			assert.IsType(t, tc.want, errs[0])
		})
	}
}

func TestUseBeforeDefineReportsUseSite(t *testing.T) {
	_, _, errs := runPreprocess(t, "ld v0, speed\ndefine speed #4", nil)
	require.Len(t, errs, 1)
	ude, ok := errs[0].(*UndefinedDefineError)
	require.True(t, ok)
	assert.Equal(t, 1, ude.Position.Line)
}

func TestIncludeSplicesTokens(t *testing.T) {
	files := map[string]string{"lib.asm": "ret"}
	tokens, _, errs := runPreprocess(t, "include \"lib.asm\"\ncls", files)
	require.Empty(t, errs)
	// the included EOF becomes a newline so statements stay separated
	want := []TokenKind{TokenIdent, TokenNewline, TokenNewline, TokenIdent, TokenEOF}
	require.Equal(t, want, kindsOf(tokens))
	assert.Equal(t, "ret", tokens[0].Text)
	assert.Equal(t, "lib.asm", tokens[0].Pos.File)
}

func TestIncludePathsResolveRelatively(t *testing.T) {
	files := map[string]string{
		"sub/lib.asm":  "include \"more.asm\"",
		"sub/more.asm": "cls",
	}
	tokens, _, errs := runPreprocess(t, "include \"sub/lib.asm\"", files)
	require.Empty(t, errs)
	require.Equal(t, TokenIdent, tokens[0].Kind)
	assert.Equal(t, "cls", tokens[0].Text)
	assert.Equal(t, "sub/more.asm", tokens[0].Pos.File)
}

func TestIncludeCycleDetected(t *testing.T) {
	files := map[string]string{
		"a.asm": "include \"b.asm\"",
		"b.asm": "include \"main.asm\"",
	}
	_, _, errs := runPreprocess(t, "include \"a.asm\"", files)
	require.NotEmpty(t, errs)
	assert.IsType(t, &CyclicIncludeError{}, errs[0])
}

func TestIncludeMissing(t *testing.T) {
	_, _, errs := runPreprocess(t, "include \"gone.asm\"", nil)
	require.Len(t, errs, 1)
	assert.IsType(t, &FileNotFoundError{}, errs[0])
}

func TestIncludeErrors(t *testing.T) {
	tests := []struct {
		name, src string
	}{
		{"MissingPath", "include"},
		{"NumberPath", "include #200"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, errs := runPreprocess(t, tc.src, nil)
			require.NotEmpty(t, errs)
			assert.IsType(t, &UnexpectedTokenError{}, errs[0])
		})
	}
}
