package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanBasicTokens(t *testing.T) {
	tokens, errs := scanTokens("ld v0, #1A\n", "test.asm")
	require.Empty(t, errs)

	kinds := []TokenKind{TokenIdent, TokenIdent, TokenComma, TokenNumber, TokenNewline, TokenEOF}
	require.Len(t, tokens, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, tokens[i].Kind, "token %d", i)
	}
	assert.Equal(t, "ld", tokens[0].Text)
	assert.Equal(t, "v0", tokens[1].Text)
	assert.Equal(t, uint16(0x1A), tokens[3].Value)
}

func TestScanLowercasesIdentifiers(t *testing.T) {
	tokens, errs := scanTokens("CLS\nSprite_Loop:", "test.asm")
	require.Empty(t, errs)
	assert.Equal(t, "cls", tokens[0].Text)
	assert.Equal(t, "sprite_loop", tokens[2].Text)
	assert.Equal(t, TokenColon, tokens[3].Kind)
}

func TestScanNumberBases(t *testing.T) {
	tests := []struct {
		src  string
		want uint16
	}{
		{"#FF", 0xFF},
		{"#fff", 0xFFF},
		{"%1010", 10},
		{"0", 0},
		{"255", 255},
		{"65535", 0xFFFF},
	}
	for _, tc := range tests {
		tokens, errs := scanTokens(tc.src, "test.asm")
		require.Empty(t, errs, "src %q", tc.src)
		require.Equal(t, TokenNumber, tokens[0].Kind, "src %q", tc.src)
		assert.Equal(t, tc.want, tokens[0].Value, "src %q", tc.src)
		assert.Equal(t, tc.src, tokens[0].Text, "src %q", tc.src)
	}
}

func TestScanStringEscapes(t *testing.T) {
	tokens, errs := scanTokens(`"a\"b\\c\e\r\n"`, "test.asm")
	require.Empty(t, errs)
	require.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, []byte("a\"b\\c\x1b\r\n"), tokens[0].Bytes)
}

func TestScanBrackets(t *testing.T) {
	tokens, errs := scanTokens("ld [i], v0", "test.asm")
	require.Empty(t, errs)
	kinds := []TokenKind{TokenIdent, TokenLBracket, TokenIdent, TokenRBracket, TokenComma, TokenIdent, TokenEOF}
	require.Len(t, tokens, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, tokens[i].Kind, "token %d", i)
	}
}

func TestScanPositions(t *testing.T) {
	tokens, errs := scanTokens("cls\n\nret", "test.asm")
	require.Empty(t, errs)
	assert.Equal(t, Position{File: "test.asm", Line: 1}, tokens[0].Pos)
	assert.Equal(t, Position{File: "test.asm", Line: 3}, tokens[3].Pos)
}

func TestScanCommentsDiscarded(t *testing.T) {
	tokens, errs := scanTokens("cls ; wipe\n; whole line\nret", "test.asm")
	require.Empty(t, errs)
	kinds := []TokenKind{TokenIdent, TokenNewline, TokenNewline, TokenIdent, TokenEOF}
	require.Len(t, tokens, len(kinds))
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name, src string
		want      error
	}{
		{"BadCharacter", "@", &UnexpectedCharacterError{}},
		{"BadBinaryDigit", "%12", &UnexpectedCharacterError{}},
		{"BadHexDigit", "#FFZZ", &UnexpectedCharacterError{}},
		{"CStyleHex", "0x200", &UnexpectedCharacterError{}},
		{"EmptyHex", "#", &InvalidLiteralError{}},
		{"TooWide", "#10000", &InvalidLiteralError{}},
		{"UnterminatedString", `"abc`, &UnterminatedStringError{}},
		{"UnterminatedAtNewline", "\"abc\nret", &UnterminatedStringError{}},
		{"BadEscape", `"a\qb"`, &InvalidEscapeError{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := scanTokens(tc.src, "test.asm")
			require.NotEmpty(t, errs)
			assert.IsType(t, tc.want, errs[0])
		})
	}
}

// A lexical error skips the bad token and keeps scanning the rest.
func TestScanContinuesAfterError(t *testing.T) {
	tokens, errs := scanTokens("@\ncls", "test.asm")
	require.Len(t, errs, 1)
	require.Len(t, tokens, 3)
	assert.Equal(t, "cls", tokens[1].Text)
}
