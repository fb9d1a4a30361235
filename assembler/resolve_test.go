package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAddresses(t *testing.T) {
	src := "cls\ndb #1, #2, #3\ndw #1234\ntext \"ab\"\nhere: ret"
	tokens, errs := scanTokens(src, "test.asm")
	require.Empty(t, errs)
	stmts, errs := parse(tokens)
	require.Empty(t, errs)
	require.Empty(t, resolve(stmts, 0x200, nil))

	// cls 2 bytes, db 3, dw 2, text 3 ("ab" plus terminator)
	want := []uint16{0x200, 0x202, 0x205, 0x207, 0x20A, 0x20A}
	require.Len(t, stmts, len(want))
	for i, stmt := range stmts {
		assert.Equal(t, want[i], stmt.Addr, "statement %d", i)
	}
}

func TestResolveOffsetMovesCursor(t *testing.T) {
	tokens, _ := scanTokens("offset #400\nhere: cls", "test.asm")
	stmts, errs := parse(tokens)
	require.Empty(t, errs)
	require.Empty(t, resolve(stmts, 0x200, nil))
	assert.Equal(t, uint16(0x400), stmts[1].Addr)
}

func TestResolveFillsLabelOperands(t *testing.T) {
	tokens, _ := scanTokens("jmp target\ntarget: ret", "test.asm")
	stmts, errs := parse(tokens)
	require.Empty(t, errs)
	require.Empty(t, resolve(stmts, 0x200, nil))
	assert.Equal(t, uint16(0x202), stmts[0].Operands[0].Value)
}

func TestResolveOverflowPerStatement(t *testing.T) {
	// the word ending at 0x1001 overflows; the offset then makes the final
	// address legal again, which must not swallow the diagnostic
	tokens, _ := scanTokens("offset #FFF\ndw #1234\noffset #400\ndb #AA", "test.asm")
	stmts, errs := parse(tokens)
	require.Empty(t, errs)
	resErrs := resolve(stmts, 0x200, nil)
	require.Len(t, resErrs, 1)
	ove, ok := resErrs[0].(*ImageOverflowError)
	require.True(t, ok)
	assert.Equal(t, 2, ove.Position.Line)
	assert.Equal(t, 0x1001, ove.End)
}

func TestResolveLastByteFits(t *testing.T) {
	tokens, _ := scanTokens("offset #FFF\ndb #AA", "test.asm")
	stmts, errs := parse(tokens)
	require.Empty(t, errs)
	require.Empty(t, resolve(stmts, 0x200, nil))
}

func TestResolveBadOffsetKeepsCursor(t *testing.T) {
	// the invalid offset is reported and ignored; layout continues from
	// the previous address
	tokens, _ := scanTokens("cls\noffset #100\nhere: ret", "test.asm")
	stmts, errs := parse(tokens)
	require.Empty(t, errs)
	resErrs := resolve(stmts, 0x200, nil)
	require.Len(t, resErrs, 1)
	assert.IsType(t, &InvalidOffsetError{}, resErrs[0])
	assert.Equal(t, uint16(0x202), stmts[2].Addr)
}
