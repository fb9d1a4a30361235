package assembler

import (
	"fmt"

	"chasm/chip8"
)

// PositionError is implemented by every diagnostic the assembler produces,
// so callers can recover the source location alongside the message.
type PositionError interface {
	error
	Pos() Position
}

// UnexpectedCharacterError reports a character the lexer cannot start a
// token with, or an invalid digit inside a numeric literal.
type UnexpectedCharacterError struct {
	Position Position
	Char     rune
}

func (err *UnexpectedCharacterError) Pos() Position { return err.Position }

func (err *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("%s: unexpected character %q", err.Position, err.Char)
}

// InvalidLiteralError reports a malformed numeric literal, including one
// whose value does not fit in 16 bits.
type InvalidLiteralError struct {
	Position Position
	Literal  string
}

func (err *InvalidLiteralError) Pos() Position { return err.Position }

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf("%s: invalid numeric literal %q", err.Position, err.Literal)
}

// UnterminatedStringError reports a string literal with no closing quote
// before the end of the line.
type UnterminatedStringError struct {
	Position Position
}

func (err *UnterminatedStringError) Pos() Position { return err.Position }

func (err *UnterminatedStringError) Error() string {
	return fmt.Sprintf("%s: unterminated string literal", err.Position)
}

// InvalidEscapeError reports an unknown backslash escape in a string.
type InvalidEscapeError struct {
	Position Position
	Escape   rune
}

func (err *InvalidEscapeError) Pos() Position { return err.Position }

func (err *InvalidEscapeError) Error() string {
	return fmt.Sprintf("%s: invalid string escape \\%c", err.Position, err.Escape)
}

// UnexpectedTokenError reports a malformed statement.
type UnexpectedTokenError struct {
	Position Position
	Expected string
	Got      string
}

func (err *UnexpectedTokenError) Pos() Position { return err.Position }

func (err *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", err.Position, err.Expected, err.Got)
}

// DuplicateLabelError reports a label name defined more than once, or one
// colliding with a define.
type DuplicateLabelError struct {
	Position Position
	Name     string
}

func (err *DuplicateLabelError) Pos() Position { return err.Position }

func (err *DuplicateLabelError) Error() string {
	return fmt.Sprintf("%s: label %q is already defined", err.Position, err.Name)
}

// DuplicateDefineError reports a define name bound more than once.
type DuplicateDefineError struct {
	Position Position
	Name     string
}

func (err *DuplicateDefineError) Pos() Position { return err.Position }

func (err *DuplicateDefineError) Error() string {
	return fmt.Sprintf("%s: define %q is already defined", err.Position, err.Name)
}

// UndefinedDefineError reports a define referenced before (or without) its
// declaration. Unlike labels, defines never resolve forward.
type UndefinedDefineError struct {
	Position Position
	Name     string
}

func (err *UndefinedDefineError) Pos() Position { return err.Position }

func (err *UndefinedDefineError) Error() string {
	return fmt.Sprintf("%s: define %q used before its definition", err.Position, err.Name)
}

// UndefinedSymbolError reports a label reference that pass 2 could not
// resolve.
type UndefinedSymbolError struct {
	Position Position
	Name     string
}

func (err *UndefinedSymbolError) Pos() Position { return err.Position }

func (err *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("%s: undefined symbol %q", err.Position, err.Name)
}

// OversizedLiteralError reports a value that does not fit the bit width of
// the operand position it occupies.
type OversizedLiteralError struct {
	Position Position
	Value    uint16
	Bits     int
}

func (err *OversizedLiteralError) Pos() Position { return err.Position }

func (err *OversizedLiteralError) Error() string {
	return fmt.Sprintf("%s: value %#x does not fit in %d bits", err.Position, err.Value, err.Bits)
}

// NoEncodingError reports an instruction whose operand shapes match no
// encoding rule for its mnemonic.
type NoEncodingError struct {
	Position Position
	Mnemonic string
}

func (err *NoEncodingError) Pos() Position { return err.Position }

func (err *NoEncodingError) Error() string {
	return fmt.Sprintf("%s: no encoding of %q accepts these operands", err.Position, err.Mnemonic)
}

// CyclicIncludeError reports a file that transitively includes itself.
type CyclicIncludeError struct {
	Position Position
	Path     string
}

func (err *CyclicIncludeError) Pos() Position { return err.Position }

func (err *CyclicIncludeError) Error() string {
	return fmt.Sprintf("%s: cyclic include of %q", err.Position, err.Path)
}

// FileNotFoundError reports a source or included file that could not be
// read. It wraps the underlying filesystem error.
type FileNotFoundError struct {
	Position Position
	Path     string
	Err      error
}

func (err *FileNotFoundError) Pos() Position { return err.Position }

func (err *FileNotFoundError) Unwrap() error { return err.Err }

func (err *FileNotFoundError) Error() string {
	if err.Position.File == "" {
		return fmt.Sprintf("cannot read %q: %v", err.Path, err.Err)
	}
	return fmt.Sprintf("%s: cannot read %q: %v", err.Position, err.Path, err.Err)
}

// ImageOverflowError reports a statement laid out past the top of the
// machine's address space.
type ImageOverflowError struct {
	Position Position
	End      int
}

func (err *ImageOverflowError) Pos() Position { return err.Position }

func (err *ImageOverflowError) Error() string {
	return fmt.Sprintf("%s: program runs past the top of memory (ends at %#x, top %#x)",
		err.Position, err.End, chip8.MemorySize)
}

// InvalidOffsetError reports an offset directive that moves the cursor
// outside the addressable image.
type InvalidOffsetError struct {
	Position Position
	Value    uint16
	Origin   uint16
}

func (err *InvalidOffsetError) Pos() Position { return err.Position }

func (err *InvalidOffsetError) Error() string {
	return fmt.Sprintf("%s: offset %#x is outside the image (origin %#x, top %#x)",
		err.Position, err.Value, err.Origin, 1<<chip8.AddrBits-1)
}
