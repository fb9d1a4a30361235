// Package assembler translates CHIP-8 assembly source into the flat binary
// image the machine's interpreter loads at its origin address.
//
// The pipeline is strictly sequential: lexing, define/include
// preprocessing, parsing, two-pass label resolution, opcode encoding and
// layout. Every stage collects diagnostics instead of stopping at the
// first, and the image is produced only when the whole run is clean.
//
// Bytes skipped by an offset directive are zero-filled; the observed
// behaviour of the machine leaves them unspecified, so zero is chosen for
// deterministic output.
package assembler

import (
	"os"

	"chasm/chip8"
)

// Assembler holds the configuration for one assembly run.
type Assembler struct {
	origin   uint16
	readFile func(string) ([]byte, error)
}

// New creates an Assembler with the machine's default origin and the real
// filesystem behind include directives.
func New() *Assembler {
	return &Assembler{
		origin:   chip8.Origin,
		readFile: os.ReadFile,
	}
}

// SetOrigin overrides the base address the image is laid out from.
func (asm *Assembler) SetOrigin(origin uint16) {
	asm.origin = origin
}

// SetReadFile replaces the file reader used for the source file and for
// include directives. Tests use this to assemble from memory.
func (asm *Assembler) SetReadFile(fn func(string) ([]byte, error)) {
	asm.readFile = fn
}

// AssembleFile reads and assembles the named source file.
func (asm *Assembler) AssembleFile(path string) ([]byte, []error) {
	data, err := asm.readFile(path)
	if err != nil {
		return nil, []error{&FileNotFoundError{Path: path, Err: err}}
	}
	return asm.Assemble(string(data), path)
}

// Assemble translates source text into the binary image. The name is used
// in diagnostics and as the base for relative include paths. On any error
// the image is nil and the full diagnostic list is returned.
func (asm *Assembler) Assemble(src, name string) ([]byte, []error) {
	if asm.origin > 0xFFF {
		return nil, []error{&InvalidOffsetError{Position: Position{File: name}, Value: asm.origin, Origin: asm.origin}}
	}
	tokens, errs := scanTokens(src, name)

	tokens, defines, ppErrs := preprocess(tokens, name, asm.readFile)
	errs = append(errs, ppErrs...)

	stmts, parseErrs := parse(tokens)
	errs = append(errs, parseErrs...)

	errs = append(errs, resolve(stmts, asm.origin, defines)...)
	if len(errs) > 0 {
		return nil, errs
	}

	return emit(stmts, asm.origin)
}
