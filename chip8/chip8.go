// Package chip8 describes the fixed facts of the CHIP-8 virtual machine
// that the assembler targets: its address space, register file and the
// big-endian byte order of its 16-bit opcodes.
package chip8

import (
	"encoding/binary"
	"strings"
)

const (
	// MemorySize is the full address space of the machine.
	MemorySize = 4096
	// Origin is the address interpreters load programs at.
	Origin = 0x200
	// NumRegisters is the number of general registers (V0-VF).
	NumRegisters = 16
	// AddrBits is the width of a memory address.
	AddrBits = 12
)

// ParseRegister recognises a general register name (v0-vf, any case) and
// returns its number.
func ParseRegister(name string) (uint8, bool) {
	if len(name) != 2 {
		return 0, false
	}
	name = strings.ToLower(name)
	if name[0] != 'v' {
		return 0, false
	}
	c := name[1]
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// RegisterName returns the canonical lowercase name of a general register.
func RegisterName(r uint8) string {
	const digits = "0123456789abcdef"
	return "v" + string(digits[r&0xF])
}

// AppendWord appends a 16-bit opcode in the machine's big-endian order.
func AppendWord(b []byte, w uint16) []byte {
	return append(b, byte(w>>8), byte(w))
}

// WordsToBytes converts a slice of 16-bit words to a big-endian byte slice.
func WordsToBytes(words []uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(out[i*2:], w)
	}
	return out
}
