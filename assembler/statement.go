package assembler

// OperandKind discriminates the operand variants an instruction can carry.
type OperandKind int

const (
	// OperandRegister is a general register V0-VF.
	OperandRegister OperandKind = iota
	// OperandImmediate is a numeric literal.
	OperandImmediate
	// OperandLabel is a symbolic address, resolved in pass 2.
	OperandLabel
	// OperandIndex is the memory register I.
	OperandIndex
	// OperandDelayTimer is the delay timer DT.
	OperandDelayTimer
	// OperandSoundTimer is the sound timer ST.
	OperandSoundTimer
	// OperandKey is the keyboard pseudo-register K.
	OperandKey
	// OperandFont is the font sprite selector F.
	OperandFont
	// OperandBCD is the BCD store selector B.
	OperandBCD
	// OperandIndirect is memory through I, written [i].
	OperandIndirect
)

func (k OperandKind) String() string {
	switch k {
	case OperandRegister:
		return "register"
	case OperandImmediate:
		return "immediate"
	case OperandLabel:
		return "label"
	case OperandIndex:
		return "i"
	case OperandDelayTimer:
		return "dt"
	case OperandSoundTimer:
		return "st"
	case OperandKey:
		return "k"
	case OperandFont:
		return "f"
	case OperandBCD:
		return "b"
	case OperandIndirect:
		return "[i]"
	}
	return "invalid"
}

// Operand is one argument of an instruction. For OperandLabel the Value
// field is filled in by resolver pass 2.
type Operand struct {
	Kind   OperandKind
	Reg    uint8
	Value  uint16
	Symbol string
	Pos    Position
}

// StatementKind discriminates the parsed statement variants.
type StatementKind int

const (
	// StatementLabel defines a symbolic address.
	StatementLabel StatementKind = iota
	// StatementInstruction is a mnemonic with operands, two bytes of output.
	StatementInstruction
	// StatementBytes is a db directive.
	StatementBytes
	// StatementWords is a dw directive.
	StatementWords
	// StatementText is a text directive: string bytes plus a zero terminator.
	StatementText
	// StatementOffset moves the layout cursor to an absolute address.
	StatementOffset
)

// Statement is one parsed element of the program. Addr is assigned during
// resolver pass 1; everything else is settled at parse time.
type Statement struct {
	Kind     StatementKind
	Name     string // label name
	Mnemonic string
	Operands []Operand
	Bytes    []byte   // db items, or text bytes with terminator
	Words    []uint16 // dw items
	Offset   uint16
	Addr     uint16
	Pos      Position
}

// size returns how many output bytes the statement occupies.
func (s *Statement) size() int {
	switch s.Kind {
	case StatementInstruction:
		return 2
	case StatementBytes, StatementText:
		return len(s.Bytes)
	case StatementWords:
		return 2 * len(s.Words)
	}
	return 0
}
