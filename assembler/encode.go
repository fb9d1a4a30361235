package assembler

// operandClass is the shape an encoding rule requires at one operand
// position. Immediate classes accept any numeric operand (including a
// resolved label reference); the bit width is enforced when the value is
// placed into the opcode.
type operandClass int

const (
	classReg operandClass = iota
	classV0  // exactly v0
	classImm4
	classImm8
	classImm12
	classI
	classDT
	classST
	classK
	classF
	classB
	classIndirect
)

// slot says where an operand's bits land in the 16-bit opcode.
type slot int

const (
	slotNone slot = iota // operand selects the rule but carries no bits
	slotX                // register number into bits 11-8
	slotY                // register number into bits 7-4
	slotKK               // 8-bit value into bits 7-0
	slotNNN              // 12-bit value into bits 11-0
	slotN                // 4-bit value into bits 3-0
	slotIgnore           // accepted but not encoded (shr/shl second register)
)

// rule is one legal operand-kind combination for a mnemonic. Signatures
// within one mnemonic are disjoint, so the first match is the only match.
type rule struct {
	classes []operandClass
	slots   []slot
	base    uint16
}

// encodings is the full instruction table of the target machine, one
// unique 16-bit pattern per legal mnemonic/operand combination.
var encodings = map[string][]rule{
	"nop": {{base: 0x0000}},
	"cls": {{base: 0x00E0}},
	"ret": {{base: 0x00EE}},
	"sys": {
		{classes: []operandClass{classImm12}, slots: []slot{slotNNN}, base: 0x0000},
	},
	"jmp": {
		{classes: []operandClass{classImm12}, slots: []slot{slotNNN}, base: 0x1000},
		{classes: []operandClass{classV0, classImm12}, slots: []slot{slotNone, slotNNN}, base: 0xB000},
	},
	"jmpp": {
		{classes: []operandClass{classImm12}, slots: []slot{slotNNN}, base: 0xB000},
		{classes: []operandClass{classV0, classImm12}, slots: []slot{slotNone, slotNNN}, base: 0xB000},
	},
	"call": {
		{classes: []operandClass{classImm12}, slots: []slot{slotNNN}, base: 0x2000},
	},
	"se": {
		{classes: []operandClass{classReg, classImm8}, slots: []slot{slotX, slotKK}, base: 0x3000},
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotY}, base: 0x5000},
	},
	"sne": {
		{classes: []operandClass{classReg, classImm8}, slots: []slot{slotX, slotKK}, base: 0x4000},
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotY}, base: 0x9000},
	},
	"ld": {
		{classes: []operandClass{classReg, classImm8}, slots: []slot{slotX, slotKK}, base: 0x6000},
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotY}, base: 0x8000},
		{classes: []operandClass{classI, classImm12}, slots: []slot{slotNone, slotNNN}, base: 0xA000},
		{classes: []operandClass{classReg, classK}, slots: []slot{slotX, slotNone}, base: 0xF00A},
		{classes: []operandClass{classReg, classDT}, slots: []slot{slotX, slotNone}, base: 0xF007},
		{classes: []operandClass{classDT, classReg}, slots: []slot{slotNone, slotX}, base: 0xF015},
		{classes: []operandClass{classST, classReg}, slots: []slot{slotNone, slotX}, base: 0xF018},
		{classes: []operandClass{classF, classReg}, slots: []slot{slotNone, slotX}, base: 0xF029},
		{classes: []operandClass{classB, classReg}, slots: []slot{slotNone, slotX}, base: 0xF033},
		{classes: []operandClass{classIndirect, classReg}, slots: []slot{slotNone, slotX}, base: 0xF055},
		{classes: []operandClass{classReg, classIndirect}, slots: []slot{slotX, slotNone}, base: 0xF065},
	},
	"add": {
		{classes: []operandClass{classReg, classImm8}, slots: []slot{slotX, slotKK}, base: 0x7000},
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotY}, base: 0x8004},
		{classes: []operandClass{classI, classReg}, slots: []slot{slotNone, slotX}, base: 0xF01E},
	},
	"or": {
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotY}, base: 0x8001},
	},
	"and": {
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotY}, base: 0x8002},
	},
	"xor": {
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotY}, base: 0x8003},
	},
	"sub": {
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotY}, base: 0x8005},
	},
	"subn": {
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotY}, base: 0x8007},
	},
	"shr": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0x8006},
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotIgnore}, base: 0x8006},
	},
	"shl": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0x800E},
		{classes: []operandClass{classReg, classReg}, slots: []slot{slotX, slotIgnore}, base: 0x800E},
	},
	"rnd": {
		{classes: []operandClass{classReg, classImm8}, slots: []slot{slotX, slotKK}, base: 0xC000},
	},
	"drw": {
		{classes: []operandClass{classReg, classReg, classImm4}, slots: []slot{slotX, slotY, slotN}, base: 0xD000},
	},
	"skp": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0xE09E},
	},
	"sknp": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0xE0A1},
	},
	"stor": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0xF055},
	},
	"rstr": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0xF065},
	},
	// timer/font/bcd sugar forms
	"delay": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0xF015},
	},
	"sound": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0xF018},
	},
	"font": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0xF029},
	},
	"hex": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0xF029},
	},
	"bcd": {
		{classes: []operandClass{classReg}, slots: []slot{slotX}, base: 0xF033},
	},
}

func init() {
	// jp is jmp
	encodings["jp"] = encodings["jmp"]
}

// matches reports whether the operand satisfies the class. Width checks
// are deferred to placement so an oversized literal still selects its rule
// and fails with a range error rather than "no encoding".
func (c operandClass) matches(op Operand) bool {
	switch c {
	case classReg:
		return op.Kind == OperandRegister
	case classV0:
		return op.Kind == OperandRegister && op.Reg == 0
	case classImm4, classImm8, classImm12:
		return op.Kind == OperandImmediate || op.Kind == OperandLabel
	case classI:
		return op.Kind == OperandIndex
	case classDT:
		return op.Kind == OperandDelayTimer
	case classST:
		return op.Kind == OperandSoundTimer
	case classK:
		return op.Kind == OperandKey
	case classF:
		return op.Kind == OperandFont
	case classB:
		return op.Kind == OperandBCD
	case classIndirect:
		return op.Kind == OperandIndirect
	}
	return false
}

func (r *rule) accepts(ops []Operand) bool {
	if len(ops) != len(r.classes) {
		return false
	}
	for i, c := range r.classes {
		if !c.matches(ops[i]) {
			return false
		}
	}
	return true
}

// place merges one operand into the opcode, range-checking numeric values
// against the slot width.
func place(opcode uint16, op Operand, s slot) (uint16, error) {
	switch s {
	case slotX:
		return opcode | uint16(op.Reg)<<8, nil
	case slotY:
		return opcode | uint16(op.Reg)<<4, nil
	case slotKK:
		if op.Value > 0xFF {
			return 0, &OversizedLiteralError{Position: op.Pos, Value: op.Value, Bits: 8}
		}
		return opcode | op.Value, nil
	case slotNNN:
		if op.Value > 0xFFF {
			return 0, &OversizedLiteralError{Position: op.Pos, Value: op.Value, Bits: 12}
		}
		return opcode | op.Value, nil
	case slotN:
		if op.Value > 0xF {
			return 0, &OversizedLiteralError{Position: op.Pos, Value: op.Value, Bits: 4}
		}
		return opcode | op.Value, nil
	}
	return opcode, nil
}

// encodeInstruction produces the 16-bit opcode for a resolved instruction
// statement. It is a pure table lookup with no side effects.
func encodeInstruction(stmt *Statement) (uint16, error) {
	for i := range encodings[stmt.Mnemonic] {
		r := &encodings[stmt.Mnemonic][i]
		if !r.accepts(stmt.Operands) {
			continue
		}
		opcode := r.base
		for j, op := range stmt.Operands {
			var err error
			opcode, err = place(opcode, op, r.slots[j])
			if err != nil {
				return 0, err
			}
		}
		return opcode, nil
	}
	return 0, &NoEncodingError{Position: stmt.Pos, Mnemonic: stmt.Mnemonic}
}
