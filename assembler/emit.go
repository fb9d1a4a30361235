package assembler

import "chasm/chip8"

// emit encodes every instruction and lays the program out into the output
// image. Gaps skipped by offset directives are zero-filled; the result is
// the byte run from the lowest to the highest written address.
//
// emit is only called once every earlier stage finished without
// diagnostics, but encoding itself can still fail (range errors surface
// here); in that case no image is produced.
func emit(stmts []*Statement, origin uint16) ([]byte, []error) {
	var errs []error
	for _, stmt := range stmts {
		if stmt.Kind != StatementInstruction {
			continue
		}
		opcode, err := encodeInstruction(stmt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stmt.Bytes = chip8.AppendWord(nil, opcode)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	buf := make([]byte, chip8.MemorySize-int(origin))
	lo, hi := len(buf), 0
	write := func(addr uint16, data []byte) {
		cur := int(addr) - int(origin)
		copy(buf[cur:], data)
		if cur < lo {
			lo = cur
		}
		if end := cur + len(data); end > hi {
			hi = end
		}
	}

	for _, stmt := range stmts {
		switch stmt.Kind {
		case StatementInstruction, StatementBytes, StatementText:
			write(stmt.Addr, stmt.Bytes)
		case StatementWords:
			write(stmt.Addr, chip8.WordsToBytes(stmt.Words))
		}
	}
	if hi <= lo {
		return []byte{}, nil
	}
	return buf[lo:hi], nil
}
