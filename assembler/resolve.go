package assembler

import "chasm/chip8"

// resolve runs the two symbol passes over the statement list.
//
// Pass 1 simulates layout: it walks the statements in order, assigns each
// its start address, and records label addresses. Pass 2 fills every label
// reference with its recorded address. Two passes are required because
// programs routinely jump forward, and because offset directives shift
// every later address, so the layout must be fully settled before any
// reference is resolved.
func resolve(stmts []*Statement, origin uint16, defines map[string]define) []error {
	var errs []error
	labels := make(map[string]uint16)

	addr := int(origin)
	for _, stmt := range stmts {
		switch stmt.Kind {
		case StatementOffset:
			if stmt.Offset < origin || stmt.Offset > 0xFFF {
				errs = append(errs, &InvalidOffsetError{Position: stmt.Pos, Value: stmt.Offset, Origin: origin})
				continue
			}
			addr = int(stmt.Offset)
			stmt.Addr = stmt.Offset
		case StatementLabel:
			stmt.Addr = uint16(addr)
			if _, ok := labels[stmt.Name]; ok {
				errs = append(errs, &DuplicateLabelError{Position: stmt.Pos, Name: stmt.Name})
				continue
			}
			// the two namespaces are independent, but one name may not
			// live in both
			if _, ok := defines[stmt.Name]; ok {
				errs = append(errs, &DuplicateLabelError{Position: stmt.Pos, Name: stmt.Name})
				continue
			}
			labels[stmt.Name] = uint16(addr)
		default:
			stmt.Addr = uint16(addr)
			// checked per statement: a later offset can bring the cursor
			// back into range, which must not hide an earlier overrun
			if end := addr + stmt.size(); end > chip8.MemorySize {
				errs = append(errs, &ImageOverflowError{Position: stmt.Pos, End: end})
			}
			addr += stmt.size()
		}
	}

	for _, stmt := range stmts {
		if stmt.Kind != StatementInstruction {
			continue
		}
		for i := range stmt.Operands {
			op := &stmt.Operands[i]
			if op.Kind != OperandLabel {
				continue
			}
			target, ok := labels[op.Symbol]
			if !ok {
				errs = append(errs, &UndefinedSymbolError{Position: op.Pos, Name: op.Symbol})
				continue
			}
			op.Value = target
		}
	}
	return errs
}
