package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders chunk as human-readable text for the CLI's
// --dump-bytecode flag.
func Disassemble(name string, chunk *Chunk) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "chunk %s (%d instructions, %d constants, %d locals)\n", name, len(chunk.Code), len(chunk.Constants), chunk.NumLocals)
	for i, ins := range chunk.Code {
		fmt.Fprintf(&sb, "%4d  %-16s", i, ins.Op.String())
		switch ins.Op {
		case OpLoadConst, OpGetProp, OpSetProp, OpLoadName, OpStoreName:
			if int(ins.A) < len(chunk.Constants) {
				fmt.Fprintf(&sb, " %v", chunk.Constants[ins.A])
			}
		case OpLoadLocal, OpStoreLocal, OpCall, OpMethodCall:
			fmt.Fprintf(&sb, " %d", ins.A)
		case OpJump, OpJumpIfFalse, OpJumpIfTruthy, OpJumpIfNotNil:
			fmt.Fprintf(&sb, " -> %d", ins.A)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
