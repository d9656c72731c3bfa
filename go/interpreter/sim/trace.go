// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sim

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/tosca-sim/go/state"
	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"github.com/Fantom-foundation/tosca-sim/go/tosca/vm"
)

// TraceEntry describes an executed instruction together with the state of
// its program right after the instruction. Entries are ordered by step, so
// the entry of a call precedes the entries of its callee.
type TraceEntry struct {
	Step    int // position in the whole execution, starting at 0
	Depth   int
	Address tosca.Address
	PC      int
	Op      vm.OpCode
	Stack   []tosca.Word // bottom element first
	Memory  tosca.Data
	Storage []state.Slot // local writes of Address, ordered by key
}

func (e TraceEntry) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "%d: depth=%d address=%v pc=%d %v", e.Step, e.Depth, e.Address, e.PC, e.Op)
	if len(e.Stack) > 0 {
		fmt.Fprintf(&b, " top=%v", e.Stack[len(e.Stack)-1])
	}
	fmt.Fprintf(&b, " stack=%d memory=%d storage=%d", len(e.Stack), len(e.Memory), len(e.Storage))
	return b.String()
}

// record reserves the trace entry of the instruction about to be executed
// and returns its index.
func (e *execution) record(p *Program, op vm.OpCode) int {
	e.trace = append(e.trace, TraceEntry{
		Step:    e.steps,
		Depth:   p.Context.Depth,
		Address: p.Context.Address,
		PC:      p.pc,
		Op:      op,
	})
	return len(e.trace) - 1
}

// complete fills the given entry with the current state of the program.
func (e *execution) complete(index int, p *Program) {
	entry := &e.trace[index]
	entry.Stack = p.stack.Words()
	entry.Memory = p.memory.Data()
	entry.Storage = p.Context.State.StorageWrites(p.Context.Address)
}

// Instruction is a single decoded instruction of a piece of code.
type Instruction struct {
	PC   int
	Op   vm.OpCode
	Data []byte // immediate data of PUSH instructions
}

func (i Instruction) String() string {
	if len(i.Data) == 0 {
		return fmt.Sprintf("0x%04x %v", i.PC, i.Op)
	}
	return fmt.Sprintf("0x%04x %v 0x%x", i.PC, i.Op, i.Data)
}

// Disassemble decodes the given code into its instructions. Immediate data
// truncated by the end of the code is reported as far as it is present.
func Disassemble(code tosca.Code) []Instruction {
	var res []Instruction
	for pc := 0; pc < len(code); {
		op := vm.OpCode(code[pc])
		width := op.Width()
		instruction := Instruction{PC: pc, Op: op}
		if width > 1 {
			instruction.Data = code[pc+1 : min(pc+width, len(code))]
		}
		res = append(res, instruction)
		pc += width
	}
	return res
}
