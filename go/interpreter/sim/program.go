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

	"github.com/Fantom-foundation/tosca-sim/go/tosca"
)

// status is enumeration of the execution state of a program.
type status byte

const (
	statusRunning  status = iota // < all fine, ops are processed
	statusStopped                // < execution stopped with a STOP
	statusReturned               // < execution stopped with a RETURN
	statusReverted               // < execution stopped with a REVERT
)

func (s status) String() string {
	switch s {
	case statusRunning:
		return "running"
	case statusStopped:
		return "stopped"
	case statusReturned:
		return "returned"
	case statusReverted:
		return "reverted"
	}
	return fmt.Sprintf("status(%d)", s)
}

// ProgramResult summarizes the outcome of a program run.
type ProgramResult struct {
	Output   tosca.Data
	Reverted bool
	Logs     []tosca.Log
}

// Program is the execution state of a single piece of code running in a
// given context. Each nested call runs in its own Program.
type Program struct {
	Code    tosca.Code
	Context *ProgramContext

	pc     int
	status status
	stack  *Stack
	memory *Memory

	jumpDests  jumpDests
	returnData []byte // < the result of the last nested call
	result     ProgramResult

	exec *execution
}

func newProgram(exec *execution, code tosca.Code, ctxt *ProgramContext) *Program {
	return &Program{
		Code:      code,
		Context:   ctxt,
		stack:     NewStack(),
		memory:    NewMemory(exec.config.MaxMemorySize),
		jumpDests: exec.sim.analysis.get(code),
		exec:      exec,
	}
}

// PC returns the position of the next instruction to execute.
func (p *Program) PC() int {
	return p.pc
}

func (p *Program) Stack() *Stack {
	return p.stack
}

func (p *Program) Memory() *Memory {
	return p.memory
}

// generateResult converts the final state of the program into its result.
// Reverted programs drop their logs.
func generateResult(p *Program) (ProgramResult, error) {
	switch p.status {
	case statusStopped:
		return ProgramResult{Logs: p.result.Logs}, nil
	case statusReturned:
		return ProgramResult{
			Output: p.result.Output,
			Logs:   p.result.Logs,
		}, nil
	case statusReverted:
		return ProgramResult{
			Output:   p.result.Output,
			Reverted: true,
		}, nil
	default:
		return p.result, fmt.Errorf("%w: %v", errUnknownStatus, p.status)
	}
}
