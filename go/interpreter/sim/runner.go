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
	"io"

	"github.com/Fantom-foundation/tosca-sim/go/tosca/vm"
)

type runner interface {
	// run executes the program until it halts. Any execution violation is
	// reported as an error; the program's partial result remains available.
	run(*Program) error
}

// vanillaRunner is the default runner that executes the code without any
// additional features.
type vanillaRunner struct{}

func (vanillaRunner) run(p *Program) error {
	return steps(p, false)
}

// loggingRunner is a runner that logs the execution of the code to an
// io.Writer, one line per instruction.
type loggingRunner struct {
	log io.Writer
}

func newLoggingRunner(writer io.Writer) loggingRunner {
	return loggingRunner{log: writer}
}

func (l loggingRunner) run(p *Program) error {
	for p.status == statusRunning {
		// log format: <op>, <gas>, <top-of-stack>\n
		if p.pc < len(p.Code) && l.log != nil {
			top := "-empty-"
			if p.stack.Len() > 0 {
				top = p.stack.peek().ToBig().String()
			}
			_, err := fmt.Fprintf(l.log, "%v, %d, %v\n", vm.OpCode(p.Code[p.pc]), p.Context.Gas, top)
			if err != nil {
				return err
			}
		}
		if err := steps(p, true); err != nil {
			return err
		}
	}
	return nil
}
