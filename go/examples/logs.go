// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import "github.com/Fantom-foundation/tosca-sim/go/tosca/vm"

// GetLogsExample provides an example emitting one event per iteration, using
// the iteration index as topic, and returning the number of events.
func GetLogsExample() Example {
	code := []byte{
		byte(vm.PUSH1), 4,
		byte(vm.CALLDATALOAD),
		byte(vm.PUSH1), 0,

		// Loop while index < x; the stack is [x, index].
		byte(vm.JUMPDEST),
		byte(vm.DUP1 + 1),
		byte(vm.DUP1 + 1),
		byte(vm.LT),
		byte(vm.ISZERO),
		byte(vm.PUSH1), 25,
		byte(vm.JUMPI),

		byte(vm.DUP1),
		byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 0,
		byte(vm.LOG1),

		byte(vm.PUSH1), 1,
		byte(vm.ADD),
		byte(vm.PUSH1), 5,
		byte(vm.JUMP),

		byte(vm.JUMPDEST),
		byte(vm.POP),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}

	return Example{
		Name:      "logs",
		code:      code,
		reference: identity,
		logs:      identity,
	}
}

func identity(x int) int {
	return x
}
