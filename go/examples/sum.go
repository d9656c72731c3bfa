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

// GetSumExample provides an example adding up all numbers from 1 to x in a
// loop driven by a conditional jump.
func GetSumExample() Example {
	code := []byte{
		byte(vm.PUSH1), 4,
		byte(vm.CALLDATALOAD),
		byte(vm.PUSH1), 0,

		// Loop while the counter is not zero; the stack is [counter, sum].
		byte(vm.JUMPDEST),
		byte(vm.DUP1 + 1),
		byte(vm.ISZERO),
		byte(vm.PUSH1), 22,
		byte(vm.JUMPI),

		byte(vm.DUP1 + 1),
		byte(vm.ADD),
		byte(vm.SWAP1),
		byte(vm.PUSH1), 1,
		byte(vm.SWAP1),
		byte(vm.SUB),
		byte(vm.SWAP1),
		byte(vm.PUSH1), 5,
		byte(vm.JUMP),

		byte(vm.JUMPDEST),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}

	return Example{
		Name:      "sum",
		code:      code,
		reference: sum,
	}
}

func sum(x int) int {
	return (x * (x + 1) / 2) & 0xFFFFFFFF
}
