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

// GetCounterExample provides an example incrementing a storage slot by two
// x times and returning its final value.
func GetCounterExample() Example {
	code := []byte{
		byte(vm.PUSH1), 4,
		byte(vm.CALLDATALOAD),

		byte(vm.JUMPDEST),
		byte(vm.DUP1),
		byte(vm.ISZERO),
		byte(vm.PUSH1), 25,
		byte(vm.JUMPI),

		// slot[0] += 2
		byte(vm.PUSH1), 2,
		byte(vm.PUSH1), 0,
		byte(vm.SLOAD),
		byte(vm.ADD),
		byte(vm.PUSH1), 0,
		byte(vm.SSTORE),

		byte(vm.PUSH1), 1,
		byte(vm.SWAP1),
		byte(vm.SUB),
		byte(vm.PUSH1), 3,
		byte(vm.JUMP),

		byte(vm.JUMPDEST),
		byte(vm.PUSH1), 0,
		byte(vm.SLOAD),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}

	return Example{
		Name:      "counter",
		code:      code,
		reference: double,
	}
}
