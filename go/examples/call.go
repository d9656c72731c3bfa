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

import (
	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"github.com/Fantom-foundation/tosca-sim/go/tosca/vm"
)

var doublerAddress = tosca.Address{19: 0xD0}

// GetCallExample provides an example forwarding its input to a second
// contract and returning that contract's result.
func GetCallExample() Example {
	code := []byte{
		// Copy the input into memory[0].
		byte(vm.CALLDATASIZE),
		byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 0,
		byte(vm.CALLDATACOPY),

		// Call the doubler, writing its result to memory[0].
		byte(vm.PUSH1), 32, // output size
		byte(vm.PUSH1), 0, // output offset
		byte(vm.CALLDATASIZE),
		byte(vm.PUSH1), 0, // input offset
		byte(vm.PUSH1), 0, // value
		byte(vm.PUSH20),
	}
	code = append(code, doublerAddress[:]...)
	code = append(code,
		byte(vm.GAS),
		byte(vm.CALL),
		byte(vm.POP),

		// Return the result.
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	)

	doubler := []byte{
		byte(vm.PUSH1), 4,
		byte(vm.CALLDATALOAD),
		byte(vm.PUSH1), 2,
		byte(vm.MUL),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}

	return Example{
		Name:      "call",
		code:      code,
		accounts:  map[tosca.Address]tosca.Code{doublerAddress: doubler},
		reference: double,
	}
}

func double(x int) int {
	return 2 * x
}
