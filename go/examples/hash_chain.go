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
	"encoding/binary"

	"github.com/Fantom-foundation/tosca-sim/go/tosca/vm"
	"golang.org/x/crypto/sha3"
)

// GetHashChainExample provides an example hashing its own argument x times
// and returning the lowest 4 bytes of the final hash.
func GetHashChainExample() Example {
	code := []byte{
		byte(vm.PUSH1), 4,
		byte(vm.CALLDATALOAD),
		byte(vm.DUP1),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),

		byte(vm.JUMPDEST),
		byte(vm.DUP1),
		byte(vm.ISZERO),
		byte(vm.PUSH1), 28,
		byte(vm.JUMPI),

		// memory[0] = keccak(memory[0:32])
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.SHA3),
		byte(vm.PUSH1), 0,
		byte(vm.MSTORE),

		byte(vm.PUSH1), 1,
		byte(vm.SWAP1),
		byte(vm.SUB),
		byte(vm.PUSH1), 7,
		byte(vm.JUMP),

		byte(vm.JUMPDEST),
		byte(vm.PUSH1), 32,
		byte(vm.PUSH1), 0,
		byte(vm.RETURN),
	}

	return Example{
		Name:      "hash-chain",
		code:      code,
		reference: hashChain,
	}
}

func hashChain(x int) int {
	var word [32]byte
	binary.BigEndian.PutUint32(word[28:], uint32(x))
	hasher := sha3.NewLegacyKeccak256()
	for i := 0; i < x; i++ {
		hasher.Reset()
		hasher.Write(word[:])
		copy(word[:], hasher.Sum(nil))
	}
	return int(binary.BigEndian.Uint32(word[28:]))
}
