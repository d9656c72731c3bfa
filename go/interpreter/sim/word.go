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
	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"github.com/holiman/uint256"
)

func toAddress(value *uint256.Int) tosca.Address {
	return value.Bytes20()
}

func addressToWord(address tosca.Address) *uint256.Int {
	return new(uint256.Int).SetBytes20(address[:])
}
