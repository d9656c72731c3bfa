// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tosca

import "math"

// SizeInWords returns the number of words required to store the given size,
// checking that size+32 does not overflow uint64.
func SizeInWords(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// PadTo32Bytes converts a big-endian byte string into a word. Shorter inputs
// are left-padded with zeros, longer ones keep their trailing 32 bytes.
func PadTo32Bytes(data []byte) (res Word) {
	if len(data) > len(res) {
		data = data[len(data)-len(res):]
	}
	copy(res[len(res)-len(data):], data)
	return res
}
