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

// Memory is the byte-addressed scratch space of a program. It grows in units
// of 32-byte words to cover every accessed range and never shrinks.
type Memory struct {
	store []byte
	limit uint64
}

// NewMemory creates an empty memory that may grow up to limit bytes.
func NewMemory(limit uint64) *Memory {
	return &Memory{limit: limit}
}

// Len returns the current size of the memory in bytes.
func (m *Memory) Len() uint64 {
	return uint64(len(m.store))
}

// Data returns a copy of the memory content.
func (m *Memory) Data() []byte {
	return append([]byte(nil), m.store...)
}

// expand grows the memory to cover the range [offset, offset+size). Ranges
// of size zero never cause an expansion.
func (m *Memory) expand(offset, size uint64) error {
	if size == 0 {
		return nil
	}
	needed := offset + size
	if needed < offset || tosca.SizeInWords(needed) > m.limit/32 {
		return ErrOutOfMemoryRange
	}
	needed = tosca.SizeInWords(needed) * 32
	if current := m.Len(); current < needed {
		m.store = append(m.store, make([]byte, needed-current)...)
	}
	return nil
}

// getSlice obtains a slice of size bytes from the memory at the given offset.
// The returned slice is backed by the memory's internal data and is only
// valid until the next expansion.
func (m *Memory) getSlice(offset, size uint64) ([]byte, error) {
	if err := m.expand(offset, size); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	return m.store[offset : offset+size], nil
}

// Read returns a copy of the given range, expanding memory as needed.
func (m *Memory) Read(offset, size uint64) ([]byte, error) {
	data, err := m.getSlice(offset, size)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), data...), nil
}

// Write stores data at the given offset, expanding memory as needed.
func (m *Memory) Write(offset uint64, data []byte) error {
	trg, err := m.getSlice(offset, uint64(len(data)))
	if err != nil {
		return err
	}
	copy(trg, data)
	return nil
}

// WriteSized expands memory to cover size bytes at offset, copies as much of
// data as fits, and zero-fills the remainder of the range.
func (m *Memory) WriteSized(offset, size uint64, data []byte) error {
	trg, err := m.getSlice(offset, size)
	if err != nil {
		return err
	}
	n := copy(trg, data)
	clear(trg[n:])
	return nil
}

func (m *Memory) readWord(offset uint64, target *uint256.Int) error {
	data, err := m.getSlice(offset, 32)
	if err != nil {
		return err
	}
	target.SetBytes32(data)
	return nil
}

func (m *Memory) setWord(offset uint64, value *uint256.Int) error {
	trg, err := m.getSlice(offset, 32)
	if err != nil {
		return err
	}
	value.WriteToSlice(trg)
	return nil
}

func (m *Memory) setByte(offset uint64, value byte) error {
	trg, err := m.getSlice(offset, 1)
	if err != nil {
		return err
	}
	trg[0] = value
	return nil
}

// toMemoryRange converts stack operands into a memory range. Zero sized
// ranges are valid for any offset.
func toMemoryRange(offset, size *uint256.Int) (uint64, uint64, error) {
	if size.IsZero() {
		return 0, 0, nil
	}
	if !offset.IsUint64() || !size.IsUint64() || offset.Uint64()+size.Uint64() < offset.Uint64() {
		return 0, 0, ErrOutOfMemoryRange
	}
	return offset.Uint64(), size.Uint64(), nil
}
