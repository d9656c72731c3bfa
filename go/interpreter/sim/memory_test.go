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
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/holiman/uint256"
	"pgregory.net/rand"
)

func TestMemory_ExpansionCoversAccessedRangeInFullWords(t *testing.T) {
	tests := map[string]struct {
		offset, size uint64
		want         uint64
	}{
		"empty range":      {100, 0, 0},
		"single byte":      {0, 1, 32},
		"full word":        {0, 32, 32},
		"crossing a word":  {31, 2, 64},
		"distant access":   {1000, 1, 1024},
		"exact word bound": {32, 32, 64},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewMemory(defaultMaxMemorySize)
			if _, err := m.Read(test.offset, test.size); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := m.Len(); got != test.want {
				t.Errorf("unexpected memory size, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestMemory_NeverShrinks(t *testing.T) {
	rnd := rand.New(0)
	m := NewMemory(defaultMaxMemorySize)
	last := m.Len()
	for i := 0; i < 1000; i++ {
		offset := rnd.Uint64n(4096)
		size := rnd.Uint64n(128)
		var err error
		switch rnd.Intn(3) {
		case 0:
			_, err = m.Read(offset, size)
		case 1:
			err = m.Write(offset, make([]byte, size))
		case 2:
			err = m.WriteSized(offset, size, []byte{1, 2, 3})
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		current := m.Len()
		if current < last {
			t.Fatalf("memory shrunk from %d to %d", last, current)
		}
		if current%32 != 0 {
			t.Fatalf("memory size %d is not a multiple of the word size", current)
		}
		if size > 0 && current < offset+size {
			t.Fatalf("memory of size %d does not cover [%d, %d)", current, offset, offset+size)
		}
		last = current
	}
}

func TestMemory_WriteSizedPadsWithZeros(t *testing.T) {
	m := NewMemory(defaultMaxMemorySize)
	if err := m.Write(0, bytes.Repeat([]byte{0xFF}, 8)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.WriteSized(2, 4, []byte{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := m.Read(0, 8)
	want := []byte{0xFF, 0xFF, 1, 2, 0, 0, 0xFF, 0xFF}
	if !bytes.Equal(want, got) {
		t.Errorf("unexpected memory content, wanted %x, got %x", want, got)
	}
}

func TestMemory_WriteSizedTruncatesLongData(t *testing.T) {
	m := NewMemory(defaultMaxMemorySize)
	if err := m.WriteSized(0, 2, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := m.Read(0, 4)
	if want := []byte{1, 2, 0, 0}; !bytes.Equal(want, got) {
		t.Errorf("unexpected memory content, wanted %x, got %x", want, got)
	}
}

func TestMemory_ReadReturnsCopy(t *testing.T) {
	m := NewMemory(defaultMaxMemorySize)
	data, _ := m.Read(0, 4)
	data[0] = 1
	if got, _ := m.Read(0, 1); got[0] != 0 {
		t.Errorf("modifying read data changed memory")
	}
}

func TestMemory_AccessesBeyondLimitFail(t *testing.T) {
	tests := map[string]struct {
		offset, size uint64
	}{
		"beyond limit":    {1024, 1},
		"overflow":        {math.MaxUint64, 2},
		"ending at limit": {1000, 25},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewMemory(1024)
			if _, err := m.Read(test.offset, test.size); !errors.Is(err, ErrOutOfMemoryRange) {
				t.Errorf("expected out of memory range, got %v", err)
			}
			if m.Len() != 0 {
				t.Errorf("failed access expanded memory to %d", m.Len())
			}
		})
	}
}

func TestMemory_LimitAppliesToWordRoundedSize(t *testing.T) {
	m := NewMemory(100)
	if err := m.setByte(99, 1); !errors.Is(err, ErrOutOfMemoryRange) {
		t.Errorf("expected out of memory range, got %v", err)
	}
	if err := m.setByte(95, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Len(); got != 96 {
		t.Errorf("unexpected memory size %d", got)
	}
}

func TestMemory_WordsAreStoredBigEndian(t *testing.T) {
	m := NewMemory(defaultMaxMemorySize)
	if err := m.setWord(0, uint256.NewInt(0x0102)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := m.Read(30, 2)
	if want := []byte{1, 2}; !bytes.Equal(want, data) {
		t.Errorf("unexpected encoding, wanted %x, got %x", want, data)
	}
	var restored uint256.Int
	if err := m.readWord(0, &restored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Uint64() != 0x0102 {
		t.Errorf("unexpected restored word %v", &restored)
	}
}

func TestToMemoryRange(t *testing.T) {
	max64 := new(uint256.Int).SetUint64(math.MaxUint64)
	large := new(uint256.Int).Lsh(uint256.NewInt(1), 64)
	tests := map[string]struct {
		offset, size *uint256.Int
		fail         bool
	}{
		"zero size ignores offset": {large, uint256.NewInt(0), false},
		"regular":                  {uint256.NewInt(10), uint256.NewInt(20), false},
		"offset too large":         {large, uint256.NewInt(1), true},
		"size too large":           {uint256.NewInt(0), large, true},
		"sum overflows":            {max64, uint256.NewInt(1), true},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := toMemoryRange(test.offset, test.size)
			if test.fail != errors.Is(err, ErrOutOfMemoryRange) {
				t.Errorf("unexpected result, wanted failure %t, got %v", test.fail, err)
			}
		})
	}
}
