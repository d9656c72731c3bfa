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
	"strings"
	"testing"

	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"github.com/Fantom-foundation/tosca-sim/go/tosca/vm"
)

func TestDisassemble_DecodesPushData(t *testing.T) {
	code := tosca.Code{
		byte(vm.PUSH2), 0x01, 0x02,
		byte(vm.ADD),
		byte(vm.PUSH3), 0x03,
	}
	got := Disassemble(code)
	want := []Instruction{
		{PC: 0, Op: vm.PUSH2, Data: []byte{1, 2}},
		{PC: 3, Op: vm.ADD},
		{PC: 4, Op: vm.PUSH3, Data: []byte{3}},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected instructions: %v", got)
	}
	for i := range want {
		if want[i].PC != got[i].PC || want[i].Op != got[i].Op || !bytes.Equal(want[i].Data, got[i].Data) {
			t.Errorf("unexpected instruction %d, wanted %v, got %v", i, want[i], got[i])
		}
	}
}

func TestInstruction_String(t *testing.T) {
	tests := map[string]Instruction{
		"0x0000 ADD":          {PC: 0, Op: vm.ADD},
		"0x0010 PUSH2 0xabcd": {PC: 16, Op: vm.PUSH2, Data: []byte{0xAB, 0xCD}},
	}
	for want, instruction := range tests {
		if got := instruction.String(); want != got {
			t.Errorf("unexpected print, wanted %q, got %q", want, got)
		}
	}
}

func TestTraceEntry_String(t *testing.T) {
	entry := TraceEntry{
		Step:    3,
		Depth:   1,
		Address: tosca.Address{19: 0xAB},
		PC:      7,
		Op:      vm.MSTORE,
		Stack:   []tosca.Word{{31: 1}, {31: 2}},
	}
	got := entry.String()
	for _, part := range []string{"3:", "depth=1", "address=0x00000000000000000000000000000000000000AB", "pc=7", "MSTORE", "stack=2"} {
		if !strings.Contains(got, part) {
			t.Errorf("missing %q in %q", part, got)
		}
	}
}
