// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import (
	"regexp"
	"testing"
)

func TestOpCode_ValidOpCodesHaveNames(t *testing.T) {
	noPrettyPrint := regexp.MustCompile(`^OpCode\([0-9]*\)$`)
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		want := !noPrettyPrint.MatchString(op.String()) && op != INVALID
		if got := IsValid(op); want != got {
			t.Errorf("invalid classification of instruction %v, wanted %t, got %t", op, want, got)
		}
	}
}

func TestOpCode_CanBePrinted(t *testing.T) {
	validName := regexp.MustCompile(`^(OpCode\([0-9]*\)|[A-Z0-9]+)$`)
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		if !validName.MatchString(op.String()) {
			t.Errorf("invalid print for op %v (%d)", op, i)
		}
	}
}

func TestOpCode_FamiliesAreNamed(t *testing.T) {
	tests := map[OpCode]string{
		PUSH1:          "PUSH1",
		PUSH1 + 19:     "PUSH20",
		PUSH32:         "PUSH32",
		DUP1:           "DUP1",
		DUP16:          "DUP16",
		SWAP1 + 1:      "SWAP2",
		SWAP16:         "SWAP16",
		OpCode(0x0C):   "OpCode(12)",
		OpCode(0xEF):   "OpCode(239)",
		RETURNDATASIZE: "RETURNDATASIZE",
	}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("unexpected name for 0x%02x, wanted %v, got %v", byte(op), want, got)
		}
	}
}

func TestOpCode_Width(t *testing.T) {
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		want := 1
		if PUSH1 <= op && op <= PUSH32 {
			want = int(op-PUSH1) + 2
		}
		if got := op.Width(); want != got {
			t.Errorf("unexpected width of %v, wanted %d, got %d", op, want, got)
		}
	}
	if PUSH0.Width() != 1 || IsPush(PUSH0) {
		t.Errorf("PUSH0 must not carry immediate data")
	}
}
