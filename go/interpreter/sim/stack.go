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
	"fmt"
	"strings"

	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"github.com/holiman/uint256"
)

// Stack is the LIFO of 256-bit words used by a single program. Unlike the
// EVM stack it has no upper size limit.
//
// The unexported accessors do not check boundaries. The driver verifies the
// stack depth required by an instruction before it is dispatched.
type Stack struct {
	data []uint256.Int
}

func NewStack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 64)}
}

// Push adds a copy of the given value to the top of the stack.
func (s *Stack) Push(value *uint256.Int) {
	s.data = append(s.data, *value)
}

// Pop removes the top element from the stack and returns it.
func (s *Stack) Pop() (uint256.Int, error) {
	if len(s.data) == 0 {
		return uint256.Int{}, ErrStackUnderflow
	}
	return *s.pop(), nil
}

// Peek returns the top element without removing it.
func (s *Stack) Peek() (uint256.Int, error) {
	if len(s.data) == 0 {
		return uint256.Int{}, ErrStackUnderflow
	}
	return *s.peek(), nil
}

// Len returns the number of elements on the stack.
func (s *Stack) Len() int {
	return len(s.data)
}

// Words returns the 32-byte encodings of all elements, bottom first.
func (s *Stack) Words() []tosca.Word {
	res := make([]tosca.Word, len(s.data))
	for i := range s.data {
		res[i] = s.data[i].Bytes32()
	}
	return res
}

// pushUndefined adds an element with an undefined value to the top of the
// stack and returns a pointer to it for in-place modification.
func (s *Stack) pushUndefined() *uint256.Int {
	s.data = append(s.data, uint256.Int{})
	return &s.data[len(s.data)-1]
}

// pop removes the top element and returns a pointer to it. The pointer is
// only valid until the next push operation.
func (s *Stack) pop() *uint256.Int {
	n := len(s.data) - 1
	res := &s.data[n]
	s.data = s.data[:n]
	return res
}

func (s *Stack) peek() *uint256.Int {
	return &s.data[len(s.data)-1]
}

// peekN returns the n-th element from the top; peekN(0) equals peek().
func (s *Stack) peekN(n int) *uint256.Int {
	return &s.data[len(s.data)-n-1]
}

// dup pushes a copy of the n-th element from the top, where the top element
// is at position 1.
func (s *Stack) dup(n int) {
	s.data = append(s.data, s.data[len(s.data)-n])
}

// swap exchanges the top element with the element n positions below it.
func (s *Stack) swap(n int) {
	top := len(s.data) - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
}

func (s *Stack) String() string {
	b := strings.Builder{}
	for i := 0; i < s.Len(); i++ {
		b.WriteString(fmt.Sprintf("    [%4d] 0x%x\n", s.Len()-i-1, s.peekN(i).Bytes32()))
	}
	return b.String()
}
