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
	"github.com/Fantom-foundation/tosca-sim/go/state"
	"github.com/Fantom-foundation/tosca-sim/go/tosca"
)

// ProgramContext describes the environment a single program runs in. Nested
// calls derive their context from the one of their caller.
type ProgramContext struct {
	Address tosca.Address // the account whose storage and balance is used
	Caller  tosca.Address
	Origin  tosca.Address
	Value   tosca.Value
	Input   tosca.Data
	Gas     tosca.Gas // threaded through calls, never charged
	Static  bool
	Depth   int

	BlockNumber uint64
	Timestamp   uint64
	Coinbase    tosca.Address
	BaseFee     tosca.Value
	GasPrice    tosca.Value
	GasLimit    tosca.Gas
	ChainID     tosca.Value

	// State is shared by all programs of an execution. If nil, a fresh state
	// backed by NodeData is created for each top-level execution.
	State    *state.ExecutionState
	NodeData tosca.NodeDataService
}

// nested derives the context of a callee. Origin, block parameters, and the
// shared state are inherited.
func (c *ProgramContext) nested(
	kind tosca.CallKind,
	target tosca.Address,
	value tosca.Value,
	input tosca.Data,
	gas tosca.Gas,
) *ProgramContext {
	res := *c
	res.Input = input
	res.Gas = gas
	res.Depth = c.Depth + 1

	switch kind {
	case tosca.Call:
		res.Caller = c.Address
		res.Address = target
		res.Value = value
	case tosca.StaticCall:
		res.Caller = c.Address
		res.Address = target
		res.Value = tosca.Value{}
		res.Static = true
	case tosca.CallCode:
		res.Caller = c.Address
		res.Value = value
	case tosca.DelegateCall:
		// caller, address, and value are retained
	}
	return &res
}
