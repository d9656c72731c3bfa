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
	"context"
	"fmt"
	"math"

	"github.com/Fantom-foundation/tosca-sim/go/interpreter/sim"
	"github.com/Fantom-foundation/tosca-sim/go/state"
	"github.com/Fantom-foundation/tosca-sim/go/tosca"
)

// stepLimit bounds the number of instructions of a single example run.
const stepLimit = 1 << 26

// exampleAddress is the account the example code is executed as.
var exampleAddress = tosca.Address{19: 0xEE}

// Example is an executable description of a contract and an entry point with
// a (int)->int signature.
type Example struct {
	Name      string
	code      tosca.Code
	accounts  map[tosca.Address]tosca.Code // code of other accounts reached by the example
	function  uint32                       // identifier of the function in the contract to be called
	reference func(int) int                // a reference function computing the same function
	logs      func(int) int                // the number of logs emitted for an argument, none if nil
}

type Result struct {
	Result int
	Logs   int
}

// All returns all available examples.
func All() []Example {
	return []Example{
		GetSumExample(),
		GetCounterExample(),
		GetLogsExample(),
		GetHashChainExample(),
		GetCallExample(),
	}
}

// RunOn runs this example on the given simulator, using the given argument.
// Each run starts from a fresh state only containing the example's accounts.
func (e *Example) RunOn(ctx context.Context, simulator *sim.Simulator, argument int) (Result, error) {
	st := state.New(nil, nil)
	for address, code := range e.accounts {
		st.SetCode(address, code)
	}

	res, _, err := simulator.Execute(ctx, e.code, sim.ProgramContext{
		Address: exampleAddress,
		Input:   encodeArgument(e.function, argument),
		Gas:     math.MaxInt64,
		State:   st,
	}, stepLimit, false)
	if err != nil {
		return Result{}, err
	}
	if res.Reverted {
		return Result{}, fmt.Errorf("example %s reverted with output %x", e.Name, res.Output)
	}

	result, err := decodeOutput(res.Output)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Result: result,
		Logs:   len(res.Logs),
	}, nil
}

// RunReference runs the reference function of this example to produce the expected result.
func (e *Example) RunReference(argument int) Result {
	res := Result{Result: e.reference(argument)}
	if e.logs != nil {
		res.Logs = e.logs(argument)
	}
	return res
}

func encodeArgument(function uint32, arg int) []byte {
	data := make([]byte, 4+32) // parameter is padded up to 32 bytes

	// encode function selector in big-endian format
	data[0] = byte(function >> 24)
	data[1] = byte(function >> 16)
	data[2] = byte(function >> 8)
	data[3] = byte(function)

	// encode argument as a big-endian value
	data[4+28] = byte(arg >> 24)
	data[5+28] = byte(arg >> 16)
	data[6+28] = byte(arg >> 8)
	data[7+28] = byte(arg)

	return data
}

func decodeOutput(output []byte) (int, error) {
	if len(output) != 32 {
		return 0, fmt.Errorf("unexpected length of output; wanted 32, got %d", len(output))
	}
	return (int(output[28]) << 24) | (int(output[29]) << 16) | (int(output[30]) << 8) | (int(output[31]) << 0), nil
}
