// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// GetCode returns the code of the given account, fetching it on the first
// reference. Code is immutable for the duration of an execution.
func (s *ExecutionState) GetCode(ctx context.Context, address tosca.Address) (tosca.Code, error) {
	if code, found := s.code[address]; found {
		return code, nil
	}
	var code tosca.Code
	if s.source != nil {
		s.fetches++
		var err error
		code, err = s.source.GetCode(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("%w: code of %v: %w", ErrRemoteFetchFailure, address, err)
		}
		s.logger.Trace("fetched code", "address", address, "size", len(code))
	}
	s.code[address] = code
	return code, nil
}

// SetCode installs code for the given account, shadowing the remote code.
func (s *ExecutionState) SetCode(address tosca.Address, code tosca.Code) {
	s.code[address] = bytes.Clone(code)
}

// CodeAddresses lists all accounts with known code in ascending order.
func (s *ExecutionState) CodeAddresses() []tosca.Address {
	res := maps.Keys(s.code)
	slices.SortFunc(res, func(a, b tosca.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return res
}
