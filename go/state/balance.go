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
	"context"
	"fmt"

	"github.com/Fantom-foundation/tosca-sim/go/tosca"
)

// GetBalance returns the running balance of the given account. On the first
// touch the balance is seeded from the remote chain; afterwards only local
// transfers change it.
func (s *ExecutionState) GetBalance(ctx context.Context, address tosca.Address) (tosca.Value, error) {
	if value, found := s.dirty.Get(balanceTreeKey(address)); found {
		return value.(tosca.Value), nil
	}
	if value, found := s.remoteBalances[address]; found {
		return value, nil
	}
	var value tosca.Value
	if s.source != nil {
		s.fetches++
		var err error
		value, err = s.source.GetBalance(ctx, address)
		if err != nil {
			return tosca.Value{}, fmt.Errorf("%w: balance of %v: %w", ErrRemoteFetchFailure, address, err)
		}
		s.logger.Trace("fetched balance", "address", address, "balance", value)
	}
	s.remoteBalances[address] = value
	return value, nil
}

// SetBalance overrides the running balance of the given account.
func (s *ExecutionState) SetBalance(address tosca.Address, value tosca.Value) {
	s.dirty, _, _ = s.dirty.Insert(balanceTreeKey(address), value)
}

// Transfer moves the given value from one account to another. If the sender
// can not cover the value, no balance is modified and false is returned.
func (s *ExecutionState) Transfer(ctx context.Context, from, to tosca.Address, value tosca.Value) (bool, error) {
	if value == (tosca.Value{}) {
		return true, nil
	}
	fromBalance, err := s.GetBalance(ctx, from)
	if err != nil {
		return false, err
	}
	if fromBalance.Cmp(value) < 0 {
		return false, nil
	}
	if from == to {
		return true, nil
	}
	toBalance, err := s.GetBalance(ctx, to)
	if err != nil {
		return false, err
	}
	s.SetBalance(from, tosca.Sub(fromBalance, value))
	s.SetBalance(to, tosca.Add(toBalance, value))
	return true, nil
}
