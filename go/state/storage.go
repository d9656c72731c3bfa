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

type slotKey struct {
	address tosca.Address
	key     tosca.Key
}

// Slot is a single storage entry of an account.
type Slot struct {
	Key   tosca.Key
	Value tosca.Word
}

// GetStorage returns the value of the given slot. Locally written values take
// precedence. Otherwise the remote value is fetched once and cached; slots
// absent on the remote side read as zero.
func (s *ExecutionState) GetStorage(ctx context.Context, address tosca.Address, key tosca.Key) (tosca.Word, error) {
	if value, found := s.dirty.Get(storageTreeKey(address, key)); found {
		return value.(tosca.Word), nil
	}
	slot := slotKey{address, key}
	if value, found := s.remoteStorage[slot]; found {
		return value, nil
	}
	var value tosca.Word
	if s.source != nil {
		s.fetches++
		data, err := s.source.GetStorageAt(ctx, address, key)
		if err != nil {
			return tosca.Word{}, fmt.Errorf("%w: storage %v of %v: %w", ErrRemoteFetchFailure, key, address, err)
		}
		value = tosca.PadTo32Bytes(data)
		s.logger.Trace("fetched storage", "address", address, "key", key, "value", value)
	}
	s.remoteStorage[slot] = value
	return value, nil
}

// SetStorage updates the given slot in the local overlay.
func (s *ExecutionState) SetStorage(address tosca.Address, key tosca.Key, value tosca.Word) {
	s.dirty, _, _ = s.dirty.Insert(storageTreeKey(address, key), value)
}

// StorageWrites lists the locally written slots of the given account, ordered
// by key.
func (s *ExecutionState) StorageWrites(address tosca.Address) []Slot {
	prefix := make([]byte, 0, 1+len(address))
	prefix = append(prefix, storagePrefix)
	prefix = append(prefix, address[:]...)

	var res []Slot
	s.dirty.Root().WalkPrefix(prefix, func(k []byte, v interface{}) bool {
		var slot Slot
		copy(slot.Key[:], k[len(prefix):])
		slot.Value = v.(tosca.Word)
		res = append(res, slot)
		return false
	})
	return res
}
