// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package state provides the write-through overlays used by simulations.
// Remote chain data is fetched lazily through a tosca.NodeDataService and
// cached; local modifications never leave the overlay.
package state

import (
	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"github.com/hashicorp/go-hclog"
	iradix "github.com/hashicorp/go-immutable-radix"
)

const ErrRemoteFetchFailure = tosca.ConstError("remote fetch failure")

// ExecutionState is the mutable world view shared by all programs of a
// single top-level execution. It combines the storage overlay, the balance
// overlay, and the code cache.
//
// Values fetched from the remote source are cached in plain maps and are
// never rolled back. Local writes are kept in an immutable radix tree, which
// makes snapshots cheap and restoring them exact.
//
// An ExecutionState is not thread-safe.
type ExecutionState struct {
	source tosca.NodeDataService
	logger hclog.Logger

	dirty     *iradix.Tree
	snapshots []*iradix.Tree

	remoteStorage  map[slotKey]tosca.Word
	remoteBalances map[tosca.Address]tosca.Value
	code           map[tosca.Address]tosca.Code

	fetches int
}

// New creates an empty state backed by the given source. A nil source is
// treated as a chain on which every account and slot is empty. A nil logger
// disables logging.
func New(source tosca.NodeDataService, logger hclog.Logger) *ExecutionState {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExecutionState{
		source:         source,
		logger:         logger,
		dirty:          iradix.New(),
		remoteStorage:  map[slotKey]tosca.Word{},
		remoteBalances: map[tosca.Address]tosca.Value{},
		code:           map[tosca.Address]tosca.Code{},
	}
}

// NumFetches returns the number of requests sent to the remote source.
func (s *ExecutionState) NumFetches() int {
	return s.fetches
}

// Snapshot records the current set of local writes and returns an identifier
// that can be used to restore it.
func (s *ExecutionState) Snapshot() int {
	id := len(s.snapshots)
	s.snapshots = append(s.snapshots, s.dirty)
	return id
}

// RevertToSnapshot discards every local write performed since the snapshot
// with the given id was taken. The snapshot and all newer ones are released.
func (s *ExecutionState) RevertToSnapshot(id int) {
	if id < 0 || id >= len(s.snapshots) {
		panic("invalid snapshot id")
	}
	s.dirty = s.snapshots[id]
	s.snapshots = s.snapshots[:id]
}

// DiscardSnapshot releases the snapshot with the given id and all newer ones
// while keeping the current local writes.
func (s *ExecutionState) DiscardSnapshot(id int) {
	if id < 0 || id >= len(s.snapshots) {
		panic("invalid snapshot id")
	}
	s.snapshots = s.snapshots[:id]
}

// NumSnapshots returns the number of snapshots that are still retained.
func (s *ExecutionState) NumSnapshots() int {
	return len(s.snapshots)
}

// Keys of the dirty tree are prefixed by the kind of entry they describe so
// that one tree can hold both storage slots and balances.
const (
	storagePrefix = 's'
	balancePrefix = 'b'
)

func storageTreeKey(address tosca.Address, key tosca.Key) []byte {
	res := make([]byte, 0, 1+len(address)+len(key))
	res = append(res, storagePrefix)
	res = append(res, address[:]...)
	return append(res, key[:]...)
}

func balanceTreeKey(address tosca.Address) []byte {
	res := make([]byte, 0, 1+len(address))
	res = append(res, balancePrefix)
	return append(res, address[:]...)
}
