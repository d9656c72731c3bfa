// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tosca

import "context"

//go:generate mockgen -source node_data.go -destination node_data_mock.go -package tosca

// NodeDataService provides read access to the state of a remote chain, as
// seen by a node at a fixed block. Simulations consult it lazily whenever
// they reference an account or storage slot they do not hold locally.
//
// All methods are idempotent reads. Implementations may retry transient
// failures internally; any error returned is treated as fatal by the
// simulation requesting the data.
type NodeDataService interface {
	// GetCode returns the deployed byte-code of the given account. The result
	// is empty for accounts without code.
	GetCode(ctx context.Context, address Address) (Code, error)

	// GetBalance returns the chain balance of the given account.
	GetBalance(ctx context.Context, address Address) (Value, error)

	// GetStorageAt returns the raw value of the given storage slot. A nil
	// result signals that the slot is not present remotely.
	GetStorageAt(ctx context.Context, address Address, key Key) ([]byte, error)
}
