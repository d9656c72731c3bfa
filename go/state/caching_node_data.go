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

	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingNodeDataService wraps a NodeDataService pinned to a fixed block and
// caches its answers across executions. Failed requests are not cached. It
// is safe for concurrent use.
type CachingNodeDataService struct {
	source   tosca.NodeDataService
	code     *lru.Cache[tosca.Address, tosca.Code]
	balances *lru.Cache[tosca.Address, tosca.Value]
	storage  *lru.Cache[slotKey, storageEntry]
}

type storageEntry struct {
	data []byte // nil if absent remotely
}

const defaultNodeDataCacheSize = 1 << 12

// NewCachingNodeDataService creates a cache holding up to capacity entries of
// each kind of data. A capacity of 0 selects a default size.
func NewCachingNodeDataService(source tosca.NodeDataService, capacity int) (*CachingNodeDataService, error) {
	if capacity == 0 {
		capacity = defaultNodeDataCacheSize
	}
	code, err := lru.New[tosca.Address, tosca.Code](capacity)
	if err != nil {
		return nil, err
	}
	balances, err := lru.New[tosca.Address, tosca.Value](capacity)
	if err != nil {
		return nil, err
	}
	storage, err := lru.New[slotKey, storageEntry](capacity)
	if err != nil {
		return nil, err
	}
	return &CachingNodeDataService{
		source:   source,
		code:     code,
		balances: balances,
		storage:  storage,
	}, nil
}

func (c *CachingNodeDataService) GetCode(ctx context.Context, address tosca.Address) (tosca.Code, error) {
	if code, found := c.code.Get(address); found {
		return code, nil
	}
	code, err := c.source.GetCode(ctx, address)
	if err != nil {
		return nil, err
	}
	code = bytes.Clone(code)
	c.code.Add(address, code)
	return code, nil
}

func (c *CachingNodeDataService) GetBalance(ctx context.Context, address tosca.Address) (tosca.Value, error) {
	if balance, found := c.balances.Get(address); found {
		return balance, nil
	}
	balance, err := c.source.GetBalance(ctx, address)
	if err != nil {
		return tosca.Value{}, err
	}
	c.balances.Add(address, balance)
	return balance, nil
}

func (c *CachingNodeDataService) GetStorageAt(ctx context.Context, address tosca.Address, key tosca.Key) ([]byte, error) {
	slot := slotKey{address, key}
	if entry, found := c.storage.Get(slot); found {
		return entry.data, nil
	}
	data, err := c.source.GetStorageAt(ctx, address, key)
	if err != nil {
		return nil, err
	}
	c.storage.Add(slot, storageEntry{data: bytes.Clone(data)})
	return data, nil
}
