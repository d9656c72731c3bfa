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
	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"github.com/Fantom-foundation/tosca-sim/go/tosca/vm"
	lru "github.com/hashicorp/golang-lru/v2"
)

// jumpDests is a bitmap marking the positions of JUMPDEST instructions in a
// piece of code. Bytes that are immediate data of PUSH instructions are
// never marked.
type jumpDests []byte

func analyze(code tosca.Code) jumpDests {
	res := make(jumpDests, len(code)/8+1)
	for i := 0; i < len(code); {
		op := vm.OpCode(code[i])
		if op == vm.JUMPDEST {
			res[i/8] |= 1 << (i % 8)
		}
		i += op.Width()
	}
	return res
}

// isJumpDest returns true if the given position is a valid jump target.
func (d jumpDests) isJumpDest(pos uint64) bool {
	if pos/8 >= uint64(len(d)) {
		return false
	}
	return d[pos/8]&(1<<(pos%8)) != 0
}

// analysisCache retains jump destination analyses of frequently executed
// code, keyed by the code hash. It is safe for concurrent use. A nil cache
// analyzes code on every request.
type analysisCache struct {
	cache *lru.Cache[tosca.Hash, jumpDests]
}

// maxCachedCodeLength is the largest code size for which analyses are
// cached; larger codes are analyzed on every use.
const maxCachedCodeLength = 1 << 16

func newAnalysisCache(capacity int) (*analysisCache, error) {
	if capacity < 0 {
		return &analysisCache{}, nil
	}
	cache, err := lru.New[tosca.Hash, jumpDests](capacity)
	if err != nil {
		return nil, err
	}
	return &analysisCache{cache: cache}, nil
}

func (a *analysisCache) get(code tosca.Code) jumpDests {
	if a.cache == nil || len(code) > maxCachedCodeLength {
		return analyze(code)
	}
	hash := Keccak256(code)
	if res, found := a.cache.Get(hash); found {
		return res
	}
	res := analyze(code)
	a.cache.Add(hash, res)
	return res
}

func (a *analysisCache) len() int {
	if a.cache == nil {
		return 0
	}
	return a.cache.Len()
}
