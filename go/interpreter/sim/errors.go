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

const (
	ErrStackUnderflow     = tosca.ConstError("stack underflow")
	ErrOutOfMemoryRange   = tosca.ConstError("memory access out of range")
	ErrRemoteFetchFailure = state.ErrRemoteFetchFailure
	ErrStepLimitExceeded  = tosca.ConstError("step limit exceeded")
	ErrUnsupportedOpcode  = tosca.ConstError("unsupported opcode")
	ErrInvalidJump        = tosca.ConstError("invalid jump destination")
	ErrInvalidStepLimit   = tosca.ConstError("step limit must be positive")
	ErrStaticStateChange  = tosca.ConstError("state modification in static call")
	errUnknownStatus      = tosca.ConstError("unknown execution status")
)
