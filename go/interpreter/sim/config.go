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
	"io"

	"github.com/hashicorp/go-hclog"
)

// RevertPolicy defines how a caller reacts to a reverting nested call.
type RevertPolicy byte

const (
	// RevertPolicyPushFailure rolls back the state modifications of the
	// callee, pushes 0 onto the caller's stack, and lets the caller continue.
	RevertPolicyPushFailure RevertPolicy = iota
	// RevertPolicyHaltCaller rolls back the state modifications of the
	// callee and stops the caller as if it had executed STOP. The caller's
	// own writes and logs are kept.
	RevertPolicyHaltCaller
)

func (p RevertPolicy) String() string {
	switch p {
	case RevertPolicyPushFailure:
		return "push-failure"
	case RevertPolicyHaltCaller:
		return "halt-caller"
	}
	return "unknown"
}

const (
	defaultMaxCallDepth      = 1024
	defaultMaxMemorySize     = 1 << 32
	defaultAnalysisCacheSize = 1 << 10
)

// Config contains a set of configuration options for the simulator. Zero
// values select defaults.
type Config struct {
	// MaxCallDepth is the deepest nesting level a nested call may reach.
	// Calls exceeding it fail without running the callee.
	MaxCallDepth int
	// MaxMemorySize limits the number of bytes a single program may use as
	// memory, rounded down to whole words. Accesses beyond it fail with
	// ErrOutOfMemoryRange.
	MaxMemorySize uint64
	// RevertPolicy selects how callers react to reverting callees.
	RevertPolicy RevertPolicy
	// ByteWiseBitwise selects the byte-wise variants of OR, XOR, and NOT.
	ByteWiseBitwise bool
	// UnsupportedOpcodeAsStop makes unsupported instructions behave like
	// STOP instead of aborting the execution.
	UnsupportedOpcodeAsStop bool
	// AnalysisCacheSize is the number of jump destination analyses retained
	// across executions. If negative, no cache is used.
	AnalysisCacheSize int
	// Logger receives structured diagnostics. Defaults to a null logger.
	Logger hclog.Logger
	// TraceWriter, if set, receives one line per executed instruction.
	TraceWriter io.Writer
}

func (c Config) withDefaults() Config {
	if c.MaxCallDepth <= 0 {
		c.MaxCallDepth = defaultMaxCallDepth
	}
	if c.MaxMemorySize == 0 {
		c.MaxMemorySize = defaultMaxMemorySize
	}
	if c.AnalysisCacheSize == 0 {
		c.AnalysisCacheSize = defaultAnalysisCacheSize
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	return c
}
