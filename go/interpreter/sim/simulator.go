// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package sim implements an EVM byte-code simulator. It executes code against
// local overlays of a remote chain state, following nested calls, and reports
// the return data, logs, and revert status of the execution together with an
// optional per-instruction trace. Gas is tracked but never charged.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/Fantom-foundation/tosca-sim/go/state"
	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"github.com/dsnet/golib/unitconv"
	"github.com/hashicorp/go-hclog"
)

// Simulator executes EVM byte-code. A Simulator may be used for multiple
// concurrent executions, each of which runs strictly sequentially.
type Simulator struct {
	config   Config
	logger   hclog.Logger
	analysis *analysisCache
	runner   runner
}

// NewSimulator creates a simulator with the given configuration.
func NewSimulator(config Config) (*Simulator, error) {
	config = config.withDefaults()
	analysis, err := newAnalysisCache(config.AnalysisCacheSize)
	if err != nil {
		return nil, err
	}
	var r runner = vanillaRunner{}
	if config.TraceWriter != nil {
		r = newLoggingRunner(config.TraceWriter)
	}
	return &Simulator{
		config:   config,
		logger:   config.Logger.Named("sim"),
		analysis: analysis,
		runner:   r,
	}, nil
}

// execution is the state of a single top-level execution shared by all the
// programs of its call tree.
type execution struct {
	ctx    context.Context
	sim    *Simulator
	config Config
	logger hclog.Logger

	stepsLeft int
	steps     int

	tracing bool
	trace   []TraceEntry
}

// Execute runs the given code in the given context. At most stepLimit
// instructions are executed over the whole call tree. If traceEnabled is set,
// a trace entry is recorded for every executed instruction.
//
// Execution failures, including failures of nested calls, abort the whole
// execution. In this case the partial result and trace are returned together
// with the error.
func (s *Simulator) Execute(
	ctx context.Context,
	code tosca.Code,
	pc ProgramContext,
	stepLimit int,
	traceEnabled bool,
) (ProgramResult, []TraceEntry, error) {
	if stepLimit <= 0 {
		return ProgramResult{}, nil, ErrInvalidStepLimit
	}
	if pc.State == nil {
		pc.State = state.New(pc.NodeData, s.logger.Named("state"))
	}

	exec := &execution{
		ctx:       ctx,
		sim:       s,
		config:    s.config,
		logger:    s.logger,
		stepsLeft: stepLimit,
		tracing:   traceEnabled,
	}

	s.logger.Debug("starting execution", "address", pc.Address, "code_size", len(code), "step_limit", stepLimit)
	if s.logger.IsTrace() {
		s.logger.Trace("disassembled code", "instructions", Disassemble(code))
	}

	start := time.Now()
	snapshot := pc.State.Snapshot()
	result, err := exec.run(code, &pc)
	if err == nil && result.Reverted {
		pc.State.RevertToSnapshot(snapshot)
	} else {
		pc.State.DiscardSnapshot(snapshot)
	}

	duration := time.Since(start)
	rate := 0.0
	if duration > 0 {
		rate = float64(exec.steps) / duration.Seconds()
	}
	if err != nil {
		s.logger.Debug("execution failed", "steps", exec.steps, "duration", duration, "error", err)
	} else {
		s.logger.Debug("execution finished",
			"steps", exec.steps,
			"duration", duration,
			"rate", unitconv.FormatPrefix(rate, unitconv.SI, 0)+" steps/s",
			"reverted", result.Reverted,
			"logs", len(result.Logs),
			"fetches", pc.State.NumFetches(),
			"code_accounts", fmt.Sprint(pc.State.CodeAddresses()),
			"cached_analyses", s.analysis.len(),
		)
	}
	return result, exec.trace, err
}

// run executes code in the given context to completion.
func (e *execution) run(code tosca.Code, ctxt *ProgramContext) (ProgramResult, error) {
	// Don't bother with the execution if there's no code.
	if len(code) == 0 {
		return ProgramResult{}, nil
	}
	p := newProgram(e, code, ctxt)
	if err := e.sim.runner.run(p); err != nil {
		return p.result, err
	}
	return generateResult(p)
}
