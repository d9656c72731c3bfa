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
	"fmt"

	"github.com/Fantom-foundation/tosca-sim/go/tosca/vm"
)

// contextCheckInterval is the number of steps between two checks of the
// cancellation state of the execution's context.
const contextCheckInterval = 1 << 10

// steps executes the program's code until it halts. If oneStepOnly is true,
// only the instruction pointed to by the program counter is executed.
// Any execution violation is returned as an error annotated with the
// position of the failing instruction.
func steps(p *Program, oneStepOnly bool) error {
	exec := p.exec
	for p.status == statusRunning {
		if p.pc >= len(p.Code) {
			p.status = statusStopped
			return nil
		}

		op := vm.OpCode(p.Code[p.pc])
		if exec.stepsLeft <= 0 {
			return fmt.Errorf("depth %d, pc %d, %v: %w", p.Context.Depth, p.pc, op, ErrStepLimitExceeded)
		}
		if exec.steps%contextCheckInterval == 0 {
			if err := exec.ctx.Err(); err != nil {
				return err
			}
		}
		entry := -1
		if exec.tracing {
			entry = exec.record(p, op)
		}
		exec.stepsLeft--
		exec.steps++

		err := execute(p, op)
		if entry >= 0 {
			exec.complete(entry, p)
		}
		if err != nil {
			return fmt.Errorf("depth %d, pc %d, %v: %w", p.Context.Depth, p.pc, op, err)
		}
		p.pc++

		if oneStepOnly {
			return nil
		}
	}
	return nil
}

// execute runs a single instruction on the given program.
func execute(p *Program, op vm.OpCode) error {
	if p.stack.Len() < stackRequirements[op] {
		return ErrStackUnderflow
	}

	var err error
	switch {
	case vm.IsPush(op):
		opPush(p, int(op-vm.PUSH1)+1)
		return nil
	case vm.DUP1 <= op && op <= vm.DUP16:
		opDup(p, int(op-vm.DUP1)+1)
		return nil
	case vm.SWAP1 <= op && op <= vm.SWAP16:
		opSwap(p, int(op-vm.SWAP1)+1)
		return nil
	case vm.LOG0 <= op && op <= vm.LOG4:
		return opLog(p, int(op-vm.LOG0))
	}

	byteWise := p.exec.config.ByteWiseBitwise
	switch op {
	case vm.STOP:
		opStop(p)
	case vm.ADD:
		opAdd(p)
	case vm.MUL:
		opMul(p)
	case vm.SUB:
		opSub(p)
	case vm.DIV:
		opDiv(p)
	case vm.SDIV:
		opSDiv(p)
	case vm.MOD:
		opMod(p)
	case vm.SMOD:
		opSMod(p)
	case vm.ADDMOD:
		opAddMod(p)
	case vm.MULMOD:
		opMulMod(p)
	case vm.EXP:
		opExp(p)
	case vm.SIGNEXTEND:
		opSignExtend(p)
	case vm.LT:
		opLt(p)
	case vm.GT:
		opGt(p)
	case vm.SLT:
		opSlt(p)
	case vm.SGT:
		opSgt(p)
	case vm.EQ:
		opEq(p)
	case vm.ISZERO:
		opIszero(p)
	case vm.AND:
		opAnd(p)
	case vm.OR:
		if byteWise {
			opOrBytes(p)
		} else {
			opOr(p)
		}
	case vm.XOR:
		if byteWise {
			opXorBytes(p)
		} else {
			opXor(p)
		}
	case vm.NOT:
		if byteWise {
			opNotBytes(p)
		} else {
			opNot(p)
		}
	case vm.BYTE:
		opByte(p)
	case vm.SHL:
		opShl(p)
	case vm.SHR:
		opShr(p)
	case vm.SAR:
		opSar(p)
	case vm.SHA3:
		err = opSha3(p)
	case vm.ADDRESS:
		opAddress(p)
	case vm.BALANCE:
		err = opBalance(p)
	case vm.ORIGIN:
		opOrigin(p)
	case vm.CALLER:
		opCaller(p)
	case vm.CALLVALUE:
		opCallvalue(p)
	case vm.CALLDATALOAD:
		opCallDataload(p)
	case vm.CALLDATASIZE:
		opCallDatasize(p)
	case vm.CALLDATACOPY:
		err = genericDataCopy(p, p.Context.Input)
	case vm.CODESIZE:
		opCodeSize(p)
	case vm.CODECOPY:
		err = genericDataCopy(p, p.Code)
	case vm.GASPRICE:
		opGasPrice(p)
	case vm.EXTCODESIZE:
		err = opExtcodesize(p)
	case vm.EXTCODECOPY:
		err = opExtCodeCopy(p)
	case vm.RETURNDATASIZE:
		opReturnDataSize(p)
	case vm.RETURNDATACOPY:
		err = genericDataCopy(p, p.returnData)
	case vm.EXTCODEHASH:
		err = opExtcodehash(p)
	case vm.COINBASE:
		opCoinbase(p)
	case vm.TIMESTAMP:
		opTimestamp(p)
	case vm.NUMBER:
		opNumber(p)
	case vm.GASLIMIT:
		opGasLimit(p)
	case vm.CHAINID:
		opChainId(p)
	case vm.SELFBALANCE:
		err = opSelfbalance(p)
	case vm.BASEFEE:
		opBaseFee(p)
	case vm.POP:
		opPop(p)
	case vm.MLOAD:
		err = opMload(p)
	case vm.MSTORE:
		err = opMstore(p)
	case vm.MSTORE8:
		err = opMstore8(p)
	case vm.SLOAD:
		err = opSload(p)
	case vm.SSTORE:
		err = opSstore(p)
	case vm.JUMP:
		err = opJump(p)
	case vm.JUMPI:
		err = opJumpi(p)
	case vm.PC:
		opPc(p)
	case vm.MSIZE:
		opMsize(p)
	case vm.GAS:
		opGas(p)
	case vm.JUMPDEST:
		// nothing
	case vm.MCOPY:
		err = opMcopy(p)
	case vm.PUSH0:
		opPush0(p)
	case vm.CALL:
		err = opCall(p)
	case vm.CALLCODE:
		err = opCallCode(p)
	case vm.RETURN:
		err = opReturn(p)
	case vm.DELEGATECALL:
		err = opDelegateCall(p)
	case vm.STATICCALL:
		err = opStaticCall(p)
	case vm.REVERT:
		err = opRevert(p)
	case vm.INVALID:
		opInvalid(p)
	default:
		if p.exec.config.UnsupportedOpcodeAsStop {
			opStop(p)
			return nil
		}
		err = ErrUnsupportedOpcode
	}
	return err
}

// stackRequirements lists the minimum stack size needed by each instruction.
var stackRequirements = func() [256]int {
	var res [256]int
	for i := 0; i < 256; i++ {
		res[i] = computeStackRequirement(vm.OpCode(i))
	}
	return res
}()

func computeStackRequirement(op vm.OpCode) int {
	switch {
	case vm.DUP1 <= op && op <= vm.DUP16:
		return int(op-vm.DUP1) + 1
	case vm.SWAP1 <= op && op <= vm.SWAP16:
		return int(op-vm.SWAP1) + 2
	case vm.LOG0 <= op && op <= vm.LOG4:
		return int(op-vm.LOG0) + 2
	}
	switch op {
	case vm.ISZERO, vm.NOT, vm.BALANCE, vm.CALLDATALOAD, vm.EXTCODESIZE,
		vm.EXTCODEHASH, vm.POP, vm.MLOAD, vm.SLOAD, vm.JUMP:
		return 1
	case vm.ADD, vm.MUL, vm.SUB, vm.DIV, vm.SDIV, vm.MOD, vm.SMOD, vm.EXP,
		vm.SIGNEXTEND, vm.LT, vm.GT, vm.SLT, vm.SGT, vm.EQ, vm.AND, vm.OR,
		vm.XOR, vm.BYTE, vm.SHL, vm.SHR, vm.SAR, vm.SHA3, vm.MSTORE,
		vm.MSTORE8, vm.SSTORE, vm.JUMPI, vm.RETURN, vm.REVERT:
		return 2
	case vm.ADDMOD, vm.MULMOD, vm.CALLDATACOPY, vm.CODECOPY,
		vm.RETURNDATACOPY, vm.MCOPY:
		return 3
	case vm.EXTCODECOPY:
		return 4
	case vm.DELEGATECALL, vm.STATICCALL:
		return 6
	case vm.CALL, vm.CALLCODE:
		return 7
	}
	return 0
}
