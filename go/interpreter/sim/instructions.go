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
	"math"

	"github.com/Fantom-foundation/tosca-sim/go/tosca"
	"github.com/holiman/uint256"
)

func opStop(p *Program) {
	p.status = statusStopped
}

func opEndWithResult(p *Program) error {
	offset, size := p.stack.pop(), p.stack.pop()
	start, length, err := toMemoryRange(offset, size)
	if err != nil {
		return err
	}
	p.result.Output, err = p.memory.Read(start, length)
	return err
}

func opReturn(p *Program) error {
	p.status = statusReturned
	return opEndWithResult(p)
}

func opRevert(p *Program) error {
	p.status = statusReverted
	return opEndWithResult(p)
}

// opInvalid ends the program the way a REVERT without data does.
func opInvalid(p *Program) {
	p.status = statusReverted
	p.result.Output = nil
}

func opPc(p *Program) {
	p.stack.pushUndefined().SetUint64(uint64(p.pc))
}

func jumpTo(p *Program, destination *uint256.Int) error {
	if !destination.IsUint64() || !p.jumpDests.isJumpDest(destination.Uint64()) {
		return ErrInvalidJump
	}
	// the driver advances the pc after the instruction
	p.pc = int(destination.Uint64()) - 1
	return nil
}

func opJump(p *Program) error {
	return jumpTo(p, p.stack.pop())
}

func opJumpi(p *Program) error {
	destination, condition := p.stack.pop(), p.stack.pop()
	if condition.IsZero() {
		return nil
	}
	return jumpTo(p, destination)
}

func opPop(p *Program) {
	p.stack.pop()
}

// opPush pushes the n bytes following the instruction. Immediates cut off by
// the end of the code are padded with zeros on the right.
func opPush(p *Program, n int) {
	var data [32]byte
	if start := p.pc + 1; start < len(p.Code) {
		copy(data[:n], p.Code[start:min(start+n, len(p.Code))])
	}
	p.stack.pushUndefined().SetBytes(data[:n])
	p.pc += n
}

func opPush0(p *Program) {
	p.stack.pushUndefined().Clear()
}

func opDup(p *Program, pos int) {
	p.stack.dup(pos)
}

func opSwap(p *Program, pos int) {
	p.stack.swap(pos)
}

func opMload(p *Program) error {
	offset := p.stack.peek()
	if !offset.IsUint64() {
		return ErrOutOfMemoryRange
	}
	return p.memory.readWord(offset.Uint64(), offset)
}

func opMstore(p *Program) error {
	offset, value := p.stack.pop(), p.stack.pop()
	if !offset.IsUint64() {
		return ErrOutOfMemoryRange
	}
	return p.memory.setWord(offset.Uint64(), value)
}

func opMstore8(p *Program) error {
	offset, value := p.stack.pop(), p.stack.pop()
	if !offset.IsUint64() {
		return ErrOutOfMemoryRange
	}
	return p.memory.setByte(offset.Uint64(), byte(value.Uint64()))
}

func opMcopy(p *Program) error {
	destination, source, size := p.stack.pop(), p.stack.pop(), p.stack.pop()
	dst, length, err := toMemoryRange(destination, size)
	if err != nil {
		return err
	}
	src, _, err := toMemoryRange(source, size)
	if err != nil {
		return err
	}
	if err := p.memory.expand(src, length); err != nil {
		return err
	}
	if err := p.memory.expand(dst, length); err != nil {
		return err
	}
	copy(p.memory.store[dst:dst+length], p.memory.store[src:src+length])
	return nil
}

func opMsize(p *Program) {
	p.stack.pushUndefined().SetUint64(p.memory.Len())
}

func opSload(p *Program) error {
	top := p.stack.peek()
	value, err := p.Context.State.GetStorage(p.exec.ctx, p.Context.Address, top.Bytes32())
	if err != nil {
		return err
	}
	top.SetBytes32(value[:])
	return nil
}

func opSstore(p *Program) error {
	if p.Context.Static {
		return ErrStaticStateChange
	}
	key, value := p.stack.pop(), p.stack.pop()
	p.Context.State.SetStorage(p.Context.Address, key.Bytes32(), value.Bytes32())
	return nil
}

// --- Environment ---

func opAddress(p *Program) {
	p.stack.pushUndefined().SetBytes20(p.Context.Address[:])
}

func opOrigin(p *Program) {
	p.stack.pushUndefined().SetBytes20(p.Context.Origin[:])
}

func opCaller(p *Program) {
	p.stack.pushUndefined().SetBytes20(p.Context.Caller[:])
}

func opCallvalue(p *Program) {
	p.stack.pushUndefined().SetBytes32(p.Context.Value[:])
}

func opCallDataload(p *Program) {
	top := p.stack.peek()
	input := p.Context.Input
	if !top.IsUint64() || top.Uint64() >= uint64(len(input)) {
		top.Clear()
		return
	}
	var value [32]byte
	copy(value[:], input[top.Uint64():])
	top.SetBytes32(value[:])
}

func opCallDatasize(p *Program) {
	p.stack.pushUndefined().SetUint64(uint64(len(p.Context.Input)))
}

func opCodeSize(p *Program) {
	p.stack.pushUndefined().SetUint64(uint64(len(p.Code)))
}

func opReturnDataSize(p *Program) {
	p.stack.pushUndefined().SetUint64(uint64(len(p.returnData)))
}

// genericDataCopy copies a range of the given data into memory. Parts of the
// range beyond the end of the data are filled with zeros.
func genericDataCopy(p *Program, data []byte) error {
	memOffset, dataOffset, length := p.stack.pop(), p.stack.pop(), p.stack.pop()
	start, size, err := toMemoryRange(memOffset, length)
	if err != nil {
		return err
	}
	offset := uint64(math.MaxUint64)
	if dataOffset.IsUint64() {
		offset = dataOffset.Uint64()
	}
	return p.memory.WriteSized(start, size, getData(data, offset, size))
}

// getData returns the part of data covered by the given range that is
// actually present.
func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length || end < start {
		end = length
	}
	return data[start:end]
}

func opGasPrice(p *Program) {
	p.stack.pushUndefined().SetBytes32(p.Context.GasPrice[:])
}

func opCoinbase(p *Program) {
	p.stack.pushUndefined().SetBytes20(p.Context.Coinbase[:])
}

func opTimestamp(p *Program) {
	p.stack.pushUndefined().SetUint64(p.Context.Timestamp)
}

func opNumber(p *Program) {
	p.stack.pushUndefined().SetUint64(p.Context.BlockNumber)
}

func opGasLimit(p *Program) {
	p.stack.pushUndefined().SetUint64(uint64(max(p.Context.GasLimit, 0)))
}

func opChainId(p *Program) {
	p.stack.pushUndefined().SetBytes32(p.Context.ChainID[:])
}

func opBaseFee(p *Program) {
	p.stack.pushUndefined().SetBytes32(p.Context.BaseFee[:])
}

func opGas(p *Program) {
	p.stack.pushUndefined().SetUint64(uint64(max(p.Context.Gas, 0)))
}

// --- Remote backed ---

func opBalance(p *Program) error {
	top := p.stack.peek()
	balance, err := p.Context.State.GetBalance(p.exec.ctx, toAddress(top))
	if err != nil {
		return err
	}
	top.SetBytes32(balance[:])
	return nil
}

func opSelfbalance(p *Program) error {
	balance, err := p.Context.State.GetBalance(p.exec.ctx, p.Context.Address)
	if err != nil {
		return err
	}
	p.stack.pushUndefined().SetBytes32(balance[:])
	return nil
}

func opExtcodesize(p *Program) error {
	top := p.stack.peek()
	code, err := p.Context.State.GetCode(p.exec.ctx, toAddress(top))
	if err != nil {
		return err
	}
	top.SetUint64(uint64(len(code)))
	return nil
}

func opExtCodeCopy(p *Program) error {
	address := toAddress(p.stack.pop())
	code, err := p.Context.State.GetCode(p.exec.ctx, address)
	if err != nil {
		return err
	}
	return genericDataCopy(p, code)
}

// opExtcodehash pushes the hash of an account's code. Accounts without code
// and balance are considered empty and yield zero.
func opExtcodehash(p *Program) error {
	top := p.stack.peek()
	address := toAddress(top)
	code, err := p.Context.State.GetCode(p.exec.ctx, address)
	if err != nil {
		return err
	}
	if len(code) == 0 {
		balance, err := p.Context.State.GetBalance(p.exec.ctx, address)
		if err != nil {
			return err
		}
		if balance == (tosca.Value{}) {
			top.Clear()
		} else {
			top.SetBytes32(emptyCodeHash[:])
		}
		return nil
	}
	hash := Keccak256(code)
	top.SetBytes32(hash[:])
	return nil
}

// --- Arithmetic and bitwise ---

func opAnd(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.And(a, b)
}

func opOr(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.Or(a, b)
}

func opNot(p *Program) {
	a := p.stack.peek()
	a.Not(a)
}

func opXor(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.Xor(a, b)
}

// opOrBytes, opXorBytes, and opNotBytes operate on the 32-byte encodings of
// their operands, one byte at a time.
func opOrBytes(p *Program) {
	a, b := p.stack.pop().Bytes32(), p.stack.peek().Bytes32()
	for i := range b {
		b[i] |= a[i]
	}
	p.stack.peek().SetBytes32(b[:])
}

func opXorBytes(p *Program) {
	a, b := p.stack.pop().Bytes32(), p.stack.peek().Bytes32()
	for i := range b {
		b[i] ^= a[i]
	}
	p.stack.peek().SetBytes32(b[:])
}

func opNotBytes(p *Program) {
	a := p.stack.peek().Bytes32()
	for i := range a {
		a[i] = ^a[i]
	}
	p.stack.peek().SetBytes32(a[:])
}

func opIszero(p *Program) {
	top := p.stack.peek()
	if top.IsZero() {
		top.SetOne()
	} else {
		top.Clear()
	}
}

func setBool(z *uint256.Int, value bool) {
	if value {
		z.SetOne()
	} else {
		z.Clear()
	}
}

func opEq(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	setBool(b, a.Eq(b))
}

func opLt(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	setBool(b, a.Lt(b))
}

func opGt(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	setBool(b, a.Gt(b))
}

func opSlt(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	setBool(b, a.Slt(b))
}

func opSgt(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	setBool(b, a.Sgt(b))
}

func opShr(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	if a.LtUint64(256) {
		b.Rsh(b, uint(a.Uint64()))
	} else {
		b.Clear()
	}
}

func opShl(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	if a.LtUint64(256) {
		b.Lsh(b, uint(a.Uint64()))
	} else {
		b.Clear()
	}
}

func opSar(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	if a.GtUint64(255) {
		if b.Sign() >= 0 {
			b.Clear()
		} else {
			b.SetAllOne()
		}
		return
	}
	b.SRsh(b, uint(a.Uint64()))
}

func opSignExtend(p *Program) {
	back, num := p.stack.pop(), p.stack.peek()
	num.ExtendSign(num, back)
}

func opByte(p *Program) {
	th, val := p.stack.pop(), p.stack.peek()
	val.Byte(th)
}

func opAdd(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.Add(a, b)
}

func opSub(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.Sub(a, b)
}

func opMul(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.Mul(a, b)
}

// Division and modulo by zero yield zero.

func opDiv(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.Div(a, b)
}

func opSDiv(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.SDiv(a, b)
}

func opMod(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.Mod(a, b)
}

func opSMod(p *Program) {
	a := p.stack.pop()
	b := p.stack.peek()
	b.SMod(a, b)
}

func opAddMod(p *Program) {
	a := p.stack.pop()
	b := p.stack.pop()
	n := p.stack.peek()
	n.AddMod(a, b, n)
}

func opMulMod(p *Program) {
	a := p.stack.pop()
	b := p.stack.pop()
	n := p.stack.peek()
	n.MulMod(a, b, n)
}

func opExp(p *Program) {
	base, exponent := p.stack.pop(), p.stack.peek()
	exponent.Exp(base, exponent)
}

func opSha3(p *Program) error {
	offset, size := p.stack.pop(), p.stack.peek()
	start, length, err := toMemoryRange(offset, size)
	if err != nil {
		return err
	}
	data, err := p.memory.getSlice(start, length)
	if err != nil {
		return err
	}
	hash := Keccak256(data)
	size.SetBytes32(hash[:])
	return nil
}

// --- Logs and calls ---

func opLog(p *Program, n int) error {
	if p.Context.Static {
		return ErrStaticStateChange
	}
	mStart, mSize := p.stack.pop(), p.stack.pop()
	start, length, err := toMemoryRange(mStart, mSize)
	if err != nil {
		return err
	}
	topics := make([]tosca.Hash, n)
	for i := 0; i < n; i++ {
		topics[i] = p.stack.pop().Bytes32()
	}
	data, err := p.memory.Read(start, length)
	if err != nil {
		return err
	}
	p.result.Logs = append(p.result.Logs, tosca.Log{
		Address: p.Context.Address,
		Topics:  topics,
		Data:    data,
	})
	return nil
}

func genericCall(p *Program, kind tosca.CallKind) error {
	stack := p.stack
	var value uint256.Int

	// Pop call parameters. Values are copied since pushes invalidate them.
	providedGas, target := *stack.pop(), *stack.pop()
	if kind == tosca.Call || kind == tosca.CallCode {
		value = *stack.pop()
	}
	inOffset, inSize, retOffset, retSize := *stack.pop(), *stack.pop(), *stack.pop(), *stack.pop()

	if p.Context.Static && kind == tosca.Call && !value.IsZero() {
		return ErrStaticStateChange
	}

	inStart, inLength, err := toMemoryRange(&inOffset, &inSize)
	if err != nil {
		return err
	}
	retStart, retLength, err := toMemoryRange(&retOffset, &retSize)
	if err != nil {
		return err
	}
	input, err := p.memory.Read(inStart, inLength)
	if err != nil {
		return err
	}
	if err := p.memory.expand(retStart, retLength); err != nil {
		return err
	}

	gas := tosca.Gas(math.MaxInt64)
	if providedGas.LtUint64(math.MaxInt64) {
		gas = tosca.Gas(providedGas.Uint64())
	}
	targetAddress := toAddress(&target)
	callee := p.Context.nested(kind, targetAddress, value.Bytes32(), input, gas)
	p.returnData = nil

	logger := p.exec.logger
	if callee.Depth > p.exec.config.MaxCallDepth {
		logger.Debug("call depth exceeded", "kind", kind, "target", targetAddress, "depth", callee.Depth)
		stack.pushUndefined().Clear()
		return nil
	}

	ctx := p.exec.ctx
	st := p.Context.State
	snapshot := st.Snapshot()

	if (kind == tosca.Call || kind == tosca.CallCode) && !value.IsZero() {
		ok, err := st.Transfer(ctx, p.Context.Address, callee.Address, value.Bytes32())
		if err != nil {
			return err
		}
		if !ok {
			logger.Debug("insufficient balance for call", "sender", p.Context.Address, "value", &value)
			st.RevertToSnapshot(snapshot)
			stack.pushUndefined().Clear()
			return nil
		}
	}

	code, err := st.GetCode(ctx, targetAddress)
	if err != nil {
		return err
	}

	logger.Trace("entering call", "kind", kind, "target", targetAddress, "depth", callee.Depth, "input", len(input))
	result, err := p.exec.run(code, callee)
	if err != nil {
		return err
	}
	logger.Trace("leaving call", "target", targetAddress, "depth", callee.Depth, "reverted", result.Reverted)

	p.returnData = result.Output
	if result.Reverted {
		st.RevertToSnapshot(snapshot)
		if p.exec.config.RevertPolicy == RevertPolicyHaltCaller {
			p.status = statusStopped
			return nil
		}
		stack.pushUndefined().Clear()
		return nil
	}
	st.DiscardSnapshot(snapshot)

	if retLength > 0 {
		copy(p.memory.store[retStart:retStart+retLength], result.Output)
	}
	p.result.Logs = append(p.result.Logs, result.Logs...)
	stack.pushUndefined().SetOne()
	return nil
}

func opCall(p *Program) error {
	return genericCall(p, tosca.Call)
}

func opCallCode(p *Program) error {
	return genericCall(p, tosca.CallCode)
}

func opStaticCall(p *Program) error {
	return genericCall(p, tosca.StaticCall)
}

func opDelegateCall(p *Program) error {
	return genericCall(p, tosca.DelegateCall)
}
