// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
)

// ScriptFlags is a bitmask defining additional operations or tests that will be
// done when executing a script pair.
type ScriptFlags uint32

const (
	// ScriptBip16 defines whether the bip16 threshold has passed and thus
	// pay-to-script hash transactions will be fully validated.
	ScriptBip16 ScriptFlags = 1 << iota

	// ScriptStrictMultiSig defines whether to verify the stack item
	// used by CHECKMULTISIG is zero length.
	ScriptStrictMultiSig

	// ScriptDiscourageUpgradableNops defines whether to verify that
	// NOP1 through NOP10 are reserved for future soft-fork upgrades.  This
	// flag must not be used for consensus critical code nor applied to
	// blocks as this flag is only for stricter standard transaction
	// checks.  This flag is only applied when the above opcodes are
	// executed.
	ScriptDiscourageUpgradableNops

	// ScriptVerifyCheckLockTimeVerify defines whether to verify that
	// a transaction output is spendable based on the locktime.
	// This is BIP0065.
	ScriptVerifyCheckLockTimeVerify

	// ScriptVerifyCheckSequenceVerify defines whether to allow execution
	// pathways of a script to be restricted based on the age of the output
	// being spent.  This is BIP0112.
	ScriptVerifyCheckSequenceVerify

	// ScriptVerifyCleanStack defines that the stack must contain only
	// one stack element after evaluation and that the element must be
	// true if interpreted as a boolean.  This is rule 6 of BIP0062.
	// This flag should never be used without the ScriptBip16 flag.
	ScriptVerifyCleanStack

	// ScriptVerifyDERSignatures defines that signatures are required
	// to comply with the DER format.
	ScriptVerifyDERSignatures

	// ScriptVerifyLowS defines that signatures are required to comply with
	// the DER format and whose S value is <= order / 2.  This is rule 5
	// of BIP0062.
	ScriptVerifyLowS

	// ScriptVerifyMinimalData defines that signatures must use the smallest
	// push operator. This is both rules 3 and 4 of BIP0062.
	ScriptVerifyMinimalData

	// ScriptVerifyNullFail defines that signatures must be empty if
	// a CHECKSIG or CHECKMULTISIG operation fails.
	ScriptVerifyNullFail

	// ScriptVerifySigPushOnly defines that signature scripts must contain
	// only pushed data.  This is rule 2 of BIP0062.
	ScriptVerifySigPushOnly

	// ScriptVerifyStrictEncoding defines that signature scripts and
	// public keys must follow the strict encoding requirements.
	ScriptVerifyStrictEncoding

	// ScriptEnableSigHashForkID defines that signatures must carry the
	// fork id hash type bit and commit to the fork id signature hash.  It
	// implies ScriptVerifyStrictEncoding.
	ScriptEnableSigHashForkID

	// ScriptEnableReplayProtection defines that signatures commit to a
	// fork value that the chain the fork split from never signs.
	ScriptEnableReplayProtection
)

const (
	// LockTimeThreshold is the number below which a lock time is
	// interpreted to be a block number.  Since an average of one block
	// is generated per 10 minutes, this allows blocks for about 9,512
	// years.
	LockTimeThreshold = 5e8 // Tue Nov 5 00:53:20 1985 UTC

	// StandardVerifyFlags are the script flags which are used when
	// executing transaction scripts to enforce additional checks which
	// are required for the script to be considered standard.  These checks
	// help reduce issues related to transaction malleability as well as
	// allow pay-to-script hash transactions.  Note these flags are
	// different than what is required for the consensus rules in that they
	// are more strict.
	StandardVerifyFlags = ScriptBip16 |
		ScriptVerifyDERSignatures |
		ScriptVerifyStrictEncoding |
		ScriptVerifyMinimalData |
		ScriptStrictMultiSig |
		ScriptDiscourageUpgradableNops |
		ScriptVerifyCleanStack |
		ScriptVerifyCheckLockTimeVerify |
		ScriptVerifyCheckSequenceVerify |
		ScriptVerifyLowS |
		ScriptVerifyNullFail
)

// Engine is the virtual machine that executes scripts.
type Engine struct {
	flags   ScriptFlags
	checker SigChecker

	// scripts holds the signature script, the public key script and, for
	// pay-to-script-hash spends, the redeem script once it is known.
	scripts     []Script
	scriptIdx   int
	scriptOff   int
	lastCodeSep int

	dstack stack // data stack
	astack stack // alt stack

	tx    wire.MsgTx
	txIdx int

	condStack []int
	numOps    int

	bip16           bool     // treat execution as pay-to-script-hash
	savedFirstStack [][]byte // stack from first script for bip16 scripts
}

// hasFlag returns whether the script engine instance has the passed flag set.
func (vm *Engine) hasFlag(flag ScriptFlags) bool {
	return vm.flags&flag == flag
}

// isBranchExecuting returns whether or not the current conditional branch is
// actively executing.  For example, when the data stack has an OP_FALSE on it
// and an OP_IF is encountered, the branch is inactive until an OP_ELSE or
// OP_ENDIF is encountered.  It properly handles nested conditionals.
func (vm *Engine) isBranchExecuting() bool {
	if len(vm.condStack) == 0 {
		return true
	}
	return vm.condStack[len(vm.condStack)-1] == OpCondTrue
}

// executeOpcode performs execution on the passed opcode.  It takes into account
// whether or not it is hidden by conditionals, but some rules still must be
// tested in this case.
func (vm *Engine) executeOpcode(op ScriptOp) error {
	// Disabled opcodes are fail on program counter.
	if isOpcodeDisabled(op.opcode.value) {
		return opcodeDisabled(op.opcode, op.data, vm)
	}

	// Always-illegal opcodes are fail on program counter.
	if isOpcodeAlwaysIllegal(op.opcode.value) {
		return opcodeReserved(op.opcode, op.data, vm)
	}

	// Note that this includes OP_RESERVED which counts as a push operation.
	if op.opcode.value > OP_16 {
		vm.numOps++
		if vm.numOps > MaxOpsPerScript {
			str := fmt.Sprintf("exceeded max operation limit of %d",
				MaxOpsPerScript)
			return scriptError(ErrTooManyOperations, str)
		}

	} else if len(op.data) > MaxScriptElementSize {
		str := fmt.Sprintf("element size %d exceeds max allowed size %d",
			len(op.data), MaxScriptElementSize)
		return scriptError(ErrElementTooBig, str)
	}

	// Nothing left to do when this is not a conditional opcode and it is
	// not in an executing branch.
	if !vm.isBranchExecuting() && !isOpcodeConditional(op.opcode.value) {
		return nil
	}

	// Ensure all executed data push opcodes use the minimal encoding when
	// the minimal data verification flag is set.
	if vm.dstack.verifyMinimalData && vm.isBranchExecuting() &&
		op.opcode.value <= OP_PUSHDATA4 {

		if err := checkMinimalDataPush(op.opcode, op.data); err != nil {
			return err
		}
	}

	return op.opcode.opfunc(op.opcode, op.data, vm)
}

// checkPubKeyEncoding returns whether or not the passed public key adheres to
// the strict encoding requirements if enabled.
func (vm *Engine) checkPubKeyEncoding(pubKey []byte) error {
	return checkPubKeyEncoding(pubKey, vm.flags)
}

// checkSignatureEncoding returns whether or not the passed signature, with its
// hash type byte, adheres to the encoding requirements enabled by the flags.
func (vm *Engine) checkSignatureEncoding(sig []byte) error {
	return checkSignatureEncoding(sig, vm.flags)
}

// subScript returns the script since the last OP_CODESEPARATOR.
func (vm *Engine) subScript() Script {
	return vm.scripts[vm.scriptIdx][vm.lastCodeSep:]
}

// validPC returns an error if the current script position is not valid for
// execution, nil otherwise.
func (vm *Engine) validPC() error {
	if vm.scriptIdx >= len(vm.scripts) {
		str := fmt.Sprintf("past input scripts %v:%v %v:xxxx",
			vm.scriptIdx, vm.scriptOff, len(vm.scripts))
		return scriptError(ErrInvalidProgramCounter, str)
	}
	if vm.scriptOff >= len(vm.scripts[vm.scriptIdx]) {
		str := fmt.Sprintf("past input scripts %v:%v %v:%04d",
			vm.scriptIdx, vm.scriptOff, vm.scriptIdx,
			len(vm.scripts[vm.scriptIdx]))
		return scriptError(ErrInvalidProgramCounter, str)
	}
	return nil
}

// disasm is a helper function to produce the output for DisasmPC and
// DisasmScript.  It produces the opcode prefixed by the program counter at the
// provided position in the script.  It does no error checking and leaves that
// to the caller to provide a valid offset.
func (vm *Engine) disasm(scriptIdx int, scriptOff int) string {
	op := vm.scripts[scriptIdx][scriptOff]

	var buf strings.Builder
	fmt.Fprintf(&buf, "%02x:%04x: ", scriptIdx, scriptOff)
	disasmOpcode(&buf, op.opcode, op.data, false)
	return buf.String()
}

// DisasmPC returns the string for the disassembly of the opcode that will be
// next to execute when Step is called.
func (vm *Engine) DisasmPC() (string, error) {
	if err := vm.validPC(); err != nil {
		return "", err
	}
	return vm.disasm(vm.scriptIdx, vm.scriptOff), nil
}

// DisasmScript returns the disassembly string for the script at the requested
// offset index.  Index 0 is the signature script and 1 is the public key
// script.  In the case of pay-to-script-hash, index 2 is the redeem script once
// the execution has progressed far enough to have successfully verified script
// hash and thus add the script to the scripts to execute.
func (vm *Engine) DisasmScript(idx int) (string, error) {
	if idx < 0 || idx >= len(vm.scripts) {
		str := fmt.Sprintf("script index %d >= total scripts %d", idx,
			len(vm.scripts))
		return "", scriptError(ErrInvalidIndex, str)
	}

	var disstr strings.Builder
	for i := range vm.scripts[idx] {
		disstr.WriteString(vm.disasm(idx, i))
		disstr.WriteByte('\n')
	}
	return disstr.String(), nil
}

// CheckErrorCondition returns nil if the running script has ended and was
// successful, leaving a true boolean on the stack.  An error otherwise,
// including if the script has not finished.
func (vm *Engine) CheckErrorCondition(finalScript bool) error {
	// Check execution is actually done by ensuring the script index is
	// after the final script in the array script.
	if vm.scriptIdx < len(vm.scripts) {
		return scriptError(ErrScriptUnfinished,
			"error check when script unfinished")
	}

	if vm.dstack.Depth() < 1 {
		return scriptError(ErrEmptyStack,
			"stack empty at end of script execution")
	}

	v, err := vm.dstack.PeekBool(0)
	if err != nil {
		return err
	}
	if !v {
		// Log interesting data.
		log.Tracef("%v", newLogClosure(func() string {
			var buf strings.Builder
			buf.WriteString("scripts failed:\n")
			for i := range vm.scripts {
				dis, _ := vm.DisasmScript(i)
				fmt.Fprintf(&buf, "script%d:\n%s", i, dis)
			}
			return buf.String()
		}))
		return scriptError(ErrEvalFalse,
			"false stack entry at end of script execution")
	}

	// The final script must end with exactly one data stack item when the
	// verify clean stack flag is set.
	if finalScript && vm.hasFlag(ScriptVerifyCleanStack) &&
		vm.dstack.Depth() != 1 {

		str := fmt.Sprintf("stack must contain exactly one item (contains "+
			"%d)", vm.dstack.Depth())
		return scriptError(ErrCleanStack, str)
	}

	_, err = vm.dstack.PopBool()
	return err
}

// Step executes the next instruction and moves the program counter to the next
// opcode in the script, or the next script if the current has ended.  Step will
// return true in the case that the last opcode was successfully executed.
//
// The result of calling Step or any other method is undefined if an error is
// returned.
func (vm *Engine) Step() (done bool, err error) {
	// Verify that it is pointing to a valid script address.
	if err := vm.validPC(); err != nil {
		return true, err
	}
	op := vm.scripts[vm.scriptIdx][vm.scriptOff]

	// Execute the opcode while taking into account several things such as
	// disabled opcodes, illegal opcodes, maximum allowed operations per
	// script, maximum script element sizes, and conditionals.
	if err := vm.executeOpcode(op); err != nil {
		return true, err
	}

	// The number of elements in the combination of the data and alt stacks
	// must not exceed the maximum number of stack elements allowed.
	combinedStackSize := vm.dstack.Depth() + vm.astack.Depth()
	if combinedStackSize > maxStackSize {
		str := fmt.Sprintf("combined stack size %d > max allowed %d",
			combinedStackSize, maxStackSize)
		return false, scriptError(ErrStackOverflow, str)
	}

	// Prepare for next instruction.
	vm.scriptOff++
	if vm.scriptOff < len(vm.scripts[vm.scriptIdx]) {
		return false, nil
	}

	// Illegal to have a conditional that straddles two scripts.
	if len(vm.condStack) != 0 {
		return false, scriptError(ErrUnbalancedConditional,
			"end of script reached in conditional execution")
	}

	// Alt stack doesn't persist between scripts.
	vm.astack.stk = nil

	// The number of operations is per script.
	vm.numOps = 0
	vm.scriptOff = 0
	vm.lastCodeSep = 0

	switch {
	case vm.scriptIdx == 0 && vm.bip16:
		vm.scriptIdx++
		vm.savedFirstStack = vm.GetStack()

	case vm.scriptIdx == 1 && vm.bip16:
		// Put us past the end for CheckErrorCondition.
		vm.scriptIdx++

		// Check script ran successfully.
		if err := vm.CheckErrorCondition(false); err != nil {
			return false, err
		}

		// Obtain the redeem script from the first stack and ensure it
		// parses.
		if len(vm.savedFirstStack) == 0 {
			return false, scriptError(ErrEvalFalse,
				"no redeem script for pay-to-script-hash")
		}
		redeemScript := vm.savedFirstStack[len(vm.savedFirstStack)-1]
		script, err := ParseScript(redeemScript)
		if err != nil {
			return false, err
		}
		vm.scripts = append(vm.scripts, script)

		// Set stack to be the stack from first script minus the redeem
		// script itself.
		vm.SetStack(vm.savedFirstStack[:len(vm.savedFirstStack)-1])

	default:
		vm.scriptIdx++
	}

	// There are zero length scripts in the wild.
	for vm.scriptIdx < len(vm.scripts) &&
		len(vm.scripts[vm.scriptIdx]) == 0 {

		vm.scriptIdx++
	}
	if vm.scriptIdx >= len(vm.scripts) {
		return true, nil
	}

	return false, nil
}

// Execute will execute all scripts in the script engine and return either nil
// for successful validation or an error if one occurred.
func (vm *Engine) Execute() (err error) {
	// All script pairs where both scripts are empty fail outright; this is
	// caught at construction, so there is always something to step here
	// unless the first script ran out.
	done := vm.scriptIdx >= len(vm.scripts)
	for !done {
		log.Tracef("%v", newLogClosure(func() string {
			dis, err := vm.DisasmPC()
			if err != nil {
				return fmt.Sprintf("stepping (%v)", err)
			}
			return fmt.Sprintf("stepping %v", dis)
		}))

		done, err = vm.Step()
		if err != nil {
			return err
		}
		log.Tracef("%v", newLogClosure(func() string {
			var dstr, astr string

			// Log the non-empty stacks when tracing.
			if vm.dstack.Depth() != 0 {
				dstr = "Stack:\n" + spew.Sdump(vm.GetStack())
			}
			if vm.astack.Depth() != 0 {
				astr = "AltStack:\n" + spew.Sdump(vm.GetAltStack())
			}

			return dstr + astr
		}))
	}

	return vm.CheckErrorCondition(true)
}

// getStack returns the contents of stack as a byte array bottom up
func getStack(stack *stack) [][]byte {
	array := make([][]byte, stack.Depth())
	for i := range array {
		// PeekByteArray can't fail due to overflow, already checked
		array[len(array)-i-1], _ = stack.PeekByteArray(int32(i))
	}
	return array
}

// setStack sets the stack to the contents of the array where the last item in
// the array is the top item in the stack.
func setStack(stack *stack, data [][]byte) {
	stack.stk = stack.stk[:0]
	for i := range data {
		stack.PushByteArray(data[i])
	}
}

// GetStack returns the contents of the primary stack as an array.  where the
// last item in the array is the top of the stack.
func (vm *Engine) GetStack() [][]byte {
	return getStack(&vm.dstack)
}

// SetStack sets the contents of the primary stack to the contents of the
// provided array where the last item in the array will be the top of the stack.
func (vm *Engine) SetStack(data [][]byte) {
	setStack(&vm.dstack, data)
}

// GetAltStack returns the contents of the alternate stack as an array where the
// last item in the array is the top of the stack.
func (vm *Engine) GetAltStack() [][]byte {
	return getStack(&vm.astack)
}

// SetAltStack sets the contents of the alternate stack to the contents of the
// provided array where the last item in the array will be the top of the stack.
func (vm *Engine) SetAltStack(data [][]byte) {
	setStack(&vm.astack, data)
}

// NewEngine returns a new script engine for the provided public key script,
// transaction, and input index.  The flags modify the behavior of the script
// engine according to the description provided by each flag.  Signatures are
// accepted or rejected by checker; a nil checker rejects all of them.
func NewEngine(scriptPubKey []byte, tx *wire.MsgTx, txIdx int,
	flags ScriptFlags, checker SigChecker) (*Engine, error) {

	// The provided transaction input index must refer to a valid input.
	if txIdx < 0 || txIdx >= len(tx.TxIn) {
		str := fmt.Sprintf("transaction input index %d is negative or "+
			">= %d", txIdx, len(tx.TxIn))
		return nil, scriptError(ErrInvalidIndex, str)
	}
	scriptSig := tx.TxIn[txIdx].SignatureScript

	// When both the signature script and public key script are empty the
	// result is necessarily an error since the stack would end up being
	// empty which is equivalent to a false top element.  Thus, just return
	// the relevant error now as an optimization.
	if len(scriptSig) == 0 && len(scriptPubKey) == 0 {
		return nil, scriptError(ErrEvalFalse,
			"false stack entry at end of script execution")
	}

	// Fork id signatures are only defined with strict encoding.
	if flags&ScriptEnableSigHashForkID != 0 {
		flags |= ScriptVerifyStrictEncoding
	}

	// The clean stack flag (ScriptVerifyCleanStack) is not allowed without
	// the pay-to-script-hash (P2SH) evaluation (ScriptBip16) flag.
	//
	// Recall that evaluating a P2SH script without the flag set results in
	// non-P2SH evaluation which leaves the P2SH inputs on the stack.
	// Thus, allowing the clean stack flag without the P2SH flag would make
	// it possible to have a situation where P2SH would not be a soft fork
	// when it should be.
	if flags&ScriptVerifyCleanStack != 0 && flags&ScriptBip16 == 0 {
		return nil, scriptError(ErrInvalidFlags,
			"invalid flags combination")
	}

	if checker == nil {
		checker = nullSigChecker{}
	}
	vm := Engine{flags: flags, checker: checker}

	// The signature script must only contain data pushes when the
	// associated flag is set.
	if vm.hasFlag(ScriptVerifySigPushOnly) && !IsPushOnlyScript(scriptSig) {
		str := "signature script is not push only"
		return nil, scriptError(ErrNotPushOnly, str)
	}

	// Parse both scripts and ensure neither exceeds the maximum allowed
	// size.
	scripts := [][]byte{scriptSig, scriptPubKey}
	vm.scripts = make([]Script, len(scripts))
	for i, scr := range scripts {
		if len(scr) > MaxScriptSize {
			str := fmt.Sprintf("script size %d is larger than max "+
				"allowed size %d", len(scr), MaxScriptSize)
			return nil, scriptError(ErrScriptTooBig, str)
		}

		var err error
		vm.scripts[i], err = ParseScript(scr)
		if err != nil {
			return nil, err
		}
	}

	// Advance the program counter to the public key script if the signature
	// script is empty since there is nothing to execute for it in that case.
	if len(scriptSig) == 0 {
		vm.scriptIdx++
	}

	// The signature script must only contain data pushes for P2SH spends.
	if vm.hasFlag(ScriptBip16) && IsPayToScriptHash(scriptPubKey) {
		if !vm.scripts[0].isPushOnly() {
			str := "pay to script hash is not push only"
			return nil, scriptError(ErrNotPushOnly, str)
		}
		vm.bip16 = true
	}
	if vm.hasFlag(ScriptVerifyMinimalData) {
		vm.dstack.verifyMinimalData = true
		vm.astack.verifyMinimalData = true
	}

	vm.tx = *tx
	vm.txIdx = txIdx

	return &vm, nil
}
