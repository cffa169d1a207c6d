// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/scriptvm/chaincfg"
)

// scriptFlagNames maps the flag names used by the reference script test
// vectors to the matching flags.
var scriptFlagNames = map[string]ScriptFlags{
	"NONE":                       0,
	"P2SH":                       ScriptBip16,
	"STRICTENC":                  ScriptVerifyStrictEncoding,
	"DERSIG":                     ScriptVerifyDERSignatures,
	"LOW_S":                      ScriptVerifyLowS,
	"SIGPUSHONLY":                ScriptVerifySigPushOnly,
	"MINIMALDATA":                ScriptVerifyMinimalData,
	"NULLDUMMY":                  ScriptStrictMultiSig,
	"DISCOURAGE_UPGRADABLE_NOPS": ScriptDiscourageUpgradableNops,
	"CLEANSTACK":                 ScriptVerifyCleanStack,
	"CHECKLOCKTIMEVERIFY":        ScriptVerifyCheckLockTimeVerify,
	"CHECKSEQUENCEVERIFY":        ScriptVerifyCheckSequenceVerify,
	"NULLFAIL":                   ScriptVerifyNullFail,
	"SIGHASH_FORKID":             ScriptEnableSigHashForkID,
	"REPLAY_PROTECTION":          ScriptEnableReplayProtection,
}

// ParseScriptFlags parses the provided comma-separated flags string, as used
// by the reference script test vectors, into ScriptFlags.  An empty string is
// no flags.
func ParseScriptFlags(flagStr string) (ScriptFlags, error) {
	var flags ScriptFlags
	if flagStr == "" {
		return flags, nil
	}

	for _, flag := range strings.Split(flagStr, ",") {
		f, ok := scriptFlagNames[strings.TrimSpace(flag)]
		if !ok {
			str := fmt.Sprintf("invalid flag: %s", flag)
			return flags, scriptError(ErrInvalidFlags, str)
		}
		flags |= f
	}
	return flags, nil
}

// NewCreditTx returns the transaction that creates the output spent by a
// spend built with NewSpendTx.  It has a single coinbase-like input whose
// signature script is OP_0 OP_0 and a single output paying amount to
// pkScript.
func NewCreditTx(pkScript []byte, amount int64) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	prevOut := wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex)
	txIn := wire.NewTxIn(prevOut, []byte{OP_0, OP_0}, nil)
	txIn.Sequence = wire.MaxTxInSequenceNum
	tx.AddTxIn(txIn)
	tx.AddTxOut(wire.NewTxOut(amount, pkScript))
	return tx
}

// NewSpendTx returns a transaction with a single input spending the first
// output of credit with sigScript and a single output of the same value with
// an empty script.
func NewSpendTx(credit *wire.MsgTx, sigScript []byte) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	creditHash := credit.TxHash()
	prevOut := wire.NewOutPoint(&creditHash, 0)
	txIn := wire.NewTxIn(prevOut, sigScript, nil)
	txIn.Sequence = wire.MaxTxInSequenceNum
	tx.AddTxIn(txIn)

	var value int64
	if len(credit.TxOut) > 0 {
		value = credit.TxOut[0].Value
	}
	tx.AddTxOut(wire.NewTxOut(value, nil))
	return tx
}

// verifyInput runs the signature script of input idx of tx followed by
// pkScript, and the redeem script for pay-to-script-hash spends.
func verifyInput(params *chaincfg.Params, tx *wire.MsgTx, idx int,
	pkScript []byte, amount int64, flags ScriptFlags, sigCache *SigCache,
	hashCache *TxSigHashes) error {

	checker := NewTxSigChecker(params, tx, idx, amount, flags, sigCache,
		hashCache)
	vm, err := NewEngine(pkScript, tx, idx, flags, checker)
	if err != nil {
		return err
	}
	return vm.Execute()
}

// VerifySpend returns whether input idx of tx validly spends an output worth
// amount locked by pkScript under the given flags.
func VerifySpend(params *chaincfg.Params, tx *wire.MsgTx, idx int,
	pkScript []byte, amount int64, flags ScriptFlags) bool {

	err := verifyInput(params, tx, idx, pkScript, amount, flags, nil, nil)
	if err != nil {
		log.Debugf("input %d of %v failed verification: %v", idx,
			tx.TxHash(), err)
		return false
	}
	return true
}

// VerifyStdInput is like VerifySpend for an output given in decoded form.
func VerifyStdInput(params *chaincfg.Params, tx *wire.MsgTx, idx int,
	out ScriptOutput, amount int64, flags ScriptFlags) bool {

	pkScript, err := out.Script()
	if err != nil {
		log.Debugf("unable to encode %v output: %v", out.Class, err)
		return false
	}
	return VerifySpend(params, tx, idx, pkScript, amount, flags)
}

// VerifyScriptPair builds a credit transaction paying amount to pkScript and
// a transaction spending it with sigScript, then verifies the spend.  The
// error identifies the rule that failed, nil means the spend is valid.
func VerifyScriptPair(params *chaincfg.Params, sigScript, pkScript []byte,
	amount int64, flags ScriptFlags) error {

	credit := NewCreditTx(pkScript, amount)
	spend := NewSpendTx(credit, sigScript)
	return verifyInput(params, spend, 0, pkScript, amount, flags, nil, nil)
}
