// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"runtime"

	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/scriptvm/chaincfg"
)

// PrevOutputFetcher is an interface used to supply the outputs spent by the
// inputs of a transaction.
type PrevOutputFetcher interface {
	// FetchPrevOutput attempts to fetch the previous output referenced by
	// the passed outpoint. A nil value will be returned if the passed
	// outpoint doesn't exist.
	FetchPrevOutput(wire.OutPoint) *wire.TxOut
}

// CannedPrevOutputFetcher is an implementation of PrevOutputFetcher that only
// is able to return information for a single previous output.
type CannedPrevOutputFetcher struct {
	pkScript []byte
	amt      int64
}

// NewCannedPrevOutputFetcher returns an instance of a CannedPrevOutputFetcher
// that can only return the TxOut defined by the passed script and amount.
func NewCannedPrevOutputFetcher(script []byte, amt int64) *CannedPrevOutputFetcher {
	return &CannedPrevOutputFetcher{
		pkScript: script,
		amt:      amt,
	}
}

// FetchPrevOutput returns the canned output for any outpoint.
//
// NOTE: This is a part of the PrevOutputFetcher interface.
func (c *CannedPrevOutputFetcher) FetchPrevOutput(wire.OutPoint) *wire.TxOut {
	return &wire.TxOut{
		PkScript: c.pkScript,
		Value:    c.amt,
	}
}

// A compile-time assertion to ensure that CannedPrevOutputFetcher matches the
// PrevOutputFetcher interface.
var _ PrevOutputFetcher = (*CannedPrevOutputFetcher)(nil)

// MultiPrevOutFetcher is a custom implementation of the PrevOutputFetcher
// backed by a key-value map of prevouts to outputs.
type MultiPrevOutFetcher struct {
	prevOuts map[wire.OutPoint]*wire.TxOut
}

// NewMultiPrevOutFetcher returns an instance of a PrevOutputFetcher that's
// backed by an optional map which is used as an input source.
func NewMultiPrevOutFetcher(prevOuts map[wire.OutPoint]*wire.TxOut) *MultiPrevOutFetcher {
	if prevOuts == nil {
		prevOuts = make(map[wire.OutPoint]*wire.TxOut)
	}

	return &MultiPrevOutFetcher{
		prevOuts: prevOuts,
	}
}

// FetchPrevOutput attempts to fetch the previous output referenced by the
// passed outpoint.
//
// NOTE: This is a part of the PrevOutputFetcher interface.
func (m *MultiPrevOutFetcher) FetchPrevOutput(op wire.OutPoint) *wire.TxOut {
	return m.prevOuts[op]
}

// AddPrevOut adds a new prev out, tx out pair to the backing map.
func (m *MultiPrevOutFetcher) AddPrevOut(op wire.OutPoint, txOut *wire.TxOut) {
	m.prevOuts[op] = txOut
}

// A compile-time assertion to ensure that MultiPrevOutFetcher matches the
// PrevOutputFetcher interface.
var _ PrevOutputFetcher = (*MultiPrevOutFetcher)(nil)

// txValidateItem holds a transaction along with which input to validate.
type txValidateItem struct {
	txInIndex int
	txIn      *wire.TxIn
}

// txValidator provides a type which asynchronously validates transaction
// inputs.  It provides several channels for communication and a processing
// function that is intended to be in run multiple goroutines.
type txValidator struct {
	validateChan chan *txValidateItem
	quitChan     chan struct{}
	resultChan   chan error
	params       *chaincfg.Params
	tx           *wire.MsgTx
	prevOuts     PrevOutputFetcher
	flags        ScriptFlags
	sigCache     *SigCache
	sigHashes    *TxSigHashes
}

// sendResult sends the result of a script pair validation on the internal
// result channel while respecting the quit channel.  This allows orderly
// shutdown when the validation process is aborted early due to a validation
// error in one of the other goroutines.
func (v *txValidator) sendResult(result error) {
	select {
	case v.resultChan <- result:
	case <-v.quitChan:
	}
}

// validateInput verifies a single input against the output it spends.
func (v *txValidator) validateInput(item *txValidateItem) error {
	txIn := item.txIn
	prevOut := v.prevOuts.FetchPrevOutput(txIn.PreviousOutPoint)
	if prevOut == nil {
		str := fmt.Sprintf("unable to find output %v referenced from "+
			"input %d of transaction %v", txIn.PreviousOutPoint,
			item.txInIndex, v.tx.TxHash())
		return scriptError(ErrMissingPrevOut, str)
	}

	err := verifyInput(v.params, v.tx, item.txInIndex, prevOut.PkScript,
		prevOut.Value, v.flags, v.sigCache, v.sigHashes)
	if err != nil {
		log.Debugf("failed to validate input %s:%d which references "+
			"output %v - %v (input script bytes %x, prev output "+
			"script bytes %x)", v.tx.TxHash(), item.txInIndex,
			txIn.PreviousOutPoint, err, txIn.SignatureScript,
			prevOut.PkScript)
		return err
	}
	return nil
}

// validateHandler consumes items to validate from the internal validate channel
// and returns the result of the validation on the internal result channel. It
// must be run as a goroutine.
func (v *txValidator) validateHandler() {
out:
	for {
		select {
		case item := <-v.validateChan:
			err := v.validateInput(item)
			v.sendResult(err)
			if err != nil {
				break out
			}

		case <-v.quitChan:
			break out
		}
	}
}

// Validate validates the scripts for all of the passed transaction inputs using
// multiple goroutines.
func (v *txValidator) Validate(items []*txValidateItem) error {
	if len(items) == 0 {
		return nil
	}

	// Limit the number of goroutines to do script validation based on the
	// number of processor cores.  This helps ensure the system stays
	// reasonably responsive under heavy load.
	maxGoRoutines := runtime.NumCPU() * 3
	if maxGoRoutines <= 0 {
		maxGoRoutines = 1
	}
	if maxGoRoutines > len(items) {
		maxGoRoutines = len(items)
	}

	// Start up validation handlers that are used to asynchronously
	// validate each transaction input.
	for i := 0; i < maxGoRoutines; i++ {
		go v.validateHandler()
	}

	// Validate each of the inputs.  The quit channel is closed when any
	// errors occur so all processing goroutines exit regardless of which
	// input had the validation error.
	numInputs := len(items)
	currentItem := 0
	processedItems := 0
	for processedItems < numInputs {
		// Only send items while there are still items that need to
		// be processed.  The select statement will never select a nil
		// channel.
		var validateChan chan *txValidateItem
		var item *txValidateItem
		if currentItem < numInputs {
			validateChan = v.validateChan
			item = items[currentItem]
		}

		select {
		case validateChan <- item:
			currentItem++

		case err := <-v.resultChan:
			processedItems++
			if err != nil {
				close(v.quitChan)
				return err
			}
		}
	}

	close(v.quitChan)
	return nil
}

// newTxValidator returns a new instance of txValidator to be used for
// validating transaction scripts asynchronously.
func newTxValidator(params *chaincfg.Params, tx *wire.MsgTx,
	prevOuts PrevOutputFetcher, flags ScriptFlags, sigCache *SigCache,
	sigHashes *TxSigHashes) *txValidator {

	return &txValidator{
		validateChan: make(chan *txValidateItem),
		quitChan:     make(chan struct{}),
		resultChan:   make(chan error),
		params:       params,
		tx:           tx,
		prevOuts:     prevOuts,
		flags:        flags,
		sigCache:     sigCache,
		sigHashes:    sigHashes,
	}
}

// ValidateTransactionScripts validates the scripts for every input of the
// passed transaction using multiple goroutines.  The signature cache and the
// hash cache are optional.  When a hash cache is given, the fork id sighash
// midstate of the transaction is taken from it or added to it.
func ValidateTransactionScripts(params *chaincfg.Params, tx *wire.MsgTx,
	prevOuts PrevOutputFetcher, flags ScriptFlags, sigCache *SigCache,
	hashCache *HashCache) error {

	// The midstate only serves fork id signatures, so it is not computed
	// unless they are enabled.
	var sigHashes *TxSigHashes
	if flags&ScriptEnableSigHashForkID != 0 {
		if hashCache != nil {
			txHash := tx.TxHash()
			var found bool
			sigHashes, found = hashCache.GetSigHashes(&txHash)
			if !found {
				sigHashes = hashCache.AddSigHashes(tx)
			}
		} else {
			sigHashes = NewTxSigHashes(tx)
		}
	}

	// Collect all of the transaction inputs and required information for
	// validation.
	txValItems := make([]*txValidateItem, 0, len(tx.TxIn))
	for txInIdx, txIn := range tx.TxIn {
		txValItems = append(txValItems, &txValidateItem{
			txInIndex: txInIdx,
			txIn:      txIn,
		})
	}

	// Validate all of the inputs.
	validator := newTxValidator(params, tx, prevOuts, flags, sigCache,
		sigHashes)
	return validator.Validate(txValItems)
}
