// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// sigHashOne is the digest committed to by SIGHASH_SINGLE when the input has
// no output at the same index.  It is the little endian uint256 value one.
var sigHashOne = [chainhash.HashSize]byte{0x01}

// shallowCopyTx creates a shallow copy of the transaction for use when
// calculating the signature hash.  It is used over the Copy method on the
// transaction itself since that is a deep copy and therefore does more work and
// allocates much more space than needed.
func shallowCopyTx(tx *wire.MsgTx) wire.MsgTx {
	// As an additional memory optimization, use contiguous backing arrays
	// for the copied inputs and outputs and point the final slice of
	// pointers into the contiguous arrays.  This avoids a lot of small
	// allocations.
	txCopy := wire.MsgTx{
		Version:  tx.Version,
		TxIn:     make([]*wire.TxIn, len(tx.TxIn)),
		TxOut:    make([]*wire.TxOut, len(tx.TxOut)),
		LockTime: tx.LockTime,
	}
	txIns := make([]wire.TxIn, len(tx.TxIn))
	for i, oldTxIn := range tx.TxIn {
		txIns[i] = *oldTxIn
		txIns[i].Witness = nil
		txCopy.TxIn[i] = &txIns[i]
	}
	txOuts := make([]wire.TxOut, len(tx.TxOut))
	for i, oldTxOut := range tx.TxOut {
		txOuts[i] = *oldTxOut
		txCopy.TxOut[i] = &txOuts[i]
	}
	return txCopy
}

// removeOpcodeRaw returns the script with every occurrence of opcode removed.
// It works on raw bytes so a script that fails to parse keeps its unparsed
// tail as is.
func removeOpcodeRaw(script []byte, opcode byte) []byte {
	var result []byte
	var prevOffset int32

	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		if tokenizer.Opcode() == opcode {
			if result == nil {
				result = make([]byte, 0, len(script))
				result = append(result, script[:prevOffset]...)
			}
		} else if result != nil {
			result = append(result, script[prevOffset:tokenizer.ByteIndex()]...)
		}
		prevOffset = tokenizer.ByteIndex()
	}
	if result == nil {
		return script
	}
	if tokenizer.Err() != nil {
		result = append(result, script[prevOffset:]...)
	}
	return result
}

// CalcSignatureHash computes the legacy signature hash of input idx of tx for
// the given subscript and hash type.  The subscript is normally the script of
// the output being spent, or its part after the last executed
// OP_CODESEPARATOR.
//
// SIGHASH_SINGLE on an input that has no output at the same index yields the
// historical digest of the value one rather than an error.
func CalcSignatureHash(subScript []byte, hashType SigHashType,
	tx *wire.MsgTx, idx int) ([]byte, error) {

	if idx < 0 || idx >= len(tx.TxIn) {
		str := fmt.Sprintf("transaction input index %d is negative or "+
			">= %d", idx, len(tx.TxIn))
		return nil, scriptError(ErrInvalidIndex, str)
	}

	// The SigHashSingle signature type signs only the corresponding input
	// and output (the output with the same index number as the input).
	//
	// Since transactions can have more inputs than outputs, this means it
	// is improper to use SigHashSingle on input indices that don't have a
	// corresponding output.
	//
	// A bug in the original Satoshi client implementation means specifying
	// an index that is out of range results in a signature hash of 1 (as a
	// uint256 little endian).  The original intent appeared to be to
	// indicate failure, but unfortunately, it was never checked and thus is
	// treated as the actual signature hash.  This buggy behavior is now
	// part of the consensus and a hard fork would be required to fix it.
	if hashType.BaseType() == SigHashSingle && idx >= len(tx.TxOut) {
		hash := sigHashOne
		return hash[:], nil
	}

	// Remove all instances of OP_CODESEPARATOR from the script.
	subScript = removeOpcodeRaw(subScript, OP_CODESEPARATOR)

	// Make a shallow copy of the transaction, zeroing out the script for
	// all inputs that are not currently being processed.
	txCopy := shallowCopyTx(tx)
	for i := range txCopy.TxIn {
		if i == idx {
			txCopy.TxIn[idx].SignatureScript = subScript
		} else {
			txCopy.TxIn[i].SignatureScript = nil
		}
	}

	switch hashType.BaseType() {
	case SigHashNone:
		txCopy.TxOut = txCopy.TxOut[0:0] // Empty slice.
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}

	case SigHashSingle:
		// Resize output array to up to and including requested index.
		txCopy.TxOut = txCopy.TxOut[:idx+1]

		// All but current output get zeroed out.
		for i := 0; i < idx; i++ {
			txCopy.TxOut[i].Value = -1
			txCopy.TxOut[i].PkScript = nil
		}

		// Sequence on all other inputs is 0, too.
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}

	default:
		// Consensus treats undefined hashtypes like normal SigHashAll
		// for purposes of hash generation.
	}
	if hashType.HasAnyOneCanPay() {
		txCopy.TxIn = txCopy.TxIn[idx : idx+1]
	}

	// The final hash is the double sha256 of both the serialized modified
	// transaction and the hash type (encoded as a 4-byte little-endian
	// value) appended.
	wbuf := bytes.NewBuffer(make([]byte, 0, txCopy.SerializeSizeStripped()+4))
	if err := txCopy.SerializeNoWitness(wbuf); err != nil {
		return nil, scriptError(ErrInternal, err.Error())
	}
	wbuf.Write(binary.LittleEndian.AppendUint32(nil, uint32(hashType)))
	return chainhash.DoubleHashB(wbuf.Bytes()), nil
}

// CalcForkIDSignatureHash computes the signature hash used by fork id
// signatures.  The preimage follows BIP0143: it commits to the amount of the
// output being spent and reuses the midstate in sigHashes, which may be nil
// in which case it is computed on the fly.
//
// Unlike the legacy algorithm, SIGHASH_SINGLE without a matching output
// commits to an all zero output hash.
func CalcForkIDSignatureHash(subScript []byte, sigHashes *TxSigHashes,
	hashType SigHashType, tx *wire.MsgTx, idx int, amt int64) ([]byte, error) {

	// As a sanity check, ensure the passed input index for the transaction
	// is valid.
	if idx < 0 || idx >= len(tx.TxIn) {
		str := fmt.Sprintf("transaction input index %d is negative or "+
			">= %d", idx, len(tx.TxIn))
		return nil, scriptError(ErrInvalidIndex, str)
	}
	if sigHashes == nil {
		sigHashes = NewTxSigHashes(tx)
	}

	// We'll utilize this buffer throughout to incrementally calculate
	// the signature hash for this transaction.
	sigHash := bytes.NewBuffer(make([]byte, 0, 156+len(subScript)))

	// First write out, then encode the transaction's version number.
	sigHash.Write(binary.LittleEndian.AppendUint32(nil, uint32(tx.Version)))

	// Next write out the possibly pre-calculated hashes for the sequence
	// numbers of all inputs, and the hashes of the previous outs for all
	// outputs.
	var zeroHash chainhash.Hash

	// If anyone can pay isn't active, then we can use the cached
	// hashPrevOuts, otherwise we just write zeroes for the prev outs.
	if !hashType.HasAnyOneCanPay() {
		sigHash.Write(sigHashes.HashPrevOuts[:])
	} else {
		sigHash.Write(zeroHash[:])
	}

	// If the sighash isn't anyone can pay, single, or none, the use the
	// cached hash sequences, otherwise write all zeroes for the
	// hashSequence.
	baseType := hashType.BaseType()
	if !hashType.HasAnyOneCanPay() && baseType != SigHashSingle &&
		baseType != SigHashNone {

		sigHash.Write(sigHashes.HashSequence[:])
	} else {
		sigHash.Write(zeroHash[:])
	}

	txIn := tx.TxIn[idx]

	// Next, write the outpoint being spent.
	sigHash.Write(txIn.PreviousOutPoint.Hash[:])
	sigHash.Write(binary.LittleEndian.AppendUint32(nil,
		txIn.PreviousOutPoint.Index))

	// The script code is the subscript serialized with a var int length
	// prefix.
	if err := wire.WriteVarBytes(sigHash, 0, subScript); err != nil {
		return nil, scriptError(ErrInternal, err.Error())
	}

	// Next, add the input amount, and sequence number of the input being
	// signed.
	sigHash.Write(binary.LittleEndian.AppendUint64(nil, uint64(amt)))
	sigHash.Write(binary.LittleEndian.AppendUint32(nil, txIn.Sequence))

	// If the current signature mode isn't single, or none, then we can
	// re-use the pre-generated hashoutputs sighash fragment. Otherwise,
	// we'll serialize and add only the target output index to the signature
	// pre-image.
	switch {
	case baseType != SigHashSingle && baseType != SigHashNone:
		sigHash.Write(sigHashes.HashOutputs[:])

	case baseType == SigHashSingle && idx < len(tx.TxOut):
		var b bytes.Buffer
		if err := wire.WriteTxOut(&b, 0, 0, tx.TxOut[idx]); err != nil {
			return nil, scriptError(ErrInternal, err.Error())
		}
		sigHash.Write(chainhash.DoubleHashB(b.Bytes()))

	default:
		sigHash.Write(zeroHash[:])
	}

	// Finally, write out the transaction's locktime, and the sig hash
	// type.
	sigHash.Write(binary.LittleEndian.AppendUint32(nil, tx.LockTime))
	sigHash.Write(binary.LittleEndian.AppendUint32(nil, uint32(hashType)))

	return chainhash.DoubleHashB(sigHash.Bytes()), nil
}
