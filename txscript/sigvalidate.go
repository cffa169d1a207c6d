// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/scriptvm/chaincfg"
)

// SigChecker is the capability the script engine uses to accept or reject a
// signature.  subScript is the script the signature commits to with the
// signature itself already removed, fullSig is the signature including its
// hash type byte and pubKey the serialized public key.  Encoding rules are
// enforced by the engine before CheckSig is called, so implementations only
// decide whether the signature is valid.
type SigChecker interface {
	CheckSig(subScript, fullSig, pubKey []byte) bool
}

// nullSigChecker rejects every signature.  It is used when an engine is built
// without a checker.
type nullSigChecker struct{}

// CheckSig always returns false.
func (nullSigChecker) CheckSig(_, _, _ []byte) bool {
	return false
}

// TxSigChecker verifies ECDSA signatures over input txIdx of a transaction.
// It picks the legacy or the fork id signature hash depending on the hash type
// of each signature and the flags it was created with.
type TxSigChecker struct {
	params    *chaincfg.Params
	tx        *wire.MsgTx
	txIdx     int
	amount    int64
	flags     ScriptFlags
	sigCache  *SigCache
	hashCache *TxSigHashes
}

// A compile-time assertion to ensure TxSigChecker implements the SigChecker
// interface.
var _ SigChecker = (*TxSigChecker)(nil)

// NewTxSigChecker returns a checker for input txIdx of tx spending an output
// worth amount.  The signature cache and the sighash midstate are optional
// and may be nil.
func NewTxSigChecker(params *chaincfg.Params, tx *wire.MsgTx, txIdx int,
	amount int64, flags ScriptFlags, sigCache *SigCache,
	hashCache *TxSigHashes) *TxSigChecker {

	return &TxSigChecker{
		params:    params,
		tx:        tx,
		txIdx:     txIdx,
		amount:    amount,
		flags:     flags,
		sigCache:  sigCache,
		hashCache: hashCache,
	}
}

// parseSigAndPubKey parses a signature and public key.  Strict DER parsing is
// used when any of the signature encoding flags are active, otherwise the
// signature may be BER encoded.
func (c *TxSigChecker) parseSigAndPubKey(pkBytes,
	sigBytes []byte) (*btcec.PublicKey, *ecdsa.Signature, error) {

	// First, parse the public key, which we expect to be in the proper
	// encoding.
	pubKey, err := btcec.ParsePubKey(pkBytes)
	if err != nil {
		return nil, nil, err
	}

	// Next, parse the signature which should be in DER or BER depending on
	// the active script flags.
	strictEncoding := c.flags&(ScriptVerifyStrictEncoding|
		ScriptVerifyDERSignatures|ScriptVerifyLowS) != 0

	var signature *ecdsa.Signature
	if strictEncoding {
		signature, err = ecdsa.ParseDERSignature(sigBytes)
	} else {
		signature, err = ecdsa.ParseSignature(sigBytes)
	}
	if err != nil {
		return nil, nil, err
	}

	return pubKey, signature, nil
}

// signatureHash computes the digest committed to by a signature with the given
// hash type byte.
func (c *TxSigChecker) signatureHash(subScript []byte,
	hashType SigHashType) ([]byte, error) {

	useForkID := c.flags&ScriptEnableSigHashForkID != 0 &&
		hashType.HasForkID()
	if useForkID && c.params != nil {
		hashType = hashType.AddForkID(c.params.ForkID)
	}

	// Replay protection moves the fork value to one the chain the fork
	// split from can never produce.
	if c.flags&ScriptEnableReplayProtection != 0 {
		newForkValue := hashType.ForkID() ^ 0xdead
		hashType = (hashType & 0xff) |
			SigHashType(0xff0000|newForkValue)<<8
	}

	if useForkID {
		return CalcForkIDSignatureHash(subScript, c.hashCache, hashType,
			c.tx, c.txIdx, c.amount)
	}
	return CalcSignatureHash(subScript, hashType, c.tx, c.txIdx)
}

// verifySig attempts to verify the signature given the computed sighash,
// consulting and filling the signature cache when one is configured.
func (c *TxSigChecker) verifySig(sigHash []byte, sig *ecdsa.Signature,
	pubKey *btcec.PublicKey) bool {

	if c.sigCache == nil {
		return sig.Verify(sigHash, pubKey)
	}

	var sigHashBytes chainhash.Hash
	copy(sigHashBytes[:], sigHash)

	if c.sigCache.Exists(sigHashBytes, sig, pubKey) {
		return true
	}
	if !sig.Verify(sigHash, pubKey) {
		return false
	}
	c.sigCache.Add(sigHashBytes, sig, pubKey)
	return true
}

// CheckSig returns whether fullSig is a valid signature by pubKey over the
// bound input, committing to subScript.
//
// NOTE: This is part of the SigChecker interface.
func (c *TxSigChecker) CheckSig(subScript, fullSig, pkBytes []byte) bool {
	if len(fullSig) == 0 {
		return false
	}

	hashType := SigHashType(fullSig[len(fullSig)-1])
	sigBytes := fullSig[:len(fullSig)-1]

	pubKey, sig, err := c.parseSigAndPubKey(pkBytes, sigBytes)
	if err != nil {
		log.Tracef("unable to parse signature or public key: %v", err)
		return false
	}

	sigHash, err := c.signatureHash(subScript, hashType)
	if err != nil {
		log.Tracef("unable to compute signature hash: %v", err)
		return false
	}

	valid := c.verifySig(sigHash, sig, pubKey)
	if !valid {
		log.Tracef("signature check failed for sighash %x", sigHash)
	}
	return valid
}
