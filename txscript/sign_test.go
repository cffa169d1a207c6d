// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/scriptvm/chaincfg"
	"github.com/stretchr/testify/require"
)

// testParams is the network used by tests that do not care about fork id
// signatures.
var testParams = chaincfg.MainNetParams

// testKey returns a deterministic private key derived from n.
func testKey(n byte) *btcec.PrivateKey {
	key, _ := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{n}, 32))
	return key
}

// signMode pairs a network with the flags and hash type flag bits needed to
// produce signatures it accepts.
type signMode struct {
	name     string
	params   *chaincfg.Params
	flags    ScriptFlags
	hashBits SigHashType
}

var signModes = []signMode{{
	name:   "legacy",
	params: &chaincfg.MainNetParams,
	flags:  StandardVerifyFlags,
}, {
	name:     "forkid",
	params:   &chaincfg.CashMainNetParams,
	flags:    StandardVerifyFlags | ScriptEnableSigHashForkID,
	hashBits: SigHashForkID,
}}

var baseHashTypes = []SigHashType{
	SigHashAll,
	SigHashNone,
	SigHashSingle,
	SigHashAll | SigHashAnyOneCanPay,
	SigHashNone | SigHashAnyOneCanPay,
	SigHashSingle | SigHashAnyOneCanPay,
}

// newTestSpend returns an unsigned transaction spending an output worth
// amount locked by pkScript.
func newTestSpend(pkScript []byte, amount int64) *wire.MsgTx {
	return NewSpendTx(NewCreditTx(pkScript, amount), nil)
}

// p2pkhScript returns the pay-to-pubkey-hash script for the key.
func p2pkhScript(t *testing.T, key *btcec.PrivateKey, compress bool) []byte {
	t.Helper()

	pubKey := key.PubKey().SerializeUncompressed()
	if compress {
		pubKey = key.PubKey().SerializeCompressed()
	}
	out := ScriptOutput{Class: PubKeyHashTy, Hash: btcutil.Hash160(pubKey)}
	pkScript, err := out.Script()
	require.NoError(t, err)
	return pkScript
}

// TestSignatureScript signs pay-to-pubkey-hash spends with every hash type on
// both signature hash algorithms and verifies the result.
func TestSignatureScript(t *testing.T) {
	t.Parallel()

	const amount = 50000
	key := testKey(0x11)

	for _, mode := range signModes {
		for _, ht := range baseHashTypes {
			for _, compress := range []bool{false, true} {
				hashType := ht | mode.hashBits
				name := fmt.Sprintf("%s %v compress=%v", mode.name,
					hashType, compress)

				pkScript := p2pkhScript(t, key, compress)
				tx := newTestSpend(pkScript, amount)
				sigScript, err := SignatureScript(mode.params, tx, 0,
					pkScript, hashType, key, compress, amount)
				require.NoError(t, err, name)
				tx.TxIn[0].SignatureScript = sigScript

				require.True(t, VerifySpend(mode.params, tx, 0,
					pkScript, amount, mode.flags), name)

				// The signature must decode to the same hash type.
				in, err := DecodeInput(mode.params, sigScript)
				require.NoError(t, err, name)
				require.Equal(t, SpendPubKeyHashTy, in.Class, name)
				require.Equal(t, hashType, in.Sigs[0].HashType(), name)
			}
		}
	}
}

// TestSignatureScriptAmount ensures fork id signatures commit to the amount
// being spent while legacy signatures do not.
func TestSignatureScriptAmount(t *testing.T) {
	t.Parallel()

	const amount = 120000
	key := testKey(0x12)
	pkScript := p2pkhScript(t, key, true)

	for _, mode := range signModes {
		tx := newTestSpend(pkScript, amount)
		sigScript, err := SignatureScript(mode.params, tx, 0, pkScript,
			SigHashAll|mode.hashBits, key, true, amount)
		require.NoError(t, err, mode.name)
		tx.TxIn[0].SignatureScript = sigScript

		require.True(t, VerifySpend(mode.params, tx, 0, pkScript,
			amount, mode.flags), mode.name)

		wantValid := mode.hashBits == 0
		require.Equal(t, wantValid, VerifySpend(mode.params, tx, 0,
			pkScript, amount+1, mode.flags), mode.name)
	}
}

// TestSignForkIDNetworks ensures the fork id of the network is mixed into the
// signature hash and that the fork id flag is refused on networks without
// one.
func TestSignForkIDNetworks(t *testing.T) {
	t.Parallel()

	const amount = 1000
	key := testKey(0x13)
	pkScript := p2pkhScript(t, key, true)
	flags := StandardVerifyFlags | ScriptEnableSigHashForkID
	hashType := SigHashAll | SigHashForkID

	// Signing with the fork id flag on a network without fork id fails.
	tx := newTestSpend(pkScript, amount)
	_, err := RawTxInSignature(&chaincfg.MainNetParams, tx, 0, pkScript,
		hashType, key, amount)
	require.True(t, IsErrorCode(err, ErrIllegalForkID), "got %v", err)

	// A signature made for one fork id is invalid on a chain using
	// another.
	otherFork := chaincfg.CashMainNetParams
	otherFork.Name = "otherfork"
	otherFork.ForkID = 0x123

	sigScript, err := SignatureScript(&otherFork, tx, 0, pkScript,
		hashType, key, true, amount)
	require.NoError(t, err)
	tx.TxIn[0].SignatureScript = sigScript

	require.True(t, VerifySpend(&otherFork, tx, 0, pkScript, amount, flags))
	require.False(t, VerifySpend(&chaincfg.CashMainNetParams, tx, 0,
		pkScript, amount, flags))

	// Replay protection moves the fork value away from the one signed.
	require.False(t, VerifySpend(&otherFork, tx, 0, pkScript, amount,
		flags|ScriptEnableReplayProtection))
}

// TestSignatureScriptForkIDFlagMismatch ensures legacy signatures are rejected
// once fork id signatures are required and the other way around.
func TestSignatureScriptForkIDFlagMismatch(t *testing.T) {
	t.Parallel()

	const amount = 1000
	key := testKey(0x14)
	pkScript := p2pkhScript(t, key, true)
	forkFlags := StandardVerifyFlags | ScriptEnableSigHashForkID

	tx := newTestSpend(pkScript, amount)
	sigScript, err := SignatureScript(&chaincfg.CashMainNetParams, tx, 0,
		pkScript, SigHashAll, key, true, amount)
	require.NoError(t, err)
	tx.TxIn[0].SignatureScript = sigScript
	err = verifyInput(&chaincfg.CashMainNetParams, tx, 0, pkScript, amount,
		forkFlags, nil, nil)
	require.True(t, IsErrorCode(err, ErrMustUseForkID), "got %v", err)

	sigScript, err = SignatureScript(&chaincfg.CashMainNetParams, tx, 0,
		pkScript, SigHashAll|SigHashForkID, key, true, amount)
	require.NoError(t, err)
	tx.TxIn[0].SignatureScript = sigScript
	err = verifyInput(&chaincfg.CashMainNetParams, tx, 0, pkScript, amount,
		StandardVerifyFlags, nil, nil)
	require.True(t, IsErrorCode(err, ErrIllegalForkID), "got %v", err)
}

// multiSigFixture returns three deterministic keys and the 2-of-3 multisig
// output over their compressed public keys.
func multiSigFixture(t *testing.T) ([]*btcec.PrivateKey, ScriptOutput) {
	t.Helper()

	keys := []*btcec.PrivateKey{testKey(0x21), testKey(0x22), testKey(0x23)}
	pubKeys := make([][]byte, 0, len(keys))
	for _, key := range keys {
		pubKeys = append(pubKeys, key.PubKey().SerializeCompressed())
	}
	out, err := NewMultiSigOutput(pubKeys, 2)
	require.NoError(t, err)
	return keys, out
}

// TestSignMultiSig signs bare and pay-to-script-hash 2-of-3 multisig spends
// on both signature hash algorithms.
func TestSignMultiSig(t *testing.T) {
	t.Parallel()

	const amount = 7000
	keys, redeem := multiSigFixture(t)
	redeemScript, err := redeem.Script()
	require.NoError(t, err)

	p2sh := ScriptOutput{
		Class: ScriptHashTy,
		Hash:  btcutil.Hash160(redeemScript),
	}
	p2shScript, err := p2sh.Script()
	require.NoError(t, err)

	for _, mode := range signModes {
		hashType := SigHashAll | mode.hashBits

		// Bare multisig with the keys handed over out of order.
		tx := newTestSpend(redeemScript, amount)
		in, err := SignMultiSig(mode.params, tx, 0, redeem, redeemScript,
			hashType, []*btcec.PrivateKey{keys[2], keys[0]}, amount)
		require.NoError(t, err, mode.name)
		require.Len(t, in.Sigs, 2, mode.name)
		require.False(t, in.IsPayToScriptHash(), mode.name)

		sigScript, err := in.FinalScript()
		require.NoError(t, err, mode.name)
		tx.TxIn[0].SignatureScript = sigScript
		require.True(t, VerifySpend(mode.params, tx, 0, redeemScript,
			amount, mode.flags), mode.name)

		// Pay-to-script-hash wrapping the same redeem script.
		tx = newTestSpend(p2shScript, amount)
		in, err = SignMultiSig(mode.params, tx, 0, redeem, redeemScript,
			hashType, keys, amount)
		require.NoError(t, err, mode.name)
		in.RedeemScript = &redeem

		sigScript, err = in.FinalScript()
		require.NoError(t, err, mode.name)
		tx.TxIn[0].SignatureScript = sigScript
		require.True(t, VerifySpend(mode.params, tx, 0, p2shScript,
			amount, mode.flags), mode.name)
		require.True(t, VerifyStdInput(mode.params, tx, 0, p2sh, amount,
			mode.flags), mode.name)

		decoded, err := DecodeInput(mode.params, sigScript)
		require.NoError(t, err, mode.name)
		require.True(t, decoded.IsPayToScriptHash(), mode.name)
		require.Equal(t, SpendMultiSigTy, decoded.Class, mode.name)
		require.Equal(t, redeem, *decoded.RedeemScript, mode.name)
	}
}

// TestSignMultiSigPartial ensures a partially signed multisig input keeps an
// empty placeholder, survives a script round trip and is refused as final.
func TestSignMultiSigPartial(t *testing.T) {
	t.Parallel()

	const amount = 7000
	keys, redeem := multiSigFixture(t)
	redeemScript, err := redeem.Script()
	require.NoError(t, err)

	tx := newTestSpend(redeemScript, amount)
	in, err := SignMultiSig(&testParams, tx, 0, redeem, redeemScript,
		SigHashAll, keys[1:2], amount)
	require.NoError(t, err)
	require.Len(t, in.Sigs, 2)
	require.False(t, in.Sigs[0].IsEmpty())
	require.True(t, in.Sigs[1].IsEmpty())

	_, err = in.FinalScript()
	require.True(t, IsErrorCode(err, ErrPlaceholderSignature), "got %v", err)

	sigScript, err := in.Script()
	require.NoError(t, err)
	decoded, err := DecodeInput(&testParams, sigScript)
	require.NoError(t, err)
	require.Equal(t, SpendMultiSigTy, decoded.Class)
	require.Len(t, decoded.Sigs, 2)
	require.Equal(t, in.Sigs[0].Bytes(), decoded.Sigs[0].Bytes())
	require.True(t, decoded.Sigs[1].IsEmpty())

	// One signature is not enough for a 2-of-3.
	tx.TxIn[0].SignatureScript = sigScript
	require.False(t, VerifySpend(&testParams, tx, 0, redeemScript, amount,
		StandardVerifyFlags))
}

// TestSignMultiSigWrongClass ensures only multisig outputs can be signed as
// multisig.
func TestSignMultiSigWrongClass(t *testing.T) {
	t.Parallel()

	key := testKey(0x31)
	pkScript := p2pkhScript(t, key, true)
	out, err := DecodeOutput(pkScript)
	require.NoError(t, err)

	tx := newTestSpend(pkScript, 0)
	_, err = SignMultiSig(&testParams, tx, 0, out, pkScript, SigHashAll,
		[]*btcec.PrivateKey{key}, 0)
	require.True(t, IsErrorCode(err, ErrNotMultisigScript), "got %v", err)
}

// TestSignPayToPubKey signs a pay-to-pubkey spend.
func TestSignPayToPubKey(t *testing.T) {
	t.Parallel()

	const amount = 42
	key := testKey(0x32)
	out := ScriptOutput{
		Class:  PubKeyTy,
		PubKey: key.PubKey().SerializeCompressed(),
	}
	pkScript, err := out.Script()
	require.NoError(t, err)

	for _, mode := range signModes {
		tx := newTestSpend(pkScript, amount)
		sig, err := RawTxInSignature(mode.params, tx, 0, pkScript,
			SigHashAll|mode.hashBits, key, amount)
		require.NoError(t, err, mode.name)

		in := ScriptInput{Class: SpendPubKeyTy, Sigs: []TxSignature{sig}}
		sigScript, err := in.FinalScript()
		require.NoError(t, err, mode.name)
		tx.TxIn[0].SignatureScript = sigScript

		require.True(t, VerifyStdInput(mode.params, tx, 0, out, amount,
			mode.flags), mode.name)
	}
}
