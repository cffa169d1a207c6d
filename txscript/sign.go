// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/scriptvm/chaincfg"
)

// RawTxInSignature returns the signature of input idx of tx by key, committing
// to subScript and hashType.  Hash types with the fork id flag sign the fork
// id digest over amount with the fork id of the network mixed in, all others
// sign the legacy digest and ignore amount.
func RawTxInSignature(params *chaincfg.Params, tx *wire.MsgTx, idx int,
	subScript []byte, hashType SigHashType, key *btcec.PrivateKey,
	amount int64) (TxSignature, error) {

	var (
		hash []byte
		err  error
	)
	if hashType.HasForkID() {
		if err := checkForkIDAllowed(params, hashType); err != nil {
			return TxSignature{}, err
		}
		hash, err = CalcForkIDSignatureHash(subScript, nil,
			hashType.AddForkID(params.ForkID), tx, idx, amount)
	} else {
		hash, err = CalcSignatureHash(subScript, hashType, tx, idx)
	}
	if err != nil {
		return TxSignature{}, err
	}

	return NewTxSignature(ecdsa.Sign(key, hash), hashType), nil
}

// SignatureScript creates an input signature script for tx to spend coins sent
// from a previous output to the owner of privKey. tx must include all
// transaction inputs and outputs, however txin scripts are allowed to be filled
// or empty. The returned script is calculated to be used as the idx'th txin
// sigscript for tx. subscript is the PkScript of the previous output being used
// as the idx'th input. privKey is serialized in either a compressed or
// uncompressed format based on compress. This format must match the same format
// used to generate the payment address, or the script validation will fail.
func SignatureScript(params *chaincfg.Params, tx *wire.MsgTx, idx int,
	subscript []byte, hashType SigHashType, privKey *btcec.PrivateKey,
	compress bool, amount int64) ([]byte, error) {

	sig, err := RawTxInSignature(params, tx, idx, subscript, hashType,
		privKey, amount)
	if err != nil {
		return nil, err
	}

	pk := privKey.PubKey()
	var pkData []byte
	if compress {
		pkData = pk.SerializeCompressed()
	} else {
		pkData = pk.SerializeUncompressed()
	}

	in := ScriptInput{
		Class:  SpendPubKeyHashTy,
		Sigs:   []TxSignature{sig},
		PubKey: pkData,
	}
	return in.Script()
}

// SignMultiSig adds the signatures of keys to a multisig input for out.  The
// signatures are placed in the order of the output's public keys as
// CHECKMULTISIG requires, keys that are not part of the output are ignored
// and signing stops once the required number of signatures is reached.  When
// out is the redeem script of a pay-to-script-hash output, subScript is the
// serialized redeem script.
func SignMultiSig(params *chaincfg.Params, tx *wire.MsgTx, idx int,
	out ScriptOutput, subScript []byte, hashType SigHashType,
	keys []*btcec.PrivateKey, amount int64) (ScriptInput, error) {

	if out.Class != MultiSigTy {
		str := fmt.Sprintf("can not sign a %v script as multisig",
			out.Class)
		return ScriptInput{}, scriptError(ErrNotMultisigScript, str)
	}

	byPubKey := make(map[string]*btcec.PrivateKey, len(keys))
	for _, key := range keys {
		pk := key.PubKey()
		byPubKey[string(pk.SerializeCompressed())] = key
		byPubKey[string(pk.SerializeUncompressed())] = key
	}

	sigs := make([]TxSignature, 0, out.RequiredSigs)
	for _, pubKey := range out.PubKeys {
		if len(sigs) == out.RequiredSigs {
			break
		}
		key, ok := byPubKey[string(pubKey)]
		if !ok {
			continue
		}
		sig, err := RawTxInSignature(params, tx, idx, subScript,
			hashType, key, amount)
		if err != nil {
			return ScriptInput{}, err
		}
		sigs = append(sigs, sig)
	}

	return NewMultiSigInput(out, sigs)
}
