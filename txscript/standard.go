// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/scriptvm/address"
	"github.com/btcsuite/scriptvm/chaincfg"
)

const (
	// MaxDataCarrierSize is the maximum number of bytes allowed in pushed
	// data to be considered a nulldata transaction
	MaxDataCarrierSize = 80

	// witnessV0PubKeyHashLen is the length of a P2WPKH script.
	witnessV0PubKeyHashLen = 22

	// witnessV0ScriptHashLen is the length of a P2WSH script.
	witnessV0ScriptHashLen = 34

	// pubKeyHashLen is the length of a P2PKH script.
	pubKeyHashLen = 25
)

// ScriptClass is an enumeration for the list of standard types of script.
type ScriptClass byte

// Classes of script payment known about in the blockchain.
const (
	NonStandardTy         ScriptClass = iota // None of the recognized forms.
	PubKeyTy                                 // Pay pubkey.
	PubKeyHashTy                             // Pay pubkey hash.
	WitnessV0PubKeyHashTy                    // Pay witness pubkey hash.
	ScriptHashTy                             // Pay to script hash.
	WitnessV0ScriptHashTy                    // Pay to witness script hash.
	MultiSigTy                               // Multi signature.
	NullDataTy                               // Empty data-only (provably prunable).
)

// scriptClassToName houses the human-readable strings which describe each
// script class.
var scriptClassToName = []string{
	NonStandardTy:         "nonstandard",
	PubKeyTy:              "pubkey",
	PubKeyHashTy:          "pubkeyhash",
	WitnessV0PubKeyHashTy: "witness_v0_keyhash",
	ScriptHashTy:          "scripthash",
	WitnessV0ScriptHashTy: "witness_v0_scripthash",
	MultiSigTy:            "multisig",
	NullDataTy:            "nulldata",
}

// String implements the Stringer interface by returning the name of
// the enum script class. If the enum is invalid then "Invalid" will be
// returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// ScriptOutput is the decoded form of a locking script.  Which fields are set
// depends on Class:
//
//   - PubKeyTy: PubKey
//   - PubKeyHashTy, ScriptHashTy, WitnessV0PubKeyHashTy,
//     WitnessV0ScriptHashTy: Hash
//   - MultiSigTy: RequiredSigs and PubKeys
//   - NullDataTy: Data, nil for a bare OP_RETURN
//   - NonStandardTy: Data holds the raw script
type ScriptOutput struct {
	Class        ScriptClass
	PubKey       []byte
	Hash         []byte
	RequiredSigs int
	PubKeys      [][]byte
	Data         []byte
}

// isStandardPubKey returns whether the passed bytes have the size implied by
// their header byte: 33 bytes for compressed keys and 65 bytes for
// uncompressed or hybrid ones.
func isStandardPubKey(pubKey []byte) bool {
	if len(pubKey) == 0 {
		return false
	}
	switch pubKey[0] {
	case 0x02, 0x03:
		return len(pubKey) == 33
	case 0x04, 0x06, 0x07:
		return len(pubKey) == 65
	}
	return false
}

// isMinimalPush returns whether the token is a data push encoded exactly as
// NewPushOp would encode its payload.
func isMinimalPush(op ScriptOp) bool {
	return len(op.data) > 0 &&
		op.opcode.value == canonicalPushOpcode(len(op.data))
}

// extractPubKeyHash extracts the public key hash from the passed script if it
// is a standard pay-to-pubkey-hash script.  It will return nil otherwise.
func extractPubKeyHash(script []byte) []byte {
	// A pay-to-pubkey-hash script is of the form:
	//  OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
	if len(script) == pubKeyHashLen &&
		script[0] == OP_DUP &&
		script[1] == OP_HASH160 &&
		script[2] == OP_DATA_20 &&
		script[23] == OP_EQUALVERIFY &&
		script[24] == OP_CHECKSIG {

		return script[3:23]
	}
	return nil
}

// extractWitnessProgram returns the program of a version 0 witness script of
// the given total length, nil otherwise.
func extractWitnessProgram(script []byte, scriptLen int) []byte {
	// A version 0 witness script is of the form:
	//  OP_0 <20 or 32 byte program>
	if len(script) == scriptLen &&
		script[0] == OP_0 &&
		int(script[1]) == scriptLen-2 {

		return script[2:]
	}
	return nil
}

// extractPubKey returns the public key of a pay-to-pubkey script, nil
// otherwise.
func extractPubKey(ops Script) []byte {
	// A pay-to-pubkey script is of the form:
	//  <pubkey> OP_CHECKSIG
	if len(ops) == 2 && ops[1].opcode.value == OP_CHECKSIG &&
		isMinimalPush(ops[0]) && isStandardPubKey(ops[0].data) {

		return ops[0].data
	}
	return nil
}

// extractMultisig returns the number of required signatures and the keys of
// a bare multisig script.  ok is false when the script is not one.
func extractMultisig(ops Script) (required int, pubKeys [][]byte, ok bool) {
	// A multi-signature script is of the form:
	//  OP_m <pubkey1> <pubkey2> ... <pubkeyn> OP_n OP_CHECKMULTISIG
	//
	// With 1 <= m <= n <= 16.
	numOps := len(ops)
	if numOps < 4 || ops[numOps-1].opcode.value != OP_CHECKMULTISIG {
		return 0, nil, false
	}
	mOp, nOp := ops[0].opcode.value, ops[numOps-2].opcode.value
	if mOp < OP_1 || mOp > OP_16 || nOp < OP_1 || nOp > OP_16 {
		return 0, nil, false
	}
	required, numKeys := asSmallInt(mOp), asSmallInt(nOp)
	if required > numKeys || numKeys != numOps-3 {
		return 0, nil, false
	}

	pubKeys = make([][]byte, 0, numKeys)
	for _, op := range ops[1 : numOps-2] {
		if !isMinimalPush(op) || !isStandardPubKey(op.data) {
			return 0, nil, false
		}
		pubKeys = append(pubKeys, op.data)
	}
	return required, pubKeys, true
}

// extractNullData returns the payload of a null data script.  ok is false
// when the script is not one.
func extractNullData(ops Script) (data []byte, ok bool) {
	// A null script is of the form:
	//  OP_RETURN <optional data>
	//
	// The data, when present, is a single non-empty push of at most
	// MaxDataCarrierSize bytes.
	switch {
	case len(ops) == 1 && ops[0].opcode.value == OP_RETURN:
		return nil, true

	case len(ops) == 2 && ops[0].opcode.value == OP_RETURN:
		push := ops[1]
		if push.opcode.value > OP_PUSHDATA4 || len(push.data) == 0 ||
			len(push.data) > MaxDataCarrierSize {

			return nil, false
		}
		return push.data, true
	}
	return nil, false
}

// DecodeOutput classifies a locking script.  Templates are matched in the
// order pay-to-pubkey-hash, pay-to-script-hash, pay-to-pubkey, multisig,
// witness version 0 and null data.  Scripts matching none of them decode to
// NonStandardTy carrying a copy of the raw bytes.  Only scripts that fail to
// parse return an error.
func DecodeOutput(script []byte) (ScriptOutput, error) {
	ops, err := ParseScript(script)
	if err != nil {
		return ScriptOutput{}, err
	}

	if hash := extractPubKeyHash(script); hash != nil {
		return ScriptOutput{Class: PubKeyHashTy, Hash: clone(hash)}, nil
	}
	if IsPayToScriptHash(script) {
		return ScriptOutput{Class: ScriptHashTy, Hash: clone(script[2:22])}, nil
	}
	if pubKey := extractPubKey(ops); pubKey != nil {
		return ScriptOutput{Class: PubKeyTy, PubKey: clone(pubKey)}, nil
	}
	if required, pubKeys, ok := extractMultisig(ops); ok {
		keys := make([][]byte, len(pubKeys))
		for i, pubKey := range pubKeys {
			keys[i] = clone(pubKey)
		}
		return ScriptOutput{
			Class:        MultiSigTy,
			RequiredSigs: required,
			PubKeys:      keys,
		}, nil
	}
	if prog := extractWitnessProgram(script, witnessV0PubKeyHashLen); prog != nil {
		return ScriptOutput{
			Class: WitnessV0PubKeyHashTy,
			Hash:  clone(prog),
		}, nil
	}
	if prog := extractWitnessProgram(script, witnessV0ScriptHashLen); prog != nil {
		return ScriptOutput{
			Class: WitnessV0ScriptHashTy,
			Hash:  clone(prog),
		}, nil
	}
	if data, ok := extractNullData(ops); ok {
		return ScriptOutput{Class: NullDataTy, Data: clone(data)}, nil
	}

	return ScriptOutput{Class: NonStandardTy, Data: clone(script)}, nil
}

// clone returns a copy of b, preserving nil.
func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}

// GetScriptClass returns the class of the script passed.
//
// NonStandardTy will be returned when the script does not parse.
func GetScriptClass(script []byte) ScriptClass {
	out, err := DecodeOutput(script)
	if err != nil {
		return NonStandardTy
	}
	return out.Class
}

// checkHashLen returns an error when hash does not have the length the class
// requires.
func checkHashLen(class ScriptClass, hash []byte, want int) error {
	if len(hash) != want {
		str := fmt.Sprintf("%v hash must be %d bytes, got %d", class,
			want, len(hash))
		return scriptError(ErrUnsupportedScript, str)
	}
	return nil
}

// Script encodes the output into a locking script using minimal pushes.
func (o ScriptOutput) Script() ([]byte, error) {
	builder := NewScriptBuilder()

	switch o.Class {
	case PubKeyTy:
		if !isStandardPubKey(o.PubKey) {
			return nil, scriptError(ErrPubKeyType,
				"unsupported public key size")
		}
		builder.AddData(o.PubKey).AddOp(OP_CHECKSIG)

	case PubKeyHashTy:
		if err := checkHashLen(o.Class, o.Hash, 20); err != nil {
			return nil, err
		}
		builder.AddOp(OP_DUP).AddOp(OP_HASH160).AddData(o.Hash).
			AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG)

	case ScriptHashTy:
		if err := checkHashLen(o.Class, o.Hash, 20); err != nil {
			return nil, err
		}
		builder.AddOp(OP_HASH160).AddData(o.Hash).AddOp(OP_EQUAL)

	case WitnessV0PubKeyHashTy:
		if err := checkHashLen(o.Class, o.Hash, 20); err != nil {
			return nil, err
		}
		builder.AddOp(OP_0).AddData(o.Hash)

	case WitnessV0ScriptHashTy:
		if err := checkHashLen(o.Class, o.Hash, 32); err != nil {
			return nil, err
		}
		builder.AddOp(OP_0).AddData(o.Hash)

	case MultiSigTy:
		return multiSigScript(o.PubKeys, o.RequiredSigs)

	case NullDataTy:
		if len(o.Data) > MaxDataCarrierSize {
			str := fmt.Sprintf("data size %d is larger than max "+
				"allowed size %d", len(o.Data), MaxDataCarrierSize)
			return nil, scriptError(ErrTooMuchNullData, str)
		}
		builder.AddOp(OP_RETURN)
		if len(o.Data) > 0 {
			builder.AddScriptOp(NewPushOp(o.Data))
		}

	case NonStandardTy:
		return clone(o.Data), nil

	default:
		str := fmt.Sprintf("unknown script class %d", o.Class)
		return nil, scriptError(ErrUnsupportedScript, str)
	}

	return builder.Script()
}

// multiSigScript returns a valid script for a multisignature redemption where
// nrequired of the keys in pubkeys are required to have signed the
// transaction for success.  An Error with the error code
// ErrTooManyRequiredSigs will be returned if nrequired is larger than the
// number of keys provided.
func multiSigScript(pubKeys [][]byte, nrequired int) ([]byte, error) {
	if len(pubKeys) == 0 || len(pubKeys) > 16 {
		str := fmt.Sprintf("unable to generate multisig script with %d "+
			"public keys", len(pubKeys))
		return nil, scriptError(ErrNotMultisigScript, str)
	}
	if nrequired < 1 || nrequired > len(pubKeys) {
		str := fmt.Sprintf("unable to generate multisig script with "+
			"%d required signatures when there are only %d public "+
			"keys available", nrequired, len(pubKeys))
		return nil, scriptError(ErrTooManyRequiredSigs, str)
	}

	builder := NewScriptBuilder().AddInt64(int64(nrequired))
	for _, key := range pubKeys {
		if !isStandardPubKey(key) {
			return nil, scriptError(ErrPubKeyType,
				"unsupported public key size")
		}
		builder.AddData(key)
	}
	builder.AddInt64(int64(len(pubKeys)))
	builder.AddOp(OP_CHECKMULTISIG)

	return builder.Script()
}

// NewMultiSigOutput returns a bare multisig output requiring nrequired of
// the given keys.  The keys are kept in the order given.
func NewMultiSigOutput(pubKeys [][]byte, nrequired int) (ScriptOutput, error) {
	out := ScriptOutput{
		Class:        MultiSigTy,
		RequiredSigs: nrequired,
		PubKeys:      pubKeys,
	}
	if _, err := out.Script(); err != nil {
		return ScriptOutput{}, err
	}
	return out, nil
}

// SortMulSig returns a copy of the multisig output with its public keys in
// ascending order of their serialized bytes.  Keys that compare equal keep
// their relative order.
func SortMulSig(out ScriptOutput) (ScriptOutput, error) {
	if out.Class != MultiSigTy {
		str := fmt.Sprintf("can not sort keys of a %v script", out.Class)
		return ScriptOutput{}, scriptError(ErrNotMultisigScript, str)
	}

	keys := slices.Clone(out.PubKeys)
	slices.SortStableFunc(keys, bytes.Compare)
	out.PubKeys = keys
	return out, nil
}

// SpendClass is an enumeration of the shapes of a standard unlocking script.
type SpendClass byte

// Shapes of standard unlocking scripts.
const (
	SpendPubKeyTy     SpendClass = iota // <sig>
	SpendPubKeyHashTy                   // <sig> <pubkey>
	SpendMultiSigTy                     // OP_0 <sig1> ... <sigm>
)

// spendClassToName houses the human-readable strings which describe each
// spend class.
var spendClassToName = []string{
	SpendPubKeyTy:     "spendpubkey",
	SpendPubKeyHashTy: "spendpubkeyhash",
	SpendMultiSigTy:   "spendmultisig",
}

// String implements the Stringer interface.
func (t SpendClass) String() string {
	if int(t) >= len(spendClassToName) {
		return "Invalid"
	}
	return spendClassToName[t]
}

// ScriptInput is the decoded form of a standard unlocking script.  Sigs holds
// one signature for the pubkey and pubkey-hash shapes and every signature of
// a multisig spend, empty placeholders included.  PubKey is only used by the
// pubkey-hash shape and may be empty in unsigned templates.  RedeemScript is
// set when the input spends a pay-to-script-hash output, in which case the
// redeem script is pushed after the simple input.
type ScriptInput struct {
	Class        SpendClass
	Sigs         []TxSignature
	PubKey       []byte
	RedeemScript *ScriptOutput
}

// IsPayToScriptHash returns whether the input redeems a pay-to-script-hash
// output.
func (in ScriptInput) IsPayToScriptHash() bool {
	return in.RedeemScript != nil
}

// pushes returns the data pushed by the simple part of the input.
func (in ScriptInput) pushes() ([][]byte, error) {
	switch in.Class {
	case SpendPubKeyTy:
		if len(in.Sigs) != 1 {
			return nil, scriptError(ErrUnsupportedScript,
				"pubkey spend takes exactly one signature")
		}
		return [][]byte{in.Sigs[0].Bytes()}, nil

	case SpendPubKeyHashTy:
		if len(in.Sigs) != 1 {
			return nil, scriptError(ErrUnsupportedScript,
				"pubkey hash spend takes exactly one signature")
		}
		return [][]byte{in.Sigs[0].Bytes(), in.PubKey}, nil

	case SpendMultiSigTy:
		if len(in.Sigs) == 0 {
			return nil, scriptError(ErrUnsupportedScript,
				"multisig spend takes at least one signature")
		}

		// The extra leading push is consumed by the off by one bug
		// in OP_CHECKMULTISIG.
		pushes := make([][]byte, 0, len(in.Sigs)+1)
		pushes = append(pushes, nil)
		for _, sig := range in.Sigs {
			pushes = append(pushes, sig.Bytes())
		}
		return pushes, nil
	}

	str := fmt.Sprintf("unknown spend class %d", in.Class)
	return nil, scriptError(ErrUnsupportedScript, str)
}

// Script encodes the input into an unlocking script.  Every item is pushed
// with the minimal push encoding, empty items as OP_0.
func (in ScriptInput) Script() ([]byte, error) {
	pushes, err := in.pushes()
	if err != nil {
		return nil, err
	}
	if in.RedeemScript != nil {
		redeemScript, err := in.RedeemScript.Script()
		if err != nil {
			return nil, err
		}
		pushes = append(pushes, redeemScript)
	}

	script := make(Script, 0, len(pushes))
	for _, data := range pushes {
		script = append(script, NewPushOp(data))
	}
	return script.Bytes()
}

// FinalScript is like Script for a fully signed input.  It fails with
// ErrPlaceholderSignature while any signature is still the empty placeholder.
func (in ScriptInput) FinalScript() ([]byte, error) {
	for i, sig := range in.Sigs {
		if sig.IsEmpty() {
			str := fmt.Sprintf("signature %d is a placeholder", i)
			return nil, scriptError(ErrPlaceholderSignature, str)
		}
	}
	return in.Script()
}

// decodeInputSig decodes a pushed signature.  Unknown hash types are kept
// since unlocking scripts are classified before any strictness rules apply,
// but the fork id bit must be valid for the network.
func decodeInputSig(params *chaincfg.Params, b []byte) (TxSignature, error) {
	sig, err := DecodeTxSignature(b)
	if err != nil {
		return TxSignature{}, err
	}
	if !sig.IsEmpty() {
		if err := checkForkIDAllowed(params, sig.HashType()); err != nil {
			return TxSignature{}, err
		}
	}
	return sig, nil
}

// decodeSimpleInput decodes the pushed items of a non pay-to-script-hash
// unlocking script.  The shape is determined by the number of items: one
// for a pubkey spend, two for a pubkey-hash spend and three or more for a
// multisig spend whose first item is the empty dummy.  Two items whose
// second is neither empty nor a public key are a single signature multisig
// spend when the first is the empty dummy.
func decodeSimpleInput(params *chaincfg.Params, items [][]byte) (ScriptInput, error) {
	switch {
	case len(items) == 1:
		sig, err := decodeInputSig(params, items[0])
		if err != nil {
			return ScriptInput{}, err
		}
		return ScriptInput{Class: SpendPubKeyTy, Sigs: []TxSignature{sig}}, nil

	case len(items) == 2:
		if len(items[0]) == 0 && len(items[1]) != 0 &&
			!isStandardPubKey(items[1]) {

			return decodeMultiSigInput(params, items)
		}
		sig, err := decodeInputSig(params, items[0])
		if err != nil {
			return ScriptInput{}, err
		}
		return ScriptInput{
			Class:  SpendPubKeyHashTy,
			Sigs:   []TxSignature{sig},
			PubKey: items[1],
		}, nil

	case len(items) >= 3:
		return decodeMultiSigInput(params, items)
	}

	return ScriptInput{}, scriptError(ErrUnsupportedScript,
		"unlocking script does not match a standard shape")
}

// decodeMultiSigInput decodes the pushed items of a multisig spend: the
// empty dummy followed by at least one signature.
func decodeMultiSigInput(params *chaincfg.Params, items [][]byte) (ScriptInput, error) {
	if len(items) < 2 || len(items[0]) != 0 {
		return ScriptInput{}, scriptError(ErrUnsupportedScript,
			"multisig spend must start with an empty dummy")
	}

	sigs := make([]TxSignature, 0, len(items)-1)
	for _, item := range items[1:] {
		sig, err := decodeInputSig(params, item)
		if err != nil {
			return ScriptInput{}, err
		}
		sigs = append(sigs, sig)
	}
	return ScriptInput{Class: SpendMultiSigTy, Sigs: sigs}, nil
}

// DecodeInput classifies an unlocking script.  Every token must be a data
// push; OP_0 and other empty pushes stand for an empty placeholder
// signature.  When the final push decodes to a standard output and the
// remaining pushes to a simple input, the script is decoded as a
// pay-to-script-hash input carrying that redeem script.
func DecodeInput(params *chaincfg.Params, script []byte) (ScriptInput, error) {
	ops, err := ParseScript(script)
	if err != nil {
		return ScriptInput{}, err
	}

	items := make([][]byte, 0, len(ops))
	for _, op := range ops {
		if op.opcode.value > OP_PUSHDATA4 {
			str := fmt.Sprintf("unlocking script contains non data "+
				"push %v", op.opcode.name)
			return ScriptInput{}, scriptError(ErrNotPushOnly, str)
		}
		if len(op.data) == 0 {
			items = append(items, nil)
			continue
		}
		items = append(items, op.data)
	}

	if len(items) >= 2 {
		last := items[len(items)-1]
		redeem, err := DecodeOutput(last)
		if err == nil && redeem.Class != NonStandardTy &&
			redeem.Class != NullDataTy {

			// A multisig redeem script fixes the shape of the
			// pushes in front of it, even a single signature.
			prefix := items[:len(items)-1]
			var in ScriptInput
			if redeem.Class == MultiSigTy {
				in, err = decodeMultiSigInput(params, prefix)
			} else {
				in, err = decodeSimpleInput(params, prefix)
			}
			if err == nil {
				in.RedeemScript = &redeem
				return in, nil
			}
		}
	}

	return decodeSimpleInput(params, items)
}

// NewMultiSigInput returns an unsigned or partially signed multisig input
// for the output.  sigs are padded with empty placeholders up to the number
// of required signatures.
func NewMultiSigInput(out ScriptOutput, sigs []TxSignature) (ScriptInput, error) {
	if out.Class != MultiSigTy {
		str := fmt.Sprintf("can not build a multisig input for a %v "+
			"script", out.Class)
		return ScriptInput{}, scriptError(ErrNotMultisigScript, str)
	}
	if len(sigs) > out.RequiredSigs {
		str := fmt.Sprintf("%d signatures given for a %d of %d multisig",
			len(sigs), out.RequiredSigs, len(out.PubKeys))
		return ScriptInput{}, scriptError(ErrTooManyRequiredSigs, str)
	}

	padded := make([]TxSignature, out.RequiredSigs)
	copy(padded, sigs)
	return ScriptInput{Class: SpendMultiSigTy, Sigs: padded}, nil
}

// ScriptOutputForAddress returns the output template an address pays to.
func ScriptOutputForAddress(addr address.Address) (ScriptOutput, error) {
	hash := clone(addr.ScriptAddress())
	switch addr.(type) {
	case *address.PubKeyHash:
		return ScriptOutput{Class: PubKeyHashTy, Hash: hash}, nil
	case *address.ScriptHash:
		return ScriptOutput{Class: ScriptHashTy, Hash: hash}, nil
	case *address.WitnessPubKeyHash:
		return ScriptOutput{Class: WitnessV0PubKeyHashTy, Hash: hash}, nil
	case *address.WitnessScriptHash:
		return ScriptOutput{Class: WitnessV0ScriptHashTy, Hash: hash}, nil
	}

	str := fmt.Sprintf("unable to generate payment script for unsupported "+
		"address type %T", addr)
	return ScriptOutput{}, scriptError(ErrUnsupportedAddress, str)
}

// PayToAddrScript creates a new script to pay a transaction output to the
// specified address.
func PayToAddrScript(addr address.Address) ([]byte, error) {
	out, err := ScriptOutputForAddress(addr)
	if err != nil {
		return nil, err
	}
	return out.Script()
}

// ExtractAddress returns the address an output pays to on the given network.
// A pay-to-pubkey output maps to the pubkey hash address of its key.  Outputs
// without an address form return ErrUnsupportedAddress.
func ExtractAddress(params *chaincfg.Params, out ScriptOutput) (address.Address, error) {
	var (
		addr address.Address
		err  error
	)
	switch out.Class {
	case PubKeyTy:
		addr, err = address.NewPubKeyHash(btcutil.Hash160(out.PubKey), params)
	case PubKeyHashTy:
		addr, err = address.NewPubKeyHash(out.Hash, params)
	case ScriptHashTy:
		addr, err = address.NewScriptHashFromHash(out.Hash, params)
	case WitnessV0PubKeyHashTy:
		addr, err = address.NewWitnessPubKeyHash(out.Hash, params)
	case WitnessV0ScriptHashTy:
		addr, err = address.NewWitnessScriptHash(out.Hash, params)
	default:
		str := fmt.Sprintf("%v outputs have no address", out.Class)
		return nil, scriptError(ErrUnsupportedAddress, str)
	}
	if err != nil {
		return nil, scriptError(ErrUnsupportedAddress, err.Error())
	}
	return addr, nil
}
