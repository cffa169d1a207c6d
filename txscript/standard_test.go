// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/scriptvm/address"
	"github.com/btcsuite/scriptvm/chaincfg"
	"github.com/stretchr/testify/require"
)

// TestDecodeOutput ensures locking scripts classify as expected and that the
// decoded form encodes back to the same script.
func TestDecodeOutput(t *testing.T) {
	t.Parallel()

	compressed := testKey(0x51).PubKey().SerializeCompressed()
	uncompressed := testKey(0x52).PubKey().SerializeUncompressed()
	hash20 := bytes.Repeat([]byte{0x14}, 20)
	hash32 := bytes.Repeat([]byte{0x20}, 32)

	tests := []struct {
		name   string
		script []byte
		want   ScriptOutput
	}{{
		name: "pay to compressed pubkey",
		script: append(append([]byte{OP_DATA_33}, compressed...),
			OP_CHECKSIG),
		want: ScriptOutput{Class: PubKeyTy, PubKey: compressed},
	}, {
		name: "pay to uncompressed pubkey",
		script: append(append([]byte{OP_DATA_65}, uncompressed...),
			OP_CHECKSIG),
		want: ScriptOutput{Class: PubKeyTy, PubKey: uncompressed},
	}, {
		name: "pay to pubkey hash",
		script: mustParseShortForm("DUP HASH160 DATA_20 0x14{20} " +
			"EQUALVERIFY CHECKSIG"),
		want: ScriptOutput{Class: PubKeyHashTy, Hash: hash20},
	}, {
		name:   "pay to script hash",
		script: mustParseShortForm("HASH160 DATA_20 0x14{20} EQUAL"),
		want:   ScriptOutput{Class: ScriptHashTy, Hash: hash20},
	}, {
		name:   "witness v0 pubkey hash",
		script: mustParseShortForm("0 DATA_20 0x14{20}"),
		want:   ScriptOutput{Class: WitnessV0PubKeyHashTy, Hash: hash20},
	}, {
		name:   "witness v0 script hash",
		script: mustParseShortForm("0 DATA_32 0x20{32}"),
		want:   ScriptOutput{Class: WitnessV0ScriptHashTy, Hash: hash32},
	}, {
		name: "1 of 2 multisig",
		script: append(append(append(append([]byte{OP_1, OP_DATA_33},
			compressed...), OP_DATA_65), uncompressed...), OP_2,
			OP_CHECKMULTISIG),
		want: ScriptOutput{
			Class:        MultiSigTy,
			RequiredSigs: 1,
			PubKeys:      [][]byte{compressed, uncompressed},
		},
	}, {
		name:   "bare return",
		script: []byte{OP_RETURN},
		want:   ScriptOutput{Class: NullDataTy},
	}, {
		name:   "return with small data",
		script: mustParseShortForm("RETURN DATA_4 0x01020304"),
		want:   ScriptOutput{Class: NullDataTy, Data: hexToBytes("01020304")},
	}, {
		name:   "return with max carrier size",
		script: mustParseShortForm("RETURN PUSHDATA1 0x50 0x55{80}"),
		want: ScriptOutput{
			Class: NullDataTy,
			Data:  bytes.Repeat([]byte{0x55}, 80),
		},
	}, {
		name:   "return with data over carrier size",
		script: mustParseShortForm("RETURN PUSHDATA1 0x51 0x55{81}"),
		want: ScriptOutput{
			Class: NonStandardTy,
			Data:  mustParseShortForm("RETURN PUSHDATA1 0x51 0x55{81}"),
		},
	}, {
		name:   "return with two pushes",
		script: mustParseShortForm("RETURN 1 1"),
		want: ScriptOutput{
			Class: NonStandardTy,
			Data:  mustParseShortForm("RETURN 1 1"),
		},
	}, {
		name:   "pubkey pushed non minimally",
		script: mustParseShortForm("PUSHDATA1 0x21 0x02{33} CHECKSIG"),
		want: ScriptOutput{
			Class: NonStandardTy,
			Data:  mustParseShortForm("PUSHDATA1 0x21 0x02{33} CHECKSIG"),
		},
	}, {
		name:   "multisig with more required than keys",
		script: mustParseShortForm("2 DATA_33 0x02{33} 1 CHECKMULTISIG"),
		want: ScriptOutput{
			Class: NonStandardTy,
			Data:  mustParseShortForm("2 DATA_33 0x02{33} 1 CHECKMULTISIG"),
		},
	}, {
		name:   "true",
		script: []byte{OP_TRUE},
		want:   ScriptOutput{Class: NonStandardTy, Data: []byte{OP_TRUE}},
	}, {
		name:   "empty",
		script: []byte{},
		want:   ScriptOutput{Class: NonStandardTy, Data: []byte{}},
	}}

	for _, test := range tests {
		got, err := DecodeOutput(test.script)
		require.NoError(t, err, test.name)
		require.Equal(t, test.want, got, test.name)
		require.Equal(t, test.want.Class, GetScriptClass(test.script),
			test.name)

		script, err := got.Script()
		require.NoError(t, err, test.name)
		require.Equal(t, test.script, script, test.name)
	}
}

// TestDecodeOutputMalformed ensures scripts that do not parse are reported and
// classify as non standard.
func TestDecodeOutputMalformed(t *testing.T) {
	t.Parallel()

	script := []byte{OP_DUP, OP_HASH160, OP_DATA_20, 0x01}
	_, err := DecodeOutput(script)
	require.True(t, IsErrorCode(err, ErrMalformedPush), "got %v", err)
	require.Equal(t, NonStandardTy, GetScriptClass(script))
}

// TestScriptOutputEncodeErrors ensures outputs that cannot be encoded are
// rejected.
func TestScriptOutputEncodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  ScriptOutput
		err  ErrorCode
	}{
		{"short pubkey hash", ScriptOutput{Class: PubKeyHashTy,
			Hash: make([]byte, 19)}, ErrUnsupportedScript},
		{"long script hash", ScriptOutput{Class: ScriptHashTy,
			Hash: make([]byte, 21)}, ErrUnsupportedScript},
		{"witness script hash of 20 bytes", ScriptOutput{
			Class: WitnessV0ScriptHashTy, Hash: make([]byte, 20)},
			ErrUnsupportedScript},
		{"bad pubkey", ScriptOutput{Class: PubKeyTy,
			PubKey: make([]byte, 33)}, ErrPubKeyType},
		{"too much null data", ScriptOutput{Class: NullDataTy,
			Data: make([]byte, 81)}, ErrTooMuchNullData},
		{"unknown class", ScriptOutput{Class: 0xff},
			ErrUnsupportedScript},
	}

	for _, test := range tests {
		_, err := test.out.Script()
		require.Truef(t, IsErrorCode(err, test.err), "%s: got %v, want %v",
			test.name, err, test.err)
	}
}

// TestNewMultiSigOutput ensures multisig outputs enforce their key count and
// required signature bounds.
func TestNewMultiSigOutput(t *testing.T) {
	t.Parallel()

	keys := make([][]byte, 17)
	for i := range keys {
		keys[i] = testKey(byte(i + 1)).PubKey().SerializeCompressed()
	}

	tests := []struct {
		name     string
		keys     [][]byte
		required int
		err      ErrorCode
		valid    bool
	}{
		{"1 of 1", keys[:1], 1, 0, true},
		{"16 of 16", keys[:16], 16, 0, true},
		{"no keys", nil, 1, ErrNotMultisigScript, false},
		{"17 keys", keys, 1, ErrNotMultisigScript, false},
		{"3 of 2", keys[:2], 3, ErrTooManyRequiredSigs, false},
		{"0 of 2", keys[:2], 0, ErrTooManyRequiredSigs, false},
		{"bad key", [][]byte{keys[0], {0x02, 0x01}}, 1, ErrPubKeyType,
			false},
	}

	for _, test := range tests {
		out, err := NewMultiSigOutput(test.keys, test.required)
		if !test.valid {
			require.Truef(t, IsErrorCode(err, test.err),
				"%s: got %v, want %v", test.name, err, test.err)
			continue
		}
		require.NoError(t, err, test.name)

		script, err := out.Script()
		require.NoError(t, err, test.name)
		decoded, err := DecodeOutput(script)
		require.NoError(t, err, test.name)
		require.Equal(t, out, decoded, test.name)
	}
}

// TestSortMulSig ensures public keys are sorted by their serialized bytes and
// the original output is left untouched.
func TestSortMulSig(t *testing.T) {
	t.Parallel()

	a := append([]byte{0x02}, bytes.Repeat([]byte{0x01}, 32)...)
	b := append([]byte{0x02}, bytes.Repeat([]byte{0x02}, 32)...)
	c := append([]byte{0x03}, bytes.Repeat([]byte{0x00}, 32)...)
	d := append([]byte{0x04}, bytes.Repeat([]byte{0x00}, 64)...)

	out, err := NewMultiSigOutput([][]byte{d, c, a, b}, 2)
	require.NoError(t, err)

	sorted, err := SortMulSig(out)
	require.NoError(t, err)
	require.Equal(t, [][]byte{a, b, c, d}, sorted.PubKeys)
	require.Equal(t, 2, sorted.RequiredSigs)
	require.Equal(t, [][]byte{d, c, a, b}, out.PubKeys)

	// Sorting is idempotent.
	again, err := SortMulSig(sorted)
	require.NoError(t, err)
	require.Equal(t, sorted, again)

	_, err = SortMulSig(ScriptOutput{Class: PubKeyHashTy})
	require.True(t, IsErrorCode(err, ErrNotMultisigScript), "got %v", err)
}

// TestDecodeInputShapes ensures the unlocking script shapes, including the
// degenerate ones made only of empty pushes, decode and encode back.
func TestDecodeInputShapes(t *testing.T) {
	t.Parallel()

	sig := hexToBytes("300602010102010101")
	pubKey := testKey(0x61).PubKey().SerializeCompressed()

	tests := []struct {
		name    string
		script  []byte
		class   SpendClass
		numSigs int
		pubKey  []byte
	}{{
		name:    "single empty push",
		script:  []byte{OP_0},
		class:   SpendPubKeyTy,
		numSigs: 1,
	}, {
		name:    "two empty pushes",
		script:  []byte{OP_0, OP_0},
		class:   SpendPubKeyHashTy,
		numSigs: 1,
	}, {
		name:    "three empty pushes",
		script:  []byte{OP_0, OP_0, OP_0},
		class:   SpendMultiSigTy,
		numSigs: 2,
	}, {
		name:    "four empty pushes",
		script:  []byte{OP_0, OP_0, OP_0, OP_0},
		class:   SpendMultiSigTy,
		numSigs: 3,
	}, {
		name:    "pubkey spend",
		script:  append([]byte{OP_DATA_9}, sig...),
		class:   SpendPubKeyTy,
		numSigs: 1,
	}, {
		name: "pubkey hash spend",
		script: append(append(append([]byte{OP_DATA_9}, sig...),
			OP_DATA_33), pubKey...),
		class:   SpendPubKeyHashTy,
		numSigs: 1,
		pubKey:  pubKey,
	}, {
		name: "multisig spend with placeholder",
		script: append(append([]byte{OP_0, OP_DATA_9}, sig...),
			OP_0),
		class:   SpendMultiSigTy,
		numSigs: 2,
	}}

	for _, test := range tests {
		in, err := DecodeInput(&testParams, test.script)
		require.NoError(t, err, test.name)
		require.Equal(t, test.class, in.Class, test.name)
		require.Len(t, in.Sigs, test.numSigs, test.name)
		require.Equal(t, test.pubKey, in.PubKey, test.name)
		require.False(t, in.IsPayToScriptHash(), test.name)

		script, err := in.Script()
		require.NoError(t, err, test.name)
		require.Equal(t, test.script, script, test.name)
	}
}

// TestDecodeInputErrors ensures unlocking scripts that match no standard
// shape are rejected.
func TestDecodeInputErrors(t *testing.T) {
	t.Parallel()

	sig := hexToBytes("300602010102010101")
	sigPush := append([]byte{OP_DATA_9}, sig...)

	tests := []struct {
		name   string
		params *chaincfg.Params
		script []byte
		err    ErrorCode
	}{{
		name:   "empty",
		params: &testParams,
		script: nil,
		err:    ErrUnsupportedScript,
	}, {
		name:   "not push only",
		params: &testParams,
		script: []byte{OP_0, OP_DUP},
		err:    ErrNotPushOnly,
	}, {
		name:   "malformed push",
		params: &testParams,
		script: []byte{OP_DATA_2, 0x01},
		err:    ErrMalformedPush,
	}, {
		name:   "multisig without dummy",
		params: &testParams,
		script: bytes.Repeat(sigPush, 3),
		err:    ErrUnsupportedScript,
	}, {
		name:   "bad signature",
		params: &testParams,
		script: []byte{OP_DATA_2, 0x31, 0x01},
		err:    ErrSigDER,
	}, {
		name:   "fork id signature on a legacy network",
		params: &testParams,
		script: append([]byte{OP_DATA_9}, hexToBytes("300602010102010141")...),
		err:    ErrIllegalForkID,
	}}

	for _, test := range tests {
		_, err := DecodeInput(test.params, test.script)
		require.Truef(t, IsErrorCode(err, test.err), "%s: got %v, want %v",
			test.name, err, test.err)
	}

	// The fork id signature is fine where fork ids exist.
	in, err := DecodeInput(&chaincfg.CashMainNetParams,
		append([]byte{OP_DATA_9}, hexToBytes("300602010102010141")...))
	require.NoError(t, err)
	require.True(t, in.Sigs[0].HashType().HasForkID())
}

// TestDecodeInputPayToScriptHash ensures a trailing standard redeem script is
// recognized and fixes the shape of the pushes in front of it.
func TestDecodeInputPayToScriptHash(t *testing.T) {
	t.Parallel()

	sig := hexToBytes("300602010102010101")
	_, redeem := multiSigFixture(t)
	redeemScript, err := redeem.Script()
	require.NoError(t, err)

	// A 2-of-3 redeem with one signature and a placeholder.
	in := ScriptInput{
		Class:        SpendMultiSigTy,
		Sigs:         []TxSignature{mustDecodeSig(t, sig), EmptyTxSignature},
		RedeemScript: &redeem,
	}
	script, err := in.Script()
	require.NoError(t, err)

	decoded, err := DecodeInput(&testParams, script)
	require.NoError(t, err)
	require.True(t, decoded.IsPayToScriptHash())
	require.Equal(t, SpendMultiSigTy, decoded.Class)
	require.Equal(t, redeem, *decoded.RedeemScript)
	require.Len(t, decoded.Sigs, 2)
	require.True(t, decoded.Sigs[1].IsEmpty())

	// A multisig redeem with a single signature in front of it is still a
	// multisig spend.
	redeemPush, err := NewPushOp(redeemScript).bytes()
	require.NoError(t, err)
	single := append(append([]byte{OP_0, OP_DATA_9}, sig...),
		redeemPush...)
	decoded, err = DecodeInput(&testParams, single)
	require.NoError(t, err)
	require.True(t, decoded.IsPayToScriptHash())
	require.Equal(t, SpendMultiSigTy, decoded.Class)
	require.Len(t, decoded.Sigs, 1)

	// A pubkey hash spend whose pubkey happens to be the last push is not a
	// pay-to-script-hash spend.
	pubKey := testKey(0x62).PubKey().SerializeCompressed()
	pkh := append(append(append([]byte{OP_DATA_9}, sig...), OP_DATA_33),
		pubKey...)
	decoded, err = DecodeInput(&testParams, pkh)
	require.NoError(t, err)
	require.False(t, decoded.IsPayToScriptHash())
	require.Equal(t, SpendPubKeyHashTy, decoded.Class)
}

// mustDecodeSig decodes a signature in lax mode.
func mustDecodeSig(t *testing.T, b []byte) TxSignature {
	t.Helper()

	sig, err := DecodeTxSignature(b)
	require.NoError(t, err)
	return sig
}

// TestNewMultiSigInput ensures unsigned multisig inputs are padded with
// placeholders.
func TestNewMultiSigInput(t *testing.T) {
	t.Parallel()

	_, redeem := multiSigFixture(t)
	sig := mustDecodeSig(t, hexToBytes("300602010102010101"))

	in, err := NewMultiSigInput(redeem, nil)
	require.NoError(t, err)
	require.Equal(t, SpendMultiSigTy, in.Class)
	require.Equal(t, []TxSignature{EmptyTxSignature, EmptyTxSignature},
		in.Sigs)

	script, err := in.Script()
	require.NoError(t, err)
	require.Equal(t, []byte{OP_0, OP_0, OP_0}, script)

	_, err = NewMultiSigInput(redeem, []TxSignature{sig, sig, sig})
	require.True(t, IsErrorCode(err, ErrTooManyRequiredSigs), "got %v", err)

	_, err = NewMultiSigInput(ScriptOutput{Class: PubKeyTy}, nil)
	require.True(t, IsErrorCode(err, ErrNotMultisigScript), "got %v", err)
}

// TestScriptClassStringer ensures the class stringers name every class and
// flag out of range values.
func TestScriptClassStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		class ScriptClass
		want  string
	}{
		{NonStandardTy, "nonstandard"},
		{PubKeyTy, "pubkey"},
		{PubKeyHashTy, "pubkeyhash"},
		{WitnessV0PubKeyHashTy, "witness_v0_keyhash"},
		{ScriptHashTy, "scripthash"},
		{WitnessV0ScriptHashTy, "witness_v0_scripthash"},
		{MultiSigTy, "multisig"},
		{NullDataTy, "nulldata"},
		{ScriptClass(255), "Invalid"},
	}
	for _, test := range tests {
		require.Equal(t, test.want, test.class.String())
	}

	require.Equal(t, "spendpubkey", SpendPubKeyTy.String())
	require.Equal(t, "spendpubkeyhash", SpendPubKeyHashTy.String())
	require.Equal(t, "spendmultisig", SpendMultiSigTy.String())
	require.Equal(t, "Invalid", SpendClass(255).String())
}

// TestExtractAddress ensures outputs map to the address of their network and
// that the address pays back to the same script.
func TestExtractAddress(t *testing.T) {
	t.Parallel()

	// Hash of the public key in the genesis coinbase.
	genesisHash := hexToBytes("62e907b15cbf27d5425399ebf6f0fb50ebb88f18")
	out := ScriptOutput{Class: PubKeyHashTy, Hash: genesisHash}

	addr, err := ExtractAddress(&chaincfg.MainNetParams, out)
	require.NoError(t, err)
	require.Equal(t, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", addr.String())

	script, err := PayToAddrScript(addr)
	require.NoError(t, err)
	want, err := out.Script()
	require.NoError(t, err)
	require.Equal(t, want, script)

	// The same output on a CashAddr network.
	cashAddr, err := ExtractAddress(&chaincfg.CashMainNetParams, out)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(cashAddr.String(), "bitcoincash:q"),
		cashAddr.String())
	decoded, err := address.Decode(&chaincfg.CashMainNetParams,
		cashAddr.String())
	require.NoError(t, err)
	require.Equal(t, genesisHash, decoded.ScriptAddress())

	// Pay to pubkey outputs map to the pubkey hash address of the key.
	pubKey := testKey(0x71).PubKey().SerializeCompressed()
	addr, err = ExtractAddress(&chaincfg.MainNetParams,
		ScriptOutput{Class: PubKeyTy, PubKey: pubKey})
	require.NoError(t, err)
	require.IsType(t, &address.PubKeyHash{}, addr)
	require.Equal(t, btcutil.Hash160(pubKey), addr.ScriptAddress())

	// Outputs without an address form.
	for _, noAddr := range []ScriptOutput{
		{Class: NullDataTy},
		{Class: NonStandardTy, Data: []byte{OP_TRUE}},
		{Class: MultiSigTy, RequiredSigs: 1, PubKeys: [][]byte{pubKey}},
	} {
		_, err := ExtractAddress(&chaincfg.MainNetParams, noAddr)
		require.Truef(t, IsErrorCode(err, ErrUnsupportedAddress),
			"%v: got %v", noAddr.Class, err)
	}

	// Segwit outputs have no address on networks without segwit.
	_, err = ExtractAddress(&chaincfg.CashMainNetParams, ScriptOutput{
		Class: WitnessV0PubKeyHashTy,
		Hash:  genesisHash,
	})
	require.True(t, IsErrorCode(err, ErrUnsupportedAddress), "got %v", err)
}

// TestScriptOutputForAddress ensures every address type maps to its output
// class and round trips through ExtractAddress.
func TestScriptOutputForAddress(t *testing.T) {
	t.Parallel()

	hash20 := bytes.Repeat([]byte{0x33}, 20)
	hash32 := bytes.Repeat([]byte{0x44}, 32)
	params := &chaincfg.MainNetParams

	pkh, err := address.NewPubKeyHash(hash20, params)
	require.NoError(t, err)
	sh, err := address.NewScriptHashFromHash(hash20, params)
	require.NoError(t, err)
	wpkh, err := address.NewWitnessPubKeyHash(hash20, params)
	require.NoError(t, err)
	wsh, err := address.NewWitnessScriptHash(hash32, params)
	require.NoError(t, err)

	tests := []struct {
		addr  address.Address
		class ScriptClass
	}{
		{pkh, PubKeyHashTy},
		{sh, ScriptHashTy},
		{wpkh, WitnessV0PubKeyHashTy},
		{wsh, WitnessV0ScriptHashTy},
	}

	for _, test := range tests {
		out, err := ScriptOutputForAddress(test.addr)
		require.NoError(t, err)
		require.Equal(t, test.class, out.Class)
		require.Equal(t, test.addr.ScriptAddress(), out.Hash)

		addr, err := ExtractAddress(params, out)
		require.NoError(t, err)
		require.Equal(t, test.addr.String(), addr.String())
	}
}

// TestScriptInputRoundTrip ensures every unlocking script shape decodes back
// to the input it was encoded from.
func TestScriptInputRoundTrip(t *testing.T) {
	t.Parallel()

	sig := mustDecodeSig(t, hexToBytes("300602010102010101"))
	sig2 := mustDecodeSig(t, hexToBytes("300602010202010201"))
	pubKey := testKey(0x63).PubKey().SerializeCompressed()
	_, redeem := multiSigFixture(t)

	oneOfTwo, err := NewMultiSigOutput([][]byte{
		testKey(0x64).PubKey().SerializeCompressed(),
		testKey(0x65).PubKey().SerializeUncompressed(),
	}, 1)
	require.NoError(t, err)
	oneOfTwoIn, err := NewMultiSigInput(oneOfTwo, []TxSignature{sig})
	require.NoError(t, err)

	pkhRedeem, err := DecodeOutput(append(append([]byte{OP_DUP, OP_HASH160,
		OP_DATA_20}, bytes.Repeat([]byte{0x07}, 20)...), OP_EQUALVERIFY,
		OP_CHECKSIG))
	require.NoError(t, err)
	require.Equal(t, PubKeyHashTy, pkhRedeem.Class)

	tests := []struct {
		name string
		in   ScriptInput
	}{{
		name: "pubkey",
		in:   ScriptInput{Class: SpendPubKeyTy, Sigs: []TxSignature{sig}},
	}, {
		name: "pubkey placeholder",
		in: ScriptInput{Class: SpendPubKeyTy,
			Sigs: []TxSignature{EmptyTxSignature}},
	}, {
		name: "pubkey hash",
		in: ScriptInput{Class: SpendPubKeyHashTy,
			Sigs: []TxSignature{sig}, PubKey: pubKey},
	}, {
		name: "pubkey hash placeholder signature",
		in: ScriptInput{Class: SpendPubKeyHashTy,
			Sigs: []TxSignature{EmptyTxSignature}, PubKey: pubKey},
	}, {
		name: "pubkey hash placeholder",
		in: ScriptInput{Class: SpendPubKeyHashTy,
			Sigs: []TxSignature{EmptyTxSignature}},
	}, {
		name: "multisig one signature",
		in:   ScriptInput{Class: SpendMultiSigTy, Sigs: []TxSignature{sig}},
	}, {
		name: "multisig one of two",
		in:   oneOfTwoIn,
	}, {
		name: "multisig two signatures",
		in: ScriptInput{Class: SpendMultiSigTy,
			Sigs: []TxSignature{sig, sig2}},
	}, {
		name: "multisig partial",
		in: ScriptInput{Class: SpendMultiSigTy,
			Sigs: []TxSignature{sig, EmptyTxSignature}},
	}, {
		name: "multisig placeholders",
		in: ScriptInput{Class: SpendMultiSigTy, Sigs: []TxSignature{
			EmptyTxSignature, EmptyTxSignature, EmptyTxSignature}},
	}, {
		name: "p2sh multisig one signature",
		in: ScriptInput{Class: SpendMultiSigTy, Sigs: []TxSignature{sig},
			RedeemScript: &redeem},
	}, {
		name: "p2sh multisig",
		in: ScriptInput{Class: SpendMultiSigTy,
			Sigs: []TxSignature{sig, sig2}, RedeemScript: &redeem},
	}, {
		name: "p2sh pubkey hash",
		in: ScriptInput{Class: SpendPubKeyHashTy,
			Sigs: []TxSignature{sig}, PubKey: pubKey,
			RedeemScript: &pkhRedeem},
	}}

	for _, test := range tests {
		script, err := test.in.Script()
		require.NoError(t, err, test.name)

		decoded, err := DecodeInput(&testParams, script)
		require.NoError(t, err, test.name)
		require.Equal(t, test.in, decoded, test.name)
	}
}
