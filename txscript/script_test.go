// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPushedData ensured the PushedData function extracts the expected data out
// of various scripts.
func TestPushedData(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		script string
		out    [][]byte
		valid  bool
	}{
		{
			"0 IF 0 ELSE 2 ENDIF",
			[][]byte{nil, nil},
			true,
		},
		{
			"16777216 10000000",
			[][]byte{
				{0x00, 0x00, 0x00, 0x01}, // 16777216
				{0x80, 0x96, 0x98, 0x00}, // 10000000
			},
			true,
		},
		{
			"DUP HASH160 '17VZNX1SN5NtKa8UQFxwQbFeFc3iqRYhem' EQUALVERIFY CHECKSIG",
			[][]byte{
				// 17VZNX1SN5NtKa8UQFxwQbFeFc3iqRYhem
				{
					0x31, 0x37, 0x56, 0x5a, 0x4e, 0x58, 0x31, 0x53, 0x4e, 0x35,
					0x4e, 0x74, 0x4b, 0x61, 0x38, 0x55, 0x51, 0x46, 0x78, 0x77,
					0x51, 0x62, 0x46, 0x65, 0x46, 0x63, 0x33, 0x69, 0x71, 0x52,
					0x59, 0x68, 0x65, 0x6d,
				},
			},
			true,
		},
		{
			"PUSHDATA4 1000 EQUAL",
			nil,
			false,
		},
	}

	for i, test := range tests {
		script := mustParseShortForm(test.script)
		data, err := PushedData(script)
		if test.valid && err != nil {
			t.Errorf("TestPushedData failed test #%d: %v\n", i, err)
			continue
		} else if !test.valid && err == nil {
			t.Errorf("TestPushedData failed test #%d: test should "+
				"be invalid\n", i)
			continue
		}
		if !reflect.DeepEqual(data, test.out) {
			t.Errorf("TestPushedData failed test #%d: want: %x "+
				"got: %x\n", i, test.out, data)
		}
	}
}

// TestParseScriptRoundTrip ensures decoding then encoding a script reproduces
// the original bytes, including pushes that do not use the shortest encoding
// and opcodes that have no meaning.
func TestParseScriptRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		numOps int
	}{
		{"empty", "", 0},
		{"p2pkh", "DUP HASH160 DATA_20 0x01020304050607080910111213141516" +
			"17181920 EQUALVERIFY CHECKSIG", 5},
		{"pushdata1 of one byte", "PUSHDATA1 0x01 0x11", 1},
		{"pushdata2 of one byte", "PUSHDATA2 0x0100 0x11", 1},
		{"pushdata4 of one byte", "PUSHDATA4 0x01000000 0x11", 1},
		{"empty pushdata1", "PUSHDATA1 0x00", 1},
		{"small ints", "0 1NEGATE 1 16", 4},
		{"unknown opcodes", "0xba 0xf9 0xff", 3},
		{"reserved", "RESERVED VER VERIF VERNOTIF", 4},
	}

	for _, test := range tests {
		raw := mustParseShortForm(test.script)
		parsed, err := ParseScript(raw)
		require.NoError(t, err, test.name)
		require.Len(t, parsed, test.numOps, test.name)

		encoded, err := parsed.Bytes()
		require.NoError(t, err, test.name)
		require.True(t, bytes.Equal(raw, encoded), "%s: got %x, want %x",
			test.name, encoded, raw)
	}
}

// TestParseScriptMalformed ensures pushes that run past the end of the script
// are rejected with ErrMalformedPush.
func TestParseScriptMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script []byte
	}{
		{"short direct push", []byte{OP_DATA_2, 0x01}},
		{"missing pushdata1 length", []byte{OP_PUSHDATA1}},
		{"short pushdata2 length", []byte{OP_PUSHDATA2, 0x01}},
		{"short pushdata2 data", []byte{OP_PUSHDATA2, 0x02, 0x00, 0x01}},
		{"short pushdata4 data", []byte{OP_PUSHDATA4, 0x01, 0x00, 0x00,
			0x00}},
		{"valid prefix", []byte{OP_DUP, OP_DATA_1}},
	}

	for _, test := range tests {
		_, err := ParseScript(test.script)
		require.True(t, IsErrorCode(err, ErrMalformedPush),
			"%s: unexpected error %v", test.name, err)
	}
}

// TestNewPushOp ensures pushes are encoded with the shortest opcode that can
// carry their length.
func TestNewPushOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dataLen int
		opcode  byte
		encLen  int
	}{
		{0, OP_0, 1},
		{1, OP_DATA_1, 2},
		{75, OP_DATA_75, 76},
		{76, OP_PUSHDATA1, 78},
		{255, OP_PUSHDATA1, 257},
		{256, OP_PUSHDATA2, 259},
		{65535, OP_PUSHDATA2, 65538},
		{65536, OP_PUSHDATA4, 65541},
	}

	for _, test := range tests {
		data := bytes.Repeat([]byte{0x49}, test.dataLen)
		op := NewPushOp(data)
		require.Equal(t, test.opcode, op.Opcode(), "len %d", test.dataLen)
		require.True(t, op.IsPush())

		encoded, err := Script{op}.Bytes()
		require.NoError(t, err)
		require.Len(t, encoded, test.encLen, "len %d", test.dataLen)

		parsed, err := ParseScript(encoded)
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		require.Equal(t, len(data), len(parsed[0].Data()))
	}
}

// TestScriptOpAccessors tests the accessors of decoded tokens.
func TestScriptOpAccessors(t *testing.T) {
	t.Parallel()

	op := NewOp(OP_CHECKSIG)
	require.Equal(t, "OP_CHECKSIG", op.Name())
	require.False(t, op.IsPush())
	require.False(t, op.IsUnknown())
	require.Nil(t, op.Data())

	require.True(t, NewOp(OP_RESERVED).IsPush())
	require.True(t, NewOp(OP_16).IsPush())
	require.False(t, NewOp(OP_NOP10).IsUnknown())
	require.True(t, NewOp(OP_UNKNOWN186).IsUnknown())
	require.True(t, NewOp(OP_UNKNOWN249).IsUnknown())
	require.True(t, NewOp(OP_INVALIDOPCODE).IsUnknown())
}

// TestDisasmString ensures the one-line disassembly prints small integers as
// numbers, pushes as hex and marks the point where a script stopped parsing.
func TestDisasmString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		script  string
		want    string
		wantErr bool
	}{
		{
			name:   "p2pkh",
			script: "DUP HASH160 DATA_4 0x01020304 EQUALVERIFY CHECKSIG",
			want:   "OP_DUP OP_HASH160 01020304 OP_EQUALVERIFY OP_CHECKSIG",
		},
		{
			name:   "small ints",
			script: "0 1NEGATE 1 16",
			want:   "0 -1 1 16",
		},
		{
			name:   "non-minimal push",
			script: "PUSHDATA1 0x02 0xaabb",
			want:   "aabb",
		},
		{
			name:    "truncated",
			script:  "NOP DATA_2 0x01",
			want:    "OP_NOP [error]",
			wantErr: true,
		},
		{
			name:    "truncated at start",
			script:  "DATA_2",
			want:    "[error]",
			wantErr: true,
		},
	}

	for _, test := range tests {
		raw := mustParseShortForm(test.script)
		got, err := DisasmString(raw)
		require.Equal(t, test.wantErr, err != nil, test.name)
		require.Equal(t, test.want, got, test.name)

		if !test.wantErr {
			parsed, err := ParseScript(raw)
			require.NoError(t, err)
			require.Equal(t, test.want, parsed.String(), test.name)
		}
	}
}

// TestGetSigOpCount ensures signature operations are counted with and without
// the precise multisig rule.
func TestGetSigOpCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		script  string
		loose   int
		precise int
	}{
		{"none", "1 DROP", 0, 0},
		{"checksig", "CHECKSIG CHECKSIGVERIFY", 2, 2},
		{"2-of-3 multisig", "2 DATA_1 0x01 DATA_1 0x02 DATA_1 0x03 3 " +
			"CHECKMULTISIG", 20, 3},
		{"multisig without count", "CHECKMULTISIGVERIFY", 20, 20},
		{"stops at parse failure", "CHECKSIG DATA_2 0x01", 1, 1},
	}

	for _, test := range tests {
		script := mustParseShortForm(test.script)
		require.Equal(t, test.loose, GetSigOpCount(script), test.name)
		require.Equal(t, test.precise,
			GetPreciseSigOpCount(nil, script, false), test.name)
	}
}

// TestGetPreciseSigOps ensures the more precise signature operation counting
// mechanism which includes signatures in P2SH scripts works as expected.
func TestGetPreciseSigOps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		scriptSig []byte
		nSigOps   int
	}{
		{
			name:      "scriptSig doesn't parse",
			scriptSig: mustParseShortForm("PUSHDATA1 0x02"),
		},
		{
			name:      "scriptSig isn't push only",
			scriptSig: mustParseShortForm("1 DUP"),
			nSigOps:   0,
		},
		{
			name:      "scriptSig length 0",
			scriptSig: nil,
			nSigOps:   0,
		},
		{
			name: "No script at the end",
			// No script at end but still push only.
			scriptSig: mustParseShortForm("1 1"),
			nSigOps:   0,
		},
		{
			name:      "pushed script doesn't parse",
			scriptSig: mustParseShortForm("DATA_2 PUSHDATA1 0x02"),
		},
		{
			name:      "pushed 1-of-2 multisig",
			scriptSig: mustParseShortForm("0 DATA_7 0x510101010252ae"),
			nSigOps:   2,
		},
		{
			name:      "pushed checksig",
			scriptSig: mustParseShortForm("0 DATA_3 0x0101ac"),
			nSigOps:   1,
		},
	}

	// The signature in the p2sh script is nonsensical for the tests since
	// this script will never be executed.  What matters is that it matches
	// the right pattern.
	pkScript := mustParseShortForm("HASH160 DATA_20 0x433ec2ac1ffa1b7b7d0" +
		"27f564529c57197f9ae88 EQUAL")
	for _, test := range tests {
		count := GetPreciseSigOpCount(test.scriptSig, pkScript, true)
		if count != test.nSigOps {
			t.Errorf("%s: expected count of %d, got %d", test.name,
				test.nSigOps, count)

		}
	}
}

// TestRemoveOpcodeByData ensures only pushes with exactly the canonical
// encoding of the data are removed.
func TestRemoveOpcodeByData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before string
		remove []byte
		after  string
	}{
		{
			name:   "nothing to do",
			before: "NOP",
			remove: []byte{1, 2, 3, 4},
			after:  "NOP",
		},
		{
			name:   "simple case",
			before: "DATA_4 0x01020304",
			remove: []byte{1, 2, 3, 4},
			after:  "",
		},
		{
			name:   "simple case (miss)",
			before: "DATA_4 0x01020304",
			remove: []byte{1, 2, 3, 5},
			after:  "DATA_4 0x01020304",
		},
		{
			name:   "non-canonical encoding is kept",
			before: "PUSHDATA1 0x04 0x01020304",
			remove: []byte{1, 2, 3, 4},
			after:  "PUSHDATA1 0x04 0x01020304",
		},
		{
			name:   "larger push containing the data is kept",
			before: "DATA_5 0x0102030405",
			remove: []byte{1, 2, 3, 4},
			after:  "DATA_5 0x0102030405",
		},
		{
			name:   "multiple occurrences",
			before: "DATA_4 0x01020304 CODESEPARATOR DATA_4 0x01020304",
			remove: []byte{1, 2, 3, 4},
			after:  "CODESEPARATOR",
		},
		{
			name:   "empty data is a no-op",
			before: "0 1",
			remove: nil,
			after:  "0 1",
		},
	}

	for _, test := range tests {
		before, err := ParseScript(mustParseShortForm(test.before))
		require.NoError(t, err, test.name)

		result, err := removeOpcodeByData(before, test.remove).Bytes()
		require.NoError(t, err, test.name)
		require.Equal(t, mustParseShortForm(test.after), result,
			test.name)
	}
}

// TestRemoveOpcodeRaw ensures OP_CODESEPARATOR removal works on raw bytes and
// keeps an unparsable tail.
func TestRemoveOpcodeRaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before string
		after  string
	}{
		{"nothing to do", "1 DUP", "1 DUP"},
		{"codeseparators", "CODESEPARATOR 1 CODESEPARATOR DUP", "1 DUP"},
		{"data is not an opcode", "DATA_1 0xab", "DATA_1 0xab"},
		{"malformed tail", "CODESEPARATOR 1 DATA_2 0x01",
			"1 DATA_2 0x01"},
	}

	for _, test := range tests {
		result := removeOpcodeRaw(mustParseShortForm(test.before),
			OP_CODESEPARATOR)
		require.Equal(t, mustParseShortForm(test.after), result,
			test.name)
	}
}

// TestIsPayToScriptHash ensures the IsPayToScriptHash function only matches
// the exact byte layout of a pay-to-script-hash output.
func TestIsPayToScriptHash(t *testing.T) {
	t.Parallel()

	hash := "0x433ec2ac1ffa1b7b7d027f564529c57197f9ae88"
	require.True(t, IsPayToScriptHash(mustParseShortForm(
		"HASH160 DATA_20 "+hash+" EQUAL")))
	require.False(t, IsPayToScriptHash(mustParseShortForm(
		"HASH160 PUSHDATA1 0x14 "+hash+" EQUAL")))
	require.False(t, IsPayToScriptHash(mustParseShortForm(
		"HASH160 DATA_20 "+hash+" EQUALVERIFY")))
	require.False(t, IsPayToScriptHash(nil))
}

// TestIsPushOnlyScript ensures the IsPushOnlyScript function returns the
// expected results.
func TestIsPushOnlyScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script []byte
		want   bool
	}{
		{"empty", nil, true},
		{"small ints and data", mustParseShortForm("0 1 16 1NEGATE " +
			"DATA_1 0x02"), true},
		{"reserved counts as push", mustParseShortForm("RESERVED"), true},
		{"nop", mustParseShortForm("1 NOP"), false},
		{"malformed", mustParseShortForm("PUSHDATA4 1000 EQUAL"), false},
	}

	for _, test := range tests {
		require.Equal(t, test.want, IsPushOnlyScript(test.script),
			test.name)
	}
}

// TestCanonicalPushOpcode ensures the push opcode picked for each payload
// length is the shortest encoding and agrees with NewPushOp.
func TestCanonicalPushOpcode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dataLen int
		want    byte
	}{
		{0, OP_0},
		{1, OP_DATA_1},
		{20, OP_DATA_20},
		{75, OP_DATA_75},
		{76, OP_PUSHDATA1},
		{0xff, OP_PUSHDATA1},
		{0x100, OP_PUSHDATA2},
		{0xffff, OP_PUSHDATA2},
		{0x10000, OP_PUSHDATA4},
	}

	for _, test := range tests {
		require.Equal(t, test.want, canonicalPushOpcode(test.dataLen),
			"length %d", test.dataLen)
		op := NewPushOp(make([]byte, test.dataLen))
		require.Equal(t, test.want, op.Opcode(), "length %d", test.dataLen)
	}
}
