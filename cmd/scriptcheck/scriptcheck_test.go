// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/scriptvm/txscript"
	"github.com/stretchr/testify/require"
)

const genesisPkScript = "76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac"

// testConfig loads a config for the network without file logging.
func testConfig(t *testing.T, args ...string) *config {
	t.Helper()

	cfg, rest, err := loadConfig(append([]string{"--nofilelogging"},
		args...))
	require.NoError(t, err)
	require.Empty(t, rest)
	return cfg
}

// signedSpend returns a serialized transaction spending a pay-to-pubkey-hash
// output worth amount along with the locking script.
func signedSpend(t *testing.T, cfg *config, amount btcutil.Amount,
	hashType txscript.SigHashType) (string, string) {

	t.Helper()

	key, _ := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{0x11}, 32))
	pubKey := key.PubKey().SerializeCompressed()
	out := txscript.ScriptOutput{
		Class: txscript.PubKeyHashTy,
		Hash:  btcutil.Hash160(pubKey),
	}
	pkScript, err := out.Script()
	require.NoError(t, err)

	tx := txscript.NewSpendTx(txscript.NewCreditTx(pkScript,
		int64(amount)), nil)
	sigScript, err := txscript.SignatureScript(cfg.params, tx, 0, pkScript,
		hashType, key, true, int64(amount))
	require.NoError(t, err)
	tx.TxIn[0].SignatureScript = sigScript

	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	return hex.EncodeToString(buf.Bytes()), hex.EncodeToString(pkScript)
}

func TestVerifyCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		net      string
		hashType txscript.SigHashType
	}{
		{"mainnet", txscript.SigHashAll},
		{"cashmainnet", txscript.SigHashAll | txscript.SigHashForkID},
	}

	for _, test := range tests {
		cfg := testConfig(t, "--net", test.net)
		rawTx, pkScript := signedSpend(t, cfg, btcutil.Amount(150000000),
			test.hashType)

		var out bytes.Buffer
		err := run(cfg, []string{"verify", rawTx, "0", pkScript, "1.5"},
			&out)
		require.NoError(t, err, test.net)
		require.Equal(t, "valid\n", out.String(), test.net)
	}

	// Fork id signatures commit to the amount.
	cfg := testConfig(t, "--net", "cashmainnet")
	rawTx, pkScript := signedSpend(t, cfg, btcutil.Amount(150000000),
		txscript.SigHashAll|txscript.SigHashForkID)
	var out bytes.Buffer
	err := run(cfg, []string{"verify", rawTx, "0", pkScript, "1.4"}, &out)
	require.True(t, txscript.IsErrorCode(err, txscript.ErrNullFail),
		"got %v", err)
	require.True(t, strings.HasPrefix(out.String(), "invalid: "))

	// An index past the inputs is rejected before execution.
	out.Reset()
	err = run(cfg, []string{"verify", rawTx, "1", pkScript, "1.5"}, &out)
	require.True(t, txscript.IsErrorCode(err, txscript.ErrInvalidIndex),
		"got %v", err)
}

func TestVerifyCommandBadArgs(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	tests := [][]string{
		{"verify"},
		{"verify", "zz", "0", "51", "1"},
		{"verify", "00", "0", "51", "1"},
	}
	for _, args := range tests {
		require.Error(t, run(cfg, args, &bytes.Buffer{}), "%v", args)
	}

	rawTx, pkScript := signedSpend(t, cfg, 1000, txscript.SigHashAll)
	tests = [][]string{
		{"verify", rawTx, "x", pkScript, "1"},
		{"verify", rawTx, "0", "zz", "1"},
		{"verify", rawTx, "0", pkScript, "lots"},
	}
	for _, args := range tests {
		require.Error(t, run(cfg, args, &bytes.Buffer{}), "%v", args)
	}
}

func TestDisasmCommand(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)

	var out bytes.Buffer
	require.NoError(t, run(cfg, []string{"disasm", genesisPkScript}, &out))
	require.Equal(t, "OP_DUP OP_HASH160 "+
		"62e907b15cbf27d5425399ebf6f0fb50ebb88f18 OP_EQUALVERIFY "+
		"OP_CHECKSIG\n", out.String())

	out.Reset()
	err := run(cfg, []string{"disasm", "5102"}, &out)
	require.True(t, txscript.IsErrorCode(err, txscript.ErrMalformedPush),
		"got %v", err)
	require.Equal(t, "1 [error]\n", out.String())
}

func TestClassifyCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		net    string
		script string
		want   string
	}{{
		net:    "mainnet",
		script: genesisPkScript,
		want: "class: pubkeyhash\nsigops: 1\n" +
			"address: 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa\n",
	}, {
		net:    "mainnet",
		script: "6a0568656c6c6f",
		want:   "class: nulldata\nsigops: 0\n",
	}}

	for _, test := range tests {
		cfg := testConfig(t, "--net", test.net)
		var out bytes.Buffer
		require.NoError(t, run(cfg, []string{"classify", test.script},
			&out))
		require.Equal(t, test.want, out.String())
	}

	// Cash networks print CashAddr.
	cfg := testConfig(t, "--net", "cashmainnet")
	var out bytes.Buffer
	require.NoError(t, run(cfg, []string{"classify", genesisPkScript}, &out))
	require.Contains(t, out.String(), "address: bitcoincash:q")
}

func TestRunUsage(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	require.ErrorIs(t, run(cfg, nil, &bytes.Buffer{}), errUsage)
	require.ErrorIs(t, run(cfg, []string{"frobnicate"}, &bytes.Buffer{}),
		errUsage)
	require.ErrorIs(t, run(cfg, []string{"disasm"}, &bytes.Buffer{}),
		errUsage)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	require.Equal(t, "mainnet", cfg.params.Name)
	require.Equal(t, txscript.StandardVerifyFlags, cfg.flags)

	cfg = testConfig(t, "--net", "CashTestNet")
	require.Equal(t, "cashtestnet", cfg.params.Name)
	require.Equal(t, txscript.StandardVerifyFlags|
		txscript.ScriptEnableSigHashForkID, cfg.flags)

	cfg = testConfig(t, "-f", "P2SH,STRICTENC")
	require.Equal(t, txscript.ScriptBip16|
		txscript.ScriptVerifyStrictEncoding, cfg.flags)

	cfg, rest, err := loadConfig([]string{"--nofilelogging", "disasm",
		"51"})
	require.NoError(t, err)
	require.Equal(t, []string{"disasm", "51"}, rest)
	require.Equal(t, "mainnet", cfg.params.Name)

	for _, args := range [][]string{
		{"--net", "simnet"},
		{"--scriptflags", "BOGUS"},
		{"--debuglevel", "loud"},
	} {
		_, _, err := loadConfig(args)
		require.Error(t, err, "%v", args)
	}
}
