// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/scriptvm/internal/log"
	"github.com/btcsuite/scriptvm/txscript"
	flags "github.com/jessevdk/go-flags"
)

var errUsage = errors.New("usage: scriptcheck [OPTIONS] " +
	"<verify <rawtx> <index> <pkscript> <amount>|disasm <script>|" +
	"classify <script>>")

// decodeHexArg decodes a hex command argument, naming it in the error.
func decodeHexArg(name, arg string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(arg))
	if err != nil {
		return nil, fmt.Errorf("invalid %s hex: %w", name, err)
	}
	return b, nil
}

// verifyCmd runs input idx of a raw transaction against the locking script
// of the output it spends, tracing every step at debug level.
func verifyCmd(cfg *config, args []string, w io.Writer) error {
	if len(args) != 4 {
		return errUsage
	}

	rawTx, err := decodeHexArg("transaction", args[0])
	if err != nil {
		return err
	}
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(rawTx)); err != nil {
		return fmt.Errorf("unable to decode transaction: %w", err)
	}

	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid input index: %w", err)
	}
	pkScript, err := decodeHexArg("public key script", args[2])
	if err != nil {
		return err
	}
	btc, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	amount, err := btcutil.NewAmount(btc)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	log.SchkLog.Infof("Verifying input %d of %v spending %v on %s",
		idx, tx.TxHash(), amount, cfg.params.Name)

	checker := txscript.NewTxSigChecker(cfg.params, &tx, idx,
		int64(amount), cfg.flags, nil, nil)
	vm, err := txscript.NewEngine(pkScript, &tx, idx, cfg.flags, checker)
	if err != nil {
		fmt.Fprintf(w, "invalid: %v\n", err)
		return err
	}

	for done := false; !done; {
		dis, err := vm.DisasmPC()
		if err == nil {
			log.SchkLog.Debugf("%s", dis)
		}
		done, err = vm.Step()
		if err != nil {
			fmt.Fprintf(w, "invalid: %v\n", err)
			return err
		}
	}
	if err := vm.CheckErrorCondition(true); err != nil {
		fmt.Fprintf(w, "invalid: %v\n", err)
		return err
	}

	fmt.Fprintln(w, "valid")
	return nil
}

// disasmCmd prints the one-line disassembly of a script.
func disasmCmd(_ *config, args []string, w io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	script, err := decodeHexArg("script", args[0])
	if err != nil {
		return err
	}

	// A malformed script still disassembles up to the bad push.
	dis, err := txscript.DisasmString(script)
	fmt.Fprintln(w, dis)
	return err
}

// classifyCmd prints the template class of a locking script along with the
// address it pays to when it has one on the configured network.
func classifyCmd(cfg *config, args []string, w io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	script, err := decodeHexArg("script", args[0])
	if err != nil {
		return err
	}

	out, err := txscript.DecodeOutput(script)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "class: %v\n", out.Class)
	fmt.Fprintf(w, "sigops: %d\n", txscript.GetSigOpCount(script))
	if out.Class == txscript.MultiSigTy {
		fmt.Fprintf(w, "required: %d of %d\n", out.RequiredSigs,
			len(out.PubKeys))
	}

	addr, err := txscript.ExtractAddress(cfg.params, out)
	if err != nil {
		log.SchkLog.Debugf("No address for %v output: %v", out.Class, err)
		return nil
	}
	fmt.Fprintf(w, "address: %s\n", addr)
	return nil
}

var commands = map[string]func(*config, []string, io.Writer) error{
	"verify":   verifyCmd,
	"disasm":   disasmCmd,
	"classify": classifyCmd,
}

// run dispatches the command in args.
func run(cfg *config, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
	return cmd(cfg, args[1:], w)
}

func realMain() error {
	cfg, args, err := loadConfig(os.Args[1:])
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	if !cfg.NoFileLog {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := log.InitLogRotator(logFile); err != nil {
			return err
		}
		defer log.LogRotator.Close()
	}
	log.SetLogLevels(cfg.DebugLevel)

	return run(cfg, args, os.Stdout)
}

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
