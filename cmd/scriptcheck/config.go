// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/scriptvm/chaincfg"
	"github.com/btcsuite/scriptvm/internal/log"
	"github.com/btcsuite/scriptvm/internal/version"
	"github.com/btcsuite/scriptvm/txscript"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel    = "info"
	defaultLogDirname  = "logs"
	defaultLogFilename = "scriptcheck.log"
	defaultNet         = "mainnet"
)

var (
	scriptcheckHomeDir = btcutil.AppDataDir("scriptcheck", false)
	defaultLogDir      = filepath.Join(scriptcheckHomeDir, defaultLogDirname)
)

// config defines the configuration options for scriptcheck.
//
// See loadConfig for details on the configuration load process.
type config struct {
	Net         string `short:"n" long:"net" description:"Network to use {mainnet, testnet3, regtest, cashmainnet, cashtestnet, cashregtest}"`
	ScriptFlags string `short:"f" long:"scriptflags" description:"Comma separated script verification flags such as P2SH,STRICTENC (default: standard flags, plus SIGHASH_FORKID on fork id networks)"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	NoFileLog   bool   `long:"nofilelogging" description:"Disable file logging"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical}"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`

	params *chaincfg.Params
	flags  txscript.ScriptFlags
}

// scriptFlags returns the verification flags selected by the config string
// for the network.
func scriptFlags(flagStr string, params *chaincfg.Params) (txscript.ScriptFlags, error) {
	if flagStr != "" {
		return txscript.ParseScriptFlags(flagStr)
	}

	scriptFlags := txscript.StandardVerifyFlags
	if params.HasForkID {
		scriptFlags |= txscript.ScriptEnableSigHashForkID
	}
	return scriptFlags, nil
}

// loadConfig initializes and parses the config using command line options.
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		Net:        defaultNet,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	parser.Usage = "[OPTIONS] <verify|disasm|classify> <args...>"
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.String())
		os.Exit(0)
	}

	funcName := "loadConfig"
	cfg.params, err = chaincfg.ParamsForName(cfg.Net)
	if err != nil {
		str := "%s: the specified network [%v] is invalid -- %w"
		err := fmt.Errorf(str, funcName, cfg.Net, err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	cfg.flags, err = scriptFlags(cfg.ScriptFlags, cfg.params)
	if err != nil {
		str := "%s: the specified script flags [%v] are invalid -- %w"
		err := fmt.Errorf(str, funcName, cfg.ScriptFlags, err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	if !log.ValidLogLevel(cfg.DebugLevel) {
		str := "%s: the specified debug level [%v] is invalid -- " +
			"supported levels are trace, debug, info, warn, error " +
			"and critical"
		err := fmt.Errorf(str, funcName, cfg.DebugLevel)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// Namespace the log directory per network.
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir),
		cfg.params.Name)

	return &cfg, remainingArgs, nil
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(scriptcheckHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
