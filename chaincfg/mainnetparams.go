// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/btcsuite/btcd/wire"
)

// MainNetParams defines the network parameters for the main Bitcoin network.
var MainNetParams = Params{
	Name:             "mainnet",
	Net:              wire.MainNet,
	PubKeyHashAddrID: 0x00, // starts with 1
	ScriptHashAddrID: 0x05, // starts with 3
	Bech32HRPSegwit:  "bc", // always bc for main net
}

// CashMainNet represents the main Bitcoin Cash network.
const CashMainNet wire.BitcoinNet = 0xe8f3e1e3

// CashMainNetParams defines the network parameters for the main Bitcoin Cash
// network.  It shares the legacy address magics with Bitcoin but signs with
// the fork-id signature hash algorithm.
var CashMainNetParams = Params{
	Name:             "cashmainnet",
	Net:              CashMainNet,
	PubKeyHashAddrID: 0x00,
	ScriptHashAddrID: 0x05,
	CashAddrPrefix:   "bitcoincash",
	HasForkID:        true,
	ForkID:           0,
}
