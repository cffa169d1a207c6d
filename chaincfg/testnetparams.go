// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/btcsuite/btcd/wire"
)

// TestNet3Params defines the network parameters for the test Bitcoin network
// (version 3).
var TestNet3Params = Params{
	Name:             "testnet3",
	Net:              wire.TestNet3,
	PubKeyHashAddrID: 0x6f, // starts with m or n
	ScriptHashAddrID: 0xc4, // starts with 2
	Bech32HRPSegwit:  "tb", // always tb for test net
}

// RegressionNetParams defines the network parameters for the regression test
// Bitcoin network.
var RegressionNetParams = Params{
	Name:             "regtest",
	Net:              wire.TestNet,
	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,
	Bech32HRPSegwit:  "bcrt", // always bcrt for reg test net
}

// Bitcoin Cash test network magics.
const (
	CashTestNet    wire.BitcoinNet = 0xf4f3e5f4
	CashRegTestNet wire.BitcoinNet = 0xfabfb5da
)

// CashTestNetParams defines the network parameters for the Bitcoin Cash test
// network.
var CashTestNetParams = Params{
	Name:             "cashtestnet",
	Net:              CashTestNet,
	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,
	CashAddrPrefix:   "bchtest",
	HasForkID:        true,
}

// CashRegTestParams defines the network parameters for the Bitcoin Cash
// regression test network.
var CashRegTestParams = Params{
	Name:             "cashregtest",
	Net:              CashRegTestNet,
	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,
	CashAddrPrefix:   "bchreg",
	HasForkID:        true,
}
