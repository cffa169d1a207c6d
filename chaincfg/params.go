// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcd/wire"
)

// MaxForkID is the largest fork identifier that fits in the upper 24 bits of
// a signature hash type.
const MaxForkID = 0x00ffffff

// Params defines the parts of a Bitcoin-family network that script
// validation and address encoding depend on.  Values are treated as
// immutable once registered and are passed explicitly to every function that
// needs them, so several networks can be used side by side in one process.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.BitcoinNet

	// Address encoding magics.
	PubKeyHashAddrID byte // First byte of a P2PKH address
	ScriptHashAddrID byte // First byte of a P2SH address

	// Bech32HRPSegwit is the human-readable part for Bech32 encoded
	// segwit addresses.  Networks without segwit leave it empty.
	Bech32HRPSegwit string

	// CashAddrPrefix is the prefix for CashAddr encoded addresses.  It is
	// empty on networks that do not use the CashAddr format.
	CashAddrPrefix string

	// HasForkID reports whether the network uses the replay protected
	// signature hash algorithm selected by the SIGHASH_FORKID bit.
	HasForkID bool

	// ForkID is the value mixed into the upper 24 bits of the signature
	// hash type when HasForkID is set.
	ForkID uint32
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a
	// standard network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes an error where a network name does not
	// match any default or registered network.
	ErrUnknownNet = errors.New("unknown network")

	// ErrInvalidForkID describes an error where a network declares a fork
	// identifier that does not fit in 24 bits.
	ErrInvalidForkID = errors.New("fork id does not fit in 24 bits")
)

var (
	registeredNets  = make(map[wire.BitcoinNet]*Params)
	registeredNames = make(map[string]*Params)
)

// Register registers the network parameters for a network.  This may error
// with ErrDuplicateNet if the network is already registered (either due to a
// previous Register call, or the network being one of the default networks).
//
// Network parameters should be registered into this package by a main package
// as early as possible.  Then, library packages may lookup networks or network
// parameters based on inputs and work regardless of the network being standard
// or not.
func Register(params *Params) error {
	if params.ForkID > MaxForkID {
		return ErrInvalidForkID
	}
	name := strings.ToLower(params.Name)
	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	if _, ok := registeredNames[name]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Net] = params
	registeredNames[name] = params
	return nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error.  This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// ParamsForName returns the registered network with the given name.  The
// lookup is case insensitive.
func ParamsForName(name string) (*Params, error) {
	params, ok := registeredNames[strings.ToLower(name)]
	if !ok {
		return nil, ErrUnknownNet
	}
	return params, nil
}

// ParamsForNet returns the registered network identified by the magic bytes.
func ParamsForNet(net wire.BitcoinNet) (*Params, error) {
	params, ok := registeredNets[net]
	if !ok {
		return nil, ErrUnknownNet
	}
	return params, nil
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainNetParams)
	mustRegister(&TestNet3Params)
	mustRegister(&RegressionNetParams)
	mustRegister(&CashMainNetParams)
	mustRegister(&CashTestNetParams)
	mustRegister(&CashRegTestParams)
}
