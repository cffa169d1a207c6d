// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/scriptvm/chaincfg"
	"golang.org/x/crypto/ripemd160"
)

var (
	// ErrChecksumMismatch describes an error where decoding failed due
	// to a bad checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrUnknownAddressType describes an error where an address can not
	// decoded as a specific address type due to the string encoding
	// beginning with an identifier byte unknown to the network.
	ErrUnknownAddressType = errors.New("unknown address type")

	// ErrInvalidFormat describes an error where decoding failed due to an
	// invalid payload length, version or character set.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrWrongNetwork describes an error where an address is well formed
	// but belongs to a different network than the one requested.
	ErrWrongNetwork = errors.New("address is for the wrong network")

	// ErrUnsupportedNetwork describes an error where an address kind can
	// not be represented on the network, such as a segwit address on a
	// network without a bech32 prefix.
	ErrUnsupportedNetwork = errors.New("address kind not supported by network")
)

// witnessScriptHashSize is the size of a version 0 witness script hash.
const witnessScriptHashSize = 32

// Address is an interface type for any type of destination a transaction
// output may spend to.  Every implementation corresponds to exactly one
// standard locking script template.
type Address interface {
	// String returns the string encoding of the address for its network.
	String() string

	// ScriptAddress returns the raw bytes of the address to be used
	// when inserting the address into a txout's script.
	ScriptAddress() []byte

	// Params returns the network the address belongs to.
	Params() *chaincfg.Params
}

// PubKeyHash is an Address for a pay-to-pubkey-hash (P2PKH) transaction.
type PubKeyHash struct {
	hash   [ripemd160.Size]byte
	params *chaincfg.Params
}

// NewPubKeyHash returns a new PubKeyHash.  pkHash must be 20 bytes.
func NewPubKeyHash(pkHash []byte, params *chaincfg.Params) (*PubKeyHash, error) {
	if len(pkHash) != ripemd160.Size {
		return nil, errors.New("pkHash must be 20 bytes")
	}
	addr := &PubKeyHash{params: params}
	copy(addr.hash[:], pkHash)
	return addr, nil
}

// String returns the encoded address.  Networks with a CashAddr prefix use
// the CashAddr format, all others Base58Check.
func (a *PubKeyHash) String() string {
	return encodeLegacy(a.hash[:], a.params.PubKeyHashAddrID, cashAddrP2PKH,
		a.params)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a pubkey hash.
func (a *PubKeyHash) ScriptAddress() []byte {
	return a.hash[:]
}

// Params returns the network of the address.
func (a *PubKeyHash) Params() *chaincfg.Params {
	return a.params
}

// ScriptHash is an Address for a pay-to-script-hash (P2SH) transaction.
type ScriptHash struct {
	hash   [ripemd160.Size]byte
	params *chaincfg.Params
}

// NewScriptHashFromHash returns a new ScriptHash.  scriptHash must be 20
// bytes.
func NewScriptHashFromHash(scriptHash []byte,
	params *chaincfg.Params) (*ScriptHash, error) {

	if len(scriptHash) != ripemd160.Size {
		return nil, errors.New("scriptHash must be 20 bytes")
	}
	addr := &ScriptHash{params: params}
	copy(addr.hash[:], scriptHash)
	return addr, nil
}

// String returns the encoded address.
func (a *ScriptHash) String() string {
	return encodeLegacy(a.hash[:], a.params.ScriptHashAddrID, cashAddrP2SH,
		a.params)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a script hash.
func (a *ScriptHash) ScriptAddress() []byte {
	return a.hash[:]
}

// Params returns the network of the address.
func (a *ScriptHash) Params() *chaincfg.Params {
	return a.params
}

// WitnessPubKeyHash is an Address for a pay-to-witness-pubkey-hash (P2WPKH)
// output.
type WitnessPubKeyHash struct {
	hash   [ripemd160.Size]byte
	params *chaincfg.Params
}

// NewWitnessPubKeyHash returns a new WitnessPubKeyHash.  The network must
// define a segwit human-readable part.
func NewWitnessPubKeyHash(witnessProg []byte,
	params *chaincfg.Params) (*WitnessPubKeyHash, error) {

	if params.Bech32HRPSegwit == "" {
		return nil, ErrUnsupportedNetwork
	}
	if len(witnessProg) != ripemd160.Size {
		return nil, errors.New("witness program must be 20 bytes for " +
			"p2wpkh")
	}
	addr := &WitnessPubKeyHash{params: params}
	copy(addr.hash[:], witnessProg)
	return addr, nil
}

// String returns the bech32 encoding of the address.
func (a *WitnessPubKeyHash) String() string {
	return encodeSegWit(a.params.Bech32HRPSegwit, a.hash[:])
}

// ScriptAddress returns the witness program.
func (a *WitnessPubKeyHash) ScriptAddress() []byte {
	return a.hash[:]
}

// Params returns the network of the address.
func (a *WitnessPubKeyHash) Params() *chaincfg.Params {
	return a.params
}

// WitnessScriptHash is an Address for a pay-to-witness-script-hash (P2WSH)
// output.
type WitnessScriptHash struct {
	hash   [witnessScriptHashSize]byte
	params *chaincfg.Params
}

// NewWitnessScriptHash returns a new WitnessScriptHash.  The network must
// define a segwit human-readable part.
func NewWitnessScriptHash(witnessProg []byte,
	params *chaincfg.Params) (*WitnessScriptHash, error) {

	if params.Bech32HRPSegwit == "" {
		return nil, ErrUnsupportedNetwork
	}
	if len(witnessProg) != witnessScriptHashSize {
		return nil, errors.New("witness program must be 32 bytes for " +
			"p2wsh")
	}
	addr := &WitnessScriptHash{params: params}
	copy(addr.hash[:], witnessProg)
	return addr, nil
}

// String returns the bech32 encoding of the address.
func (a *WitnessScriptHash) String() string {
	return encodeSegWit(a.params.Bech32HRPSegwit, a.hash[:])
}

// ScriptAddress returns the witness program.
func (a *WitnessScriptHash) ScriptAddress() []byte {
	return a.hash[:]
}

// Params returns the network of the address.
func (a *WitnessScriptHash) Params() *chaincfg.Params {
	return a.params
}

// encodeLegacy encodes a hash160 based address in the preferred format of
// the network.
func encodeLegacy(hash []byte, netID byte, kind byte,
	params *chaincfg.Params) string {

	if params.CashAddrPrefix != "" {
		return encodeCashAddr(params.CashAddrPrefix, kind, hash)
	}
	return base58.CheckEncode(hash, netID)
}

// encodeSegWit encodes a version 0 witness program as a bech32 string.  The
// program length is fixed by the constructors so encoding can not fail.
func encodeSegWit(hrp string, program []byte) string {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return ""
	}
	combined := make([]byte, 0, len(converted)+1)
	combined = append(combined, 0)
	combined = append(combined, converted...)

	encoded, err := bech32.Encode(hrp, combined)
	if err != nil {
		return ""
	}
	return encoded
}

// Encode returns the string form of addr.
func Encode(addr Address) (string, error) {
	switch a := addr.(type) {
	case *PubKeyHash, *ScriptHash, *WitnessPubKeyHash, *WitnessScriptHash:
		if a.Params() == nil {
			return "", ErrUnsupportedNetwork
		}
		return a.String(), nil
	}
	return "", ErrUnknownAddressType
}

// Decode decodes the string encoding of an address and returns the Address
// if text is a valid encoding for a known address type on the given network.
//
// Bech32 segwit addresses are recognized by the network's human-readable
// part, CashAddr addresses by the network's prefix, which may be omitted.
// Everything else is decoded as Base58Check.
func Decode(params *chaincfg.Params, text string) (Address, error) {
	lower := strings.ToLower(text)

	if hrp := params.Bech32HRPSegwit; hrp != "" &&
		strings.HasPrefix(lower, hrp+"1") {

		return decodeSegWit(params, text)
	}

	if prefix := params.CashAddrPrefix; prefix != "" {
		addr, err := decodeCashAddrForNet(params, text)
		if err == nil {
			return addr, nil
		}
		if strings.Contains(text, ":") {
			return nil, err
		}
		log.Tracef("%q is not a cashaddr, trying base58: %v", text, err)
	}

	decoded, netID, err := base58.CheckDecode(text)
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return nil, ErrChecksumMismatch
		}
		return nil, ErrInvalidFormat
	}
	if len(decoded) != ripemd160.Size {
		return nil, ErrInvalidFormat
	}

	switch netID {
	case params.PubKeyHashAddrID:
		return NewPubKeyHash(decoded, params)
	case params.ScriptHashAddrID:
		return NewScriptHashFromHash(decoded, params)
	}
	return nil, ErrUnknownAddressType
}

// decodeSegWit decodes a version 0 bech32 segwit address.
func decodeSegWit(params *chaincfg.Params, text string) (Address, error) {
	hrp, data, err := bech32.Decode(text)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	if hrp != params.Bech32HRPSegwit {
		return nil, ErrWrongNetwork
	}

	// Only witness version 0 maps to a template known to this package.
	if len(data) < 1 || data[0] != 0 {
		return nil, ErrUnknownAddressType
	}
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	switch len(program) {
	case ripemd160.Size:
		return NewWitnessPubKeyHash(program, params)
	case witnessScriptHashSize:
		return NewWitnessScriptHash(program, params)
	}
	return nil, ErrInvalidFormat
}

// decodeCashAddrForNet decodes a CashAddr address and checks it belongs to
// the network.
func decodeCashAddrForNet(params *chaincfg.Params, text string) (Address, error) {
	prefix, kind, hash, err := decodeCashAddr(params.CashAddrPrefix, text)
	if err != nil {
		return nil, err
	}
	if prefix != params.CashAddrPrefix {
		return nil, ErrWrongNetwork
	}

	switch kind {
	case cashAddrP2PKH:
		return NewPubKeyHash(hash, params)
	case cashAddrP2SH:
		return NewScriptHashFromHash(hash, params)
	}
	return nil, ErrUnknownAddressType
}
