// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/scriptvm/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SigHashType represents hash type bits at the end of a signature.  The low
// byte holds the base type and the flag bits, the upper 24 bits optionally
// carry a fork id when SigHashForkID is set.
type SigHashType uint32

// Hash type bits from the end of a signature.
const (
	SigHashOld          SigHashType = 0x0
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashForkID       SigHashType = 0x40
	SigHashAnyOneCanPay SigHashType = 0x80

	// sigHashMask defines the number of bits of the hash type which is used
	// to identify which outputs are signed.
	sigHashMask = 0x1f
)

// BaseType returns the base type (ALL, NONE or SINGLE, or an undefined
// value) with the flag bits and the fork id removed.
func (h SigHashType) BaseType() SigHashType {
	return h & sigHashMask
}

// IsUnknown returns whether the base type is outside ALL, NONE and SINGLE.
func (h SigHashType) IsUnknown() bool {
	base := h.BaseType()
	return base < SigHashAll || base > SigHashSingle
}

// HasForkID returns whether the fork id flag bit is set.
func (h SigHashType) HasForkID() bool {
	return h&SigHashForkID != 0
}

// HasAnyOneCanPay returns whether the anyone-can-pay flag bit is set.
func (h SigHashType) HasAnyOneCanPay() bool {
	return h&SigHashAnyOneCanPay != 0
}

// AddForkID returns the hash type with the fork id flag set and forkID
// stored in the upper 24 bits.  The low byte is kept.
func (h SigHashType) AddForkID(forkID uint32) SigHashType {
	return (h & 0xff) | SigHashForkID | SigHashType(forkID&0xffffff)<<8
}

// ForkID returns the fork id carried in the upper 24 bits.
func (h SigHashType) ForkID() uint32 {
	return uint32(h >> 8)
}

// String returns the hash type in the form used by script disassembly.
func (h SigHashType) String() string {
	var s string
	switch h.BaseType() {
	case SigHashAll:
		s = "ALL"
	case SigHashNone:
		s = "NONE"
	case SigHashSingle:
		s = "SINGLE"
	default:
		return fmt.Sprintf("0x%x", uint32(h))
	}
	if h.HasForkID() {
		s += "|FORKID"
	}
	if h.HasAnyOneCanPay() {
		s += "|ANYONECANPAY"
	}
	return s
}

// TxSignature is a transaction signature as it appears in a signature
// script: a DER encoded ECDSA signature followed by a single hash type byte.
// The zero value is the empty placeholder used for inputs that are not yet
// signed; it serializes to an empty byte slice.
type TxSignature struct {
	der      []byte
	sig      *ecdsa.Signature
	hashType SigHashType
}

// EmptyTxSignature is the placeholder for a missing signature.
var EmptyTxSignature = TxSignature{}

// NewTxSignature returns the concrete signature for sig committing to the
// given hash type.  Only the low byte of hashType is serialized.
func NewTxSignature(sig *ecdsa.Signature, hashType SigHashType) TxSignature {
	return TxSignature{
		der:      sig.Serialize(),
		sig:      sig,
		hashType: hashType & 0xff,
	}
}

// IsEmpty returns whether the signature is the placeholder.
func (s TxSignature) IsEmpty() bool {
	return len(s.der) == 0
}

// Signature returns the parsed ECDSA signature.  It is nil for the
// placeholder.
func (s TxSignature) Signature() *ecdsa.Signature {
	return s.sig
}

// HashType returns the hash type byte of the signature.
func (s TxSignature) HashType() SigHashType {
	return s.hashType
}

// DER returns the signature bytes without the hash type byte, exactly as they
// were decoded.
func (s TxSignature) DER() []byte {
	return s.der
}

// Bytes returns the signature as pushed in a signature script.
func (s TxSignature) Bytes() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	b := make([]byte, 0, len(s.der)+1)
	b = append(b, s.der...)
	return append(b, byte(s.hashType))
}

// DecodeTxSignature decodes a signature in lax mode.  The DER part may use any
// BER encoding btcec accepts and the hash type byte is taken as is, unknown
// base types included.  An empty input decodes to the placeholder.
func DecodeTxSignature(b []byte) (TxSignature, error) {
	if len(b) == 0 {
		return EmptyTxSignature, nil
	}

	der := b[:len(b)-1]
	sig, err := ecdsa.ParseSignature(der)
	if err != nil {
		str := fmt.Sprintf("malformed signature: %v", err)
		return EmptyTxSignature, scriptError(ErrSigDER, str)
	}

	return TxSignature{
		der:      der,
		sig:      sig,
		hashType: SigHashType(b[len(b)-1]),
	}, nil
}

// DecodeStrictTxSignature decodes a signature and enforces strict DER
// encoding, a low S value and a defined hash type.  The fork id flag is only
// accepted on networks that support it; a nil params supports none.  Every
// rejection is an Error whose code names the violated rule.  An empty input
// decodes to the placeholder.
func DecodeStrictTxSignature(params *chaincfg.Params,
	b []byte) (TxSignature, error) {

	if len(b) == 0 {
		return EmptyTxSignature, nil
	}

	der := b[:len(b)-1]
	if err := checkDEREncoding(der); err != nil {
		return EmptyTxSignature, err
	}
	if err := checkLowS(der); err != nil {
		return EmptyTxSignature, err
	}

	hashType := SigHashType(b[len(b)-1])
	if err := checkHashTypeEncoding(hashType); err != nil {
		return EmptyTxSignature, err
	}
	if err := checkForkIDAllowed(params, hashType); err != nil {
		return EmptyTxSignature, err
	}

	sig, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		str := fmt.Sprintf("malformed signature: %v", err)
		return EmptyTxSignature, scriptError(ErrSigDER, str)
	}

	return TxSignature{der: der, sig: sig, hashType: hashType}, nil
}

// checkForkIDAllowed returns ErrIllegalForkID when hashType carries the fork
// id flag and params is nil or names a network without fork id support.
func checkForkIDAllowed(params *chaincfg.Params, hashType SigHashType) error {
	if !hashType.HasForkID() {
		return nil
	}
	if params == nil {
		str := fmt.Sprintf("fork id hash type 0x%x is not valid "+
			"without network parameters", uint32(hashType))
		return scriptError(ErrIllegalForkID, str)
	}
	if !params.HasForkID {
		str := fmt.Sprintf("fork id hash type 0x%x is not valid on %s",
			uint32(hashType), params.Name)
		return scriptError(ErrIllegalForkID, str)
	}
	return nil
}

// checkHashTypeEncoding returns an error when the base type of the hash type
// is not one of ALL, NONE or SINGLE.
func checkHashTypeEncoding(hashType SigHashType) error {
	if hashType.IsUnknown() {
		str := fmt.Sprintf("invalid hash type 0x%x", uint32(hashType))
		return scriptError(ErrInvalidSigHashType, str)
	}
	return nil
}

// checkDEREncoding returns an error unless sig, the signature without its hash
// type byte, is a canonically encoded DER signature of the form
//
//	0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
//
// with minimally encoded, non-negative R and S.
func checkDEREncoding(sig []byte) error {
	const (
		asn1SequenceID = 0x30
		asn1IntegerID  = 0x02

		// minSigLen is the minimum length of a DER encoded signature and
		// is when both R and S are 1 byte each.
		minSigLen = 8

		// maxSigLen is the maximum length of a DER encoded signature and
		// is when both R and S are 33 bytes each.  It is 33 bytes
		// because a 256-bit integer requires 32 bytes and an additional
		// leading null byte might be required if the high bit is set in
		// the value.
		maxSigLen = 72

		sequenceOffset = 0
		dataLenOffset  = 1
		rTypeOffset    = 2
		rLenOffset     = 3
		rOffset        = 4
	)

	sigLen := len(sig)
	if sigLen < minSigLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d",
			sigLen, minSigLen)
		return scriptError(ErrSigTooShort, str)
	}
	if sigLen > maxSigLen {
		str := fmt.Sprintf("malformed signature: too long: %d > %d",
			sigLen, maxSigLen)
		return scriptError(ErrSigTooLong, str)
	}

	// The signature must start with the ASN.1 sequence identifier.
	if sig[sequenceOffset] != asn1SequenceID {
		str := fmt.Sprintf("malformed signature: format has wrong "+
			"type: %#x", sig[sequenceOffset])
		return scriptError(ErrSigInvalidSeqID, str)
	}

	// The signature must indicate the correct amount of data for all
	// elements related to R and S.
	if int(sig[dataLenOffset]) != sigLen-2 {
		str := fmt.Sprintf("malformed signature: bad length: %d != %d",
			sig[dataLenOffset], sigLen-2)
		return scriptError(ErrSigInvalidDataLen, str)
	}

	// Calculate the offsets of the elements related to S and ensure S is
	// inside the signature.
	rLen := int(sig[rLenOffset])
	sTypeOffset := rOffset + rLen
	sLenOffset := sTypeOffset + 1
	if sTypeOffset >= sigLen {
		str := "malformed signature: S type indicator missing"
		return scriptError(ErrSigMissingSTypeID, str)
	}
	if sLenOffset >= sigLen {
		str := "malformed signature: S length missing"
		return scriptError(ErrSigMissingSLen, str)
	}

	// The lengths of R and S must match the overall length of the
	// signature.
	sOffset := sLenOffset + 1
	sLen := int(sig[sLenOffset])
	if sOffset+sLen != sigLen {
		str := "malformed signature: invalid S length"
		return scriptError(ErrSigInvalidSLen, str)
	}

	// R elements must be ASN.1 integers.
	if sig[rTypeOffset] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: R integer marker: "+
			"%#x != %#x", sig[rTypeOffset], asn1IntegerID)
		return scriptError(ErrSigInvalidRIntID, str)
	}

	// Zero-length integers are not allowed for R.
	if rLen == 0 {
		str := "malformed signature: R length is zero"
		return scriptError(ErrSigZeroRLen, str)
	}

	// R must not be negative.
	if sig[rOffset]&0x80 != 0 {
		str := "malformed signature: R is negative"
		return scriptError(ErrSigNegativeR, str)
	}

	// Null bytes at the start of R are not allowed, unless R would otherwise
	// be interpreted as a negative number.
	if rLen > 1 && sig[rOffset] == 0x00 && sig[rOffset+1]&0x80 == 0 {
		str := "malformed signature: R value has too much padding"
		return scriptError(ErrSigTooMuchRPadding, str)
	}

	// S elements must be ASN.1 integers.
	if sig[sTypeOffset] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: S integer marker: "+
			"%#x != %#x", sig[sTypeOffset], asn1IntegerID)
		return scriptError(ErrSigInvalidSIntID, str)
	}

	// Zero-length integers are not allowed for S.
	if sLen == 0 {
		str := "malformed signature: S length is zero"
		return scriptError(ErrSigZeroSLen, str)
	}

	// S must not be negative.
	if sig[sOffset]&0x80 != 0 {
		str := "malformed signature: S is negative"
		return scriptError(ErrSigNegativeS, str)
	}

	// Null bytes at the start of S are not allowed, unless S would
	// otherwise be interpreted as a negative number.
	if sLen > 1 && sig[sOffset] == 0x00 && sig[sOffset+1]&0x80 == 0 {
		str := "malformed signature: S value has too much padding"
		return scriptError(ErrSigTooMuchSPadding, str)
	}

	return nil
}

// checkLowS returns ErrSigHighS when the S value of sig, a signature already
// known to pass checkDEREncoding, is greater than half the group order.
func checkLowS(sig []byte) error {
	rLen := int(sig[3])
	sLen := int(sig[rLen+5])
	sBytes := sig[rLen+6 : rLen+6+sLen]
	for len(sBytes) > 0 && sBytes[0] == 0x00 {
		sBytes = sBytes[1:]
	}

	var s secp256k1.ModNScalar
	if len(sBytes) > 32 || s.SetByteSlice(sBytes) || s.IsOverHalfOrder() {
		str := "signature is not canonical due to unnecessarily high " +
			"S value"
		return scriptError(ErrSigHighS, str)
	}
	return nil
}

// checkSignatureEncoding returns an error when sig, a signature with its hash
// type byte as taken from the stack, violates the encoding rules selected by
// flags.  Empty signatures always pass so they can be used to deliberately
// fail a signature check.
func checkSignatureEncoding(sig []byte, flags ScriptFlags) error {
	if len(sig) == 0 {
		return nil
	}

	strictEnc := flags&ScriptVerifyStrictEncoding != 0
	lowS := flags&ScriptVerifyLowS != 0
	if flags&ScriptVerifyDERSignatures != 0 || lowS || strictEnc {
		if err := checkDEREncoding(sig[:len(sig)-1]); err != nil {
			return err
		}
	}
	if lowS {
		if err := checkLowS(sig[:len(sig)-1]); err != nil {
			return err
		}
	}
	if !strictEnc {
		return nil
	}

	hashType := SigHashType(sig[len(sig)-1])
	if err := checkHashTypeEncoding(hashType); err != nil {
		return err
	}

	forkIDEnabled := flags&ScriptEnableSigHashForkID != 0
	switch {
	case !forkIDEnabled && hashType.HasForkID():
		str := fmt.Sprintf("hash type 0x%x uses fork id which is not "+
			"enabled", uint32(hashType))
		return scriptError(ErrIllegalForkID, str)

	case forkIDEnabled && !hashType.HasForkID():
		str := fmt.Sprintf("hash type 0x%x must use fork id",
			uint32(hashType))
		return scriptError(ErrMustUseForkID, str)
	}
	return nil
}

// checkPubKeyEncoding returns ErrPubKeyType when strict encoding is requested
// and pubKey is neither a 33 byte compressed nor a 65 byte uncompressed key.
func checkPubKeyEncoding(pubKey []byte, flags ScriptFlags) error {
	if flags&ScriptVerifyStrictEncoding == 0 {
		return nil
	}

	if len(pubKey) == 33 && (pubKey[0] == 0x02 || pubKey[0] == 0x03) {
		// Compressed
		return nil
	}
	if len(pubKey) == 65 && pubKey[0] == 0x04 {
		// Uncompressed
		return nil
	}

	return scriptError(ErrPubKeyType, "unsupported public key type")
}
