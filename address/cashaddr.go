// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160"
)

// CashAddr type bits carried in the version byte.
const (
	cashAddrP2PKH byte = 0
	cashAddrP2SH  byte = 1
)

const (
	// cashAddrCharset is the character set of the payload.  It is the
	// same set bech32 uses.
	cashAddrCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

	// cashAddrChecksumLen is the number of 5-bit groups in the checksum.
	cashAddrChecksumLen = 8
)

// cashAddrCharsetRev maps a lower case payload character to its value, -1
// for characters outside the set.
var cashAddrCharsetRev = func() [128]int8 {
	var rev [128]int8
	for i := range rev {
		rev[i] = -1
	}
	for i := 0; i < len(cashAddrCharset); i++ {
		rev[cashAddrCharset[i]] = int8(i)
	}
	return rev
}()

// cashAddrPolyMod computes the BCH code remainder used as CashAddr checksum.
// The generator constants are the multiples of x^8 mod g(x) for each bit of
// the coefficient being shifted out.
func cashAddrPolyMod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := byte(c >> 35)
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)

		if c0&0x01 != 0 {
			c ^= 0x98f2bc8e61
		}
		if c0&0x02 != 0 {
			c ^= 0x79b76d99e2
		}
		if c0&0x04 != 0 {
			c ^= 0xf33e5fb3c4
		}
		if c0&0x08 != 0 {
			c ^= 0xae2eabe2a8
		}
		if c0&0x10 != 0 {
			c ^= 0x1e4f43e470
		}
	}
	return c ^ 1
}

// cashAddrExpandPrefix returns the lower 5 bits of every prefix character
// followed by the zero separator.
func cashAddrExpandPrefix(prefix string) []byte {
	ret := make([]byte, len(prefix)+1)
	for i := 0; i < len(prefix); i++ {
		ret[i] = prefix[i] & 0x1f
	}
	return ret
}

// cashAddrChecksum returns the checksum groups for payload under prefix.
func cashAddrChecksum(prefix string, payload []byte) []byte {
	enc := cashAddrExpandPrefix(prefix)
	enc = append(enc, payload...)
	enc = append(enc, make([]byte, cashAddrChecksumLen)...)
	mod := cashAddrPolyMod(enc)

	ret := make([]byte, cashAddrChecksumLen)
	for i := range ret {
		ret[i] = byte((mod >> uint(5*(7-i))) & 0x1f)
	}
	return ret
}

// encodeCashAddr encodes a 160-bit hash of the given kind.
func encodeCashAddr(prefix string, kind byte, hash []byte) string {
	// The version byte holds the type in bits 3-6 and the hash size code,
	// zero for 160 bits, in the low bits.
	data := make([]byte, 0, len(hash)+1)
	data = append(data, kind<<3)
	data = append(data, hash...)

	payload, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return ""
	}
	payload = append(payload, cashAddrChecksum(prefix, payload)...)

	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + len(payload))
	sb.WriteString(prefix)
	sb.WriteByte(':')
	for _, v := range payload {
		sb.WriteByte(cashAddrCharset[v])
	}
	return sb.String()
}

// decodeCashAddr decodes a CashAddr string.  When the string carries no
// prefix, defaultPrefix is assumed.  It returns the prefix, the address kind
// and the 160-bit hash.
func decodeCashAddr(defaultPrefix, text string) (string, byte, []byte, error) {
	// Mixed case is not allowed.
	if strings.ToLower(text) != text && strings.ToUpper(text) != text {
		return "", 0, nil, ErrInvalidFormat
	}
	text = strings.ToLower(text)

	prefix, body := defaultPrefix, text
	if i := strings.IndexByte(text, ':'); i >= 0 {
		if i == 0 {
			return "", 0, nil, ErrInvalidFormat
		}
		prefix, body = text[:i], text[i+1:]
	}
	if len(body) <= cashAddrChecksumLen {
		return "", 0, nil, ErrInvalidFormat
	}

	values := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c >= 128 || cashAddrCharsetRev[c] == -1 {
			return "", 0, nil, ErrInvalidFormat
		}
		values[i] = byte(cashAddrCharsetRev[c])
	}

	check := cashAddrExpandPrefix(prefix)
	check = append(check, values...)
	if cashAddrPolyMod(check) != 0 {
		return "", 0, nil, ErrChecksumMismatch
	}

	data, err := bech32.ConvertBits(values[:len(values)-cashAddrChecksumLen],
		5, 8, false)
	if err != nil {
		return "", 0, nil, ErrInvalidFormat
	}

	// Only 160-bit hashes are defined for the supported kinds.
	if len(data) != ripemd160.Size+1 || data[0]&0x87 != 0 {
		return "", 0, nil, ErrInvalidFormat
	}
	return prefix, data[0] >> 3, data[1:], nil
}
