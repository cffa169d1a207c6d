// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// These are the constants specified for maximums in individual scripts.
const (
	MaxOpsPerScript       = 201 // Max number of non-push operations.
	MaxPubKeysPerMultiSig = 20  // Multisig can't have more sigs than this.
	MaxScriptElementSize  = 520 // Max bytes pushable to the stack.

	// MaxScriptSize is the maximum allowed length of a raw script.
	MaxScriptSize = 10000

	// maxStackSize is the maximum combined height of stack and alt stack
	// during execution.
	maxStackSize = 1000
)

// ScriptOp is a single decoded script token: an entry of the opcode table
// together with the payload it pushes, if any.  Push data keeps the opcode it
// was decoded with so re-encoding reproduces the original bytes.
type ScriptOp struct {
	opcode *opcode
	data   []byte
}

// NewOp returns the token for the given opcode byte without any payload.  It
// is intended for non-push opcodes and the small integer pushes.
func NewOp(op byte) ScriptOp {
	return ScriptOp{opcode: &opcodeArray[op]}
}

// canonicalPushOpcode returns the shortest push opcode able to carry a
// payload of the given length.  A zero length payload is OP_0.
func canonicalPushOpcode(dataLen int) byte {
	switch {
	case dataLen == 0:
		return OP_0
	case dataLen < OP_PUSHDATA1:
		return byte((OP_DATA_1 - 1) + dataLen)
	case dataLen <= 0xff:
		return OP_PUSHDATA1
	case dataLen <= 0xffff:
		return OP_PUSHDATA2
	}
	return OP_PUSHDATA4
}

// NewPushOp returns a token that pushes data using the shortest push opcode
// able to carry its length.  An empty payload is encoded as OP_0.
func NewPushOp(data []byte) ScriptOp {
	op := canonicalPushOpcode(len(data))
	if op == OP_0 {
		return NewOp(OP_0)
	}
	return ScriptOp{opcode: &opcodeArray[op], data: data}
}

// Opcode returns the opcode byte of the token.
func (op ScriptOp) Opcode() byte {
	return op.opcode.value
}

// Name returns the human-readable name of the token's opcode.
func (op ScriptOp) Name() string {
	return op.opcode.name
}

// Data returns the payload pushed by the token.  It is nil for opcodes that
// carry no payload, including the small integer opcodes.
func (op ScriptOp) Data() []byte {
	return op.data
}

// IsPush returns whether the token only pushes a value.  OP_RESERVED sits in
// the push range and is counted as a push.
func (op ScriptOp) IsPush() bool {
	return op.opcode.value <= OP_16
}

// IsUnknown returns whether the token is an opcode byte with no assigned
// meaning.  Such tokens decode fine and only fail once executed.
func (op ScriptOp) IsUnknown() bool {
	switch v := op.opcode.value; {
	case v >= OP_UNKNOWN186 && v <= OP_UNKNOWN249:
		return true
	case v >= OP_SMALLINTEGER:
		return true
	}
	return false
}

// asSmallInt returns the passed opcode, which must be OP_0 or OP_1 through
// OP_16, as an integer.
func asSmallInt(op byte) int {
	if op == OP_0 {
		return 0
	}

	return int(op - (OP_1 - 1))
}

// bytes returns the serialized form of the token.
func (op ScriptOp) bytes() ([]byte, error) {
	var retbytes []byte
	if op.opcode.length > 0 {
		retbytes = make([]byte, 1, op.opcode.length)
	} else {
		retbytes = make([]byte, 1, 1+len(op.data)-op.opcode.length)
	}

	retbytes[0] = op.opcode.value
	if op.opcode.length == 1 {
		if len(op.data) != 0 {
			str := fmt.Sprintf("internal consistency error - "+
				"parsed opcode %s has data length %d when %d "+
				"was expected", op.opcode.name, len(op.data), 0)
			return nil, scriptError(ErrInternal, str)
		}
		return retbytes, nil
	}
	nbytes := op.opcode.length
	if op.opcode.length < 0 {
		l := len(op.data)
		switch op.opcode.length {
		case -1:
			if l > 0xff {
				return nil, pushTooLong(op, 0xff)
			}
			retbytes = append(retbytes, byte(l))
		case -2:
			if l > 0xffff {
				return nil, pushTooLong(op, 0xffff)
			}
			retbytes = binary.LittleEndian.AppendUint16(retbytes,
				uint16(l))
		case -4:
			retbytes = binary.LittleEndian.AppendUint32(retbytes,
				uint32(l))
		}
		nbytes = len(retbytes) + l
	}

	retbytes = append(retbytes, op.data...)

	if len(retbytes) != nbytes {
		str := fmt.Sprintf("internal consistency error - "+
			"parsed opcode %s has data length %d when %d was "+
			"expected", op.opcode.name, len(retbytes), nbytes)
		return nil, scriptError(ErrInternal, str)
	}

	return retbytes, nil
}

func pushTooLong(op ScriptOp, max int) error {
	str := fmt.Sprintf("opcode %s cannot push %d bytes, max %d",
		op.opcode.name, len(op.data), max)
	return scriptError(ErrInternal, str)
}

// String returns the one-line disassembly of the token.
func (op ScriptOp) String() string {
	var buf strings.Builder
	disasmOpcode(&buf, op.opcode, op.data, true)
	return buf.String()
}

// Script is an ordered sequence of decoded tokens.
type Script []ScriptOp

// ParseScript decodes raw script bytes into tokens.  Unknown opcodes are kept
// as tokens; only a push whose declared length runs past the end of the input
// fails the decode, with ErrMalformedPush.
func ParseScript(script []byte) (Script, error) {
	ops := make(Script, 0, len(script))
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		ops = append(ops, ScriptOp{
			opcode: tokenizer.op,
			data:   tokenizer.Data(),
		})
	}
	if err := tokenizer.Err(); err != nil {
		return ops, err
	}
	return ops, nil
}

// Bytes serializes the script.  Tokens built with the exported constructors
// or decoded by ParseScript always serialize, so a failure here indicates a
// hand-built token with an inconsistent payload.
func (s Script) Bytes() ([]byte, error) {
	script := make([]byte, 0, len(s))
	for _, op := range s {
		b, err := op.bytes()
		if err != nil {
			return nil, err
		}
		script = append(script, b...)
	}
	return script, nil
}

// String returns the one-line disassembly of the script.
func (s Script) String() string {
	var buf strings.Builder
	for i, op := range s {
		if i > 0 {
			buf.WriteByte(' ')
		}
		disasmOpcode(&buf, op.opcode, op.data, true)
	}
	return buf.String()
}

// isPushOnly returns true if the script only pushes data, false otherwise.
func (s Script) isPushOnly() bool {
	for _, op := range s {
		if !op.IsPush() {
			return false
		}
	}
	return true
}

// IsPushOnlyScript returns whether or not the passed script only pushes data
// according to the consensus definition of pushing data.  A script that fails
// to parse is not push only.
func IsPushOnlyScript(script []byte) bool {
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		// All opcodes up to OP_16 are data push instructions.
		// NOTE: This does consider OP_RESERVED to be a data push
		// instruction, but execution of OP_RESERVED will fail anyway
		// and matches the behavior required by consensus.
		if tokenizer.Opcode() > OP_16 {
			return false
		}
	}
	return tokenizer.Err() == nil
}

// IsPayToScriptHash returns true if the script is in the standard
// pay-to-script-hash (P2SH) format, false otherwise.
func IsPayToScriptHash(script []byte) bool {
	// A pay-to-script-hash script is of the form:
	//  OP_HASH160 <20-byte scripthash> OP_EQUAL
	//
	// The exact byte layout is consensus, so a pushed hash that was not
	// encoded with OP_DATA_20 does not count.
	return len(script) == 23 &&
		script[0] == OP_HASH160 &&
		script[1] == OP_DATA_20 &&
		script[22] == OP_EQUAL
}

// removeOpcodeByData will return the script minus every token that pushes
// data with exactly the canonical push serialization for it.  Pushes
// of the same bytes through a longer encoding are kept, as are tokens that
// merely contain the data.
func removeOpcodeByData(script Script, data []byte) Script {
	if len(data) == 0 {
		return script
	}
	target := canonicalPushOpcode(len(data))

	retScript := make(Script, 0, len(script))
	for _, op := range script {
		if op.opcode.value == target && bytes.Equal(op.data, data) {
			continue
		}
		retScript = append(retScript, op)
	}
	return retScript
}

// DisasmString formats a disassembled script for one line printing.  When the
// script fails to parse, the returned string will contain the disassembled
// script up to the point the failure occurred along with the string '[error]'
// appended.  In addition, the reason the script failed to parse is returned
// if the caller wants more information about the failure.
func DisasmString(script []byte) (string, error) {
	var disbuf strings.Builder
	tokenizer := MakeScriptTokenizer(script)
	if tokenizer.Next() {
		disasmOpcode(&disbuf, tokenizer.op, tokenizer.Data(), true)
	}
	for tokenizer.Next() {
		disbuf.WriteByte(' ')
		disasmOpcode(&disbuf, tokenizer.op, tokenizer.Data(), true)
	}
	if tokenizer.Err() != nil {
		if tokenizer.ByteIndex() != 0 {
			disbuf.WriteByte(' ')
		}
		disbuf.WriteString("[error]")
	}
	return disbuf.String(), tokenizer.Err()
}

// countSigOps returns the number of signature operations in the script.  If
// precise mode is requested then multisig ops preceded by a small integer
// count that many keys, otherwise the maximum of 20.  Counting stops at a
// parse failure.
func countSigOps(script []byte, precise bool) int {
	numSigOps := 0
	prevOp := byte(OP_INVALIDOPCODE)
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		switch tokenizer.Opcode() {
		case OP_CHECKSIG, OP_CHECKSIGVERIFY:
			numSigOps++

		case OP_CHECKMULTISIG, OP_CHECKMULTISIGVERIFY:
			if precise && prevOp >= OP_1 && prevOp <= OP_16 {
				numSigOps += asSmallInt(prevOp)
			} else {
				numSigOps += MaxPubKeysPerMultiSig
			}
		}
		prevOp = tokenizer.Opcode()
	}
	return numSigOps
}

// GetSigOpCount provides a quick count of the number of signature operations
// in a script. a CHECKSIG operations counts for 1, and a CHECK_MULTISIG for 20.
// If the script fails to parse, then the count up to the point of failure is
// returned.
func GetSigOpCount(script []byte) int {
	return countSigOps(script, false)
}

// GetPreciseSigOpCount returns the number of signature operations in
// scriptPubKey.  If bip16 is true then scriptSig may be searched for the
// Pay-To-Script-Hash script in order to find the precise number of signature
// operations in the transaction.  If the script fails to parse, then the count
// up to the point of failure is returned.
func GetPreciseSigOpCount(scriptSig, scriptPubKey []byte, bip16 bool) int {
	// Treat non P2SH transactions as normal.
	if !(bip16 && IsPayToScriptHash(scriptPubKey)) {
		return countSigOps(scriptPubKey, true)
	}

	// The public key script is a pay-to-script-hash, so parse the signature
	// script to get the final item.  Scripts that fail to fully parse count
	// as 0 signature operations.
	sigOps, err := ParseScript(scriptSig)
	if err != nil || len(sigOps) == 0 || !sigOps.isPushOnly() {
		return 0
	}

	// The signature script must only push data to the stack for P2SH to be
	// a valid pair, so the signature operation count is 0 when that is not
	// the case.
	redeemScript := sigOps[len(sigOps)-1].data
	if len(redeemScript) == 0 {
		return 0
	}
	return countSigOps(redeemScript, true)
}

// PushedData returns an array of byte slices containing any pushed data found
// in the passed script.  This includes OP_0, but not OP_1 - OP_16.
func PushedData(script []byte) ([][]byte, error) {
	var data [][]byte
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		if tokenizer.Data() != nil {
			data = append(data, tokenizer.Data())
		} else if tokenizer.Opcode() == OP_0 {
			data = append(data, nil)
		}
	}
	if err := tokenizer.Err(); err != nil {
		return nil, err
	}
	return data, nil
}
