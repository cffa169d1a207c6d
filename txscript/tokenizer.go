// Copyright (c) 2019 The Decred developers
// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"
	"fmt"
)

// opcodeArrayRef points at opcodeArray.  Going through it keeps the opcode
// handlers, which tokenize scripts themselves, out of the initialization of
// opcodeArray.
var opcodeArrayRef *[256]opcode

func init() {
	opcodeArrayRef = &opcodeArray
}

// ScriptTokenizer walks the raw bytes of a script one token at a time without
// allocating.  It is the single place push lengths are decoded, so a script
// that ParseScript rejects as malformed is rejected here with the same
// ErrMalformedPush error.
//
// Typical use:
//
//	tokenizer := MakeScriptTokenizer(script)
//	for tokenizer.Next() {
//		// tokenizer.Opcode(), tokenizer.Data()
//	}
//	if err := tokenizer.Err(); err != nil {
//		...
//	}
type ScriptTokenizer struct {
	script []byte
	offset int32
	op     *opcode
	data   []byte
	err    error
}

// MakeScriptTokenizer returns a tokenizer positioned at the start of script.
func MakeScriptTokenizer(script []byte) ScriptTokenizer {
	return ScriptTokenizer{script: script}
}

// Done reports whether the tokenizer has nothing left to read, either because
// the whole script was consumed or because a malformed push was found.
func (t *ScriptTokenizer) Done() bool {
	return t.err != nil || t.offset >= int32(len(t.script))
}

// malformed records a push that runs past the end of the script.
func (t *ScriptTokenizer) malformed(format string, args ...interface{}) bool {
	t.err = scriptError(ErrMalformedPush, fmt.Sprintf(format, args...))
	return false
}

// Next advances to the next token.  It returns false at the end of the script
// and on a malformed push, after which Err tells the two apart.  On failure
// Opcode and Data keep describing the last good token and ByteIndex points at
// the offending opcode.
func (t *ScriptTokenizer) Next() bool {
	if t.Done() {
		return false
	}

	op := &opcodeArrayRef[t.script[t.offset]]
	rest := t.script[t.offset:]

	var start, dataLen int32
	switch op.length {
	// Opcodes without a payload.  The small integers carry their value in
	// the opcode byte itself.
	case 1:
		t.offset++
		t.op, t.data = op, nil
		return true

	// The length prefixed pushes.
	case -1, -2, -4:
		prefixLen := int32(-op.length)
		if int32(len(rest)) < 1+prefixLen {
			return t.malformed("opcode %s requires %d bytes, but "+
				"script only has %d remaining", op.name, prefixLen,
				len(rest)-1)
		}
		prefix := rest[1 : 1+prefixLen]
		switch prefixLen {
		case 1:
			dataLen = int32(prefix[0])
		case 2:
			dataLen = int32(binary.LittleEndian.Uint16(prefix))
		case 4:
			// Lengths that do not fit an int32 can never fit the
			// script either.
			n := binary.LittleEndian.Uint32(prefix)
			if n > uint32(len(rest)) {
				return t.malformed("opcode %s pushes %d bytes, "+
					"but script only has %d remaining",
					op.name, n, len(rest)-5)
			}
			dataLen = int32(n)
		}
		start = 1 + prefixLen

	// OP_DATA_1 through OP_DATA_75.
	default:
		if op.length <= 0 {
			return t.malformed("invalid opcode length %d", op.length)
		}
		start, dataLen = 1, int32(op.length-1)
	}

	if int32(len(rest))-start < dataLen {
		return t.malformed("opcode %s pushes %d bytes, but script only "+
			"has %d remaining", op.name, dataLen,
			int32(len(rest))-start)
	}

	t.offset += start + dataLen
	t.op, t.data = op, rest[start:start+dataLen]
	return true
}

// Script returns the script being tokenized.
func (t *ScriptTokenizer) Script() []byte {
	return t.script
}

// ByteIndex returns the offset of the next byte to be read.
func (t *ScriptTokenizer) ByteIndex() int32 {
	return t.offset
}

// Opcode returns the opcode byte of the current token.
func (t *ScriptTokenizer) Opcode() byte {
	return t.op.value
}

// Data returns the payload of the current token, nil when it has none.
func (t *ScriptTokenizer) Data() []byte {
	return t.data
}

// Err returns the malformed push error that stopped the tokenizer, if any.
func (t *ScriptTokenizer) Err() error {
	return t.err
}
