// Package textutil provides UTF-8 validation, column width, and
// case-folding helpers used by the reader and by rdfio's language filter.
package textutil

type utf8State uint8

const (
	stateValid = utf8State(iota)
	stateInvalid
	stateAwaitingOneByte
	stateAwaitingTwoBytesA
	stateAwaitingTwoBytesB
	stateAwaitingTwoBytesC
	stateAwaitingThreeBytesA
	stateAwaitingThreeBytesB
	stateAwaitingThreeBytesC
)

// Validator checks whether a byte string is valid UTF-8 text, one chunk
// at a time, so the reader can validate a document incrementally without
// buffering the whole input first.
type Validator struct {
	state utf8State
}

// NewValidator constructs a Validator ready to check the start of a document.
func NewValidator() *Validator {
	return &Validator{state: stateValid}
}

// ValidateBytes reports whether appending buf to the bytes processed so
// far keeps the stream valid UTF-8. The Validator may still be awaiting
// continuation bytes after this call; use ValidateEnd to check that all
// multi-byte sequences closed cleanly.
func (v *Validator) ValidateBytes(buf []byte) bool {
	if v.state == stateValid && isASCII(buf) {
		return true
	}
	for _, b := range buf {
		v.processByte(b)
	}
	return v.state != stateInvalid
}

// ValidateEnd reports whether the document ended on a complete sequence.
func (v *Validator) ValidateEnd() bool {
	return v.state == stateValid
}

func isASCII(buf []byte) bool {
	for _, b := range buf {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// processByte implements the decoder state machine described at
// http://bjoern.hoehrmann.de/utf-8/decoder/dfa/
func (v *Validator) processByte(b byte) {
	switch v.state {
	case stateValid:
		switch {
		case b <= 0x7f:
			v.state = stateValid
		case b >= 0xc2 && b <= 0xdf:
			v.state = stateAwaitingOneByte
		case (b >= 0xe1 && b <= 0xec) || (b >= 0xee && b <= 0xef):
			v.state = stateAwaitingTwoBytesA
		case b == 0xe0:
			v.state = stateAwaitingTwoBytesB
		case b == 0xed:
			v.state = stateAwaitingTwoBytesC
		case b == 0xf0:
			v.state = stateAwaitingThreeBytesA
		case b >= 0xf1 && b <= 0xf3:
			v.state = stateAwaitingThreeBytesB
		case b == 0xf4:
			v.state = stateAwaitingThreeBytesC
		default:
			v.state = stateInvalid
		}

	case stateAwaitingOneByte:
		v.state = continuationOrInvalid(b, stateValid)

	case stateAwaitingTwoBytesA:
		v.state = continuationOrInvalid(b, stateAwaitingOneByte)
	case stateAwaitingTwoBytesB:
		if b >= 0xa0 && b <= 0xbf {
			v.state = stateAwaitingOneByte
		} else {
			v.state = stateInvalid
		}
	case stateAwaitingTwoBytesC:
		if b >= 0x80 && b <= 0x9f {
			v.state = stateAwaitingOneByte
		} else {
			v.state = stateInvalid
		}

	case stateAwaitingThreeBytesA:
		if b >= 0x90 && b <= 0xbf {
			v.state = stateAwaitingTwoBytesA
		} else {
			v.state = stateInvalid
		}
	case stateAwaitingThreeBytesB:
		v.state = continuationOrInvalid(b, stateAwaitingTwoBytesA)
	case stateAwaitingThreeBytesC:
		if b >= 0x80 && b <= 0x8f {
			v.state = stateAwaitingTwoBytesA
		} else {
			v.state = stateInvalid
		}

	default:
		v.state = stateInvalid
	}
}

func continuationOrInvalid(b byte, next utf8State) utf8State {
	if b >= 0x80 && b <= 0xbf {
		return next
	}
	return stateInvalid
}
