package tripn

import (
	"strings"

	"github.com/quies-net/tripn/internal/textutil"
	"github.com/quies-net/tripn/internal/xsd"
)

// readLiteral reads a quoted literal starting at quote ('"' or '\''),
// in either short or long (triple-quoted) form, then any trailing
// "@lang" or "^^<iri>" suffix (spec §4.6).
func (r *Reader) readLiteral(quote byte) (*Node, Status) {
	long, err := r.peekLongQuote(quote)
	if err != nil {
		return nil, r.ioStatus(err)
	}

	var b strings.Builder
	if long {
		for i := 0; i < 3; i++ {
			r.readByte()
		}
		if st := r.readLongQuoteBody(quote, &b); st != Success {
			return nil, st
		}
	} else {
		r.readByte()
		if st := r.readShortQuoteBody(quote, &b); st != Success {
			return nil, st
		}
	}

	value := b.String()
	return r.readLiteralSuffix(value, long)
}

func (r *Reader) peekLongQuote(quote byte) (bool, error) {
	buf, err := r.br.Peek(3)
	if err != nil {
		return false, nil //nolint:nilerr // short input just means "not long"
	}
	return buf[0] == quote && buf[1] == quote && buf[2] == quote, nil
}

func (r *Reader) readShortQuoteBody(quote byte, b *strings.Builder) Status {
	for {
		c, err := r.readByte()
		if err != nil {
			return r.ioStatus(err)
		}
		switch c {
		case quote:
			return Success
		case '\\':
			if err := r.readStringEscape(b); err != nil {
				return r.fail(BadLiteral, err.Error())
			}
		case '\n', '\r':
			return r.fail(BadText, "unescaped newline in short quoted literal")
		default:
			b.WriteByte(c)
		}
	}
}

func (r *Reader) readLongQuoteBody(quote byte, b *strings.Builder) Status {
	for {
		c, err := r.readByte()
		if err != nil {
			return r.ioStatus(err)
		}
		switch c {
		case quote:
			buf, _ := r.br.Peek(2)
			if len(buf) == 2 && buf[0] == quote && buf[1] == quote {
				r.readByte()
				r.readByte()
				return Success
			}
			b.WriteByte(c)
		case '\\':
			if err := r.readStringEscape(b); err != nil {
				return r.fail(BadLiteral, err.Error())
			}
		default:
			b.WriteByte(c)
		}
	}
}

func (r *Reader) readStringEscape(b *strings.Builder) error {
	c, err := r.readByte()
	if err != nil {
		return err
	}
	switch c {
	case 'u':
		return r.readHexEscape(b, 4)
	case 'U':
		return r.readHexEscape(b, 8)
	case 't':
		b.WriteByte('\t')
	case 'b':
		b.WriteByte('\b')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 'f':
		b.WriteByte('\f')
	case '"', '\'', '\\':
		b.WriteByte(c)
	default:
		return errNewError("illegal escape sequence")
	}
	return nil
}

func errNewError(s string) error {
	return &literalEscapeError{s}
}

type literalEscapeError struct{ reason string }

func (e *literalEscapeError) Error() string { return e.reason }

// readLiteralSuffix reads the optional "@lang" or "^^<iri>"/"^^prefix:local"
// suffix after a quoted literal's closing quote (spec §4.6).
func (r *Reader) readLiteralSuffix(value string, long bool) (*Node, Status) {
	c, err := r.peekByte()
	if err != nil {
		n := NewTypedLiteral(value, xsd.String)
		r.setLong(n, long)
		return n, Success
	}

	switch c {
	case '@':
		r.readByte()
		lang, st := r.readLangTag()
		if st != Success {
			return nil, st
		}
		// Fold to a canonical case so two differently-cased encounters of
		// the same BCP 47 tag ("en" vs "EN") intern to the same node.
		n := NewLangLiteral(value, textutil.FoldCase(lang))
		r.setLong(n, long)
		return n, Success

	case '^':
		r.readByte()
		if st := r.expectByte('^'); st != Success {
			return nil, st
		}
		datatype, st := r.readDatatypeIRI()
		if st != Success {
			return nil, st
		}
		n := NewTypedLiteral(value, datatype)
		r.setLong(n, long)
		return n, Success

	default:
		n := NewTypedLiteral(value, xsd.String)
		r.setLong(n, long)
		return n, Success
	}
}

func (r *Reader) setLong(n *Node, long bool) {
	if long {
		n.Flags |= FlagIsLong
	}
}

func (r *Reader) readLangTag() (string, Status) {
	var b strings.Builder
	first := true
	sawCharSinceDash := false
	for {
		c, err := r.peekByte()
		if err != nil || isTermByte(c) {
			break
		}
		switch {
		case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			r.readByte()
			b.WriteByte(c)
			sawCharSinceDash = true
			first = false
		case c >= '0' && c <= '9' && !first:
			r.readByte()
			b.WriteByte(c)
			sawCharSinceDash = true
		case c == '-':
			if !sawCharSinceDash {
				return "", r.fail(BadSyntax, "empty subtag in language tag")
			}
			r.readByte()
			b.WriteByte(c)
			sawCharSinceDash = false
		default:
			return "", r.fail(BadSyntax, "illegal character in language tag")
		}
	}
	if b.Len() == 0 || !sawCharSinceDash {
		return "", r.fail(BadSyntax, "empty language tag")
	}
	return b.String(), Success
}

func (r *Reader) readDatatypeIRI() (string, Status) {
	c, err := r.peekByte()
	if err != nil {
		return "", r.ioStatus(err)
	}
	if c == '<' {
		return r.readIRIRef()
	}
	node, st := r.readIRIOrCURIE()
	if st != Success {
		return "", st
	}
	return node.Value, Success
}

// readNumericLiteral reads an unquoted xsd:integer, xsd:decimal, or
// xsd:double token (spec §4.6): detected by a leading sign, ".", or
// digit, typed by which of those three grammars it matches.
func (r *Reader) readNumericLiteral() (*Node, Status) {
	var b strings.Builder
	c, _ := r.peekByte()
	if c == '+' || c == '-' {
		r.readByte()
		b.WriteByte(c)
	}

	sawIntDigit := false
	for {
		c, err := r.peekByte()
		if err != nil || !isDigitByte(c) {
			break
		}
		r.readByte()
		b.WriteByte(c)
		sawIntDigit = true
	}

	isDecimal := false
	c, _ = r.peekByte()
	if c == '.' {
		// Only part of the number if followed by a digit or exponent;
		// otherwise "." is the statement terminator.
		buf, _ := r.br.Peek(2)
		if len(buf) == 2 && (isDigitByte(buf[1]) || buf[1] == 'e' || buf[1] == 'E') {
			isDecimal = true
			r.readByte()
			b.WriteByte('.')
			for {
				c, err := r.peekByte()
				if err != nil || !isDigitByte(c) {
					break
				}
				r.readByte()
				b.WriteByte(c)
			}
		} else if !sawIntDigit {
			return nil, r.fail(BadSyntax, "decimal point without any digits")
		}
	}

	isDouble := false
	c, _ = r.peekByte()
	if c == 'e' || c == 'E' {
		isDouble = true
		r.readByte()
		b.WriteByte(c)
		c, _ = r.peekByte()
		if c == '+' || c == '-' {
			r.readByte()
			b.WriteByte(c)
		}
		sawExpDigit := false
		for {
			c, err := r.peekByte()
			if err != nil || !isDigitByte(c) {
				break
			}
			r.readByte()
			b.WriteByte(c)
			sawExpDigit = true
		}
		if !sawExpDigit {
			return nil, r.fail(BadSyntax, "no digits in exponent")
		}
	}

	lexical := b.String()
	switch {
	case isDouble:
		canon, err := xsd.CanonDouble(lexical)
		if err != nil {
			return nil, r.fail(BadLiteral, err.Error())
		}
		return NewTypedLiteral(canon, xsd.Double), Success
	case isDecimal:
		canon, err := xsd.CanonDecimal(lexical)
		if err != nil {
			return nil, r.fail(BadLiteral, err.Error())
		}
		return NewTypedLiteral(canon, xsd.Decimal), Success
	default:
		canon, err := xsd.CanonInteger(lexical)
		if err != nil {
			return nil, r.fail(BadLiteral, err.Error())
		}
		return NewTypedLiteral(canon, xsd.Integer), Success
	}
}
