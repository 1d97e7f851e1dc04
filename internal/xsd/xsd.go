// Package xsd implements the XSD datatype IRIs recognised by the
// canonicaliser transformer and the node store's canonical-form
// constructors (spec §4.2, §4.5).
package xsd

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const ns = "http://www.w3.org/2001/XMLSchema#"

// Datatype IRIs recognised for canonicalisation.
const (
	String  = ns + "string"
	Boolean = ns + "boolean"
	Decimal = ns + "decimal"
	Integer = ns + "integer"
	Float   = ns + "float"
	Double  = ns + "double"
	AnyURI  = ns + "anyURI"
	HexBin  = ns + "hexBinary"
	Base64  = ns + "base64Binary"
)

// RDFLangString is rdf:langString, the implicit datatype of a
// language-tagged literal.
const RDFLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"

// ErrSyntax signals a literal lexical form that does not match its
// declared datatype's grammar.
var ErrSyntax = errors.New("xsd: invalid lexical form")

// Canonicalizer maps a recognised datatype IRI to a function producing
// the canonical lexical form of a literal's string body. Adding a
// datatype is a local change: append an entry to this table.
var Canonicalizer = map[string]func(string) (string, error){
	Boolean: CanonBoolean,
	Decimal: CanonDecimal,
	Integer: CanonInteger,
	Float:   CanonFloat,
	Double:  CanonDouble,
}

// CanonBoolean normalises "1"/"0" to "true"/"false".
func CanonBoolean(s string) (string, error) {
	switch s {
	case "true", "1":
		return "true", nil
	case "false", "0":
		return "false", nil
	default:
		return "", errors.Wrapf(ErrSyntax, "boolean %q", s)
	}
}

// CanonDecimal renders d with exactly one ".", a digit on each side,
// never in scientific notation.
func CanonDecimal(s string) (string, error) {
	f, ok := new(big.Float).SetPrec(200).SetString(s)
	if !ok {
		return "", errors.Wrapf(ErrSyntax, "decimal %q", s)
	}
	neg := f.Sign() < 0
	text := f.Text('f', -1)
	text = strings.TrimPrefix(text, "-")
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if neg {
		text = "-" + text
	}
	return text, nil
}

// CanonInteger renders i as a signed decimal with no leading zeros,
// except for the literal "0" itself.
func CanonInteger(s string) (string, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "", errors.Wrapf(ErrSyntax, "integer %q", s)
	}
	return i.String(), nil
}

// CanonFloat renders f using shortest-round-trip notation with a
// capital "E" and an explicit sign on the exponent.
func CanonFloat(s string) (string, error) {
	return canonFloating(s, 32)
}

// CanonDouble is CanonFloat at double precision.
func CanonDouble(s string) (string, error) {
	return canonFloating(s, 64)
}

func canonFloating(s string, bits int) (string, error) {
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return "", errors.Wrapf(ErrSyntax, "floating %q", s)
	}
	text := strconv.FormatFloat(f, 'E', -1, bits)
	// Go emits "E+00"/"E-05"; XSD wants an explicit sign with no
	// mandatory zero padding beyond what FormatFloat already gives.
	if i := strings.IndexByte(text, 'E'); i >= 0 && i+1 < len(text) && text[i+1] != '+' && text[i+1] != '-' {
		text = text[:i+1] + "+" + text[i+1:]
	}
	return text, nil
}

// FormatInteger renders a Go int64 as an xsd:integer lexical form.
func FormatInteger(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatDecimal renders a big.Float as an xsd:decimal lexical form.
func FormatDecimal(d *big.Float) string {
	s, _ := CanonDecimal(d.Text('f', -1))
	return s
}

// FormatHex renders bytes as uppercase hex, the xsd:hexBinary form.
func FormatHex(b []byte) string {
	return fmt.Sprintf("%X", b)
}
