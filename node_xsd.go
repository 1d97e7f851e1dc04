package tripn

import (
	"math/big"
	"strconv"

	"github.com/pkg/errors"

	"github.com/quies-net/tripn/internal/xsd"
)

// The As* accessors below mirror tripn.Triple's XSD* methods from the
// teacher repo, generalised from Triple.Object/DatatypeIRI to a Node's
// Value/DatatypeIRI().

var errNotBoolean = errors.New("tripn: node is not an xsd:boolean")
var errNotDecimal = errors.New("tripn: node is not an xsd:decimal")
var errNotInteger = errors.New("tripn: node is not an xsd:integer")
var errNotFloat = errors.New("tripn: node is not an xsd:float")
var errNotDouble = errors.New("tripn: node is not an xsd:double")
var errNotAnyURI = errors.New("tripn: node is not an xsd:anyURI")

// AsBoolean parses n as an xsd:boolean literal.
func (n *Node) AsBoolean() (bool, error) {
	if n.DatatypeIRI() != xsd.Boolean {
		return false, errNotBoolean
	}
	switch n.Value {
	case "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	default:
		return false, errors.Wrap(errNotBoolean, "illegal syntax")
	}
}

// AsDecimal parses n as an xsd:decimal literal.
func (n *Node) AsDecimal() (*big.Float, error) {
	if n.DatatypeIRI() != xsd.Decimal {
		return nil, errNotDecimal
	}
	v, ok := new(big.Float).SetString(n.Value)
	if !ok {
		return nil, errors.Wrap(errNotDecimal, "illegal syntax")
	}
	return v, nil
}

// AsInteger parses n as an xsd:integer literal.
func (n *Node) AsInteger() (*big.Int, error) {
	if n.DatatypeIRI() != xsd.Integer {
		return nil, errNotInteger
	}
	v, ok := new(big.Int).SetString(n.Value, 10)
	if !ok {
		return nil, errors.Wrap(errNotInteger, "illegal syntax")
	}
	return v, nil
}

// AsFloat parses n as an xsd:float literal.
func (n *Node) AsFloat() (float32, error) {
	if n.DatatypeIRI() != xsd.Float {
		return 0, errNotFloat
	}
	f, err := strconv.ParseFloat(n.Value, 32)
	if err != nil {
		return 0, errors.Wrap(errNotFloat, "illegal syntax")
	}
	return float32(f), nil
}

// AsDouble parses n as an xsd:double literal.
func (n *Node) AsDouble() (float64, error) {
	if n.DatatypeIRI() != xsd.Double {
		return 0, errNotDouble
	}
	f, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return 0, errors.Wrap(errNotDouble, "illegal syntax")
	}
	return f, nil
}

// AsAnyURI returns n's value if it is an xsd:anyURI literal.
func (n *Node) AsAnyURI() (string, error) {
	if n.DatatypeIRI() != xsd.AnyURI {
		return "", errNotAnyURI
	}
	return n.Value, nil
}
