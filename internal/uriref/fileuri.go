package uriref

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadFileURI signals a malformed percent escape or scheme mismatch
// while decoding a file: URI.
var ErrBadFileURI = errors.New("uriref: invalid file URI")

// isPctUnreserved reports whether c may appear unescaped in a file URI
// path per RFC 3986's unreserved set plus "/" as the path separator.
func isPctUnreserved(c byte) bool {
	switch {
	case isAlpha(c) || isDigit(c):
		return true
	}
	switch c {
	case '-', '.', '_', '~', '/':
		return true
	}
	return false
}

// WriteFileURI renders path (and optional hostname) as a file: URI,
// percent-escaping characters outside the unreserved set. On Windows,
// backslashes are converted to "/" and a leading "<drive>:" is escaped
// as "/<drive>:". A relative path is emitted without an authority.
func WriteFileURI(path, hostname string, sink byteWriter) error {
	if runtime.GOOS == "windows" {
		path = strings.ReplaceAll(path, "\\", "/")
	}

	isAbsolute := strings.HasPrefix(path, "/")
	isWindowsDrive := len(path) >= 2 && isAlpha(path[0]) && path[1] == ':'

	if !isAbsolute && !isWindowsDrive {
		// relative path: authority-less file:path.
		if _, err := sink.WriteString("file:"); err != nil {
			return err
		}
		return writePctEscaped(path, sink)
	}
	if _, err := sink.WriteString("file://"); err != nil {
		return err
	}
	if hostname != "" {
		if _, err := sink.WriteString(hostname); err != nil {
			return err
		}
	}
	if isWindowsDrive {
		if _, err := sink.WriteString("/"); err != nil {
			return err
		}
	}
	return writePctEscaped(path, sink)
}

func writePctEscaped(s string, sink byteWriter) error {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isPctUnreserved(c) || c == ':' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		if c < 0x10 {
			b.WriteByte('0')
		}
		b.WriteString(strings.ToUpper(strconv.FormatInt(int64(c), 16)))
	}
	_, err := sink.WriteString(b.String())
	return err
}

// ParseFileURI decodes a file: URI into an OS path, percent-decoding
// escapes and returning the hostname (if any) separately. On Windows a
// leading "/<drive>:" path is translated to "<drive>:".
func ParseFileURI(uri string, hostname *string) (string, error) {
	v := Parse(uri)
	if v.Scheme != "" && v.Scheme != "file" {
		return "", errors.Wrapf(ErrBadFileURI, "scheme %q", v.Scheme)
	}

	if hostname != nil {
		*hostname = v.Authority
	}

	decoded, err := pctDecode(v.Path)
	if err != nil {
		return "", err
	}

	if runtime.GOOS == "windows" {
		if len(decoded) >= 3 && decoded[0] == '/' && isAlpha(decoded[1]) && decoded[2] == ':' {
			decoded = decoded[1:]
		}
	}
	return decoded, nil
}

func pctDecode(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", errors.Wrap(ErrBadFileURI, "truncated percent escape")
		}
		v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return "", errors.Wrapf(ErrBadFileURI, "illegal escape %q", s[i:i+3])
		}
		b.WriteByte(byte(v))
		i += 2
	}
	return b.String(), nil
}
