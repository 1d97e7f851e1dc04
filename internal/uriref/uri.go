// Package uriref implements RFC 3986 URI parsing, resolution, and
// relativisation without allocating a decomposed copy of the string:
// a URIView borrows slices of the strings it was built from.
package uriref

import "strings"

// PathPrefix is either a borrowed slice of a base URI's path (when a
// view was produced by Resolve) or an up-reference count (when a view
// was produced by Relativise). At most one of the two is meaningful;
// UpRefs == 0 and Prefix == "" both mean "no prefix".
type PathPrefix struct {
	Prefix string
	UpRefs int
}

// URIView is a borrowed, non-owning decomposition of a URI string into
// its RFC 3986 components. Parsers produce views with an empty
// PathPrefix; Resolve and Relativise populate it.
type URIView struct {
	Scheme     string
	Authority  string
	HasAuth    bool
	PathPrefix PathPrefix
	Path       string
	Query      string
	HasQuery   bool
	Fragment   string
	HasFrag    bool
}

// IsEmpty reports whether v is the zero view returned on parse failure.
func (v URIView) IsEmpty() bool {
	return v.Scheme == "" && !v.HasAuth && v.PathPrefix == (PathPrefix{}) &&
		v.Path == "" && !v.HasQuery && !v.HasFrag
}

// HasScheme reports whether s begins with RFC 3986 scheme grammar
// (ALPHA (ALPHA / DIGIT / "+" / "-" / ".")*) followed by ":".
func HasScheme(s string) bool {
	i := schemeLen(s)
	return i > 0 && i < len(s) && s[i] == ':'
}

func schemeLen(s string) int {
	if len(s) == 0 || !isAlpha(s[0]) {
		return 0
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.':
			continue
		default:
			return i
		}
	}
	return len(s)
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Parse recognises [scheme:][//authority][path][?query][#fragment].
// On malformed input it fails silently, returning the zero view; check
// with IsEmpty or re-derive failure from a non-empty source string.
func Parse(s string) URIView {
	var v URIView
	rest := s

	if i := schemeLen(s); i > 0 && i < len(s) && s[i] == ':' {
		v.Scheme = s[:i]
		rest = s[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		v.HasAuth = true
		end := len(rest)
		for i, c := range []byte(rest) {
			if c == '/' || c == '?' || c == '#' {
				end = i
				break
			}
		}
		v.Authority = rest[:end]
		rest = rest[end:]
	}

	pathEnd := len(rest)
	for i, c := range []byte(rest) {
		if c == '?' || c == '#' {
			pathEnd = i
			break
		}
	}
	v.Path = rest[:pathEnd]
	rest = rest[pathEnd:]

	if strings.HasPrefix(rest, "?") {
		rest = rest[1:]
		v.HasQuery = true
		end := len(rest)
		for i, c := range []byte(rest) {
			if c == '#' {
				end = i
				break
			}
		}
		v.Query = rest[:end]
		rest = rest[end:]
	}

	if strings.HasPrefix(rest, "#") {
		v.HasFrag = true
		v.Fragment = rest[1:]
	}

	return v
}

// String renders the canonical serialisation of v.
func (v URIView) String() string {
	var b strings.Builder
	b.Grow(StringLength(v))
	_ = v.WriteTo(&b)
	return b.String()
}

// StringLength computes the serialised length of v without allocating.
func StringLength(v URIView) int {
	n := 0
	if v.Scheme != "" {
		n += len(v.Scheme) + 1
	}
	if v.HasAuth {
		n += 2 + len(v.Authority)
	}
	if v.PathPrefix.UpRefs > 0 {
		n += v.PathPrefix.UpRefs * 3 // "../" each
	} else {
		n += len(v.PathPrefix.Prefix)
	}
	n += len(v.Path)
	if v.HasQuery {
		n += 1 + len(v.Query)
	}
	if v.HasFrag {
		n += 1 + len(v.Fragment)
	}
	return n
}

type byteWriter interface {
	WriteString(string) (int, error)
}

// WriteTo writes the canonical serialisation of v to sink.
func (v URIView) WriteTo(sink byteWriter) error {
	if v.Scheme != "" {
		if _, err := sink.WriteString(v.Scheme); err != nil {
			return err
		}
		if _, err := sink.WriteString(":"); err != nil {
			return err
		}
	}
	if v.HasAuth {
		if _, err := sink.WriteString("//"); err != nil {
			return err
		}
		if _, err := sink.WriteString(v.Authority); err != nil {
			return err
		}
	}
	if v.PathPrefix.UpRefs > 0 {
		for i := 0; i < v.PathPrefix.UpRefs; i++ {
			if _, err := sink.WriteString("../"); err != nil {
				return err
			}
		}
	} else if v.PathPrefix.Prefix != "" {
		if _, err := sink.WriteString(v.PathPrefix.Prefix); err != nil {
			return err
		}
	}
	if _, err := sink.WriteString(v.Path); err != nil {
		return err
	}
	if v.HasQuery {
		if _, err := sink.WriteString("?"); err != nil {
			return err
		}
		if _, err := sink.WriteString(v.Query); err != nil {
			return err
		}
	}
	if v.HasFrag {
		if _, err := sink.WriteString("#"); err != nil {
			return err
		}
		if _, err := sink.WriteString(v.Fragment); err != nil {
			return err
		}
	}
	return nil
}

// mergePaths implements RFC 3986 §5.3 path merging for Resolve.
func mergePaths(base URIView, refPath string) string {
	if base.HasAuth && base.Path == "" {
		return "/" + refPath
	}
	if i := strings.LastIndexByte(base.Path, '/'); i >= 0 {
		return base.Path[:i+1] + refPath
	}
	return refPath
}

// removeDotSegments implements RFC 3986 §5.2.4.
func removeDotSegments(path string) string {
	var out []string
	absolute := strings.HasPrefix(path, "/")
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case ".":
			// drop
		case "..":
			if len(out) > 0 && out[len(out)-1] != "" {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	result := strings.Join(out, "/")
	if absolute && !strings.HasPrefix(result, "/") {
		result = "/" + result
	}
	return result
}

// Resolve implements RFC 3986 §5.2.2 "strict" reference resolution: ref
// is resolved against base, which must itself be absolute.
func Resolve(ref, base URIView) URIView {
	var t URIView

	switch {
	case ref.Scheme != "":
		t.Scheme = ref.Scheme
		t.HasAuth, t.Authority = ref.HasAuth, ref.Authority
		t.Path = removeDotSegments(ref.Path)
		t.HasQuery, t.Query = ref.HasQuery, ref.Query

	case ref.HasAuth:
		t.Scheme = base.Scheme
		t.HasAuth, t.Authority = true, ref.Authority
		t.Path = removeDotSegments(ref.Path)
		t.HasQuery, t.Query = ref.HasQuery, ref.Query

	case ref.Path == "":
		t.Scheme = base.Scheme
		t.HasAuth, t.Authority = base.HasAuth, base.Authority
		t.Path = base.Path
		if ref.HasQuery {
			t.HasQuery, t.Query = true, ref.Query
		} else {
			t.HasQuery, t.Query = base.HasQuery, base.Query
		}

	case strings.HasPrefix(ref.Path, "/"):
		t.Scheme = base.Scheme
		t.HasAuth, t.Authority = base.HasAuth, base.Authority
		t.Path = removeDotSegments(ref.Path)
		t.HasQuery, t.Query = ref.HasQuery, ref.Query

	default:
		t.Scheme = base.Scheme
		t.HasAuth, t.Authority = base.HasAuth, base.Authority
		t.Path = removeDotSegments(mergePaths(base, ref.Path))
		t.HasQuery, t.Query = ref.HasQuery, ref.Query
	}

	t.HasFrag, t.Fragment = ref.HasFrag, ref.Fragment
	return t
}

// IsWithin reports whether uri has the same scheme and authority as
// base, and uri's path begins with base's path up to and including the
// final "/".
func IsWithin(uri, base URIView) bool {
	if uri.Scheme != base.Scheme || uri.HasAuth != base.HasAuth || uri.Authority != base.Authority {
		return false
	}
	i := strings.LastIndexByte(base.Path, '/')
	if i < 0 {
		return false
	}
	prefix := base.Path[:i+1]
	return strings.HasPrefix(uri.Path, prefix)
}

// Relativise returns the shortest reference that resolves back to uri
// under base, per Resolve. Ties (differ only in scheme/authority) keep
// uri unchanged; an exact match returns the empty view.
func Relativise(uri, base URIView) URIView {
	if uri.Scheme != base.Scheme || uri.HasAuth != base.HasAuth || uri.Authority != base.Authority {
		return uri
	}
	if uri.Path == base.Path && uri.Query == base.Query && uri.HasQuery == base.HasQuery {
		return URIView{HasFrag: uri.HasFrag, Fragment: uri.Fragment}
	}

	// Longest common path-prefix ending at a "/".
	commonSlash := -1
	n := len(uri.Path)
	if len(base.Path) < n {
		n = len(base.Path)
	}
	for i := 0; i < n; i++ {
		if uri.Path[i] != base.Path[i] {
			break
		}
		if uri.Path[i] == '/' {
			commonSlash = i
		}
	}

	var t URIView
	t.HasQuery, t.Query = uri.HasQuery, uri.Query
	t.HasFrag, t.Fragment = uri.HasFrag, uri.Fragment

	if commonSlash < 0 {
		t.Path = uri.Path
		return t
	}

	remBase := base.Path[commonSlash+1:]
	upRefs := strings.Count(remBase, "/")
	t.PathPrefix = PathPrefix{UpRefs: upRefs}
	t.Path = uri.Path[commonSlash+1:]
	return t
}
