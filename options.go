package tripn

// Syntax selects which member of the Turtle family a Reader or Writer
// targets (spec §6).
type Syntax uint8

const (
	SyntaxTurtle Syntax = iota
	SyntaxTriG
	SyntaxNTriples
	SyntaxNQuads
)

// ReaderFlags are the recognised reader options from spec §6.
type ReaderFlags uint16

const (
	// FlagLax tolerates invalid input, skipping bad statements.
	FlagLax ReaderFlags = 1 << iota
	// FlagVariables accepts "?x"/"$x" as nodes.
	FlagVariables
	// FlagGenerated passes "_:…" labels through verbatim instead of
	// remapping them onto the reader's own blank-id scheme.
	FlagGenerated
	// FlagGlobal omits the per-document blank-node prefix.
	FlagGlobal
	// FlagRelative emits relative IRIs unresolved.
	FlagRelative
	// FlagPrefixed emits CURIEs unexpanded.
	FlagPrefixed
	// FlagDecoded names percent-decoding of unreserved octets in IRIs.
	// The Reader does not read this flag; IRIs keep their percent-escapes
	// as written.
	FlagDecoded
	// FlagOrdered zero-pads generated blank-node serials so string
	// order matches numeric order.
	FlagOrdered
	// FlagStrictAbsolute names the strict inserter mode that refuses
	// relative IRIs and CURIEs (spec §9's Open Question: the pre-1.0
	// behaviour, opt-in). Neither the Reader nor rdfio.Inserter reads
	// this flag; the Inserter's mode is set by rdfio.NewInserter's strict
	// argument.
	FlagStrictAbsolute
)

// Has reports whether all of want is set in f.
func (f ReaderFlags) Has(want ReaderFlags) bool { return f&want == want }

// ReaderOption configures a Reader at construction time.
type ReaderOption func(*Reader)

// WithSyntax selects the grammar the Reader recognises.
func WithSyntax(s Syntax) ReaderOption {
	return func(r *Reader) { r.syntax = s }
}

// WithBase sets the initial base URI.
func WithBase(uri string) ReaderOption {
	return func(r *Reader) { r.env.SetBase(uri) }
}

// WithBasePath sets the initial base URI to the file: URI for an
// on-disk path, as when a document is read straight off the
// filesystem rather than fetched by URI. A malformed path leaves the
// base URI unset.
func WithBasePath(path string) ReaderOption {
	return func(r *Reader) { _ = r.env.SetBaseFromPath(path, "") }
}

// WithReaderFlags sets the reader's option flags.
func WithReaderFlags(flags ReaderFlags) ReaderOption {
	return func(r *Reader) { r.flags = flags }
}

// WithBlankPrefix sets a user-supplied prefix for generated blank-node
// identifiers (spec §3 "Reader state").
func WithBlankPrefix(prefix string) ReaderOption {
	return func(r *Reader) { r.blankPrefix = prefix }
}

// WithLogger installs a structured-log sink for reader diagnostics.
func WithLogger(l Logger) ReaderOption {
	return func(r *Reader) { r.logger = l }
}

// WithDocumentName sets the document name recorded on each Caret.
func WithDocumentName(name string) ReaderOption {
	return func(r *Reader) { r.document = name }
}

// WithByteSource overrides the Reader's byte source with src, bypassing
// the internal bufio.Reader NewReader builds by default. Used to plug
// in an rdfio.ByteSource — e.g. one sized differently than the
// default, or built unbuffered over a pipe/socket.
func WithByteSource(src ByteReader) ReaderOption {
	return func(r *Reader) { r.br = src }
}

// WriterFlags are the recognised writer options from spec §6.
type WriterFlags uint8

const (
	// FlagASCII escapes non-ASCII codepoints on output.
	FlagASCII WriterFlags = 1 << iota
	// FlagBulk defers flushing the byte sink until Close.
	FlagBulk
	// FlagWriterLax tolerates encountering nodes the target syntax
	// cannot represent, by writing them as-is (e.g. "?x" for a variable)
	// instead of erroring.
	FlagWriterLax
	// FlagTerse suppresses indentation (spec §4.7).
	FlagTerse
)

// Has reports whether all of want is set in f.
func (f WriterFlags) Has(want WriterFlags) bool { return f&want == want }

// WriterOption configures a Writer at construction time.
type WriterOption func(*Writer)

// WithWriterSyntax selects the syntax a Writer emits.
func WithWriterSyntax(s Syntax) WriterOption {
	return func(w *Writer) { w.syntax = s }
}

// WithWriterFlags sets the writer's option flags.
func WithWriterFlags(flags WriterFlags) WriterOption {
	return func(w *Writer) { w.flags = flags }
}

// WithWriterEnvironment seeds the writer's environment (base URI and
// prefixes) used for IRI abbreviation.
func WithWriterEnvironment(env *Environment) WriterOption {
	return func(w *Writer) { w.env = env.Copy() }
}

// WithByteSink overrides the Writer's byte sink with sink, bypassing
// the internal bufio.Writer NewWriter builds by default. Used to plug
// in an rdfio.ByteSink, e.g. one shared across several writers or
// explicitly flushed under FlagBulk by the caller.
func WithByteSink(sink ByteWriter) WriterOption {
	return func(w *Writer) { w.bw = sink }
}
