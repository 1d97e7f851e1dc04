// Package rdfio provides byte-stream adapters over io.Reader/io.Writer
// (spec §4.4) and the composable Sink transformers — Tee, Filter, Canon,
// Inserter — that wrap tripn.Sink (spec §4.5).
package rdfio

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	tripn "github.com/quies-net/tripn"
)

// ByteSource reads a document's bytes either page-buffered (the common
// case) or one byte at a time for pipe/socket inputs where a buffered
// read would block past the data currently available (spec §4.4). It
// satisfies tripn.ByteReader, so it can be handed to a Reader directly
// via tripn.WithByteSource in place of the Reader's own default
// bufio.Reader.
type ByteSource struct {
	r      *bufio.Reader
	single bool
}

var _ tripn.ByteReader = (*ByteSource)(nil)

// NewByteSource wraps r with a page buffer of the given size (0 selects
// a sensible default).
func NewByteSource(r io.Reader, bufSize int) *ByteSource {
	if bufSize <= 0 {
		bufSize = 4096
	}
	return &ByteSource{r: bufio.NewReaderSize(r, bufSize)}
}

// NewUnbufferedByteSource wraps r so every ReadByte issues exactly one
// underlying Read, for inputs where buffering ahead is unsafe.
func NewUnbufferedByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: bufio.NewReaderSize(oneByteReader{r}, 1), single: true}
}

// oneByteReader caps every Read at one byte, so the bufio.Reader above
// it (which rounds its size up to a small minimum) never reads ahead.
type oneByteReader struct{ r io.Reader }

func (o oneByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return o.r.Read(p)
}

// ReadByte returns the next byte, or io.EOF at end of stream.
func (s *ByteSource) ReadByte() (byte, error) {
	return s.r.ReadByte()
}

// UnreadByte pushes the last byte read by ReadByte back onto the stream.
func (s *ByteSource) UnreadByte() error {
	return s.r.UnreadByte()
}

// Peek returns, without consuming, the next n bytes (or fewer at EOF).
func (s *ByteSource) Peek(n int) ([]byte, error) {
	return s.r.Peek(n)
}

// ByteSink buffers writes to w, optionally deferring the flush to the
// caller's explicit Flush (spec §4.4's "bulk" mode, mirrored by
// tripn.WriterFlags.FlagBulk at the Writer layer). It satisfies
// tripn.ByteWriter, so it can be handed to a Writer directly via
// tripn.WithByteSink in place of the Writer's own default bufio.Writer.
type ByteSink struct {
	w       *bufio.Writer
	bulk    bool
	flushed bool
}

var _ tripn.ByteWriter = (*ByteSink)(nil)

// NewByteSink wraps w with a page buffer; if bulk is true, WriteString
// does not flush after every call.
func NewByteSink(w io.Writer, bulk bool) *ByteSink {
	return &ByteSink{w: bufio.NewWriter(w), bulk: bulk}
}

// WriteString writes s, flushing immediately unless constructed in bulk mode.
func (s *ByteSink) WriteString(str string) error {
	if _, err := s.w.WriteString(str); err != nil {
		return errors.Wrap(err, "rdfio: byte sink write")
	}
	if !s.bulk {
		return s.w.Flush()
	}
	return nil
}

// Flush forces any buffered bytes out to the underlying writer.
func (s *ByteSink) Flush() error {
	return s.w.Flush()
}
