package interp

import (
	"bufio"
	"io"
)

// OutputSink is the core's only way to produce visible output (§6): one
// line at a time, with no notion of partial lines or flushing left to
// the host.
type OutputSink interface {
	WriteLine(text string)
}

// InputSource is the core's only way to consume input (§6): one
// logical line at a time. ReadLine returns io.EOF once the source is
// exhausted.
type InputSource interface {
	ReadLine() (string, error)
}

// LineWriterSink adapts any io.Writer (os.Stdout, a bytes.Buffer, a
// websocket frame writer) into an OutputSink.
type LineWriterSink struct {
	w io.Writer
}

func NewLineWriterSink(w io.Writer) *LineWriterSink {
	return &LineWriterSink{w: w}
}

func (s *LineWriterSink) WriteLine(text string) {
	io.WriteString(s.w, text)
	io.WriteString(s.w, "\n")
}

// ScannerSource adapts a bufio.Scanner-compatible reader into an
// InputSource, one ΔΙΑΒΑΣΕ line at a time.
type ScannerSource struct {
	scanner *bufio.Scanner
}

func NewScannerSource(r io.Reader) *ScannerSource {
	return &ScannerSource{scanner: bufio.NewScanner(r)}
}

func (s *ScannerSource) ReadLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// SliceSource replays a fixed list of lines — used by tests and by the
// golden-transcript fixtures in fixtures_test.go.
type SliceSource struct {
	lines []string
	pos   int
}

func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

func (s *SliceSource) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// SliceSink records every written line in order — used by tests.
type SliceSink struct {
	Lines []string
}

func (s *SliceSink) WriteLine(text string) {
	s.Lines = append(s.Lines, text)
}
