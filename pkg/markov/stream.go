package markov

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// CharStream supplies a corpus one character at a time, front to back.
type CharStream interface {
	// Next returns the next character. It returns io.EOF as the error when
	// the stream is fully consumed.
	Next() (rune, error)
}

// ReaderStream is the default CharStream. It decodes UTF-8 from an
// io.Reader; invalid bytes decode to utf8.RuneError.
type ReaderStream struct {
	reader *bufio.Reader
}

// NewReaderStream wraps r in a buffered UTF-8 decoder.
func NewReaderStream(r io.Reader) *ReaderStream {
	if br, ok := r.(*bufio.Reader); ok {
		return &ReaderStream{reader: br}
	}
	return &ReaderStream{reader: bufio.NewReader(r)}
}

// Next returns the next character from the underlying reader.
func (s *ReaderStream) Next() (rune, error) {
	ch, _, err := s.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	return ch, nil
}

// StringStream is a CharStream over an in-memory string.
type StringStream struct {
	text string
	pos  int
}

// NewStringStream returns a stream over text.
func NewStringStream(text string) *StringStream {
	return &StringStream{text: text}
}

// Next returns the next character of the string.
func (s *StringStream) Next() (rune, error) {
	if s.pos >= len(s.text) {
		return 0, io.EOF
	}
	ch, size := utf8.DecodeRuneInString(s.text[s.pos:])
	s.pos += size
	return ch, nil
}
