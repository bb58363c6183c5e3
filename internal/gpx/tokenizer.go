package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
	"golang.org/x/net/html/charset"
)

// tokenizer reads raw XML tokens strictly forward and keeps its own stack of
// open elements. Names keep their literal namespace prefix
// ("groundspeak:log"), so the parser matches on the names that appear in the
// file rather than on resolved namespace URIs.
type tokenizer struct {
	dec   *xml.Decoder
	src   *sourceReader
	stack []string
	root  string
}

// sourceReader remembers the first read error of the input, so that I/O
// failures are not mistaken for malformed documents.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF && s.err == nil {
		s.err = err
	}
	return n, err
}

func newTokenizer(r io.Reader) *tokenizer {
	src := &sourceReader{r: r}
	dec := xml.NewDecoder(src)
	// GPX files are usually UTF-8, older exports declare ISO-8859-1 or windows-1252
	dec.CharsetReader = charset.NewReaderLabel
	return &tokenizer{dec: dec, src: src}
}

// qualified returns the literal element name including its prefix.
func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// depth is the number of currently open elements.
func (t *tokenizer) depth() int {
	return len(t.stack)
}

// next returns the next StartElement, EndElement or CharData token. Comments,
// processing instructions, directives and text outside the root element are
// dropped. Returned tokens are copies and stay valid after the next call.
//
// io.EOF is only returned once the document ended with every element closed.
// Read errors of the input are returned wrapped, any other error is
// structural.
func (t *tokenizer) next() (xml.Token, error) {
	for {
		tok, err := t.dec.RawToken()
		if errors.Is(err, io.EOF) {
			if len(t.stack) > 0 {
				return nil, internalerrors.Structural(opParse, nil,
					"document ended inside element %q", t.stack[len(t.stack)-1])
			}
			return nil, io.EOF
		}
		if err != nil {
			if t.src.err != nil {
				return nil, fmt.Errorf("failed to read XML: %w", t.src.err)
			}
			line, _ := t.dec.InputPos()
			return nil, internalerrors.Structural(opParse, err, "malformed XML near line %d", line)
		}

		switch tk := tok.(type) {
		case xml.StartElement:
			name := qualified(tk.Name)
			if len(t.stack) == 0 {
				if t.root != "" {
					return nil, internalerrors.Structural(opParse, nil,
						"second root element %q after %q", name, t.root)
				}
				t.root = name
			}
			t.stack = append(t.stack, name)
			return tk.Copy(), nil

		case xml.EndElement:
			name := qualified(tk.Name)
			if len(t.stack) == 0 {
				return nil, internalerrors.Structural(opParse, nil, "unexpected closing tag %q", name)
			}
			if open := t.stack[len(t.stack)-1]; open != name {
				return nil, internalerrors.Structural(opParse, nil,
					"closing tag %q does not match open element %q", name, open)
			}
			t.stack = t.stack[:len(t.stack)-1]
			return tk, nil

		case xml.CharData:
			if len(t.stack) == 0 {
				continue
			}
			return tk.Copy(), nil
		}
	}
}
