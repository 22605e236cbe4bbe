package arxivtex

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrUndecodable is returned when no fallback encoding accepts a file.
var ErrUndecodable = errors.New("could not decode with any fallback encoding")

// DefaultEncodings is the fallback order used for TeX sources.
var DefaultEncodings = []string{"utf-8", "windows-1252", "iso-8859-1"}

var replacementChar = []byte(string(utf8.RuneError))

// Decoder tries a list of text encodings in order.
type Decoder struct {
	names     []string
	encodings []encoding.Encoding
}

// NewDecoder resolves IANA encoding names. An empty list means DefaultEncodings.
func NewDecoder(names []string) (*Decoder, error) {
	if len(names) == 0 {
		names = DefaultEncodings
	}
	d := &Decoder{}
	for _, name := range names {
		enc, err := ianaindex.IANA.Encoding(name)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", name, err)
		}
		if enc == nil {
			return nil, fmt.Errorf("encoding %q: not supported", name)
		}
		d.names = append(d.names, strings.ToLower(name))
		d.encodings = append(d.encodings, enc)
	}
	return d, nil
}

// Decode returns data as a string using the first encoding that decodes it
// without introducing replacement characters, and that encoding's name.
func (d *Decoder) Decode(data []byte) (string, string, error) {
	// Replacement characters already in the input are legitimate text.
	allowed := bytes.Count(data, replacementChar)
	for i, enc := range d.encodings {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		if bytes.Count(out, replacementChar) > allowed {
			continue
		}
		return string(out), d.names[i], nil
	}
	return "", "", ErrUndecodable
}

// ReadFile reads and decodes the file at path.
func (d *Decoder) ReadFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	text, name, err := d.Decode(data)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}
	return text, name, nil
}
