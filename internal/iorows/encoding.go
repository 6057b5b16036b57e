package iorows

import (
	"errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// Encoding finds a character encoding by its WHATWG name, falling back to
// the IANA registry.
func Encoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err == nil {
		return enc, nil
	}

	enc, ianaErr := ianaindex.IANA.Encoding(name)
	if ianaErr != nil {
		return nil, EncodingError(name, err)
	}
	// IANA knows the name, but x/text has no decoder for it
	if enc == nil {
		return nil, EncodingError(name, errors.New("encoding is not supported"))
	}
	return enc, nil
}
