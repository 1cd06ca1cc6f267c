package main

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// displayDecoder turns raw data-run bytes into UTF-8 text for printing.
// This is deliberately the only place in this repository that interprets
// bytes as text in any particular charset - the telnet package's Parser
// hands its Sink raw bytes and never decodes them itself.
type displayDecoder struct {
	name    string
	decoder transform.Transformer
}

// newDisplayDecoder builds a decoder for the named IANA charset. "UTF-8"
// is special-cased to a replacement decoder, matching moodclient's own
// charset handling: invalid sequences are replaced rather than rejected,
// so a single malformed byte never drops the rest of the line.
func newDisplayDecoder(codePage string) (*displayDecoder, error) {
	if strings.EqualFold(codePage, "UTF-8") {
		return &displayDecoder{name: "UTF-8", decoder: encoding.Replacement.NewEncoder()}, nil
	}

	enc, err := ianaindex.IANA.Encoding(codePage)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errors.New("ianaindex: unsupported encoding: " + codePage)
	}

	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return nil, err
	}

	return &displayDecoder{name: name, decoder: enc.NewDecoder()}, nil
}

// Decode converts data from the decoder's charset to a UTF-8 string for
// display. On a transform error the input bytes are returned unchanged
// rather than an error, since this is a logging aid, not a protocol boundary.
func (d *displayDecoder) Decode(data []byte) string {
	out, _, err := transform.Bytes(d.decoder, data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
