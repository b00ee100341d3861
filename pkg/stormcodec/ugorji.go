package stormcodec

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// CBOR encodes to and decodes from CBOR (Concise Binary Object Representation).
// http://cbor.io/
// https://tools.ietf.org/html/rfc7049
//
// Times are written as RFC3339 strings to keep nanoseconds.
var CBOR = &ugorji{name: "cbor", handle: &codec.CborHandle{TimeRFC3339: true}}

// Binc encodes to and decodes from Binc.
// See https://github.com/ugorji/binc
var Binc = &ugorji{name: "binc", handle: &codec.BincHandle{}}

type ugorji struct {
	name   string
	handle codec.Handle
}

func (c *ugorji) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := codec.NewEncoder(&b, c.handle)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c *ugorji) Unmarshal(b []byte, v any) error {
	dec := codec.NewDecoderBytes(b, c.handle)
	return dec.Decode(v)
}

func (c *ugorji) Name() string {
	return c.name
}
