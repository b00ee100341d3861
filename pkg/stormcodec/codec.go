// Package stormcodec gathers the formats that can be used to store records in a Storm database.
package stormcodec

import (
	"strings"

	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
)

// Default is the codec used when none is specified.
const Default = "msgpack"

var codecs = map[string]codec.MarshalUnmarshaler{
	"msgpack":   msgpack.Codec,
	"json":      json.Codec,
	CBOR.Name(): CBOR,
	Binc.Name(): Binc,
}

// Lookup returns the codec registered under the given name.
func Lookup(name string) (codec.MarshalUnmarshaler, error) {
	if name == "" {
		name = Default
	}

	c, ok := codecs[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unsupported database codec: %s", name)
	}
	return c, nil
}
