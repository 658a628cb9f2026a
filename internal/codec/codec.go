// Package codec decodes the compressed payload strings carried inside
// push-service frames: base64, then deflate, then JSON.
package codec

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrDecode is the terminal error for any payload that fails base64,
// deflate or JSON decoding.
var ErrDecode = errors.New("payload decode failed")

// Decode unpacks a base64+deflate-compressed JSON payload into a decoded
// JSON value. The wire is observed in two deflate framings depending on
// the server library version: raw deflate is tried first, then
// zlib-wrapped deflate. Both failing, or malformed base64/JSON, yields
// ErrDecode.
func Decode(payload string) (any, error) {
	compressed, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrDecode, err)
	}

	text, err := inflate(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var value any
	if err := json.Unmarshal(text, &value); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrDecode, err)
	}
	return value, nil
}

// inflate decompresses raw deflate data, falling back to zlib-framed
// deflate when the strict framing fails.
func inflate(compressed []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(compressed))
	text, rawErr := io.ReadAll(r)
	r.Close()
	if rawErr == nil {
		return text, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("inflate: %v", rawErr)
	}
	defer zr.Close()

	text, err = io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %v", err)
	}
	return text, nil
}
