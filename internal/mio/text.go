package mio

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
)

// decodeName reads a fixed-length, zero-terminated single-byte string.
func decodeName(data []byte, offset, length int) string {
	raw := window(data, offset, length)
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
