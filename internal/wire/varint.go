package wire

import (
	"fmt"
	"io"
)

// MaxVarIntLen and MaxVarLongLen bound the encoded sizes.
const (
	MaxVarIntLen  = 5
	MaxVarLongLen = 10
)

// ReadVarInt decodes a varint and returns the value and the bytes consumed.
func ReadVarInt(r io.Reader) (int32, int, error) {
	var result uint32
	var numRead int
	buf := make([]byte, 1)

	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, numRead, err
		}
		numRead++

		result |= uint32(buf[0]&0x7F) << (7 * (numRead - 1))

		if buf[0]&0x80 == 0 {
			break
		}

		if numRead >= MaxVarIntLen {
			return 0, numRead, fmt.Errorf("varint too long")
		}
	}

	return int32(result), numRead, nil
}

// PutVarInt encodes value into buf, which must hold MaxVarIntLen bytes, and
// returns the number of bytes used.
func PutVarInt(buf []byte, value int32) int {
	return putUvarint(buf, uint64(uint32(value)))
}

// ReadVarLong decodes a varlong and returns the value and the bytes consumed.
func ReadVarLong(r io.Reader) (int64, int, error) {
	var result uint64
	var numRead int
	buf := make([]byte, 1)

	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, numRead, err
		}
		numRead++

		result |= uint64(buf[0]&0x7F) << (7 * (numRead - 1))

		if buf[0]&0x80 == 0 {
			break
		}

		if numRead >= MaxVarLongLen {
			return 0, numRead, fmt.Errorf("varlong too long")
		}
	}

	return int64(result), numRead, nil
}

func putUvarint(buf []byte, val uint64) int {
	n := 0
	for {
		b := byte(val & 0x7F)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if val == 0 {
			break
		}
	}
	return n
}
