package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// MaxStringLen bounds decoded strings.
const MaxStringLen = 1 << 16

// Writer writes length-prefixed records in big-endian format.
// All write methods accumulate errors internally; call Err() after writing
// to check for failures.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a new Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered during writing.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) write(data []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(data)
}

// Byte writes a single byte.
func (w *Writer) Byte(v byte) {
	w.write([]byte{v})
}

// Bytes writes v as is, with no length prefix.
func (w *Writer) Bytes(v []byte) {
	w.write(v)
}

// VarInt writes v as a varint.
func (w *Writer) VarInt(v int32) {
	var buf [MaxVarIntLen]byte
	n := PutVarInt(buf[:], v)
	w.write(buf[:n])
}

// VarLong writes v as a varlong.
func (w *Writer) VarLong(v int64) {
	var buf [MaxVarLongLen]byte
	n := putUvarint(buf[:], uint64(v))
	w.write(buf[:n])
}

// Len writes a collection length.
func (w *Writer) Len(n int) {
	w.VarInt(int32(n))
}

// Text writes a length-prefixed UTF-8 string.
func (w *Writer) Text(s string) {
	w.Len(len(s))
	w.write([]byte(s))
}

// Float32 writes the IEEE 754 bits of v.
func (w *Writer) Float32(v float32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	w.write(buf[:])
}

// Float32s writes a length-prefixed float32 array in one write.
func (w *Writer) Float32s(vs []float32) {
	w.Len(len(vs))
	if len(vs) == 0 {
		return
	}
	buf := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	w.write(buf)
}

// Reader is the decoding counterpart of Writer. After the first failure every
// method returns a zero value; check Err() once at the end.
type Reader struct {
	r   io.Reader
	err error
}

// NewReader creates a new Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error encountered during reading.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) read(buf []byte) bool {
	if r.err != nil {
		return false
	}
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.err = err
		return false
	}
	return true
}

// Byte reads a single byte.
func (r *Reader) Byte() byte {
	var buf [1]byte
	if !r.read(buf[:]) {
		return 0
	}
	return buf[0]
}

// VarInt reads a varint.
func (r *Reader) VarInt() int32 {
	if r.err != nil {
		return 0
	}
	v, _, err := ReadVarInt(r.r)
	if err != nil {
		r.err = err
		return 0
	}
	return v
}

// VarLong reads a varlong.
func (r *Reader) VarLong() int64 {
	if r.err != nil {
		return 0
	}
	v, _, err := ReadVarLong(r.r)
	if err != nil {
		r.err = err
		return 0
	}
	return v
}

// Len reads a collection length and rejects values outside [0, limit].
func (r *Reader) Len(limit int) int {
	n := r.VarInt()
	if r.err != nil {
		return 0
	}
	if n < 0 || int(n) > limit {
		r.err = fmt.Errorf("length %d out of range [0,%d]", n, limit)
		return 0
	}
	return int(n)
}

// Text reads a string written by Writer.Text.
func (r *Reader) Text() string {
	n := r.Len(MaxStringLen)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	if !r.read(buf) {
		return ""
	}
	return string(buf)
}

// Float32 reads the IEEE 754 bits written by Writer.Float32.
func (r *Reader) Float32() float32 {
	var buf [4]byte
	if !r.read(buf[:]) {
		return 0
	}
	return math.Float32frombits(binary.BigEndian.Uint32(buf[:]))
}

// Float32s reads an array written by Writer.Float32s. An empty array decodes
// as nil.
func (r *Reader) Float32s(limit int) []float32 {
	n := r.Len(limit)
	if n == 0 {
		return nil
	}
	buf := make([]byte, 4*n)
	if !r.read(buf) {
		return nil
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.BigEndian.Uint32(buf[4*i:]))
	}
	return out
}
