package store

import (
	"encoding/binary"
	"math"
)

// Codec converts a record to and from its fixed-width binary layout.
//
// Every record of a given type occupies exactly Size bytes in a snapshot:
// integer fields as little-endian int32, money fields as little-endian
// IEEE-754 float64 bits, string fields as fixed-width NUL-padded byte runs
// in declaration order. Fixed sizing is what makes the snapshot format
// "count, then count records" seekable and keeps load trivial.
type Codec[T any] interface {
	// Size returns the exact encoded length of one record in bytes.
	Size() int

	// AppendBinary appends the fixed-width encoding of rec to dst.
	AppendBinary(dst []byte, rec T) []byte

	// DecodeBinary decodes one record from exactly Size() bytes.
	DecodeBinary(src []byte) (T, error)
}

// Field widths shared by the record layouts. These match the original
// snapshot format and must not change while file compatibility matters.
const (
	NameWidth        = 50
	PhoneWidth       = 15
	EmailWidth       = 50
	AddressWidth     = 100
	NotesWidth       = 200
	CategoryWidth    = 30
	DescriptionWidth = 200
	DateWidth        = 20
	IDWidth          = 20
	PaymentWidth     = 20
	StatusWidth      = 20
	TypeWidth        = 10
)

// AppendFixedString appends s NUL-padded to exactly width bytes.
// Strings longer than width-1 are truncated; the final byte is always NUL
// so a decoded field round-trips as a terminated C-style string.
func AppendFixedString(dst []byte, s string, width int) []byte {
	b := []byte(s)
	if len(b) > width-1 {
		b = b[:width-1]
	}
	dst = append(dst, b...)
	for i := len(b); i < width; i++ {
		dst = append(dst, 0)
	}
	return dst
}

// FixedString decodes a NUL-padded field of the given width starting at off.
func FixedString(src []byte, off, width int) string {
	field := src[off : off+width]
	for i, c := range field {
		if c == 0 {
			return string(field[:i])
		}
	}
	return string(field)
}

// AppendInt32 appends v as little-endian int32.
func AppendInt32(dst []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

// Int32At decodes a little-endian int32 starting at off.
func Int32At(src []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(src[off : off+4]))
}

// AppendFloat64 appends v as little-endian IEEE-754 bits.
func AppendFloat64(dst []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
}

// Float64At decodes a little-endian float64 starting at off.
func Float64At(src []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(src[off : off+8]))
}
