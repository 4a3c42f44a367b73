// Package codec implements the binary encoding the remote runtime
// decodes: little-endian fixed-width integers plus the compact
// (variable-length, prefix-tagged) integer format used for amounts.
//
// The compact format stores its length class in the low two bits of
// the first byte:
//
//	0b00  single byte, value < 2^6
//	0b01  two bytes, value < 2^14
//	0b10  four bytes, value < 2^30
//	0b11  big-integer mode: upper six bits hold (byteLen - 4),
//	      followed by byteLen little-endian bytes
//
// This is a wire-compatibility constraint, not a design choice; the
// node rejects fixed-width encodings where it expects compact ones.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/blockberries/lapi/types"
)

// Encoder accumulates encoded bytes. The zero value is ready to use.
type Encoder struct {
	buf bytes.Buffer
}

// Bytes returns the encoded buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Raw appends b verbatim.
func (e *Encoder) Raw(b []byte) {
	e.buf.Write(b)
}

// Byte appends a single byte.
func (e *Encoder) Byte(b byte) {
	e.buf.WriteByte(b)
}

// Uint32 appends v as four little-endian bytes.
func (e *Encoder) Uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

// Uint64 appends v as eight little-endian bytes.
func (e *Encoder) Uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

// U128 appends v as sixteen little-endian bytes.
// Panics if v exceeds 128 bits: balances outside the runtime's
// declared domain are an internal invariant violation.
func (e *Encoder) U128(v *uint256.Int) {
	if v.BitLen() > 128 {
		panic("codec: value exceeds the 128-bit balance domain")
	}
	b := v.Bytes32()
	// Bytes32 is big-endian; emit the low 16 bytes reversed.
	for i := 31; i >= 16; i-- {
		e.buf.WriteByte(b[i])
	}
}

// CompactUint appends v in compact form.
func (e *Encoder) CompactUint(v uint64) {
	switch {
	case v < 1<<6:
		e.buf.WriteByte(byte(v) << 2)
	case v < 1<<14:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v)<<2|0b01)
		e.buf.Write(b[:])
	case v < 1<<30:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v)<<2|0b10)
		e.buf.Write(b[:])
	default:
		n := byteLen(v)
		e.buf.WriteByte(byte(n-4)<<2 | 0b11)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v)
		e.buf.Write(b[:n])
	}
}

// CompactU256 appends v in compact form, using big-integer mode for
// values that do not fit four bytes.
func (e *Encoder) CompactU256(v *uint256.Int) {
	if v.IsUint64() && v.Uint64() < 1<<30 {
		e.CompactUint(v.Uint64())
		return
	}
	raw := v.Bytes() // big-endian, minimal length
	n := len(raw)
	e.buf.WriteByte(byte(n-4)<<2 | 0b11)
	for i := n - 1; i >= 0; i-- {
		e.buf.WriteByte(raw[i])
	}
}

// ByteSlice appends a length-prefixed byte slice: compact length
// followed by the raw bytes.
func (e *Encoder) ByteSlice(b []byte) {
	e.CompactUint(uint64(len(b)))
	e.buf.Write(b)
}

// AccountID appends the raw 32 account bytes.
func (e *Encoder) AccountID(a types.AccountID) {
	e.buf.Write(a[:])
}

// Address appends the raw lookup-source bytes (identity lookup).
func (e *Encoder) Address(a types.Address) {
	e.buf.Write(a[:])
}

func byteLen(v uint64) int {
	n := 1
	for v >>= 8; v != 0; v >>= 8 {
		n++
	}
	return n
}

// Decoder consumes encoded bytes in place. The caller must not mutate
// the slice while the Decoder is in use.
type Decoder struct {
	data []byte
	off  int
}

// NewDecoder returns a Decoder over data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Remaining reports how many undecoded bytes are left.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.off
}

func (d *Decoder) take(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, fmt.Errorf("codec: need %d bytes, have %d", n, d.Remaining())
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

// Byte reads a single byte.
func (d *Decoder) Byte() (byte, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint32 reads four little-endian bytes.
func (d *Decoder) Uint32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads eight little-endian bytes.
func (d *Decoder) Uint64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// U128 reads sixteen little-endian bytes.
func (d *Decoder) U128() (*uint256.Int, error) {
	b, err := d.take(16)
	if err != nil {
		return nil, err
	}
	var be [16]byte
	for i := range b {
		be[15-i] = b[i]
	}
	return new(uint256.Int).SetBytes(be[:]), nil
}

// CompactUint reads a compact integer that must fit in a uint64.
func (d *Decoder) CompactUint() (uint64, error) {
	v, err := d.CompactU256()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("codec: compact value overflows uint64")
	}
	return v.Uint64(), nil
}

// CompactU256 reads a compact integer of any length class.
func (d *Decoder) CompactU256() (*uint256.Int, error) {
	first, err := d.Byte()
	if err != nil {
		return nil, err
	}
	switch first & 0b11 {
	case 0b00:
		return uint256.NewInt(uint64(first >> 2)), nil
	case 0b01:
		b, err := d.take(1)
		if err != nil {
			return nil, err
		}
		v := uint64(first)>>2 | uint64(b[0])<<6
		return uint256.NewInt(v), nil
	case 0b10:
		b, err := d.take(3)
		if err != nil {
			return nil, err
		}
		v := uint64(first) | uint64(b[0])<<8 | uint64(b[1])<<16 | uint64(b[2])<<24
		return uint256.NewInt(v >> 2), nil
	default:
		n := int(first>>2) + 4
		if n > 32 {
			return nil, fmt.Errorf("codec: compact big-integer of %d bytes exceeds 256 bits", n)
		}
		le, err := d.take(n)
		if err != nil {
			return nil, err
		}
		be := make([]byte, n)
		for i := range le {
			be[n-1-i] = le[i]
		}
		return new(uint256.Int).SetBytes(be), nil
	}
}

// ByteSlice reads a compact length prefix followed by that many bytes.
func (d *Decoder) ByteSlice() ([]byte, error) {
	n, err := d.CompactUint()
	if err != nil {
		return nil, err
	}
	b, err := d.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// DecodeIndex decodes a stored account nonce (fixed-width u32).
func DecodeIndex(data []byte) (types.Index, error) {
	d := NewDecoder(data)
	v, err := d.Uint32()
	if err != nil {
		return 0, fmt.Errorf("codec: decode index: %w", err)
	}
	return types.Index(v), nil
}

// EncodeIndex encodes an account nonce the way it is stored.
func EncodeIndex(v types.Index) []byte {
	var e Encoder
	e.Uint32(uint32(v))
	return e.Bytes()
}

// DecodeBalance decodes a stored balance (fixed-width u128).
func DecodeBalance(data []byte) (types.Balance, error) {
	d := NewDecoder(data)
	v, err := d.U128()
	if err != nil {
		return types.Balance{}, fmt.Errorf("codec: decode balance: %w", err)
	}
	return *v, nil
}

// EncodeBalance encodes a balance the way it is stored.
func EncodeBalance(v types.Balance) []byte {
	var e Encoder
	e.U128(&v)
	return e.Bytes()
}
