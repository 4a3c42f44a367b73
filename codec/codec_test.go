package codec

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"

	"github.com/blockberries/lapi/types"
)

func TestCompactUint_RoundTrip(t *testing.T) {
	// Boundary values for every length class.
	cases := []uint64{
		0, 1, 63,
		64, 16383,
		16384, 1<<30 - 1,
		1 << 30, 1<<32 - 1, 1 << 32, 1<<64 - 1,
	}
	for _, v := range cases {
		var e Encoder
		e.CompactUint(v)
		got, err := NewDecoder(e.Bytes()).CompactUint()
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round-trip %d: got %d (bytes %x)", v, got, e.Bytes())
		}
	}
}

func TestCompactUint_LengthClasses(t *testing.T) {
	cases := []struct {
		v    uint64
		size int
	}{
		{0, 1},
		{63, 1},
		{64, 2},
		{16383, 2},
		{16384, 4},
		{1<<30 - 1, 4},
		{1 << 30, 5},
		{1<<32 - 1, 5},
		{1 << 32, 6},
		{1<<64 - 1, 9},
	}
	for _, c := range cases {
		var e Encoder
		e.CompactUint(c.v)
		if len(e.Bytes()) != c.size {
			t.Errorf("compact(%d): %d bytes, want %d", c.v, len(e.Bytes()), c.size)
		}
	}
}

func TestCompactU256_RoundTrip(t *testing.T) {
	big := new(uint256.Int).Lsh(uint256.NewInt(1), 100) // 2^100
	cases := []*uint256.Int{
		uint256.NewInt(0),
		uint256.NewInt(63),
		uint256.NewInt(64),
		uint256.NewInt(16384),
		uint256.NewInt(1 << 30),
		uint256.NewInt(1000),
		big,
		new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1)), // 2^128-1
	}
	for _, v := range cases {
		var e Encoder
		e.CompactU256(v)
		got, err := NewDecoder(e.Bytes()).CompactU256()
		if err != nil {
			t.Fatalf("decode %s: %v", v, err)
		}
		if got.Cmp(v) != 0 {
			t.Errorf("round-trip %s: got %s (bytes %x)", v, got, e.Bytes())
		}
	}
}

func TestCompactU256_AgreesWithCompactUint(t *testing.T) {
	// Small values must encode identically through both paths.
	for _, v := range []uint64{0, 63, 64, 16383, 16384, 1<<30 - 1} {
		var a, b Encoder
		a.CompactUint(v)
		b.CompactU256(uint256.NewInt(v))
		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Errorf("compact(%d): %x != %x", v, a.Bytes(), b.Bytes())
		}
	}
}

func TestFixedWidth_RoundTrip(t *testing.T) {
	var e Encoder
	e.Uint32(0xDEADBEEF)
	e.Uint64(0x0123456789ABCDEF)
	e.U128(uint256.NewInt(77))

	d := NewDecoder(e.Bytes())
	u32, err := d.Uint32()
	if err != nil || u32 != 0xDEADBEEF {
		t.Fatalf("Uint32: %v %x", err, u32)
	}
	u64, err := d.Uint64()
	if err != nil || u64 != 0x0123456789ABCDEF {
		t.Fatalf("Uint64: %v %x", err, u64)
	}
	u128, err := d.U128()
	if err != nil || !u128.Eq(uint256.NewInt(77)) {
		t.Fatalf("U128: %v %s", err, u128)
	}
	if d.Remaining() != 0 {
		t.Fatalf("expected empty decoder, %d bytes left", d.Remaining())
	}
}

func TestU128_LittleEndian(t *testing.T) {
	var e Encoder
	e.U128(uint256.NewInt(1))
	b := e.Bytes()
	if len(b) != 16 {
		t.Fatalf("U128 length: %d", len(b))
	}
	if b[0] != 1 {
		t.Fatalf("expected little-endian layout, got %x", b)
	}
	for _, rest := range b[1:] {
		if rest != 0 {
			t.Fatalf("expected zero high bytes, got %x", b)
		}
	}
}

func TestU128_RejectsOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a value over 128 bits")
		}
	}()
	var e Encoder
	e.U128(new(uint256.Int).Lsh(uint256.NewInt(1), 129))
}

func TestByteSlice_RoundTrip(t *testing.T) {
	var e Encoder
	e.ByteSlice([]byte("runtime-code"))
	got, err := NewDecoder(e.Bytes()).ByteSlice()
	if err != nil {
		t.Fatalf("ByteSlice: %v", err)
	}
	if string(got) != "runtime-code" {
		t.Fatalf("got %q", got)
	}
}

func TestIndexBalance_Helpers(t *testing.T) {
	n, err := DecodeIndex(EncodeIndex(42))
	if err != nil || n != 42 {
		t.Fatalf("index: %v %d", err, n)
	}

	b, err := DecodeBalance(EncodeBalance(types.NewBalance(1000)))
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if want := types.NewBalance(1000); b.Cmp(&want) != 0 {
		t.Fatalf("balance: got %s", b.String())
	}
}

func TestDecoder_Truncated(t *testing.T) {
	if _, err := DecodeIndex([]byte{1, 2}); err == nil {
		t.Error("expected error for truncated index")
	}
	if _, err := DecodeBalance(make([]byte, 8)); err == nil {
		t.Error("expected error for truncated balance")
	}
	if _, err := NewDecoder([]byte{0b11}).CompactU256(); err == nil {
		t.Error("expected error for truncated compact")
	}
}

func TestEncoder_Deterministic(t *testing.T) {
	build := func() []byte {
		var e Encoder
		e.AccountID(types.AccountID{0x01})
		e.CompactUint(1000)
		return e.Bytes()
	}
	if !bytes.Equal(build(), build()) {
		t.Fatal("non-deterministic encoding")
	}
}
