package synthload

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuffer_Resize(t *testing.T) {
	var b Buffer

	b.Resize(16)
	if b.Len() != 16 {
		t.Fatalf("Len = %d, want 16", b.Len())
	}
	for i, v := range b.mem {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}

	b.Fill(0xAB)
	b.Resize(32)
	if b.Len() != 32 {
		t.Fatalf("Len = %d, want 32", b.Len())
	}
	// The first 16 bytes survive the grow, the new tail is zeroed.
	for i := 0; i < 16; i++ {
		if b.mem[i] != 0xAB {
			t.Fatalf("byte %d = %#x, want 0xab", i, b.mem[i])
		}
	}
	for i := 16; i < 32; i++ {
		if b.mem[i] != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b.mem[i])
		}
	}

	b.Resize(8)
	if b.Len() != 8 {
		t.Fatalf("Len = %d, want 8", b.Len())
	}

	b.Resize(0)
	if b.Len() != 0 || b.Start() != 0 || b.End() != 0 {
		t.Errorf("empty buffer: len %d start %#x end %#x", b.Len(), b.Start(), b.End())
	}
}

func TestBuffer_FillRandomDeterministic(t *testing.T) {
	var a, b Buffer
	a.Resize(1000)
	b.Resize(1000)

	a.FillRandom(42)
	b.FillRandom(42)
	if !bytes.Equal(a.mem, b.mem) {
		t.Error("same seed should produce identical content")
	}

	b.FillRandom(43)
	if bytes.Equal(a.mem, b.mem) {
		t.Error("different seeds should produce different content")
	}

	// Odd sizes get the trailing partial word filled too.
	var c Buffer
	c.Resize(7)
	c.FillRandom(1)
	allZero := true
	for _, v := range c.mem {
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Error("7-byte fill left the buffer zeroed")
	}
}

func TestBuffer_Addresses(t *testing.T) {
	var b Buffer
	b.Resize(64)

	start, end := b.Start(), b.End()
	if start == 0 {
		t.Fatal("start address is 0 for a non-empty buffer")
	}
	if end != start+64 {
		t.Errorf("end = %#x, want start+64 = %#x", end, start+64)
	}
}

func TestBuffer_SetAddress(t *testing.T) {
	var b Buffer

	if err := b.SetAddress(0x1000, 1); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty buffer: err = %v, want ErrEmpty", err)
	}

	b.Resize(64)
	start := b.Start()

	if err := b.SetAddress(start+10, 0xCC); err != nil {
		t.Fatalf("SetAddress: %v", err)
	}
	if b.mem[10] != 0xCC {
		t.Errorf("byte 10 = %#x, want 0xcc", b.mem[10])
	}

	if err := b.SetAddress(start-1, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("below range: err = %v, want ErrOutOfRange", err)
	}
	if err := b.SetAddress(b.End(), 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("at end: err = %v, want ErrOutOfRange", err)
	}
	if err := b.SetAddress(b.End()-1, 0xDD); err != nil {
		t.Errorf("last byte: %v", err)
	}
}
