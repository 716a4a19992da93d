// Package synthload implements the workload generator: a byte buffer
// sized and filled over a line-oriented command protocol, held live so
// an external scanner can read it out of this process's memory.
package synthload

import (
	"errors"
	"math/rand/v2"
	"unsafe"
)

var (
	ErrEmpty      = errors.New("memory empty")
	ErrOutOfRange = errors.New("address not in range")
)

// Buffer is the scannable memory region. The zero value is an empty
// buffer.
type Buffer struct {
	mem []byte
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int {
	return len(b.mem)
}

// Resize grows or shrinks the buffer to n bytes. Grown regions are
// zeroed; existing content within the new size is kept.
func (b *Buffer) Resize(n uint64) {
	if uint64(len(b.mem)) == n {
		return
	}
	next := make([]byte, n)
	copy(next, b.mem)
	b.mem = next
}

// Fill sets every byte to value.
func (b *Buffer) Fill(value byte) {
	for i := range b.mem {
		b.mem[i] = value
	}
}

// FillRandom fills the buffer from a PCG stream seeded with seed. The
// same seed always produces the same content for a given size.
func (b *Buffer) FillRandom(seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	i := 0
	for ; i+8 <= len(b.mem); i += 8 {
		v := rng.Uint64()
		for j := 0; j < 8; j++ {
			b.mem[i+j] = byte(v >> (8 * j))
		}
	}
	if i < len(b.mem) {
		v := rng.Uint64()
		for ; i < len(b.mem); i++ {
			b.mem[i] = byte(v)
			v >>= 8
		}
	}
}

// Start returns the address of the first byte, or 0 when empty. The
// address is real: a scanner attached to this process finds the
// buffer's content there.
func (b *Buffer) Start() uintptr {
	if len(b.mem) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b.mem[0]))
}

// End returns the address one past the last byte, or 0 when empty.
func (b *Buffer) End() uintptr {
	if len(b.mem) == 0 {
		return 0
	}
	return b.Start() + uintptr(len(b.mem))
}

// SetAddress writes value at a process address previously reported by
// Start/End. Addresses outside the buffer are rejected.
func (b *Buffer) SetAddress(address uintptr, value byte) error {
	if len(b.mem) == 0 {
		return ErrEmpty
	}
	start := b.Start()
	if address < start || address >= start+uintptr(len(b.mem)) {
		return ErrOutOfRange
	}
	b.mem[address-start] = value
	return nil
}
