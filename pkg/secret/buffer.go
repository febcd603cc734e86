// Package secret holds key material in buffers that are zeroed when the
// owner is done with them.
package secret

import "fmt"

const redacted = "[REDACTED]"

// Buffer owns a byte slice of secret material. The zero value is an empty,
// already wiped buffer.
//
// Wiping is best effort: the Go runtime may have copied the bytes before
// they reached the buffer, but the buffer itself never outlives its owner's
// scope with readable content.
type Buffer struct {
	b     []byte
	wiped bool
}

// New returns a Buffer taking ownership of b. The caller must not keep
// other references to b.
func New(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Copy returns a Buffer holding a private copy of b and wipes b.
func Copy(b []byte) *Buffer {
	c := make([]byte, len(b))
	copy(c, b)
	Wipe(b)
	return New(c)
}

// Bytes returns the underlying slice, nil once wiped.
func (s *Buffer) Bytes() []byte {
	if s == nil || s.wiped {
		return nil
	}
	return s.b
}

func (s *Buffer) Len() int {
	if s == nil || s.wiped {
		return 0
	}
	return len(s.b)
}

// Wipe zeroes the buffer. Calling it more than once is safe.
func (s *Buffer) Wipe() {
	if s == nil || s.wiped {
		return
	}
	Wipe(s.b)
	s.b = nil
	s.wiped = true
}

func (s *Buffer) IsWiped() bool {
	return s == nil || s.wiped
}

// Use hands the secret to fn and wipes the buffer once fn returns or
// panics. The buffer cannot be used again afterwards.
func (s *Buffer) Use(fn func([]byte) error) error {
	defer s.Wipe()
	if s.IsWiped() {
		return ErrWiped
	}
	return fn(s.b)
}

func (s *Buffer) String() string {
	return redacted
}

// Format keeps every fmt verb from printing the secret.
func (s *Buffer) Format(f fmt.State, _ rune) {
	fmt.Fprint(f, redacted)
}

// GoString keeps %#v from dumping the struct fields.
func (s *Buffer) GoString() string {
	return redacted
}

// Wipe zeroes b in place.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
