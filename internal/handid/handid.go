// Package handid generates sortable identifiers for poker hands: a UUIDv7
// rendered as 26 characters of lowercase Crockford base32, TypeID style.
package handid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lowercase.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded hand ID.
const Length = 26

// Generator produces hand IDs. A nil reader uses crypto/rand.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator drawing the random bits of each UUID from
// r. Pass nil in production; tests may pass a deterministic reader.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// New returns a fresh hand ID using crypto/rand.
func New() string {
	return NewGenerator(nil).Generate()
}

// Generate returns the next hand ID. IDs from one generator sort by creation
// time.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g == nil || g.rand == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewV7FromReader(g.rand)
	}
	if err != nil {
		panic("handid: failed to generate uuid: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are left padded
// with two zero bits, so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	// Walk the 130-bit value five bits at a time, most significant first.
	for i := range Length {
		var v byte
		for b := range 5 {
			bit := i*5 + b - 2 // index into the 128 UUID bits
			v <<= 1
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Parse decodes an ID produced by Encode.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		v := strings.IndexByte(alphabet, s[i])
		for b := range 5 {
			bit := i*5 + b - 2
			if bit < 0 || v&(0x10>>b) == 0 {
				continue
			}
			id[bit/8] |= 0x80 >> (bit % 8)
		}
	}
	return id, nil
}

// Validate checks that s is 26 characters of the alphabet with a leading 0-7.
func Validate(s string) error {
	if len(s) != Length {
		return fmt.Errorf("hand ID must be exactly %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return fmt.Errorf("hand ID first character must be 0-7, got %c", s[0])
	}
	for i := range len(s) {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
	}
	return nil
}
