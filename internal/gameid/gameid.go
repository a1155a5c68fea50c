// Package gameid mints sortable match identifiers: a UUIDv7 rendered as 26
// characters of Crockford base32, in the style of TypeID.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an ID.
const Length = 26

// RandSource provides randomness for the non-timestamp bits.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator mints IDs from a clock and an optional random source.
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator returns a generator. A nil RandSource uses crypto/rand.
func NewGenerator(clock quartz.Clock, rand RandSource) *Generator {
	return &Generator{clock: clock, rand: rand}
}

// Generate returns a new ID. IDs from later milliseconds sort after earlier
// ones.
func (g *Generator) Generate() string {
	return encode(g.uuidV7())
}

func (g *Generator) uuidV7() [16]byte {
	var id [16]byte

	ms := g.clock.Now().UnixMilli()
	for i := range 6 {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("gameid: reading random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// encode writes the 128 bits as 26 five-bit groups, left-padded with two
// zero bits so the first character is always 0-7.
func encode(id [16]byte) string {
	bit := func(k int) byte {
		if k < 0 {
			return 0
		}
		return (id[k/8] >> (7 - k%8)) & 1
	}

	var sb strings.Builder
	sb.Grow(Length)
	for i := range Length {
		var v byte
		for k := i*5 - 2; k < i*5+3; k++ {
			v = v<<1 | bit(k)
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Validate checks that id is 26 base32 characters starting with 0-7.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("id first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
