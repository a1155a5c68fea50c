package gameid

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rikiki/internal/randutil"
)

func TestGenerate(t *testing.T) {
	t.Parallel()
	g := NewGenerator(quartz.NewReal(), nil)

	id := g.Generate()
	require.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	t.Parallel()
	g := NewGenerator(quartz.NewReal(), nil)

	seen := make(map[string]bool)
	for range 100 {
		id := g.Generate()
		assert.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	g := NewGenerator(clock, randutil.New(7))

	prev := g.Generate()
	for range 10 {
		clock.Advance(time.Millisecond)
		id := g.Generate()
		assert.Less(t, prev, id)
		prev = id
	}
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)

	a := NewGenerator(clock, randutil.New(1)).Generate()
	b := NewGenerator(clock, randutil.New(1)).Generate()
	assert.Equal(t, a, b)
}

func TestEncodeVersionBits(t *testing.T) {
	t.Parallel()
	var id [16]byte
	assert.Equal(t, "00000000000000000000000000", encode(id))

	for i := range id {
		id[i] = 0xff
	}
	assert.Equal(t, "7zzzzzzzzzzzzzzzzzzzzzzzzz", encode(id))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid letter", "01h5n0et5q6mt3v7ms1234abci", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
