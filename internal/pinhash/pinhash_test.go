package pinhash_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luckyComet55/atm-tg-bot/internal/pinhash"
)

type digit string

func (d digit) AppendHashKey(b []byte) []byte {
	return append(b, string(d)...)
}

func TestSequence_Deterministic(t *testing.T) {
	pin := []digit{"One", "Two", "Three", "Four"}

	assert.Equal(t, pinhash.Sequence(pin), pinhash.Sequence(pin))
	assert.Equal(t, pinhash.Sequence(pin), pinhash.Sequence([]digit{"One", "Two", "Three", "Four"}))
}

func TestSequence_NoCollisions(t *testing.T) {
	corpus := [][]digit{
		{},
		{"One"},
		{"One", "Two", "Three", "Four"},
		{"Four", "Three", "Two", "One"},
		{"One", "Two", "Four", "Three"},
		{"One", "One", "One", "One"},
		{"One", "One", "One"},
		{"OneTwo"},
		{"One", "Two"},
		{"On", "eTwo"},
	}

	seen := make(map[uint64]int, len(corpus))
	for i, seq := range corpus {
		h := pinhash.Sequence(seq)
		if j, ok := seen[h]; ok {
			t.Fatalf("sequences %v and %v collide", corpus[j], seq)
		}
		seen[h] = i
	}
}

func TestIntegers(t *testing.T) {
	assert.Equal(t, pinhash.Integers([]int{1, 2, 3, 4}), pinhash.Integers([]int{1, 2, 3, 4}))
	assert.NotEqual(t, pinhash.Integers([]int{1, 2, 3, 4}), pinhash.Integers([]int{4, 3, 2, 1}))
	assert.NotEqual(t, pinhash.Integers([]int{12, 3}), pinhash.Integers([]int{1, 23}))
	assert.Equal(t, pinhash.Integers([]uint8{7, 9}), pinhash.Integers([]int64{7, 9}), "encoding ignores integer width")
}

func TestIntegers_UnsignedAboveMaxInt64(t *testing.T) {
	assert.NotEqual(t, pinhash.Integers([]uint64{math.MaxUint64}), pinhash.Integers([]int64{-1}))
	assert.NotEqual(t, pinhash.Integers([]uint64{1 << 63}), pinhash.Integers([]int64{math.MinInt64}))
	assert.Equal(t, pinhash.Integers([]uint64{math.MaxUint64}), pinhash.Strings([]string{"18446744073709551615"}))
	assert.Equal(t, pinhash.Integers([]int8{-1}), pinhash.Integers([]int64{-1}))
}

func TestStrings(t *testing.T) {
	assert.NotEqual(t, pinhash.Strings([]string{"ab", "c"}), pinhash.Strings([]string{"a", "bc"}))
	assert.NotEqual(t, pinhash.Strings(nil), pinhash.Strings([]string{""}))
}
