// Package pinhash digests ordered sequences of keypad symbols so a PIN can be
// compared without keeping it in cleartext.
package pinhash

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Hashable is implemented by symbolic values that take part in a digest.
// AppendHashKey appends a stable encoding of the value to b.
type Hashable interface {
	AppendHashKey(b []byte) []byte
}

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Sequence returns the digest of seq. Element order and boundaries are significant.
func Sequence[T Hashable](seq []T) uint64 {
	d := newDigest()
	var buf []byte
	for _, v := range seq {
		buf = v.AppendHashKey(buf[:0])
		d.write(buf)
	}
	return d.sum()
}

func Integers[T Integer](seq []T) uint64 {
	signed := T(0)-1 < 0
	d := newDigest()
	var buf []byte
	for _, v := range seq {
		if signed {
			buf = strconv.AppendInt(buf[:0], int64(v), 10)
		} else {
			buf = strconv.AppendUint(buf[:0], uint64(v), 10)
		}
		d.write(buf)
	}
	return d.sum()
}

func Strings(seq []string) uint64 {
	d := newDigest()
	for _, v := range seq {
		d.write([]byte(v))
	}
	return d.sum()
}

type digest struct {
	x      *xxhash.Digest
	prefix [binary.MaxVarintLen64]byte
}

func newDigest() *digest {
	return &digest{x: xxhash.New()}
}

// write feeds one length-prefixed element; xxhash.Digest writes never fail.
func (d *digest) write(elem []byte) {
	n := binary.PutUvarint(d.prefix[:], uint64(len(elem)))
	_, _ = d.x.Write(d.prefix[:n])
	_, _ = d.x.Write(elem)
}

func (d *digest) sum() uint64 {
	return d.x.Sum64()
}
