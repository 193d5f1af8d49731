/*
Copyright 2026 The QueryMesh Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package bitset implements the immutable bit sets used to track which groups
// a plan subtree computes over.
package bitset

import (
	"iter"
	"math/bits"
	"unsafe"
)

// A Bitset is an immutable collection of bits. Every operation that changes
// membership returns a new Bitset, so values can be shared between plan nodes,
// compared with == and used as map keys.
type Bitset string

const width = 8

func wordsFor(bit int) int {
	return bit/width + 1
}

// fromWords turns a byte slice into a Bitset without copying. The slice must
// not be written to afterwards, and must not end in a zero word.
func fromWords(words []byte) Bitset {
	if len(words) == 0 {
		return ""
	}
	if words[len(words)-1] == 0 {
		panic("bitset: words not truncated")
	}
	return Bitset(unsafe.String(&words[0], len(words)))
}

// trim drops trailing zero words so that equal sets have equal representations.
func trim(words []byte) []byte {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	return words[:n]
}

// Single returns a Bitset with only the given bit set.
func Single(bit int) Bitset {
	if bit < 0 {
		panic("bitset: negative bit")
	}
	words := make([]byte, wordsFor(bit))
	words[bit/width] |= 1 << (bit % width)
	return fromWords(words)
}

// Build returns a Bitset with all the given bits set.
func Build(bs ...int) Bitset {
	if len(bs) == 0 {
		return ""
	}
	hi := 0
	for _, b := range bs {
		if b < 0 {
			panic("bitset: negative bit")
		}
		hi = max(hi, b)
	}
	words := make([]byte, wordsFor(hi))
	for _, b := range bs {
		words[b/width] |= 1 << (b % width)
	}
	return fromWords(words)
}

// Has reports whether the bit at offset is set.
func (bs Bitset) Has(offset int) bool {
	if offset < 0 || offset/width >= len(bs) {
		return false
	}
	return bs[offset/width]&(1<<(offset%width)) != 0
}

// IsEmpty reports whether no bits are set.
func (bs Bitset) IsEmpty() bool {
	return len(bs) == 0
}

// Set returns a copy of bs with the bit at offset set.
func (bs Bitset) Set(offset int) Bitset {
	if bs.Has(offset) {
		return bs
	}
	words := make([]byte, max(len(bs), wordsFor(offset)))
	copy(words, bs)
	words[offset/width] |= 1 << (offset % width)
	return fromWords(words)
}

// Clear returns a copy of bs with the bit at offset cleared.
func (bs Bitset) Clear(offset int) Bitset {
	if !bs.Has(offset) {
		return bs
	}
	words := []byte(bs)
	words[offset/width] &^= 1 << (offset % width)
	return fromWords(trim(words))
}

// Or returns the union of both sets.
func (bs Bitset) Or(other Bitset) Bitset {
	switch {
	case len(bs) == 0:
		return other
	case len(other) == 0:
		return bs
	}
	small, large := bs, other
	if len(small) > len(large) {
		small, large = large, small
	}
	words := []byte(large)
	for i := 0; i < len(small); i++ {
		words[i] |= small[i]
	}
	return fromWords(words)
}

// And returns the intersection of both sets.
func (bs Bitset) And(other Bitset) Bitset {
	n := min(len(bs), len(other))
	if n == 0 {
		return ""
	}
	words := make([]byte, n)
	for i := range words {
		words[i] = bs[i] & other[i]
	}
	return fromWords(trim(words))
}

// AndNot returns the bits of bs that are not in other.
func (bs Bitset) AndNot(other Bitset) Bitset {
	if len(other) == 0 || len(bs) == 0 {
		return bs
	}
	words := []byte(bs)
	for i := 0; i < min(len(bs), len(other)); i++ {
		words[i] &^= other[i]
	}
	return fromWords(trim(words))
}

// Overlaps reports whether both sets have at least one bit in common.
func (bs Bitset) Overlaps(other Bitset) bool {
	for i := 0; i < min(len(bs), len(other)); i++ {
		if bs[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// IsContainedBy reports whether every bit of bs is also set in other.
func (bs Bitset) IsContainedBy(other Bitset) bool {
	if len(bs) > len(other) {
		return false
	}
	for i := 0; i < len(bs); i++ {
		if bs[i]&other[i] != bs[i] {
			return false
		}
	}
	return true
}

// Popcount returns the number of bits set.
func (bs Bitset) Popcount() (count int) {
	for i := 0; i < len(bs); i++ {
		count += bits.OnesCount8(bs[i])
	}
	return
}

// All yields the offset of every set bit in ascending order.
func (bs Bitset) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		// Lemire, "Iterating over set bits quickly"
		for i := 0; i < len(bs); i++ {
			word := bs[i]
			for word != 0 {
				if !yield(i*width + bits.TrailingZeros8(word)) {
					return
				}
				word &= word - 1
			}
		}
	}
}
