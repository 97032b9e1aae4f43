package ecs

import "math/bits"

// Bits is the set of unsigned integer types that can back an entity mask or a
// flag mask. The width of the chosen type bounds how many component kinds (or
// flags) a World can address.
type Bits interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// widthOf returns the number of bits in B.
func widthOf[B Bits]() int {
	return bits.OnesCount64(uint64(^B(0)))
}

func bitOf[B Bits](i int) B {
	return B(1) << i
}

// maskOf ORs together the bits for every index in ids.
func maskOf[B Bits, I ~int](ids []I) B {
	var m B
	for _, id := range ids {
		m |= B(1) << int(id)
	}
	return m
}

// forEachBit calls fn with the index of every set bit in m, lowest first.
func forEachBit[B Bits](m B, fn func(i int)) {
	word := uint64(m)
	for word != 0 {
		i := bits.TrailingZeros64(word)
		fn(i)
		word &^= 1 << i
	}
}
