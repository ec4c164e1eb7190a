// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fixmath provides the integer-only square-root helpers used by the
// rasterizer for anti-aliased round corners.
//
// SqrtError returns the fractional part of sqrt(x) scaled to 8 bits, i.e. the
// low byte of floor(sqrt(x)*256). For a pixel at squared distance d² from a
// corner centre it is the sub-pixel coverage of the circle edge crossing that
// pixel, without any floating point.
package fixmath

// lutSize covers every squared distance up to a radius of 32 pixels.
const lutSize = 1025

// maxInput bounds the long-hand path; SqrtError returns 0 from maxInput up.
const maxInput = 1 << 30

// sqrtErrLUT holds SqrtError for x < lutSize.
// Pre-computed at init, 1KB memory cost.
var sqrtErrLUT [lutSize]uint8

// shiftLUT maps the bit length of x to the output shift of the long-hand
// fractional square root. Index is 31 - leading zeros.
var shiftLUT = [32]uint32{
	0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 4, 5,
	5, 5, 5, 5, 5, 6, 6, 6, 6, 6, 6, 6, 7, 7, 7, 7,
}

func init() {
	for x := range sqrtErrLUT {
		sqrtErrLUT[x] = uint8(Sqrt64(uint64(x) << 16))
	}
}

// Sqrt returns floor(sqrt(x)).
func Sqrt(x uint32) uint16 {
	var rem, root uint32
	for i := 0; i < 16; i++ {
		root <<= 1
		rem = rem<<2 | x>>30
		x <<= 2
		if d := root<<1 + 1; d <= rem {
			rem -= d
			root++
		}
	}
	return uint16(root)
}

// Sqrt64 returns floor(sqrt(x)) for a 64-bit argument.
func Sqrt64(x uint64) uint32 {
	var rem, root uint64
	for i := 0; i < 32; i++ {
		root <<= 1
		rem = rem<<2 | x>>62
		x <<= 2
		if d := root<<1 + 1; d <= rem {
			rem -= d
			root++
		}
	}
	return uint32(root)
}

// SqrtError returns the low byte of floor(sqrt(x)*256): 0 for perfect
// squares, rising towards 255 just below the next one. Inputs above 1<<30
// return 0.
func SqrtError(x uint32) uint8 {
	if x < lutSize {
		return sqrtErrLUT[x]
	}
	if x >= maxInput {
		return 0
	}

	lz := 0
	xp := x
	if xp&0xFFFF0000 == 0 {
		lz += 16
		xp <<= 16
	}
	if xp&0xFF000000 == 0 {
		lz += 8
		xp <<= 8
	}
	if xp&0xF0000000 == 0 {
		lz += 4
		xp <<= 4
	}
	if xp&0xC0000000 == 0 {
		lz += 2
		xp <<= 2
	}
	if xp&0x80000000 == 0 {
		lz++
	}

	osh := shiftLUT[31-lz]
	var fpr uint32
	for bsh := uint32(1) << (2*osh + 14); bsh != 0; bsh >>= 1 {
		bod := bsh + fpr
		if x >= bod {
			x -= bod
			fpr = bsh + bod
		}
		x <<= 1
	}
	return uint8(fpr >> osh)
}
