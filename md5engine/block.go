package md5engine

import (
	"encoding/binary"
	"math/bits"
)

// Basic mixing functions, one per round.

func fF(x, y, z uint32) uint32 { return (x & y) | (^x & z) }

func fG(x, y, z uint32) uint32 { return (x & z) | (y & ^z) }

func fH(x, y, z uint32) uint32 { return x ^ y ^ z }

func fI(x, y, z uint32) uint32 { return y ^ (x | ^z) }

// step computes rotl(a + fn(b, c, d) + m + k, s) + b in
// uint32 arithmetic.
func step(
	fn func(x, y, z uint32) uint32,
	a, b, c, d, m uint32,
	s int,
	k uint32,
) uint32 {
	return bits.RotateLeft32(a+fn(b, c, d)+m+k, s) + b
}

// compress runs one 64-step MD5 compression over a single
// 64-byte block and adds the result into s.
func compress(s *[4]uint32, p []byte) {
	var x [16]uint32
	for i := range x {
		x[i] = binary.LittleEndian.Uint32(p[4*i:])
	}

	a, b, c, d := s[0], s[1], s[2], s[3]

	// Round 1.
	a = step(fF, a, b, c, d, x[0], 7, 0xD76AA478)
	d = step(fF, d, a, b, c, x[1], 12, 0xE8C7B756)
	c = step(fF, c, d, a, b, x[2], 17, 0x242070DB)
	b = step(fF, b, c, d, a, x[3], 22, 0xC1BDCEEE)
	a = step(fF, a, b, c, d, x[4], 7, 0xF57C0FAF)
	d = step(fF, d, a, b, c, x[5], 12, 0x4787C62A)
	c = step(fF, c, d, a, b, x[6], 17, 0xA8304613)
	b = step(fF, b, c, d, a, x[7], 22, 0xFD469501)
	a = step(fF, a, b, c, d, x[8], 7, 0x698098D8)
	d = step(fF, d, a, b, c, x[9], 12, 0x8B44F7AF)
	c = step(fF, c, d, a, b, x[10], 17, 0xFFFF5BB1)
	b = step(fF, b, c, d, a, x[11], 22, 0x895CD7BE)
	a = step(fF, a, b, c, d, x[12], 7, 0x6B901122)
	d = step(fF, d, a, b, c, x[13], 12, 0xFD987193)
	c = step(fF, c, d, a, b, x[14], 17, 0xA679438E)
	b = step(fF, b, c, d, a, x[15], 22, 0x49B40821)

	// Round 2.
	a = step(fG, a, b, c, d, x[1], 5, 0xF61E2562)
	d = step(fG, d, a, b, c, x[6], 9, 0xC040B340)
	c = step(fG, c, d, a, b, x[11], 14, 0x265E5A51)
	b = step(fG, b, c, d, a, x[0], 20, 0xE9B6C7AA)
	a = step(fG, a, b, c, d, x[5], 5, 0xD62F105D)
	d = step(fG, d, a, b, c, x[10], 9, 0x02441453)
	c = step(fG, c, d, a, b, x[15], 14, 0xD8A1E681)
	b = step(fG, b, c, d, a, x[4], 20, 0xE7D3FBC8)
	a = step(fG, a, b, c, d, x[9], 5, 0x21E1CDE6)
	d = step(fG, d, a, b, c, x[14], 9, 0xC33707D6)
	c = step(fG, c, d, a, b, x[3], 14, 0xF4D50D87)
	b = step(fG, b, c, d, a, x[8], 20, 0x455A14ED)
	a = step(fG, a, b, c, d, x[13], 5, 0xA9E3E905)
	d = step(fG, d, a, b, c, x[2], 9, 0xFCEFA3F8)
	c = step(fG, c, d, a, b, x[7], 14, 0x676F02D9)
	b = step(fG, b, c, d, a, x[12], 20, 0x8D2A4C8A)

	// Round 3.
	a = step(fH, a, b, c, d, x[5], 4, 0xFFFA3942)
	d = step(fH, d, a, b, c, x[8], 11, 0x8771F681)
	c = step(fH, c, d, a, b, x[11], 16, 0x6D9D6122)
	b = step(fH, b, c, d, a, x[14], 23, 0xFDE5380C)
	a = step(fH, a, b, c, d, x[1], 4, 0xA4BEEA44)
	d = step(fH, d, a, b, c, x[4], 11, 0x4BDECFA9)
	c = step(fH, c, d, a, b, x[7], 16, 0xF6BB4B60)
	b = step(fH, b, c, d, a, x[10], 23, 0xBEBFBC70)
	a = step(fH, a, b, c, d, x[13], 4, 0x289B7EC6)
	d = step(fH, d, a, b, c, x[0], 11, 0xEAA127FA)
	c = step(fH, c, d, a, b, x[3], 16, 0xD4EF3085)
	b = step(fH, b, c, d, a, x[6], 23, 0x04881D05)
	a = step(fH, a, b, c, d, x[9], 4, 0xD9D4D039)
	d = step(fH, d, a, b, c, x[12], 11, 0xE6DB99E5)
	c = step(fH, c, d, a, b, x[15], 16, 0x1FA27CF8)
	b = step(fH, b, c, d, a, x[2], 23, 0xC4AC5665)

	// Round 4.
	a = step(fI, a, b, c, d, x[0], 6, 0xF4292244)
	d = step(fI, d, a, b, c, x[7], 10, 0x432AFF97)
	c = step(fI, c, d, a, b, x[14], 15, 0xAB9423A7)
	b = step(fI, b, c, d, a, x[5], 21, 0xFC93A039)
	a = step(fI, a, b, c, d, x[12], 6, 0x655B59C3)
	d = step(fI, d, a, b, c, x[3], 10, 0x8F0CCC92)
	c = step(fI, c, d, a, b, x[10], 15, 0xFFEFF47D)
	b = step(fI, b, c, d, a, x[1], 21, 0x85845DD1)
	a = step(fI, a, b, c, d, x[8], 6, 0x6FA87E4F)
	d = step(fI, d, a, b, c, x[15], 10, 0xFE2CE6E0)
	c = step(fI, c, d, a, b, x[6], 15, 0xA3014314)
	b = step(fI, b, c, d, a, x[13], 21, 0x4E0811A1)
	a = step(fI, a, b, c, d, x[4], 6, 0xF7537E82)
	d = step(fI, d, a, b, c, x[11], 10, 0xBD3AF235)
	c = step(fI, c, d, a, b, x[2], 15, 0x2AD7D2BB)
	b = step(fI, b, c, d, a, x[9], 21, 0xEB86D391)

	s[0] += a
	s[1] += b
	s[2] += c
	s[3] += d
}
