package rng

import (
	"math/bits"
)

// FIPSSize is the size of a FIPS 140-2 test sample: 20000 bits.
const FIPSSize = 2500

// FIPS1 is the monobit test: the number of ones lies in (9725, 10275).
func FIPS1(buf *[FIPSSize]byte) bool {
	n := 0
	for _, b := range buf {
		n += bits.OnesCount8(b)
	}

	return 9725 < n && n < 10275
}

// FIPS2 is the poker test over 5000 nibbles.
func FIPS2(buf *[FIPSSize]byte) bool {
	var f [16]int

	for _, b := range buf {
		f[b&0x0F]++
		f[b>>4]++
	}

	// X = 16/5000 * sum f_i^2 - 5000 must lie in (2.16, 46.17);
	// scaled by 5000/16 to stay in integers
	s := 0
	for _, v := range f {
		s += v * v
	}

	return s-1562500 > 675 && s-1562500 <= 14428
}

// runs counts runs of equal bits by length (1..5 and 6+) and returns the
// length of the longest run.
func runs(buf *[FIPSSize]byte) (r [2][6]int, longest int) {
	cur := int(buf[0] & 1)
	l := 0

	for i := 0; i < 8*FIPSSize; i++ {
		bit := int(buf[i/8]>>(i%8)) & 1
		if bit == cur {
			l++
			continue
		}

		r[cur][min6(l)]++
		if l > longest {
			longest = l
		}

		cur, l = bit, 1
	}

	r[cur][min6(l)]++
	if l > longest {
		longest = l
	}

	return r, longest
}

func min6(l int) int {
	if l > 6 {
		l = 6
	}

	return l - 1
}

var runBounds = [6][2]int{
	{2315, 2685}, {1114, 1386}, {527, 723}, {240, 384}, {103, 209}, {103, 209},
}

// FIPS3 is the runs test.
func FIPS3(buf *[FIPSSize]byte) bool {
	r, _ := runs(buf)

	for b := 0; b < 2; b++ {
		for i, bound := range runBounds {
			if r[b][i] < bound[0] || r[b][i] > bound[1] {
				return false
			}
		}
	}

	return true
}

// FIPS4 is the long run test: no run of 26 or more equal bits.
func FIPS4(buf *[FIPSSize]byte) bool {
	_, longest := runs(buf)

	return longest < 26
}

// FIPSAll runs the four tests.
func FIPSAll(buf *[FIPSSize]byte) bool {
	return FIPS1(buf) && FIPS2(buf) && FIPS3(buf) && FIPS4(buf)
}
