package texture

import "math/bits"

// rowMask tracks which rows still hold a delayed clear, one bit per row.
//
// The bitmap uses one bit per row, packed into uint64 words.
type rowMask struct {
	words []uint64
	n     int
}

func newRowMask(n int) rowMask {
	return rowMask{words: make([]uint64, (n+63)/64), n: n}
}

// resize reallocates for n rows, clearing every bit.
func (m *rowMask) resize(n int) {
	words := (n + 63) / 64
	if cap(m.words) < words {
		m.words = make([]uint64, words)
	} else {
		m.words = m.words[:words]
		clear(m.words)
	}
	m.n = n
}

// markAll sets every row.
func (m *rowMask) markAll() {
	full, rem := m.n/64, m.n%64
	for i := 0; i < full; i++ {
		m.words[i] = ^uint64(0)
	}
	if rem > 0 {
		m.words[full] = (uint64(1) << rem) - 1
	}
}

// clearAll resets every row.
func (m *rowMask) clearAll() {
	clear(m.words)
}

// test reports whether row y is set. Out-of-range rows are never set.
func (m *rowMask) test(y int) bool {
	if y < 0 || y >= m.n {
		return false
	}
	return m.words[y/64]&(1<<(y&63)) != 0
}

// unset clears row y and reports whether it was set.
func (m *rowMask) unset(y int) bool {
	if !m.test(y) {
		return false
	}
	m.words[y/64] &^= 1 << (y & 63)
	return true
}

// count returns the number of set rows.
func (m *rowMask) count() int {
	c := 0
	for _, w := range m.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// each calls fn for every set row in ascending order.
func (m *rowMask) each(fn func(y int)) {
	for i, w := range m.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(i*64 + b)
			w &= w - 1
		}
	}
}
