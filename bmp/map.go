/*
Package bmp provides a compact map from BMP code points to small integers.

Reference data for CJK characters clusters in a few Unicode blocks, so a
two-level page table keyed by the high byte of a code point stays small while
answering lookups with two array reads.
*/
package bmp

// PagedMap maps BMP code points (0..0xFFFF) to uint16 values, 0 meaning absent.
// The high byte of a code point selects an entry of Top, holding the 1-based
// number of a 256-entry page in Pages (0 if no page is allocated); the low
// byte indexes into that page.
//
// Top takes 512 bytes, every allocated page another 512. The CJK Unified
// Ideographs block U+4E00..U+9FFF spans 82 pages, about 41 KB.
//
// The zero value is an empty map.
type PagedMap struct {
	Top   [256]uint16
	Pages []uint16 // 256 values per page
}

// Get returns the value for code point r, or 0 if r is absent or outside
// the BMP.
func (m *PagedMap) Get(r rune) uint16 {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	pi := m.Top[r>>8]
	if pi == 0 {
		return 0
	}
	return m.Pages[pageBase(pi)+int(r&0xFF)]
}

func pageBase(pi uint16) int {
	return int(pi-1) << 8
}

// NumPages returns the number of allocated pages.
func (m *PagedMap) NumPages() int { return len(m.Pages) >> 8 }

// allocPage appends a zeroed page for high byte hi and returns its number.
func (m *PagedMap) allocPage(hi rune) uint16 {
	m.Pages = append(m.Pages, make([]uint16, 256)...)
	pi := uint16(m.NumPages())
	m.Top[hi] = pi
	return pi
}

// Range calls f for every non-zero entry in code point order, until f
// returns false.
func (m *PagedMap) Range(f func(r rune, v uint16) bool) {
	for hi, pi := range m.Top {
		if pi == 0 {
			continue
		}
		page := m.Pages[pageBase(pi) : pageBase(pi)+256]
		for lo, v := range page {
			if v != 0 && !f(rune(hi<<8|lo), v) {
				return
			}
		}
	}
}

// Set sets r -> v (v may be 0 to clear). It returns false if r is outside
// the BMP.
func (m *PagedMap) Set(r rune, v uint16) bool {
	if r < 0 || r > 0xFFFF {
		return false
	}
	pi := m.Top[r>>8]
	if pi == 0 {
		if v == 0 {
			return true // clearing an absent entry
		}
		pi = m.allocPage(r >> 8)
	}
	m.Pages[pageBase(pi)+int(r&0xFF)] = v
	return true
}
