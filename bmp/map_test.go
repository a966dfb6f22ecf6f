package bmp

import "testing"

func TestPagedMapSetGet(t *testing.T) {
	var m PagedMap
	if !m.Set(0x4E00, 7) {
		t.Fatalf("expected Set to accept U+4E00")
	}
	m.Set(0x4E01, 8)
	m.Set(0x9F8D, 9)
	if v := m.Get(0x4E00); v != 7 {
		t.Fatalf("U+4E00: got %d, want 7", v)
	}
	if v := m.Get(0x4E01); v != 8 {
		t.Fatalf("U+4E01: got %d, want 8", v)
	}
	if v := m.Get(0x9F8D); v != 9 {
		t.Fatalf("U+9F8D: got %d, want 9", v)
	}
	if v := m.Get(0x4E02); v != 0 {
		t.Fatalf("U+4E02 should be absent, got %d", v)
	}
	if n := m.NumPages(); n != 2 {
		t.Fatalf("expected 2 pages, got %d", n)
	}
}

func TestPagedMapClearDoesNotAllocate(t *testing.T) {
	var m PagedMap
	m.Set(0x3000, 0)
	if m.NumPages() != 0 {
		t.Fatalf("clearing an absent entry must not allocate a page")
	}
}

func TestPagedMapOutsideBMP(t *testing.T) {
	var m PagedMap
	if m.Set(0x20000, 1) {
		t.Fatalf("expected Set to reject a code point outside the BMP")
	}
	if v := m.Get(0x20000); v != 0 {
		t.Fatalf("expected 0 outside the BMP, got %d", v)
	}
	if v := m.Get(-1); v != 0 {
		t.Fatalf("expected 0 for negative rune, got %d", v)
	}
}

func TestPagedMapRange(t *testing.T) {
	var m PagedMap
	m.Set(0x9F8D, 3)
	m.Set(0x4E01, 2)
	m.Set(0x4E00, 1)
	m.Set(0x4E01, 0)
	var got []rune
	m.Range(func(r rune, v uint16) bool {
		got = append(got, r)
		return true
	})
	if len(got) != 2 || got[0] != 0x4E00 || got[1] != 0x9F8D {
		t.Fatalf("unexpected range order: %U", got)
	}
	n := 0
	m.Range(func(rune, uint16) bool {
		n++
		return false
	})
	if n != 1 {
		t.Fatalf("Range did not stop, %d calls", n)
	}
}
