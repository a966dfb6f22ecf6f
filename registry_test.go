package hanzi

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Put(TypeDescriptor{Type: Generic, Unicode: 0x4E00}))
	require.NoError(t, reg.Put(TypeDescriptor{Type: Simplified, Unicode: 0x6C49, AltUnicode: 0x6F22}))
	td, ok := reg.Lookup(0x6C49)
	require.True(t, ok)
	require.Equal(t, Simplified, td.Type)
	require.Equal(t, rune(0x6F22), td.AltUnicode)
	_, ok = reg.Lookup(0x4E01)
	require.False(t, ok)
	require.Equal(t, NotFound, reg.EffectiveType(0x4E01))
	require.Equal(t, 2, reg.Len())
}

func TestRegistryPutReplaces(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Put(TypeDescriptor{Type: Generic, Unicode: 0x4E00}))
	require.NoError(t, reg.Put(TypeDescriptor{Type: Traditional, Unicode: 0x4E00, AltUnicode: 0x4E01}))
	require.Equal(t, 1, reg.Len())
	require.Equal(t, Traditional, reg.EffectiveType(0x4E00))
}

func TestRegistryRejectsNonBMP(t *testing.T) {
	reg := NewRegistry()
	err := reg.Put(TypeDescriptor{Type: Generic, Unicode: 0x20000})
	require.ErrorIs(t, err, ErrNotBMP)
}

func TestEquivalenceResolution(t *testing.T) {
	const (
		han  = rune(0x6F22) // traditional form
		han2 = rune(0x6F23) // equivalent of han3
		han3 = rune(0x6C49) // simplified
	)
	reg := NewRegistry()
	require.NoError(t, reg.Put(TypeDescriptor{Type: Traditional, Unicode: han, AltUnicode: han2}))
	require.NoError(t, reg.Put(TypeDescriptor{Type: Equivalent, Unicode: han2, AltUnicode: han3}))
	require.NoError(t, reg.Put(TypeDescriptor{Type: Simplified, Unicode: han3, AltUnicode: han}))
	require.Equal(t, Simplified, reg.EffectiveType(han2))
	require.Equal(t, Traditional, reg.EffectiveType(han))
	require.NoError(t, reg.Validate())
}

func TestEquivalenceCycleTerminates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Put(TypeDescriptor{Type: Equivalent, Unicode: 0x4E00, AltUnicode: 0x4E01}))
	require.NoError(t, reg.Put(TypeDescriptor{Type: Equivalent, Unicode: 0x4E01, AltUnicode: 0x4E00}))
	require.Equal(t, NotFound, reg.EffectiveType(0x4E00))
	require.ErrorIs(t, reg.Validate(), ErrEquivalenceCycle)
}

type sliceTypesReader struct {
	entries []any // TypeDescriptor or error
	index   int
}

func (r *sliceTypesReader) Next() (TypeDescriptor, error) {
	if r.index >= len(r.entries) {
		return TypeDescriptor{}, io.EOF
	}
	e := r.entries[r.index]
	r.index++
	if err, ok := e.(error); ok {
		return TypeDescriptor{}, err
	}
	return e.(TypeDescriptor), nil
}

func TestLoadTypesContinuesAfterLineErrors(t *testing.T) {
	var reported []int
	reg, err := LoadTypes(&sliceTypesReader{entries: []any{
		TypeDescriptor{Type: Generic, Unicode: 0x4E00},
		&LineError{Line: 2, Text: "zzzz", Reason: "malformed"},
		TypeDescriptor{Type: Simplified, Unicode: 0x4E0E, AltUnicode: 0x8207},
	}}, func(lerr *LineError) {
		reported = append(reported, lerr.Line)
	})
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())
	require.Equal(t, []int{2}, reported)
}

func TestLoadTypesStopsOnReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := LoadTypes(&sliceTypesReader{entries: []any{boom}}, nil)
	require.ErrorIs(t, err, boom)
}

func TestRegistryEachInCodePointOrder(t *testing.T) {
	reg := NewRegistry()
	for _, r := range []rune{0x6F22, 0x4E00, 0x6C49} {
		require.NoError(t, reg.Put(TypeDescriptor{Type: Generic, Unicode: r}))
	}
	var order []rune
	reg.Each(func(td TypeDescriptor) bool {
		order = append(order, td.Unicode)
		return true
	})
	require.Equal(t, []rune{0x4E00, 0x6C49, 0x6F22}, order)
}
