package hanzi

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/hanzi/bmp"
)

var (
	// ErrEquivalenceCycle is reported for a chain of Equivalent entries which
	// leads back to itself.
	ErrEquivalenceCycle = errors.New("equivalence cycle in type registry")
	// ErrRegistryFull is returned when the registry cannot take more entries.
	ErrRegistryFull = errors.New("type registry is full")
	// ErrNotBMP is returned for code points outside the Basic Multilingual Plane.
	ErrNotBMP = errors.New("code point outside the BMP")
)

// Registry maps code points to their TypeDescriptor.
//
// Entries are kept in a slice; a paged BMP map translates a code point to
// its slot (1-based, 0 meaning absent).
type Registry struct {
	slots   bmp.PagedMap
	entries []TypeDescriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make([]TypeDescriptor, 0, 1024)}
}

// Put adds or replaces the entry for td.Unicode.
func (reg *Registry) Put(td TypeDescriptor) error {
	if td.Unicode < 0 || td.Unicode > 0xFFFF {
		return fmt.Errorf("%w: U+%X", ErrNotBMP, td.Unicode)
	}
	if slot := reg.slots.Get(td.Unicode); slot != 0 {
		reg.entries[slot-1] = td
		return nil
	}
	if len(reg.entries) >= 0xFFFF {
		return ErrRegistryFull
	}
	reg.entries = append(reg.entries, td)
	reg.slots.Set(td.Unicode, uint16(len(reg.entries)))
	return nil
}

// Len returns the number of entries.
func (reg *Registry) Len() int {
	if reg == nil {
		return 0
	}
	return len(reg.entries)
}

// Lookup returns the entry for code point r.
func (reg *Registry) Lookup(r rune) (TypeDescriptor, bool) {
	if reg == nil {
		return TypeDescriptor{}, false
	}
	slot := reg.slots.Get(r)
	if slot == 0 {
		return TypeDescriptor{}, false
	}
	return reg.entries[slot-1], true
}

// EffectiveType returns the type of r. Equivalent entries are resolved by
// following their alternate code points to the first entry which is not
// Equivalent. Absent entries, and chains running into a cycle, resolve to
// NotFound.
func (reg *Registry) EffectiveType(r rune) CharacterType {
	t, err := reg.resolve(r)
	if err != nil {
		tracer().Errorf("cannot resolve type of U+%04X: %v", r, err)
	}
	return t
}

func (reg *Registry) resolve(r rune) (CharacterType, error) {
	var visited map[rune]struct{}
	for {
		td, ok := reg.Lookup(r)
		if !ok {
			return NotFound, nil
		}
		if td.Type != Equivalent {
			return td.Type, nil
		}
		if visited == nil {
			visited = make(map[rune]struct{}, 4)
		}
		if _, seen := visited[r]; seen {
			return NotFound, fmt.Errorf("%w at U+%04X", ErrEquivalenceCycle, r)
		}
		visited[r] = struct{}{}
		r = td.AltUnicode
	}
}

// Validate checks every equivalence chain for cycles. It returns an error
// wrapping ErrEquivalenceCycle for the first cycle found.
func (reg *Registry) Validate() error {
	if reg == nil {
		return nil
	}
	var err error
	reg.Each(func(td TypeDescriptor) bool {
		if td.Type == Equivalent {
			_, err = reg.resolve(td.Unicode)
		}
		return err == nil
	})
	return err
}

// Each calls f for every entry in code point order, until f returns false.
func (reg *Registry) Each(f func(TypeDescriptor) bool) {
	if reg == nil {
		return
	}
	reg.slots.Range(func(_ rune, slot uint16) bool {
		return f(reg.entries[slot-1])
	})
}

// LoadTypes builds a registry from a streaming source of type descriptors.
// Line errors are passed to onError (which may be nil) and do not stop
// loading. Other read errors are returned.
func LoadTypes(reader TypesReader, onError func(*LineError)) (*Registry, error) {
	reg := NewRegistry()
	lineErrors := 0
	for {
		td, err := reader.Next()
		if err == io.EOF {
			break
		}
		if lerr, ok := AsLineError(err); ok {
			lineErrors++
			reportLineError(lerr, onError)
			continue
		}
		if err != nil {
			return nil, err
		}
		if err = reg.Put(td); err != nil {
			return nil, err
		}
	}
	tracer().Infof("type registry loaded: %d entries, %d line errors", reg.Len(), lineErrors)
	return reg, nil
}
