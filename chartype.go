package hanzi

import "fmt"

// CharacterType tells which character set a character belongs to.
type CharacterType int8

// Character types. The numeric values are those of the type relationship
// file format and of the compiled store.
const (
	NotFound    CharacterType = -1
	Generic     CharacterType = 0 // common to simplified and traditional sets
	Simplified  CharacterType = 1 // simplified form of another character
	Traditional CharacterType = 2 // traditional form of another character
	Equivalent  CharacterType = 3 // same as another character
)

// ParseCharacterType converts a type code of the type relationship format.
func ParseCharacterType(code int) (CharacterType, error) {
	if code < int(Generic) || code > int(Equivalent) {
		return NotFound, fmt.Errorf("invalid character type code %d", code)
	}
	return CharacterType(code), nil
}

func (t CharacterType) String() string {
	switch t {
	case Generic:
		return "generic"
	case Simplified:
		return "simplified"
	case Traditional:
		return "traditional"
	case Equivalent:
		return "equivalent"
	case NotFound:
		return "not-found"
	}
	return fmt.Sprintf("CharacterType(%d)", int(t))
}

// NeedsAlternate is true for types which relate to another character.
func (t CharacterType) NeedsAlternate() bool {
	return t == Simplified || t == Traditional || t == Equivalent
}

// TypeDescriptor is one entry of the type registry. AltUnicode is the
// related character for Simplified, Traditional and Equivalent types.
type TypeDescriptor struct {
	Type       CharacterType
	Unicode    rune
	AltUnicode rune
}

func (td TypeDescriptor) String() string {
	if td.Type.NeedsAlternate() {
		return fmt.Sprintf("U+%04X %s → U+%04X", td.Unicode, td.Type, td.AltUnicode)
	}
	return fmt.Sprintf("U+%04X %s", td.Unicode, td.Type)
}
