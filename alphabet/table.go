// Package alphabet defines the three fixed positional digit tables
// used by the tscodec core (C1 in the design) and their inverse maps.
//
// Tables are constants built once at package init and never mutated —
// per the data model's ownership rules, a codec instance only ever
// reads from them. The exact byte ordering below is part of the wire
// contract: interop between implementations is byte-exact, so it must
// never change.
package alphabet

import "github.com/kavelabs/tscodec/errs"

// Size identifies one of the three supported alphabet bases.
type Size int

// Supported alphabet bases.
const (
	Base16 Size = 16
	Base64 Size = 64
	Base91 Size = 91
)

// Table is an ordered list of distinct single-byte digit characters.
// Table[i] is the byte emitted for digit value i.
type Table []byte

var (
	table16 = buildBase16()
	table64 = buildBase64()
	table91 = buildBase91()

	inverse16 = buildInverse(table16)
	inverse64 = buildInverse(table64)
	inverse91 = buildInverse(table91)
)

func buildBase16() Table {
	t := make(Table, 0, 16)
	t = appendRange(t, '0', '9')
	t = appendRange(t, 'A', 'F')
	return t
}

func buildBase64() Table {
	t := make(Table, 0, 64)
	t = appendRange(t, '0', '9')
	t = appendRange(t, 'A', 'Z')
	t = appendRange(t, 'a', 'z')
	t = append(t, '-', '_')
	return t
}

// buildBase91 appends 0-9, A-Z, a-z, then the 29 punctuation bytes that
// round the base-64 set out to 91 distinct symbols. The punctuation set
// and its order are canonical: they come verbatim from the reference
// numeric encoder this codec is interoperable with.
func buildBase91() Table {
	t := make(Table, 0, 91)
	t = appendRange(t, '0', '9')
	t = appendRange(t, 'A', 'Z')
	t = appendRange(t, 'a', 'z')
	extra := []byte{
		'-', '!', '#', '$', '%', '&', '(', ')', '*', '+', ',', '.', '/',
		':', ';', '<', '=', '>', '?', '@', '[', ']', '^', '_', '`',
		'{', '|', '}', '~',
	}
	t = append(t, extra...)
	return t
}

func appendRange(t Table, lo, hi byte) Table {
	for b := lo; b <= hi; b++ {
		t = append(t, b)
	}
	return t
}

func buildInverse(t Table) [256]int16 {
	var inv [256]int16
	for i := range inv {
		inv[i] = -1
	}
	for digit, b := range t {
		inv[b] = int16(digit)
	}
	return inv
}

// Forward returns the canonical digit table for the given base.
func Forward(size Size) (Table, error) {
	switch size {
	case Base16:
		return table16, nil
	case Base64:
		return table64, nil
	case Base91:
		return table91, nil
	default:
		return nil, errs.ErrUnsupportedAlphabet
	}
}

// Inverse returns the byte->digit map for the given base. Slots for
// bytes that are not part of the alphabet hold -1 and must not be
// reached when decoding a well-formed payload.
func Inverse(size Size) ([256]int16, error) {
	switch size {
	case Base16:
		return inverse16, nil
	case Base64:
		return inverse64, nil
	case Base91:
		return inverse91, nil
	default:
		return [256]int16{}, errs.ErrUnsupportedAlphabet
	}
}

// Valid reports whether size is one of the three supported bases.
func (s Size) Valid() bool {
	return s == Base16 || s == Base64 || s == Base91
}
