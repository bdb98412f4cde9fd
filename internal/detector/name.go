// Package detector parses germanium detector names of the form
// <TypeLetter><Order><Crystal><Slice>, e.g. V06643A, and maps type letters to
// their geometry categories.
package detector

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the geometry category encoded as the first letter of a detector name.
type Type byte

// Known detector types.
const (
	ICPC Type = 'V'
	BEGe Type = 'B'
	PPC  Type = 'P'
	Coax Type = 'C'
)

// AllTypes lists every known type in the order used for "all".
var AllTypes = []Type{BEGe, Coax, PPC, ICPC}

// String returns the type letter.
func (t Type) String() string { return string(rune(t)) }

// Geometry returns the long geometry name, e.g. "ICPC" for V.
func (t Type) Geometry() string {
	switch t {
	case ICPC:
		return "ICPC"
	case BEGe:
		return "BEGe"
	case PPC:
		return "PPC"
	case Coax:
		return "Coax"
	default:
		return "unknown"
	}
}

// IsValid reports whether t is one of the known type letters.
func (t Type) IsValid() bool {
	switch t {
	case ICPC, BEGe, PPC, Coax:
		return true
	}
	return false
}

// ParseTypes turns a list of type letters into Types. An empty list or the
// single value "all" selects AllTypes.
func ParseTypes(letters []string) ([]Type, error) {
	if len(letters) == 0 || (len(letters) == 1 && strings.EqualFold(letters[0], "all")) {
		return append([]Type(nil), AllTypes...), nil
	}
	out := make([]Type, 0, len(letters))
	for _, l := range letters {
		if len(l) != 1 || !Type(l[0]).IsValid() {
			return nil, fmt.Errorf("unknown detector type %q (want one of V, B, P, C or all)", l)
		}
		out = append(out, Type(l[0]))
	}
	return out, nil
}

// Name is a parsed detector name.
type Name struct {
	Raw     string
	Type    Type
	Order   int
	Crystal string
	Slice   string
}

const (
	orderStart    = 1
	orderEnd      = 3
	crystalEnd    = 6
	minNameLength = orderEnd
)

// Parse splits a detector name into its parts. Only the type letter and the
// two order digits are required; the crystal id and slice may be absent.
func Parse(raw string) (Name, error) {
	if len(raw) < minNameLength {
		return Name{}, fmt.Errorf("detector name %q too short", raw)
	}
	order, err := strconv.Atoi(raw[orderStart:orderEnd])
	if err != nil || order < 0 {
		return Name{}, fmt.Errorf("detector name %q: invalid order %q", raw, raw[orderStart:orderEnd])
	}

	n := Name{Raw: raw, Type: Type(raw[0]), Order: order}
	if len(raw) >= crystalEnd {
		n.Crystal = raw[orderEnd:crystalEnd]
		n.Slice = raw[crystalEnd:]
	} else {
		n.Crystal = raw[orderEnd:]
	}
	return n, nil
}

// CrystalStem is the file stem of the crystal the detector was cut from:
// type letter, order digits and crystal id, e.g. V06643.
func (n Name) CrystalStem() string {
	if len(n.Raw) < crystalEnd {
		return n.Raw
	}
	return n.Raw[:crystalEnd]
}

// String returns the raw detector name.
func (n Name) String() string { return n.Raw }
